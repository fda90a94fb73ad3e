package domain

import (
	"fmt"
	"regexp"
	"time"
)

var refPattern = regexp.MustCompile(`^SJ-[0-9]{3,5}$`)

// Smartject is a research-derived implementation opportunity that needers
// and providers submit proposals against.
type Smartject struct {
	ID           string
	Ref          string
	Title        string
	Mission      string
	Problematics string
	Tags         []string
	Status       SmartjectStatus
	ArchivedAt   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidateRef checks that Ref is non-empty and matches the required format:
// "SJ-" followed by 3-5 digits (e.g. SJ-041, SJ-10233).
func (s *Smartject) ValidateRef() error {
	if s.Ref == "" {
		return fmt.Errorf("listing ref is required (use --ref flag)")
	}
	if !refPattern.MatchString(s.Ref) {
		return fmt.Errorf("listing ref %q must be SJ- followed by 3-5 digits (e.g. SJ-041)", s.Ref)
	}
	return nil
}

// DisplayID returns the best short identifier for display.
// It prefers Ref; if empty it truncates ID to 8 characters.
func (s *Smartject) DisplayID() string {
	if s.Ref != "" {
		return s.Ref
	}
	if len(s.ID) >= 8 {
		return s.ID[:8]
	}
	return s.ID
}
