// Package editor drives the create/edit cycle for a single milestone
// against a proposal's allocation schedule. It holds no I/O; the CLI flag
// path and the interactive wizard both run through the same session.
package editor

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/smartject/smartject/internal/alloc"
	"github.com/smartject/smartject/internal/domain"
	"github.com/smartject/smartject/internal/money"
	"github.com/smartject/smartject/internal/timeline"
)

// Field-level validation failures, checked in this order before any
// schedule-level check. Each blocks the commit and leaves all state intact.
var (
	ErrMissingName       = errors.New("milestone name is required")
	ErrInvalidPercentage = errors.New("milestone percentage must be between 1 and 100")
	ErrMissingDueDate    = errors.New("milestone due date is required")
)

// Session edits one milestone at a time. It starts in the creating state;
// BeginEdit binds it to an existing schedule entry, Reset returns it to
// creating. Commit validates and hands the draft to the schedule; Cancel
// discards local edits without touching the schedule.
type Session struct {
	ledger *alloc.Ledger
	budget int64
	symbol string
	start  time.Time
	end    time.Time

	editingID string
	draft     domain.Milestone

	dueDateSet bool
	amountSet  bool
}

// NewSession creates an editor session over the given schedule. The project
// span must be well-formed; proposals with inverted timelines are rejected
// before milestone editing begins.
func NewSession(ledger *alloc.Ledger, budget int64, symbol string, start, end time.Time) (*Session, error) {
	if !end.After(start) {
		return nil, fmt.Errorf("project end %s must be after start %s",
			end.Format("2006-01-02"), start.Format("2006-01-02"))
	}
	if symbol == "" {
		symbol = money.DefaultSymbol
	}
	return &Session{ledger: ledger, budget: budget, symbol: symbol, start: start, end: end}, nil
}

// Editing reports whether the session is bound to an existing milestone.
func (s *Session) Editing() bool {
	return s.editingID != ""
}

// Draft returns the milestone as currently edited.
func (s *Session) Draft() domain.Milestone {
	return s.draft
}

// Ledger returns the schedule this session commits into.
func (s *Session) Ledger() *alloc.Ledger {
	return s.ledger
}

// BeginEdit binds the session to an existing schedule entry. The stored due
// date and amount count as explicitly set, so changing the percentage will
// not overwrite them.
func (s *Session) BeginEdit(id string) error {
	m, ok := s.ledger.Get(id)
	if !ok {
		return fmt.Errorf("editing %s: %w", id, alloc.ErrNotFound)
	}
	s.editingID = id
	s.draft = m
	s.dueDateSet = !m.DueDate.IsZero()
	s.amountSet = m.Amount != ""
	return nil
}

// Reset discards the draft and returns the session to the creating state.
func (s *Session) Reset() {
	s.editingID = ""
	s.draft = domain.Milestone{}
	s.dueDateSet = false
	s.amountSet = false
}

// Cancel discards all pending edits. The schedule is unaffected.
func (s *Session) Cancel() {
	s.Reset()
}

func (s *Session) SetName(name string) {
	s.draft.Name = name
}

func (s *Session) SetDescription(desc string) {
	s.draft.Description = desc
}

// SetPercentage updates the draft percentage and fills in suggested values
// for the due date and amount, unless the user has already set them
// explicitly this session.
func (s *Session) SetPercentage(pct int) {
	s.draft.Percentage = pct
	if !s.dueDateSet && pct > 0 {
		if due, err := timeline.SuggestDueDate(s.start, s.end, pct); err == nil {
			s.draft.DueDate = due
		}
	}
	if !s.amountSet && pct > 0 && pct <= 100 && s.budget > 0 {
		s.draft.Amount = money.FormatInt(s.symbol, s.budget*int64(pct)/100)
	}
}

// SetDueDate records an explicit due date; later percentage changes will no
// longer overwrite it.
func (s *Session) SetDueDate(t time.Time) {
	s.draft.DueDate = t
	s.dueDateSet = true
}

// SetAmount normalizes and records an explicit amount. An empty or
// digit-free input clears the field and re-enables amount suggestions.
func (s *Session) SetAmount(raw string) {
	formatted := money.FormatWith(s.symbol, raw)
	s.draft.Amount = formatted
	s.amountSet = formatted != ""
}

// AddDeliverable appends a deliverable when text is non-empty after
// trimming. It reports whether an entry was added.
func (s *Session) AddDeliverable(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}
	s.draft.Deliverables = append(s.draft.Deliverables, domain.Deliverable{
		ID:          uuid.New().String(),
		Description: trimmed,
		Completed:   false,
		OrderIndex:  len(s.draft.Deliverables),
	})
	return true
}

// ToggleDeliverable flips the completed flag of the deliverable with the
// given id.
func (s *Session) ToggleDeliverable(id string) {
	for i := range s.draft.Deliverables {
		if s.draft.Deliverables[i].ID == id {
			s.draft.Deliverables[i].Completed = !s.draft.Deliverables[i].Completed
			return
		}
	}
}

// RemoveDeliverable removes the deliverable with the given id, if present.
func (s *Session) RemoveDeliverable(id string) {
	for i := range s.draft.Deliverables {
		if s.draft.Deliverables[i].ID == id {
			s.draft.Deliverables = append(s.draft.Deliverables[:i], s.draft.Deliverables[i+1:]...)
			return
		}
	}
}

// Validate runs the pre-commit checks in order, short-circuiting on the
// first failure: name, percentage, due date, then the schedule ceiling.
func (s *Session) Validate() error {
	if strings.TrimSpace(s.draft.Name) == "" {
		return ErrMissingName
	}
	if s.draft.Percentage <= 0 || s.draft.Percentage > 100 {
		return ErrInvalidPercentage
	}
	if s.draft.DueDate.IsZero() {
		return ErrMissingDueDate
	}
	return s.checkCeiling()
}

func (s *Session) checkCeiling() error {
	remaining := s.ledger.Remaining()
	if s.Editing() {
		if existing, ok := s.ledger.Get(s.editingID); ok {
			remaining += existing.Percentage
		}
	}
	if s.draft.Percentage > remaining {
		return &alloc.OverAllocationError{Attempted: s.draft.Percentage, Remaining: remaining}
	}
	return nil
}

// Commit validates the draft and commits it into the schedule, returning
// the committed milestone. On success the session resets to the creating
// state; on failure both the draft and the schedule are unchanged.
func (s *Session) Commit() (domain.Milestone, error) {
	if err := s.Validate(); err != nil {
		return domain.Milestone{}, err
	}
	m := s.draft
	if s.Editing() {
		if err := s.ledger.Update(s.editingID, m); err != nil {
			return domain.Milestone{}, err
		}
		m.ID = s.editingID
	} else {
		if m.ID == "" {
			m.ID = uuid.New().String()
		}
		m.OrderIndex = s.ledger.Len()
		if err := s.ledger.Add(m); err != nil {
			return domain.Milestone{}, err
		}
	}
	s.Reset()
	return m, nil
}
