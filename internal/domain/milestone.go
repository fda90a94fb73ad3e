package domain

import (
	"fmt"
	"strings"
	"time"
)

// Milestone is a partial-payment checkpoint within a proposal or contract.
// Percentage is its share of the total budget; Amount is the canonical
// currency string shown to the user and is deliberately not derived from
// Percentage (the two are independently editable).
type Milestone struct {
	ID           string
	ProposalID   string
	Name         string
	Description  string
	Percentage   int
	Amount       string
	DueDate      time.Time
	OrderIndex   int
	Status       MilestoneStatus
	Deliverables []Deliverable
	CompletedAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Deliverable is a checklist entry scoped to one milestone.
type Deliverable struct {
	ID          string
	MilestoneID string
	Description string
	Completed   bool
	OrderIndex  int
}

// Validate checks the fields required before a milestone can be committed.
// DueDate presence is checked after Percentage so that field-level failures
// surface in a stable order.
func (m *Milestone) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("milestone name is required")
	}
	if m.Percentage <= 0 || m.Percentage > 100 {
		return fmt.Errorf("milestone percentage must be between 1 and 100, got %d", m.Percentage)
	}
	if m.DueDate.IsZero() {
		return fmt.Errorf("milestone due date is required")
	}
	return nil
}

// StartWork transitions a pending milestone to in progress.
func (m *Milestone) StartWork(now time.Time) error {
	if m.Status != MilestonePending {
		return fmt.Errorf("only pending milestones can be started (status is %s)", m.Status)
	}
	m.Status = MilestoneInProgress
	m.UpdatedAt = now
	return nil
}

// SubmitForReview hands an in-progress milestone to the needer for review.
// Every deliverable must be checked off first.
func (m *Milestone) SubmitForReview(now time.Time) error {
	if m.Status != MilestoneInProgress {
		return fmt.Errorf("only in-progress milestones can be submitted for review (status is %s)", m.Status)
	}
	for _, d := range m.Deliverables {
		if !d.Completed {
			return fmt.Errorf("deliverable %q is not completed", d.Description)
		}
	}
	m.Status = MilestoneInReview
	m.UpdatedAt = now
	return nil
}

// Approve accepts a reviewed milestone and records completion.
func (m *Milestone) Approve(now time.Time) error {
	if m.Status != MilestoneInReview {
		return fmt.Errorf("only milestones in review can be approved (status is %s)", m.Status)
	}
	m.Status = MilestoneApproved
	m.CompletedAt = &now
	m.UpdatedAt = now
	return nil
}

// SendBack returns a reviewed milestone to in progress for rework.
func (m *Milestone) SendBack(now time.Time) error {
	if m.Status != MilestoneInReview {
		return fmt.Errorf("only milestones in review can be sent back (status is %s)", m.Status)
	}
	m.Status = MilestoneInProgress
	m.UpdatedAt = now
	return nil
}
