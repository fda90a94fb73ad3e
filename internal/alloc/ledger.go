// Package alloc maintains the milestone payment schedule for one proposal:
// an ordered list of milestones whose percentages may never sum past 100.
package alloc

import (
	"errors"
	"fmt"

	"github.com/smartject/smartject/internal/domain"
)

// ErrNotFound is returned by Update when no milestone has the given id.
// The editor never offers an unknown id, so hitting this is a bug in the
// caller rather than a user-facing condition.
var ErrNotFound = errors.New("milestone not found in schedule")

// OverAllocationError reports an operation that would push the schedule
// past 100%. Remaining is the percentage still available before the
// rejected operation.
type OverAllocationError struct {
	Attempted int
	Remaining int
}

func (e *OverAllocationError) Error() string {
	return fmt.Sprintf("allocation would exceed 100%%: %d%% requested, %d%% remaining", e.Attempted, e.Remaining)
}

// Ledger is the in-memory schedule for a single editing session. It is not
// safe for concurrent use; one proposal is edited by one session at a time.
type Ledger struct {
	items []domain.Milestone
	total int
}

// NewLedger returns an empty schedule.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Load builds a schedule from persisted milestones, preserving order.
// Stored data violating the 100% ceiling is corrupt and is rejected.
func Load(milestones []domain.Milestone) (*Ledger, error) {
	l := NewLedger()
	for _, m := range milestones {
		if err := l.Add(m); err != nil {
			return nil, fmt.Errorf("loading milestone %q: %w", m.Name, err)
		}
	}
	return l, nil
}

// Add appends a milestone to the schedule. It fails with
// *OverAllocationError when the running total would exceed 100.
func (l *Ledger) Add(m domain.Milestone) error {
	if l.total+m.Percentage > 100 {
		return &OverAllocationError{Attempted: m.Percentage, Remaining: 100 - l.total}
	}
	l.items = append(l.items, m)
	l.total += m.Percentage
	return nil
}

// Update replaces the milestone with the given id in place. The ceiling
// check excludes the record being replaced.
func (l *Ledger) Update(id string, m domain.Milestone) error {
	idx := l.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("updating %s: %w", id, ErrNotFound)
	}
	remaining := 100 - l.total + l.items[idx].Percentage
	if m.Percentage > remaining {
		return &OverAllocationError{Attempted: m.Percentage, Remaining: remaining}
	}
	l.total += m.Percentage - l.items[idx].Percentage
	m.ID = id
	l.items[idx] = m
	return nil
}

// Remove deletes the milestone with the given id. Removing an absent id is
// a no-op.
func (l *Ledger) Remove(id string) {
	idx := l.indexOf(id)
	if idx < 0 {
		return
	}
	l.total -= l.items[idx].Percentage
	l.items = append(l.items[:idx], l.items[idx+1:]...)
}

// Get returns the milestone with the given id, if present.
func (l *Ledger) Get(id string) (domain.Milestone, bool) {
	idx := l.indexOf(id)
	if idx < 0 {
		return domain.Milestone{}, false
	}
	return l.items[idx], true
}

// Milestones returns the schedule in insertion order. The slice is a copy;
// mutating it does not affect the ledger.
func (l *Ledger) Milestones() []domain.Milestone {
	out := make([]domain.Milestone, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of milestones in the schedule.
func (l *Ledger) Len() int {
	return len(l.items)
}

// TotalPercentage returns the committed running total.
func (l *Ledger) TotalPercentage() int {
	return l.total
}

// Remaining returns the percentage still available.
func (l *Ledger) Remaining() int {
	return 100 - l.total
}

// IsComplete reports whether the schedule allocates exactly 100%.
// Submission downstream requires this.
func (l *Ledger) IsComplete() bool {
	return l.total == 100
}

func (l *Ledger) indexOf(id string) int {
	for i, m := range l.items {
		if m.ID == id {
			return i
		}
	}
	return -1
}
