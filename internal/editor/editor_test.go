package editor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartject/smartject/internal/alloc"
)

var (
	projStart = time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	projEnd   = time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC)
)

func newSession(t *testing.T) *Session {
	t.Helper()
	s, err := NewSession(alloc.NewLedger(), 24000, "$", projStart, projEnd)
	require.NoError(t, err)
	return s
}

func TestNewSession_RejectsInvertedSpan(t *testing.T) {
	_, err := NewSession(alloc.NewLedger(), 1000, "$", projEnd, projStart)
	require.Error(t, err)

	_, err = NewSession(alloc.NewLedger(), 1000, "$", projStart, projStart)
	require.Error(t, err)
}

func TestCommit_Create(t *testing.T) {
	s := newSession(t)
	s.SetName("Kickoff")
	s.SetPercentage(30)

	m, err := s.Commit()
	require.NoError(t, err)
	assert.NotEmpty(t, m.ID)
	assert.Equal(t, 30, s.Ledger().TotalPercentage())
	assert.False(t, s.Editing(), "session resets to creating after commit")
	assert.Empty(t, s.Draft().Name)
}

func TestValidationOrder(t *testing.T) {
	s := newSession(t)

	_, err := s.Commit()
	assert.ErrorIs(t, err, ErrMissingName, "name checked first")

	s.SetName("Kickoff")
	_, err = s.Commit()
	assert.ErrorIs(t, err, ErrInvalidPercentage, "percentage checked second")

	s.draft.Percentage = 30 // bypass SetPercentage so no due date is suggested
	_, err = s.Commit()
	assert.ErrorIs(t, err, ErrMissingDueDate, "due date checked third")

	s.SetDueDate(projStart.AddDate(0, 1, 0))
	_, err = s.Commit()
	require.NoError(t, err)
}

func TestCommit_OverAllocation(t *testing.T) {
	s := newSession(t)
	s.SetName("Kickoff")
	s.SetPercentage(30)
	_, err := s.Commit()
	require.NoError(t, err)

	s.SetName("Mid")
	s.SetPercentage(80)
	_, err = s.Commit()
	var overErr *alloc.OverAllocationError
	require.ErrorAs(t, err, &overErr)
	assert.Equal(t, 70, overErr.Remaining)
	assert.Equal(t, 30, s.Ledger().TotalPercentage(), "failed commit leaves schedule unchanged")
	assert.Equal(t, "Mid", s.Draft().Name, "failed commit leaves the draft editable")
}

func TestDueDateSuggestion(t *testing.T) {
	s := newSession(t)
	s.SetName("Halfway")
	s.SetPercentage(50)
	// 50% of the 90-day Jan-Apr span.
	assert.Equal(t, time.Date(2023, 2, 15, 0, 0, 0, 0, time.UTC), s.Draft().DueDate)

	// Once the user sets a date explicitly, percentage changes keep it.
	explicit := time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)
	s.SetDueDate(explicit)
	s.SetPercentage(10)
	assert.Equal(t, explicit, s.Draft().DueDate)
}

func TestAmountSuggestion(t *testing.T) {
	s := newSession(t)
	s.SetPercentage(50)
	assert.Equal(t, "$12,000", s.Draft().Amount, "half of the 24,000 budget")

	s.SetAmount("9 500 usd")
	assert.Equal(t, "$9,500", s.Draft().Amount)

	s.SetPercentage(25)
	assert.Equal(t, "$9,500", s.Draft().Amount, "explicit amount survives percentage changes")

	s.SetAmount("")
	s.SetPercentage(25)
	assert.Equal(t, "$6,000", s.Draft().Amount, "clearing the amount re-enables suggestions")
}

func TestBeginEdit(t *testing.T) {
	s := newSession(t)
	s.SetName("Kickoff")
	s.SetPercentage(40)
	committed, err := s.Commit()
	require.NoError(t, err)

	require.NoError(t, s.BeginEdit(committed.ID))
	assert.True(t, s.Editing())
	assert.Equal(t, "Kickoff", s.Draft().Name)

	// Updating at the same percentage must not trip the ceiling.
	s.SetName("Kickoff (revised)")
	m, err := s.Commit()
	require.NoError(t, err)
	assert.Equal(t, committed.ID, m.ID)
	assert.Equal(t, 40, s.Ledger().TotalPercentage())

	got, ok := s.Ledger().Get(committed.ID)
	require.True(t, ok)
	assert.Equal(t, "Kickoff (revised)", got.Name)
}

func TestBeginEdit_UnknownID(t *testing.T) {
	s := newSession(t)
	err := s.BeginEdit("missing")
	require.ErrorIs(t, err, alloc.ErrNotFound)
}

func TestCancel(t *testing.T) {
	s := newSession(t)
	s.SetName("Kickoff")
	s.SetPercentage(40)
	_, err := s.Commit()
	require.NoError(t, err)

	ms := s.Ledger().Milestones()
	require.NoError(t, s.BeginEdit(ms[0].ID))
	s.SetName("Scrapped edit")
	s.Cancel()

	got, _ := s.Ledger().Get(ms[0].ID)
	assert.Equal(t, "Kickoff", got.Name, "cancel discards pending edits")
	assert.False(t, s.Editing())
}

func TestDeliverables(t *testing.T) {
	s := newSession(t)

	assert.False(t, s.AddDeliverable("   "), "blank text is ignored")
	assert.True(t, s.AddDeliverable("  Draft report  "))
	assert.True(t, s.AddDeliverable("Final report"))

	ds := s.Draft().Deliverables
	require.Len(t, ds, 2)
	assert.Equal(t, "Draft report", ds[0].Description, "text is trimmed")
	assert.False(t, ds[0].Completed)

	s.ToggleDeliverable(ds[0].ID)
	assert.True(t, s.Draft().Deliverables[0].Completed)
	s.ToggleDeliverable(ds[0].ID)
	assert.False(t, s.Draft().Deliverables[0].Completed)

	s.RemoveDeliverable(ds[0].ID)
	require.Len(t, s.Draft().Deliverables, 1)
	assert.Equal(t, "Final report", s.Draft().Deliverables[0].Description)

	s.RemoveDeliverable("absent")
	assert.Len(t, s.Draft().Deliverables, 1)
}
