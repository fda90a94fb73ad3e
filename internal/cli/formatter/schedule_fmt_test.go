package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartject/smartject/internal/alloc"
	"github.com/smartject/smartject/internal/domain"
)

func TestFormatScheduleEmpty(t *testing.T) {
	out := FormatSchedule(alloc.NewLedger(), "$")
	assert.Contains(t, out, "No milestones yet.")
	assert.Contains(t, out, "  0%")
}

func TestFormatSchedule(t *testing.T) {
	ledger := alloc.NewLedger()
	require.NoError(t, ledger.Add(domain.Milestone{
		ID:         "m1",
		Name:       "Design",
		Percentage: 40,
		Amount:     "$4,000",
		DueDate:    time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC),
		Deliverables: []domain.Deliverable{
			{ID: "d1", Description: "wireframes", Completed: true},
			{ID: "d2", Description: "style guide"},
		},
		Status: domain.MilestoneInProgress,
	}))
	require.NoError(t, ledger.Add(domain.Milestone{
		ID:         "m2",
		Name:       "Build",
		Percentage: 60,
		Amount:     "$6,000",
		DueDate:    time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		Status:     domain.MilestonePending,
	}))

	out := FormatSchedule(ledger, "$")
	assert.Contains(t, out, "Design")
	assert.Contains(t, out, "40%")
	assert.Contains(t, out, "$4,000")
	assert.Contains(t, out, "2024-02-15")
	assert.Contains(t, out, "1/2")
	assert.Contains(t, out, "100%")
	assert.NotContains(t, out, "unassigned")
}

func TestRenderAllocationClamps(t *testing.T) {
	assert.Contains(t, RenderAllocation(150, 10), "100%")
	assert.Contains(t, RenderAllocation(-5, 10), "  0%")
}

func TestRenderTableAlignment(t *testing.T) {
	out := RenderTable([]string{"A", "LONGER"}, [][]string{
		{"first", "x"},
		{"b", "y"},
	})
	assert.Contains(t, out, "first")
	assert.Contains(t, out, "─")
}
