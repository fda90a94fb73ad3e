package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

func validMilestone() *Milestone {
	return &Milestone{
		Name:       "Kickoff",
		Percentage: 30,
		DueDate:    time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Status:     MilestonePending,
	}
}

func TestMilestoneValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Milestone)
		wantErr string
	}{
		{"valid", func(m *Milestone) {}, ""},
		{"empty name", func(m *Milestone) { m.Name = "" }, "name is required"},
		{"whitespace name", func(m *Milestone) { m.Name = "   " }, "name is required"},
		{"zero percentage", func(m *Milestone) { m.Percentage = 0 }, "between 1 and 100"},
		{"negative percentage", func(m *Milestone) { m.Percentage = -5 }, "between 1 and 100"},
		{"over 100", func(m *Milestone) { m.Percentage = 101 }, "between 1 and 100"},
		{"missing due date", func(m *Milestone) { m.DueDate = time.Time{} }, "due date is required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := validMilestone()
			tc.mutate(m)
			err := m.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
			}
		})
	}
}

func TestMilestoneValidationOrder(t *testing.T) {
	// Name failure must win over percentage failure.
	m := &Milestone{Name: "", Percentage: 0}
	err := m.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
}

func TestMilestoneReviewFlow(t *testing.T) {
	m := validMilestone()
	require.NoError(t, m.StartWork(testNow))
	assert.Equal(t, MilestoneInProgress, m.Status)

	m.Deliverables = []Deliverable{
		{ID: "d1", Description: "Draft report", Completed: true},
		{ID: "d2", Description: "Final report", Completed: false},
	}
	err := m.SubmitForReview(testNow)
	require.Error(t, err, "unchecked deliverable should block review")
	assert.Contains(t, err.Error(), "Final report")

	m.Deliverables[1].Completed = true
	require.NoError(t, m.SubmitForReview(testNow))
	assert.Equal(t, MilestoneInReview, m.Status)

	require.NoError(t, m.SendBack(testNow))
	assert.Equal(t, MilestoneInProgress, m.Status)

	require.NoError(t, m.SubmitForReview(testNow))
	require.NoError(t, m.Approve(testNow))
	assert.Equal(t, MilestoneApproved, m.Status)
	require.NotNil(t, m.CompletedAt)
	assert.Equal(t, testNow, *m.CompletedAt)
}

func TestMilestoneApprove_NotInReview(t *testing.T) {
	m := validMilestone()
	err := m.Approve(testNow)
	require.Error(t, err)
	assert.Equal(t, MilestonePending, m.Status, "status should not change")
}
