package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartject/smartject/internal/domain"
	"github.com/smartject/smartject/internal/testutil"
)

func setupMilestoneRepo(t *testing.T) (*SQLiteMilestoneRepo, *domain.Proposal) {
	t.Helper()
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	sj := testutil.NewTestSmartject("Listing")
	require.NoError(t, NewSQLiteSmartjectRepo(database).Create(ctx, sj))
	p := testutil.NewTestProposal(sj.ID, "Offer")
	require.NoError(t, NewSQLiteProposalRepo(database).Create(ctx, p))

	return NewSQLiteMilestoneRepo(database), p
}

func TestMilestoneRepo_RoundTripWithDeliverables(t *testing.T) {
	milestones, p := setupMilestoneRepo(t)
	ctx := context.Background()

	m := testutil.NewTestMilestone(p.ID, "Kickoff",
		testutil.WithPercentage(30),
		testutil.WithAmount("$3,000"),
		testutil.WithDeliverables("Project plan", "Kickoff call"),
	)
	require.NoError(t, milestones.Create(ctx, m))

	got, err := milestones.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kickoff", got.Name)
	assert.Equal(t, 30, got.Percentage)
	assert.Equal(t, "$3,000", got.Amount)
	require.Len(t, got.Deliverables, 2)
	assert.Equal(t, "Project plan", got.Deliverables[0].Description)
	assert.Equal(t, "Kickoff call", got.Deliverables[1].Description)
	assert.False(t, got.Deliverables[0].Completed)
}

func TestMilestoneRepo_GetByID_NotFound(t *testing.T) {
	milestones, _ := setupMilestoneRepo(t)
	_, err := milestones.GetByID(context.Background(), "nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMilestoneRepo_UpdateRewritesChecklist(t *testing.T) {
	milestones, p := setupMilestoneRepo(t)
	ctx := context.Background()

	m := testutil.NewTestMilestone(p.ID, "Delivery",
		testutil.WithDeliverables("Draft", "Final"),
	)
	require.NoError(t, milestones.Create(ctx, m))

	m.Deliverables[1].Completed = true
	m.Deliverables = m.Deliverables[1:]
	m.Name = "Delivery (revised)"
	require.NoError(t, milestones.Update(ctx, m))

	got, err := milestones.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Delivery (revised)", got.Name)
	require.Len(t, got.Deliverables, 1)
	assert.Equal(t, "Final", got.Deliverables[0].Description)
	assert.True(t, got.Deliverables[0].Completed)
}

func TestMilestoneRepo_ListByProposal_Order(t *testing.T) {
	milestones, p := setupMilestoneRepo(t)
	ctx := context.Background()

	first := testutil.NewTestMilestone(p.ID, "First", testutil.WithPercentage(40))
	first.OrderIndex = 0
	second := testutil.NewTestMilestone(p.ID, "Second", testutil.WithPercentage(60))
	second.OrderIndex = 1

	// Insert out of order; order_index drives the listing.
	require.NoError(t, milestones.Create(ctx, second))
	require.NoError(t, milestones.Create(ctx, first))

	got, err := milestones.ListByProposal(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "First", got[0].Name)
	assert.Equal(t, "Second", got[1].Name)
}

func TestMilestoneRepo_Delete(t *testing.T) {
	milestones, p := setupMilestoneRepo(t)
	ctx := context.Background()

	m := testutil.NewTestMilestone(p.ID, "Gone", testutil.WithDeliverables("Thing"))
	require.NoError(t, milestones.Create(ctx, m))
	require.NoError(t, milestones.Delete(ctx, m.ID))

	_, err := milestones.GetByID(ctx, m.ID)
	require.ErrorIs(t, err, ErrNotFound)
}
