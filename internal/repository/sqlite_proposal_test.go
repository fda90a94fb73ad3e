package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartject/smartject/internal/domain"
	"github.com/smartject/smartject/internal/testutil"
)

func setupProposalRepo(t *testing.T) (*SQLiteSmartjectRepo, *SQLiteProposalRepo, *domain.Smartject) {
	t.Helper()
	database := testutil.NewTestDB(t)
	smartjects := NewSQLiteSmartjectRepo(database)
	proposals := NewSQLiteProposalRepo(database)

	sj := testutil.NewTestSmartject("Adaptive routing")
	require.NoError(t, smartjects.Create(context.Background(), sj))
	return smartjects, proposals, sj
}

func TestProposalRepo_CreateAndGet(t *testing.T) {
	_, proposals, sj := setupProposalRepo(t)
	ctx := context.Background()

	p := testutil.NewTestProposal(sj.ID, "Provider offer",
		testutil.WithBudget(24000),
		testutil.WithTimeline("2.5 months"),
	)
	require.NoError(t, proposals.Create(ctx, p))

	got, err := proposals.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Provider offer", got.Title)
	assert.Equal(t, int64(24000), got.Budget)
	assert.Equal(t, "2.5 months", got.Timeline)
	assert.Equal(t, domain.RoleProvider, got.Role)
	assert.Equal(t, domain.ProposalDraft, got.Status)
	assert.Equal(t, p.StartDate, got.StartDate)
	assert.Nil(t, got.SubmittedAt)
}

func TestProposalRepo_GetByID_NotFound(t *testing.T) {
	_, proposals, _ := setupProposalRepo(t)
	_, err := proposals.GetByID(context.Background(), "nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestProposalRepo_Update(t *testing.T) {
	_, proposals, sj := setupProposalRepo(t)
	ctx := context.Background()

	p := testutil.NewTestProposal(sj.ID, "Offer")
	require.NoError(t, proposals.Create(ctx, p))

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, p.Submit(now))
	require.NoError(t, proposals.Update(ctx, p))

	got, err := proposals.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ProposalSubmitted, got.Status)
	require.NotNil(t, got.SubmittedAt)
	assert.True(t, got.SubmittedAt.Equal(now))
}

func TestProposalRepo_ListByStatus(t *testing.T) {
	_, proposals, sj := setupProposalRepo(t)
	ctx := context.Background()

	draft := testutil.NewTestProposal(sj.ID, "Draft one")
	submitted := testutil.NewTestProposal(sj.ID, "Submitted one",
		testutil.WithProposalStatus(domain.ProposalSubmitted))
	require.NoError(t, proposals.Create(ctx, draft))
	require.NoError(t, proposals.Create(ctx, submitted))

	all, err := proposals.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	subs, err := proposals.List(ctx, domain.ProposalSubmitted)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "Submitted one", subs[0].Title)

	both, err := proposals.List(ctx, domain.ProposalDraft, domain.ProposalSubmitted)
	require.NoError(t, err)
	assert.Len(t, both, 2)
}

func TestProposalRepo_ListBySmartject(t *testing.T) {
	smartjects, proposals, sj := setupProposalRepo(t)
	ctx := context.Background()

	other := testutil.NewTestSmartject("Other listing")
	require.NoError(t, smartjects.Create(ctx, other))

	require.NoError(t, proposals.Create(ctx, testutil.NewTestProposal(sj.ID, "Mine")))
	require.NoError(t, proposals.Create(ctx, testutil.NewTestProposal(other.ID, "Theirs")))

	got, err := proposals.ListBySmartject(ctx, sj.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Mine", got[0].Title)
}
