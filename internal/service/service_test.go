package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/smartject/smartject/internal/db"
	"github.com/smartject/smartject/internal/domain"
	"github.com/smartject/smartject/internal/repository"
	"github.com/smartject/smartject/internal/testutil"
)

type testEnv struct {
	db         *sql.DB
	uow        db.UnitOfWork
	smartjects repository.SmartjectRepo
	proposals  repository.ProposalRepo
	milestones repository.MilestoneRepo
	contracts  repository.ContractRepo
	messages   repository.NegotiationRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	return &testEnv{
		db:         database,
		uow:        testutil.NewTestUoW(database),
		smartjects: repository.NewSQLiteSmartjectRepo(database),
		proposals:  repository.NewSQLiteProposalRepo(database),
		milestones: repository.NewSQLiteMilestoneRepo(database),
		contracts:  repository.NewSQLiteContractRepo(database),
		messages:   repository.NewSQLiteNegotiationRepo(database),
	}
}

// seedProposal stores a listing and a proposal against it, returning the
// proposal for the test to work with.
func (e *testEnv) seedProposal(t *testing.T, opts ...testutil.ProposalOption) *domain.Proposal {
	t.Helper()
	ctx := context.Background()
	sj := testutil.NewTestSmartject("AI contract review")
	require.NoError(t, e.smartjects.Create(ctx, sj))
	p := testutil.NewTestProposal(sj.ID, "Implementation offer", opts...)
	require.NoError(t, e.proposals.Create(ctx, p))
	return p
}

// seedFullSchedule attaches milestones totalling exactly 100%.
func (e *testEnv) seedFullSchedule(t *testing.T, proposalID string) {
	t.Helper()
	ctx := context.Background()
	for i, pct := range []int{40, 35, 25} {
		m := testutil.NewTestMilestone(proposalID, "Phase", testutil.WithPercentage(pct))
		m.OrderIndex = i
		require.NoError(t, e.milestones.Create(ctx, m))
	}
}
