package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartject/smartject/internal/db"
	"github.com/smartject/smartject/internal/repository"
	"github.com/smartject/smartject/internal/service"
	"github.com/smartject/smartject/internal/teatest"
	"github.com/smartject/smartject/internal/testutil"
)

func newTestApp(t *testing.T) (*App, repository.SmartjectRepo, repository.ProposalRepo, repository.MilestoneRepo) {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := db.NewSQLiteUnitOfWork(database)
	smartjects := repository.NewSQLiteSmartjectRepo(database)
	proposals := repository.NewSQLiteProposalRepo(database)
	milestones := repository.NewSQLiteMilestoneRepo(database)
	contracts := repository.NewSQLiteContractRepo(database)
	messages := repository.NewSQLiteNegotiationRepo(database)

	app := &App{
		Smartjects:  service.NewSmartjectService(smartjects),
		Proposals:   service.NewProposalService(proposals, smartjects, uow, 0),
		Milestones:  service.NewMilestoneService(milestones, proposals, uow, "$", 0),
		Contracts:   service.NewContractService(contracts, proposals, smartjects, milestones, uow, 0),
		Negotiation: service.NewNegotiationService(messages, proposals, uow),
		Actor:       "tester",
		Symbol:      "$",
	}
	return app, smartjects, proposals, milestones
}

func TestBoardShowsScheduleAndNavigates(t *testing.T) {
	app, smartjects, proposals, milestones := newTestApp(t)
	ctx := context.Background()

	sj := testutil.NewTestSmartject("AI contract review")
	require.NoError(t, smartjects.Create(ctx, sj))
	p := testutil.NewTestProposal(sj.ID, "Implementation offer")
	require.NoError(t, proposals.Create(ctx, p))

	first := testutil.NewTestMilestone(p.ID, "Design", testutil.WithPercentage(40),
		testutil.WithDeliverables("wireframes"))
	require.NoError(t, milestones.Create(ctx, first))
	second := testutil.NewTestMilestone(p.ID, "Build", testutil.WithPercentage(60))
	second.OrderIndex = 1
	require.NoError(t, milestones.Create(ctx, second))

	d := teatest.New(t, &boardModel{app: app, proposalID: p.ID, loading: true})
	d.DrainInit()

	view := d.View()
	assert.Contains(t, view, "Implementation offer")
	assert.Contains(t, view, "Design")
	assert.Contains(t, view, "Build")
	assert.Contains(t, view, "wireframes")
	assert.Contains(t, view, "100%")

	// checklist follows the cursor
	d.PressDown()
	view = d.View()
	assert.NotContains(t, view, "wireframes")

	d.PressUp()
	assert.Contains(t, d.View(), "wireframes")

	d.PressKey('q')
	assert.True(t, d.Quitting)
}

func TestBoardEmptySchedule(t *testing.T) {
	app, smartjects, proposals, _ := newTestApp(t)
	ctx := context.Background()

	sj := testutil.NewTestSmartject("Empty")
	require.NoError(t, smartjects.Create(ctx, sj))
	p := testutil.NewTestProposal(sj.ID, "No schedule yet")
	require.NoError(t, proposals.Create(ctx, p))

	d := teatest.New(t, &boardModel{app: app, proposalID: p.ID, loading: true})
	d.DrainInit()

	assert.Contains(t, d.View(), "No milestones yet.")
}
