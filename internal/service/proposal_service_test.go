package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartject/smartject/internal/domain"
	"github.com/smartject/smartject/internal/testutil"
)

func TestProposalService_CreateDraft(t *testing.T) {
	env := newTestEnv(t)
	svc := NewProposalService(env.proposals, env.smartjects, env.uow, 0)
	ctx := context.Background()

	t.Run("creates draft against open listing", func(t *testing.T) {
		sj := testutil.NewTestSmartject("Supply chain tracker")
		require.NoError(t, env.smartjects.Create(ctx, sj))

		p := &domain.Proposal{
			SmartjectID: sj.ID,
			Author:      "provider1",
			Role:        domain.RoleProvider,
			Title:       "Build offer",
			Budget:      50000,
			Timeline:    "4 months",
		}
		require.NoError(t, svc.CreateDraft(ctx, p))
		assert.NotEmpty(t, p.ID)
		assert.Equal(t, domain.ProposalDraft, p.Status)
		assert.False(t, p.StartDate.IsZero())
	})

	t.Run("rejects archived listing", func(t *testing.T) {
		sj := testutil.NewTestSmartject("Old listing", testutil.WithSmartjectStatus(domain.SmartjectArchived))
		require.NoError(t, env.smartjects.Create(ctx, sj))

		p := testutil.NewTestProposal(sj.ID, "Too late")
		err := svc.CreateDraft(ctx, p)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not accepting proposals")
	})
}

func TestProposalService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects incomplete allocation", func(t *testing.T) {
		env := newTestEnv(t)
		svc := NewProposalService(env.proposals, env.smartjects, env.uow, 0)
		p := env.seedProposal(t)

		m := testutil.NewTestMilestone(p.ID, "Kickoff", testutil.WithPercentage(60))
		require.NoError(t, env.milestones.Create(ctx, m))

		err := svc.Submit(ctx, p.ID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "60%")

		got, err := env.proposals.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.ProposalDraft, got.Status)
	})

	t.Run("submits a fully allocated draft", func(t *testing.T) {
		env := newTestEnv(t)
		svc := NewProposalService(env.proposals, env.smartjects, env.uow, 0)
		p := env.seedProposal(t)
		env.seedFullSchedule(t, p.ID)

		require.NoError(t, svc.Submit(ctx, p.ID))

		got, err := env.proposals.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.ProposalSubmitted, got.Status)
		require.NotNil(t, got.SubmittedAt)
	})

	t.Run("rejects a second submit", func(t *testing.T) {
		env := newTestEnv(t)
		svc := NewProposalService(env.proposals, env.smartjects, env.uow, 0)
		p := env.seedProposal(t)
		env.seedFullSchedule(t, p.ID)

		require.NoError(t, svc.Submit(ctx, p.ID))
		err := svc.Submit(ctx, p.ID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "only draft proposals")
	})
}

func TestProposalService_Withdraw(t *testing.T) {
	env := newTestEnv(t)
	svc := NewProposalService(env.proposals, env.smartjects, env.uow, 0)
	ctx := context.Background()
	p := env.seedProposal(t)

	require.NoError(t, svc.Withdraw(ctx, p.ID))
	got, err := env.proposals.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ProposalWithdrawn, got.Status)

	// terminal states stay put
	err = svc.Withdraw(ctx, p.ID)
	require.Error(t, err)
}

func TestProposalService_Delete(t *testing.T) {
	env := newTestEnv(t)
	svc := NewProposalService(env.proposals, env.smartjects, env.uow, 0)
	ctx := context.Background()

	p := env.seedProposal(t, testutil.WithProposalStatus(domain.ProposalAccepted))
	err := svc.Delete(ctx, p.ID, false)
	require.Error(t, err)

	require.NoError(t, svc.Delete(ctx, p.ID, true))
	_, err = env.proposals.GetByID(ctx, p.ID)
	require.Error(t, err)
}
