package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartject/smartject/internal/domain"
	"github.com/smartject/smartject/internal/testutil"
)

func TestNegotiationService_Post(t *testing.T) {
	ctx := context.Background()

	t.Run("posts comment on submitted proposal", func(t *testing.T) {
		env := newTestEnv(t)
		svc := NewNegotiationService(env.messages, env.proposals, env.uow)
		p := env.seedProposal(t, testutil.WithProposalStatus(domain.ProposalSubmitted))

		m := &domain.NegotiationMessage{
			ProposalID: p.ID,
			Sender:     "needer1",
			SenderRole: domain.RoleNeeder,
			Kind:       domain.MessageComment,
			Content:    "Can the first phase land earlier?",
		}
		require.NoError(t, svc.Post(ctx, m))
		assert.NotEmpty(t, m.ID)

		thread, err := svc.Thread(ctx, p.ID)
		require.NoError(t, err)
		require.Len(t, thread, 1)
	})

	t.Run("refuses drafts", func(t *testing.T) {
		env := newTestEnv(t)
		svc := NewNegotiationService(env.messages, env.proposals, env.uow)
		p := env.seedProposal(t)

		m := &domain.NegotiationMessage{
			ProposalID: p.ID,
			Sender:     "needer1",
			SenderRole: domain.RoleNeeder,
			Kind:       domain.MessageComment,
			Content:    "hello",
		}
		err := svc.Post(ctx, m)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "submitted")
	})

	t.Run("counter-offer must carry new terms", func(t *testing.T) {
		env := newTestEnv(t)
		svc := NewNegotiationService(env.messages, env.proposals, env.uow)
		p := env.seedProposal(t, testutil.WithProposalStatus(domain.ProposalSubmitted))

		m := &domain.NegotiationMessage{
			ProposalID: p.ID,
			Sender:     "needer1",
			SenderRole: domain.RoleNeeder,
			Kind:       domain.MessageCounterOffer,
			Content:    "counter",
		}
		err := svc.Post(ctx, m)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "budget or the timeline")
	})
}

func TestNegotiationService_AcceptCounter(t *testing.T) {
	ctx := context.Background()

	t.Run("budget change reopens the draft", func(t *testing.T) {
		env := newTestEnv(t)
		svc := NewNegotiationService(env.messages, env.proposals, env.uow)
		p := env.seedProposal(t, testutil.WithProposalStatus(domain.ProposalSubmitted))

		budget := int64(8000)
		m := &domain.NegotiationMessage{
			ProposalID:    p.ID,
			Sender:        "needer1",
			SenderRole:    domain.RoleNeeder,
			Kind:          domain.MessageCounterOffer,
			Content:       "lower budget",
			CounterBudget: &budget,
		}
		require.NoError(t, svc.Post(ctx, m))
		require.NoError(t, svc.AcceptCounter(ctx, p.ID, m.ID))

		got, err := env.proposals.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(8000), got.Budget)
		assert.Equal(t, domain.ProposalDraft, got.Status)
		assert.Nil(t, got.SubmittedAt)
	})

	t.Run("timeline-only counter keeps the proposal submitted", func(t *testing.T) {
		env := newTestEnv(t)
		svc := NewNegotiationService(env.messages, env.proposals, env.uow)
		p := env.seedProposal(t, testutil.WithProposalStatus(domain.ProposalSubmitted))

		tl := "5 months"
		m := &domain.NegotiationMessage{
			ProposalID:      p.ID,
			Sender:          "needer1",
			SenderRole:      domain.RoleNeeder,
			Kind:            domain.MessageCounterOffer,
			Content:         "more time",
			CounterTimeline: &tl,
		}
		require.NoError(t, svc.Post(ctx, m))
		require.NoError(t, svc.AcceptCounter(ctx, p.ID, m.ID))

		got, err := env.proposals.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, "5 months", got.Timeline)
		assert.Equal(t, domain.ProposalSubmitted, got.Status)
	})

	t.Run("rejects plain comments", func(t *testing.T) {
		env := newTestEnv(t)
		svc := NewNegotiationService(env.messages, env.proposals, env.uow)
		p := env.seedProposal(t, testutil.WithProposalStatus(domain.ProposalSubmitted))

		m := &domain.NegotiationMessage{
			ProposalID: p.ID,
			Sender:     "needer1",
			SenderRole: domain.RoleNeeder,
			Kind:       domain.MessageComment,
			Content:    "just a note",
		}
		require.NoError(t, svc.Post(ctx, m))

		err := svc.AcceptCounter(ctx, p.ID, m.ID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a counter-offer")
	})
}
