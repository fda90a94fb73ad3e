package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/smartject/smartject/internal/db"
	"github.com/smartject/smartject/internal/domain"
	"github.com/smartject/smartject/internal/repository"
)

type negotiationService struct {
	messages  repository.NegotiationRepo
	proposals repository.ProposalRepo
	uow       db.UnitOfWork
}

func NewNegotiationService(messages repository.NegotiationRepo, proposals repository.ProposalRepo, uow db.UnitOfWork) NegotiationService {
	return &negotiationService{messages: messages, proposals: proposals, uow: uow}
}

func (s *negotiationService) Post(ctx context.Context, m *domain.NegotiationMessage) error {
	if err := m.Validate(); err != nil {
		return err
	}
	p, err := s.proposals.GetByID(ctx, m.ProposalID)
	if err != nil {
		return err
	}
	if p.Status != domain.ProposalSubmitted {
		return fmt.Errorf("negotiation is only open on submitted proposals (status is %s)", p.Status)
	}
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	m.CreatedAt = time.Now().UTC()
	return s.messages.Create(ctx, m)
}

func (s *negotiationService) Thread(ctx context.Context, proposalID string) ([]*domain.NegotiationMessage, error) {
	return s.messages.ListByProposal(ctx, proposalID)
}

// AcceptCounter rewrites the proposal terms from a counter-offer message.
// A budget change invalidates the milestone amounts, so the proposal drops
// back to draft for the schedule to be reworked and resubmitted.
func (s *negotiationService) AcceptCounter(ctx context.Context, proposalID, messageID string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProposals := repository.NewSQLiteProposalRepo(tx)
		txMessages := repository.NewSQLiteNegotiationRepo(tx)

		p, err := txProposals.GetByID(ctx, proposalID)
		if err != nil {
			return err
		}
		if p.Status != domain.ProposalSubmitted {
			return fmt.Errorf("counter-offers can only be accepted on submitted proposals (status is %s)", p.Status)
		}

		thread, err := txMessages.ListByProposal(ctx, proposalID)
		if err != nil {
			return err
		}
		var offer *domain.NegotiationMessage
		for _, msg := range thread {
			if msg.ID == messageID {
				offer = msg
				break
			}
		}
		if offer == nil {
			return fmt.Errorf("message %s: %w", messageID, repository.ErrNotFound)
		}
		if offer.Kind != domain.MessageCounterOffer {
			return fmt.Errorf("message %s is a %s, not a counter-offer", messageID, offer.Kind)
		}

		budgetChanged := false
		if offer.CounterBudget != nil && *offer.CounterBudget != p.Budget {
			p.Budget = *offer.CounterBudget
			budgetChanged = true
		}
		if offer.CounterTimeline != nil {
			p.Timeline = *offer.CounterTimeline
		}
		if budgetChanged {
			p.Status = domain.ProposalDraft
			p.SubmittedAt = nil
		}
		p.UpdatedAt = time.Now().UTC()
		return txProposals.Update(ctx, p)
	})
}
