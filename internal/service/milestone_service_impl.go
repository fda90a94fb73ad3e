package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/smartject/smartject/internal/alloc"
	"github.com/smartject/smartject/internal/db"
	"github.com/smartject/smartject/internal/domain"
	"github.com/smartject/smartject/internal/editor"
	"github.com/smartject/smartject/internal/money"
	"github.com/smartject/smartject/internal/repository"
	"github.com/smartject/smartject/internal/timeline"
)

type milestoneService struct {
	milestones    repository.MilestoneRepo
	proposals     repository.ProposalRepo
	uow           db.UnitOfWork
	symbol        string
	defaultMonths float64
}

func NewMilestoneService(milestones repository.MilestoneRepo, proposals repository.ProposalRepo, uow db.UnitOfWork, symbol string, defaultMonths float64) MilestoneService {
	if symbol == "" {
		symbol = money.DefaultSymbol
	}
	if defaultMonths <= 0 {
		defaultMonths = timeline.DefaultMonths
	}
	return &milestoneService{
		milestones:    milestones,
		proposals:     proposals,
		uow:           uow,
		symbol:        symbol,
		defaultMonths: defaultMonths,
	}
}

func (s *milestoneService) Schedule(ctx context.Context, proposalID string) (*alloc.Ledger, error) {
	stored, err := s.milestones.ListByProposal(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	return alloc.Load(stored)
}

func (s *milestoneService) EditorSession(ctx context.Context, proposalID string) (*editor.Session, error) {
	p, err := s.proposals.GetByID(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	if p.Status != domain.ProposalDraft {
		return nil, fmt.Errorf("milestones can only be edited on draft proposals (status is %s)", p.Status)
	}
	ledger, err := s.Schedule(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	end := timeline.Span(p.StartDate, p.Timeline, s.defaultMonths)
	return editor.NewSession(ledger, p.Budget, s.symbol, p.StartDate, end)
}

// Add re-runs the ceiling check against the stored schedule inside a
// transaction, so the flag-based CLI path cannot over-allocate even though
// it bypasses the interactive editor.
func (s *milestoneService) Add(ctx context.Context, proposalID string, m *domain.Milestone) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	m.ProposalID = proposalID
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now
	if m.Status == "" {
		m.Status = domain.MilestonePending
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txMilestones := repository.NewSQLiteMilestoneRepo(tx)

		stored, err := txMilestones.ListByProposal(ctx, proposalID)
		if err != nil {
			return err
		}
		ledger, err := alloc.Load(stored)
		if err != nil {
			return err
		}
		m.OrderIndex = ledger.Len()
		if err := ledger.Add(*m); err != nil {
			return err
		}
		return txMilestones.Create(ctx, m)
	})
}

func (s *milestoneService) Update(ctx context.Context, m *domain.Milestone) error {
	if err := m.Validate(); err != nil {
		return err
	}
	m.UpdatedAt = time.Now().UTC()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txMilestones := repository.NewSQLiteMilestoneRepo(tx)

		stored, err := txMilestones.ListByProposal(ctx, m.ProposalID)
		if err != nil {
			return err
		}
		ledger, err := alloc.Load(stored)
		if err != nil {
			return err
		}
		if err := ledger.Update(m.ID, *m); err != nil {
			return err
		}
		return txMilestones.Update(ctx, m)
	})
}

func (s *milestoneService) Remove(ctx context.Context, id string) error {
	m, err := s.milestones.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		// Deletion is idempotent; an absent id is not an error.
		return nil
	}
	if err != nil {
		return err
	}
	p, err := s.proposals.GetByID(ctx, m.ProposalID)
	if err != nil {
		return err
	}
	if p.Status != domain.ProposalDraft {
		return fmt.Errorf("milestones can only be removed from draft proposals (status is %s)", p.Status)
	}
	return s.milestones.Delete(ctx, id)
}

func (s *milestoneService) StartWork(ctx context.Context, id string) error {
	return s.transition(ctx, id, (*domain.Milestone).StartWork)
}

func (s *milestoneService) SubmitForReview(ctx context.Context, id string) error {
	return s.transition(ctx, id, (*domain.Milestone).SubmitForReview)
}

func (s *milestoneService) Approve(ctx context.Context, id string) error {
	return s.transition(ctx, id, (*domain.Milestone).Approve)
}

func (s *milestoneService) SendBack(ctx context.Context, id string) error {
	return s.transition(ctx, id, (*domain.Milestone).SendBack)
}

func (s *milestoneService) ToggleDeliverable(ctx context.Context, milestoneID, deliverableID string) error {
	m, err := s.milestones.GetByID(ctx, milestoneID)
	if err != nil {
		return err
	}
	found := false
	for i := range m.Deliverables {
		if m.Deliverables[i].ID == deliverableID {
			m.Deliverables[i].Completed = !m.Deliverables[i].Completed
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("deliverable %s: %w", deliverableID, repository.ErrNotFound)
	}
	m.UpdatedAt = time.Now().UTC()
	return s.milestones.Update(ctx, m)
}

func (s *milestoneService) transition(ctx context.Context, id string, fn func(*domain.Milestone, time.Time) error) error {
	m, err := s.milestones.GetByID(ctx, id)
	if err != nil {
		return err
	}
	p, err := s.proposals.GetByID(ctx, m.ProposalID)
	if err != nil {
		return err
	}
	if p.Status != domain.ProposalAccepted {
		return fmt.Errorf("milestone progress tracking opens once the proposal is accepted (status is %s)", p.Status)
	}
	if err := fn(m, time.Now().UTC()); err != nil {
		return err
	}
	return s.milestones.Update(ctx, m)
}
