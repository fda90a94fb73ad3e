package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/smartject/smartject/internal/alloc"
	"github.com/smartject/smartject/internal/db"
	"github.com/smartject/smartject/internal/domain"
	"github.com/smartject/smartject/internal/repository"
	"github.com/smartject/smartject/internal/timeline"
)

type proposalService struct {
	proposals     repository.ProposalRepo
	smartjects    repository.SmartjectRepo
	uow           db.UnitOfWork
	defaultMonths float64
}

func NewProposalService(proposals repository.ProposalRepo, smartjects repository.SmartjectRepo, uow db.UnitOfWork, defaultMonths float64) ProposalService {
	if defaultMonths <= 0 {
		defaultMonths = timeline.DefaultMonths
	}
	return &proposalService{
		proposals:     proposals,
		smartjects:    smartjects,
		uow:           uow,
		defaultMonths: defaultMonths,
	}
}

func (s *proposalService) CreateDraft(ctx context.Context, p *domain.Proposal) error {
	if err := p.Validate(); err != nil {
		return err
	}
	// The listing must exist and still be open to offers.
	sj, err := s.smartjects.GetByID(ctx, p.SmartjectID)
	if err != nil {
		return err
	}
	if sj.Status != domain.SmartjectOpen {
		return fmt.Errorf("listing %s is %s and not accepting proposals", sj.DisplayID(), sj.Status)
	}

	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Status == "" {
		p.Status = domain.ProposalDraft
	}
	if p.StartDate.IsZero() {
		p.StartDate = now.Truncate(24 * time.Hour)
	}
	return s.proposals.Create(ctx, p)
}

func (s *proposalService) GetByID(ctx context.Context, id string) (*domain.Proposal, error) {
	return s.proposals.GetByID(ctx, id)
}

func (s *proposalService) List(ctx context.Context, statuses ...domain.ProposalStatus) ([]*domain.Proposal, error) {
	return s.proposals.List(ctx, statuses...)
}

func (s *proposalService) ListBySmartject(ctx context.Context, smartjectID string) ([]*domain.Proposal, error) {
	return s.proposals.ListBySmartject(ctx, smartjectID)
}

func (s *proposalService) Update(ctx context.Context, p *domain.Proposal) error {
	if err := p.Validate(); err != nil {
		return err
	}
	p.UpdatedAt = time.Now().UTC()
	return s.proposals.Update(ctx, p)
}

// Submit gates on the two invariants the schedule editor cannot guarantee on
// its own: the stored allocation must total exactly 100%, and the timeline
// must resolve to a span the due dates were interpolated over.
func (s *proposalService) Submit(ctx context.Context, id string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProposals := repository.NewSQLiteProposalRepo(tx)
		txMilestones := repository.NewSQLiteMilestoneRepo(tx)

		p, err := txProposals.GetByID(ctx, id)
		if err != nil {
			return err
		}

		end := timeline.Span(p.StartDate, p.Timeline, s.defaultMonths)
		if !end.After(p.StartDate) {
			return fmt.Errorf("proposal timeline %q resolves to an empty span", p.Timeline)
		}

		stored, err := txMilestones.ListByProposal(ctx, p.ID)
		if err != nil {
			return err
		}
		ledger, err := alloc.Load(stored)
		if err != nil {
			return err
		}
		if !ledger.IsComplete() {
			return fmt.Errorf("milestone schedule allocates %d%%; submission requires exactly 100%%",
				ledger.TotalPercentage())
		}

		if err := p.Submit(time.Now().UTC()); err != nil {
			return err
		}
		return txProposals.Update(ctx, p)
	})
}

func (s *proposalService) Withdraw(ctx context.Context, id string) error {
	p, err := s.proposals.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := p.Withdraw(time.Now().UTC()); err != nil {
		return err
	}
	return s.proposals.Update(ctx, p)
}

func (s *proposalService) Delete(ctx context.Context, id string, force bool) error {
	if !force {
		p, err := s.proposals.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p.Status != domain.ProposalDraft && p.Status != domain.ProposalWithdrawn {
			return fmt.Errorf("only draft or withdrawn proposals can be deleted (use --force to override)")
		}
	}
	return s.proposals.Delete(ctx, id)
}
