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

type contractService struct {
	contracts     repository.ContractRepo
	proposals     repository.ProposalRepo
	smartjects    repository.SmartjectRepo
	milestones    repository.MilestoneRepo
	uow           db.UnitOfWork
	defaultMonths float64
}

func NewContractService(contracts repository.ContractRepo, proposals repository.ProposalRepo, smartjects repository.SmartjectRepo, milestones repository.MilestoneRepo, uow db.UnitOfWork, defaultMonths float64) ContractService {
	if defaultMonths <= 0 {
		defaultMonths = timeline.DefaultMonths
	}
	return &contractService{
		contracts:     contracts,
		proposals:     proposals,
		smartjects:    smartjects,
		milestones:    milestones,
		uow:           uow,
		defaultMonths: defaultMonths,
	}
}

// AcceptProposal runs the acceptance handshake in one transaction: the
// proposal flips to accepted, the listing to matched, and the contract is
// created awaiting both signatures. The milestone schedule stays attached
// to the proposal and must still total 100%.
func (s *contractService) AcceptProposal(ctx context.Context, proposalID string) (*domain.Contract, error) {
	var contract *domain.Contract
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProposals := repository.NewSQLiteProposalRepo(tx)
		txSmartjects := repository.NewSQLiteSmartjectRepo(tx)
		txMilestones := repository.NewSQLiteMilestoneRepo(tx)
		txContracts := repository.NewSQLiteContractRepo(tx)

		p, err := txProposals.GetByID(ctx, proposalID)
		if err != nil {
			return err
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
			return fmt.Errorf("cannot accept: milestone schedule allocates %d%% of the budget",
				ledger.TotalPercentage())
		}

		now := time.Now().UTC()
		if err := p.Accept(now); err != nil {
			return err
		}
		if err := txProposals.Update(ctx, p); err != nil {
			return err
		}

		sj, err := txSmartjects.GetByID(ctx, p.SmartjectID)
		if err != nil {
			return err
		}
		sj.Status = domain.SmartjectMatched
		sj.UpdatedAt = now
		if err := txSmartjects.Update(ctx, sj); err != nil {
			return err
		}

		needer, provider := counterparties(p)
		contract = &domain.Contract{
			ID:          uuid.New().String(),
			ProposalID:  p.ID,
			SmartjectID: p.SmartjectID,
			Needer:      needer,
			Provider:    provider,
			Budget:      p.Budget,
			StartDate:   p.StartDate,
			EndDate:     timeline.Span(p.StartDate, p.Timeline, s.defaultMonths),
			Status:      domain.ContractPendingSignatures,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		return txContracts.Create(ctx, contract)
	})
	if err != nil {
		return nil, err
	}
	return contract, nil
}

func (s *contractService) RejectProposal(ctx context.Context, proposalID string) error {
	p, err := s.proposals.GetByID(ctx, proposalID)
	if err != nil {
		return err
	}
	if err := p.Reject(time.Now().UTC()); err != nil {
		return err
	}
	return s.proposals.Update(ctx, p)
}

func (s *contractService) GetByID(ctx context.Context, id string) (*domain.Contract, error) {
	return s.contracts.GetByID(ctx, id)
}

func (s *contractService) List(ctx context.Context) ([]*domain.Contract, error) {
	return s.contracts.List(ctx)
}

func (s *contractService) Sign(ctx context.Context, id string, role domain.PartyRole) error {
	c, err := s.contracts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := c.Sign(role, time.Now().UTC()); err != nil {
		return err
	}
	return s.contracts.Update(ctx, c)
}

func (s *contractService) Complete(ctx context.Context, id string) error {
	c, err := s.contracts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	stored, err := s.milestones.ListByProposal(ctx, c.ProposalID)
	if err != nil {
		return err
	}
	for _, m := range stored {
		if m.Status != domain.MilestoneApproved {
			return fmt.Errorf("milestone %q is %s; all milestones must be approved first", m.Name, m.Status)
		}
	}
	if err := c.Complete(time.Now().UTC()); err != nil {
		return err
	}
	return s.contracts.Update(ctx, c)
}

func (s *contractService) Cancel(ctx context.Context, id string) error {
	c, err := s.contracts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := c.Cancel(time.Now().UTC()); err != nil {
		return err
	}
	return s.contracts.Update(ctx, c)
}

// counterparties maps the proposal author onto the needer/provider pair.
// The other side is recorded as the listing's counterparty placeholder
// until a real account system exists.
func counterparties(p *domain.Proposal) (needer, provider string) {
	if p.Role == domain.RoleNeeder {
		return p.Author, "counterparty"
	}
	return "counterparty", p.Author
}
