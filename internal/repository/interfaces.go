package repository

import (
	"context"

	"github.com/smartject/smartject/internal/domain"
)

type SmartjectRepo interface {
	Create(ctx context.Context, s *domain.Smartject) error
	GetByID(ctx context.Context, id string) (*domain.Smartject, error)
	GetByRef(ctx context.Context, ref string) (*domain.Smartject, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Smartject, error)
	Update(ctx context.Context, s *domain.Smartject) error
	Archive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type ProposalRepo interface {
	Create(ctx context.Context, p *domain.Proposal) error
	GetByID(ctx context.Context, id string) (*domain.Proposal, error)
	ListBySmartject(ctx context.Context, smartjectID string) ([]*domain.Proposal, error)
	List(ctx context.Context, statuses ...domain.ProposalStatus) ([]*domain.Proposal, error)
	Update(ctx context.Context, p *domain.Proposal) error
	Delete(ctx context.Context, id string) error
}

// MilestoneRepo owns deliverable rows as well: milestones are always loaded
// and stored together with their checklist.
type MilestoneRepo interface {
	Create(ctx context.Context, m *domain.Milestone) error
	GetByID(ctx context.Context, id string) (*domain.Milestone, error)
	ListByProposal(ctx context.Context, proposalID string) ([]domain.Milestone, error)
	Update(ctx context.Context, m *domain.Milestone) error
	Delete(ctx context.Context, id string) error
}

type ContractRepo interface {
	Create(ctx context.Context, c *domain.Contract) error
	GetByID(ctx context.Context, id string) (*domain.Contract, error)
	GetByProposal(ctx context.Context, proposalID string) (*domain.Contract, error)
	List(ctx context.Context) ([]*domain.Contract, error)
	Update(ctx context.Context, c *domain.Contract) error
}

type NegotiationRepo interface {
	Create(ctx context.Context, m *domain.NegotiationMessage) error
	ListByProposal(ctx context.Context, proposalID string) ([]*domain.NegotiationMessage, error)
}
