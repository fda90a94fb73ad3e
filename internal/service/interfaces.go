package service

import (
	"context"

	"github.com/smartject/smartject/internal/alloc"
	"github.com/smartject/smartject/internal/domain"
	"github.com/smartject/smartject/internal/editor"
)

type SmartjectService interface {
	Create(ctx context.Context, s *domain.Smartject) error
	GetByID(ctx context.Context, id string) (*domain.Smartject, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Smartject, error)
	Update(ctx context.Context, s *domain.Smartject) error
	Archive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string, force bool) error
}

type ProposalService interface {
	CreateDraft(ctx context.Context, p *domain.Proposal) error
	GetByID(ctx context.Context, id string) (*domain.Proposal, error)
	List(ctx context.Context, statuses ...domain.ProposalStatus) ([]*domain.Proposal, error)
	ListBySmartject(ctx context.Context, smartjectID string) ([]*domain.Proposal, error)
	Update(ctx context.Context, p *domain.Proposal) error
	// Submit moves a draft to submitted. It fails unless the milestone
	// schedule allocates exactly 100% and the timeline resolves to a
	// positive span.
	Submit(ctx context.Context, id string) error
	Withdraw(ctx context.Context, id string) error
	Delete(ctx context.Context, id string, force bool) error
}

type MilestoneService interface {
	// Schedule loads the proposal's committed milestone schedule.
	Schedule(ctx context.Context, proposalID string) (*alloc.Ledger, error)
	// EditorSession builds an editor session over the proposal's schedule,
	// with due-date suggestions spanning the proposal timeline.
	EditorSession(ctx context.Context, proposalID string) (*editor.Session, error)
	// Add and Update re-check the allocation ceiling against the stored
	// schedule inside a transaction before persisting.
	Add(ctx context.Context, proposalID string, m *domain.Milestone) error
	Update(ctx context.Context, m *domain.Milestone) error
	// Remove deletes a milestone from a draft proposal's schedule; removing
	// an absent id is a no-op. Once the proposal leaves draft the schedule is
	// frozen and removal is refused.
	Remove(ctx context.Context, id string) error

	// Review flow on an accepted proposal's schedule; transitions are
	// refused while the proposal is still in negotiation.
	StartWork(ctx context.Context, id string) error
	SubmitForReview(ctx context.Context, id string) error
	Approve(ctx context.Context, id string) error
	SendBack(ctx context.Context, id string) error
	ToggleDeliverable(ctx context.Context, milestoneID, deliverableID string) error
}

type ContractService interface {
	// AcceptProposal accepts a submitted proposal and creates the contract
	// awaiting both signatures; the smartject is marked matched.
	AcceptProposal(ctx context.Context, proposalID string) (*domain.Contract, error)
	RejectProposal(ctx context.Context, proposalID string) error
	GetByID(ctx context.Context, id string) (*domain.Contract, error)
	List(ctx context.Context) ([]*domain.Contract, error)
	Sign(ctx context.Context, id string, role domain.PartyRole) error
	// Complete closes an active contract once every milestone is approved.
	Complete(ctx context.Context, id string) error
	Cancel(ctx context.Context, id string) error
}

type NegotiationService interface {
	Post(ctx context.Context, m *domain.NegotiationMessage) error
	Thread(ctx context.Context, proposalID string) ([]*domain.NegotiationMessage, error)
	// AcceptCounter applies a counter-offer's budget/timeline terms to the
	// proposal, returning it to draft for schedule rework when the budget
	// changed.
	AcceptCounter(ctx context.Context, proposalID, messageID string) error
}
