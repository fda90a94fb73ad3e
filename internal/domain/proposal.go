package domain

import (
	"fmt"
	"time"
)

// Proposal is one party's offer against a smartject. Budget is in whole
// currency units; Timeline stays free text and is parsed into a month count
// only when a project span is needed.
type Proposal struct {
	ID          string
	SmartjectID string
	Author      string
	Role        PartyRole
	Title       string
	Description string
	Budget      int64
	Timeline    string
	StartDate   time.Time
	Status      ProposalStatus
	SubmittedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the fields required before a proposal can be persisted.
func (p *Proposal) Validate() error {
	if p.Title == "" {
		return fmt.Errorf("proposal title is required")
	}
	if !ValidPartyRoles[string(p.Role)] {
		return fmt.Errorf("role %q must be one of: needer, provider", p.Role)
	}
	if p.Budget < 0 {
		return fmt.Errorf("budget must not be negative")
	}
	return nil
}

// IsTerminal reports whether the proposal can no longer change.
func (p *Proposal) IsTerminal() bool {
	switch p.Status {
	case ProposalAccepted, ProposalRejected, ProposalWithdrawn:
		return true
	}
	return false
}

// Submit transitions a draft proposal to submitted. Allocation completeness
// is checked by the service layer before this is called.
func (p *Proposal) Submit(now time.Time) error {
	if p.Status != ProposalDraft {
		return fmt.Errorf("only draft proposals can be submitted (status is %s)", p.Status)
	}
	p.Status = ProposalSubmitted
	p.SubmittedAt = &now
	p.UpdatedAt = now
	return nil
}

// Withdraw retracts a proposal that has not reached a terminal state.
func (p *Proposal) Withdraw(now time.Time) error {
	if p.IsTerminal() {
		return fmt.Errorf("proposal is already %s", p.Status)
	}
	p.Status = ProposalWithdrawn
	p.UpdatedAt = now
	return nil
}

// Accept marks a submitted proposal as accepted by the counterparty.
func (p *Proposal) Accept(now time.Time) error {
	if p.Status != ProposalSubmitted {
		return fmt.Errorf("only submitted proposals can be accepted (status is %s)", p.Status)
	}
	p.Status = ProposalAccepted
	p.UpdatedAt = now
	return nil
}

// Reject marks a submitted proposal as rejected by the counterparty.
func (p *Proposal) Reject(now time.Time) error {
	if p.Status != ProposalSubmitted {
		return fmt.Errorf("only submitted proposals can be rejected (status is %s)", p.Status)
	}
	p.Status = ProposalRejected
	p.UpdatedAt = now
	return nil
}

// CounterpartyRole returns the role on the other side of this proposal.
func (p *Proposal) CounterpartyRole() PartyRole {
	if p.Role == RoleNeeder {
		return RoleProvider
	}
	return RoleNeeder
}
