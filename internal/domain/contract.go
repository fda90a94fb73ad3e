package domain

import (
	"fmt"
	"time"
)

// Contract is the signed agreement derived from an accepted proposal. The
// milestone schedule is frozen onto the contract's proposal at acceptance
// time; both parties must sign before work begins.
type Contract struct {
	ID               string
	ProposalID       string
	SmartjectID      string
	Needer           string
	Provider         string
	Budget           int64
	StartDate        time.Time
	EndDate          time.Time
	Status           ContractStatus
	NeederSignedAt   *time.Time
	ProviderSignedAt *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Sign records the given party's signature. Once both parties have signed
// the contract becomes active.
func (c *Contract) Sign(role PartyRole, now time.Time) error {
	if c.Status != ContractPendingSignatures {
		return fmt.Errorf("contract is not awaiting signatures (status is %s)", c.Status)
	}
	switch role {
	case RoleNeeder:
		if c.NeederSignedAt != nil {
			return fmt.Errorf("needer has already signed")
		}
		c.NeederSignedAt = &now
	case RoleProvider:
		if c.ProviderSignedAt != nil {
			return fmt.Errorf("provider has already signed")
		}
		c.ProviderSignedAt = &now
	default:
		return fmt.Errorf("unknown signing role %q", role)
	}
	if c.NeederSignedAt != nil && c.ProviderSignedAt != nil {
		c.Status = ContractActive
	}
	c.UpdatedAt = now
	return nil
}

// Complete closes an active contract once every milestone is approved.
// The milestone check lives in the service layer, which owns the schedule.
func (c *Contract) Complete(now time.Time) error {
	if c.Status != ContractActive {
		return fmt.Errorf("only active contracts can be completed (status is %s)", c.Status)
	}
	c.Status = ContractCompleted
	c.UpdatedAt = now
	return nil
}

// Cancel aborts a contract that has not completed.
func (c *Contract) Cancel(now time.Time) error {
	if c.Status == ContractCompleted || c.Status == ContractCancelled {
		return fmt.Errorf("contract is already %s", c.Status)
	}
	c.Status = ContractCancelled
	c.UpdatedAt = now
	return nil
}

// PartyFor returns the name of the party holding the given role.
func (c *Contract) PartyFor(role PartyRole) string {
	if role == RoleNeeder {
		return c.Needer
	}
	return c.Provider
}
