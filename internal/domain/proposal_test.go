package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func draftProposal() *Proposal {
	return &Proposal{
		Title:  "Provider offer",
		Role:   RoleProvider,
		Budget: 24000,
		Status: ProposalDraft,
	}
}

func TestProposalLifecycle(t *testing.T) {
	p := draftProposal()
	require.NoError(t, p.Submit(testNow))
	assert.Equal(t, ProposalSubmitted, p.Status)
	require.NotNil(t, p.SubmittedAt)
	assert.Equal(t, testNow, *p.SubmittedAt)

	require.NoError(t, p.Accept(testNow))
	assert.Equal(t, ProposalAccepted, p.Status)
	assert.True(t, p.IsTerminal())
}

func TestProposalSubmit_NotDraft(t *testing.T) {
	p := draftProposal()
	p.Status = ProposalSubmitted
	err := p.Submit(testNow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "draft")
}

func TestProposalWithdraw_Terminal(t *testing.T) {
	p := draftProposal()
	p.Status = ProposalRejected
	err := p.Withdraw(testNow)
	require.Error(t, err)
	assert.Equal(t, ProposalRejected, p.Status, "status should not change")
}

func TestProposalValidate(t *testing.T) {
	p := draftProposal()
	require.NoError(t, p.Validate())

	p.Role = PartyRole("observer")
	assert.Error(t, p.Validate())

	p = draftProposal()
	p.Budget = -1
	assert.Error(t, p.Validate())
}

func TestCounterpartyRole(t *testing.T) {
	p := &Proposal{Role: RoleNeeder}
	assert.Equal(t, RoleProvider, p.CounterpartyRole())
	p.Role = RoleProvider
	assert.Equal(t, RoleNeeder, p.CounterpartyRole())
}

func TestContractSigning(t *testing.T) {
	c := &Contract{
		Needer:   "acme",
		Provider: "buildco",
		Status:   ContractPendingSignatures,
	}

	require.NoError(t, c.Sign(RoleNeeder, testNow))
	assert.Equal(t, ContractPendingSignatures, c.Status, "one signature is not enough")

	err := c.Sign(RoleNeeder, testNow.Add(time.Hour))
	require.Error(t, err, "double signing should fail")

	require.NoError(t, c.Sign(RoleProvider, testNow.Add(time.Hour)))
	assert.Equal(t, ContractActive, c.Status)
	require.NotNil(t, c.ProviderSignedAt)
}

func TestContractComplete_OnlyActive(t *testing.T) {
	c := &Contract{Status: ContractPendingSignatures}
	require.Error(t, c.Complete(testNow))

	c.Status = ContractActive
	require.NoError(t, c.Complete(testNow))
	assert.Equal(t, ContractCompleted, c.Status)
}
