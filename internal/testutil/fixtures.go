package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/smartject/smartject/internal/domain"
)

var testRefCounter atomic.Int64

// Smartject options
type SmartjectOption func(*domain.Smartject)

func WithRef(ref string) SmartjectOption {
	return func(s *domain.Smartject) {
		s.Ref = ref
	}
}

func WithTags(tags ...string) SmartjectOption {
	return func(s *domain.Smartject) {
		s.Tags = tags
	}
}

func WithSmartjectStatus(st domain.SmartjectStatus) SmartjectOption {
	return func(s *domain.Smartject) {
		s.Status = st
	}
}

func NewTestSmartject(title string, opts ...SmartjectOption) *domain.Smartject {
	now := time.Now().UTC()
	s := &domain.Smartject{
		ID:        uuid.New().String(),
		Ref:       fmt.Sprintf("SJ-%03d", testRefCounter.Add(1)),
		Title:     title,
		Mission:   "test mission",
		Status:    domain.SmartjectOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Proposal options
type ProposalOption func(*domain.Proposal)

func WithBudget(b int64) ProposalOption {
	return func(p *domain.Proposal) {
		p.Budget = b
	}
}

func WithTimeline(text string) ProposalOption {
	return func(p *domain.Proposal) {
		p.Timeline = text
	}
}

func WithRole(r domain.PartyRole) ProposalOption {
	return func(p *domain.Proposal) {
		p.Role = r
	}
}

func WithProposalStatus(st domain.ProposalStatus) ProposalOption {
	return func(p *domain.Proposal) {
		p.Status = st
	}
}

func WithStartDate(d time.Time) ProposalOption {
	return func(p *domain.Proposal) {
		p.StartDate = d
	}
}

func NewTestProposal(smartjectID, title string, opts ...ProposalOption) *domain.Proposal {
	now := time.Now().UTC()
	p := &domain.Proposal{
		ID:          uuid.New().String(),
		SmartjectID: smartjectID,
		Author:      "testuser",
		Role:        domain.RoleProvider,
		Title:       title,
		Budget:      10000,
		Timeline:    "3 months",
		StartDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Status:      domain.ProposalDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Milestone options
type MilestoneOption func(*domain.Milestone)

func WithPercentage(pct int) MilestoneOption {
	return func(m *domain.Milestone) {
		m.Percentage = pct
	}
}

func WithDueDate(d time.Time) MilestoneOption {
	return func(m *domain.Milestone) {
		m.DueDate = d
	}
}

func WithAmount(a string) MilestoneOption {
	return func(m *domain.Milestone) {
		m.Amount = a
	}
}

func WithMilestoneStatus(st domain.MilestoneStatus) MilestoneOption {
	return func(m *domain.Milestone) {
		m.Status = st
	}
}

func WithDeliverables(descs ...string) MilestoneOption {
	return func(m *domain.Milestone) {
		for i, d := range descs {
			m.Deliverables = append(m.Deliverables, domain.Deliverable{
				ID:          uuid.New().String(),
				MilestoneID: m.ID,
				Description: d,
				OrderIndex:  i,
			})
		}
	}
}

func NewTestMilestone(proposalID, name string, opts ...MilestoneOption) *domain.Milestone {
	now := time.Now().UTC()
	m := &domain.Milestone{
		ID:         uuid.New().String(),
		ProposalID: proposalID,
		Name:       name,
		Percentage: 25,
		Amount:     "$2,500",
		DueDate:    time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		Status:     domain.MilestonePending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}
