package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/smartject/smartject/internal/domain"
)

// resolveSmartjectID resolves user input to a listing's full UUID. Input may
// be the SJ-xxx reference (case-insensitive), the full UUID, or a UUID
// prefix.
func resolveSmartjectID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("listing ID is required")
	}

	listings, err := app.Smartjects.List(ctx, true)
	if err != nil {
		return "", err
	}

	for _, sj := range listings {
		if strings.EqualFold(sj.Ref, input) {
			return sj.ID, nil
		}
	}
	for _, sj := range listings {
		if sj.ID == input {
			return sj.ID, nil
		}
	}

	var matches []string
	for _, sj := range listings {
		if strings.HasPrefix(sj.ID, input) {
			matches = append(matches, sj.ID)
		}
	}
	return onePrefixMatch("listing", input, matches)
}

// resolveProposalID resolves a full UUID or UUID prefix to a proposal ID.
func resolveProposalID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("proposal ID is required")
	}

	proposals, err := app.Proposals.List(ctx)
	if err != nil {
		return "", err
	}

	for _, p := range proposals {
		if p.ID == input {
			return p.ID, nil
		}
	}

	var matches []string
	for _, p := range proposals {
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p.ID)
		}
	}
	return onePrefixMatch("proposal", input, matches)
}

// resolveContractID resolves a full UUID or UUID prefix to a contract ID.
func resolveContractID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("contract ID is required")
	}

	contracts, err := app.Contracts.List(ctx)
	if err != nil {
		return "", err
	}

	for _, c := range contracts {
		if c.ID == input {
			return c.ID, nil
		}
	}

	var matches []string
	for _, c := range contracts {
		if strings.HasPrefix(c.ID, input) {
			matches = append(matches, c.ID)
		}
	}
	return onePrefixMatch("contract", input, matches)
}

// resolveMilestoneID resolves input to a milestone within the given
// proposal's schedule: a 1-based position, a full UUID, or a UUID prefix.
func resolveMilestoneID(ctx context.Context, app *App, proposalID, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("milestone is required")
	}

	ledger, err := app.Milestones.Schedule(ctx, proposalID)
	if err != nil {
		return "", err
	}
	items := ledger.Milestones()

	if n, ok := parseIndex(input); ok {
		if n < 1 || n > len(items) {
			return "", fmt.Errorf("milestone position %d out of range (schedule has %d)", n, len(items))
		}
		return items[n-1].ID, nil
	}

	var matches []string
	for _, m := range items {
		if m.ID == input {
			return m.ID, nil
		}
		if strings.HasPrefix(m.ID, input) {
			matches = append(matches, m.ID)
		}
	}
	return onePrefixMatch("milestone", input, matches)
}

func onePrefixMatch(kind, input string, matches []string) (string, error) {
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s not found: %q", kind, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s ID prefix %q is ambiguous (%d matches)", kind, input, len(matches))
	}
}

func parseIndex(s string) (int, bool) {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	if s == "" {
		return 0, false
	}
	return n, true
}

func statusList(statuses ...domain.ProposalStatus) string {
	parts := make([]string, len(statuses))
	for i, s := range statuses {
		parts[i] = string(s)
	}
	return strings.Join(parts, "|")
}
