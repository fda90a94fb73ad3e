package formatter

import (
	"fmt"
	"strings"

	"github.com/smartject/smartject/internal/alloc"
	"github.com/smartject/smartject/internal/domain"
	"github.com/smartject/smartject/internal/money"
)

// FormatProposalList renders the proposal overview table.
func FormatProposalList(proposals []*domain.Proposal) string {
	rows := make([][]string, 0, len(proposals))
	for _, p := range proposals {
		rows = append(rows, []string{
			shortID(p.ID),
			truncate(p.Title, 36),
			string(p.Role),
			money.FormatInt(money.DefaultSymbol, p.Budget),
			p.Timeline,
			ProposalStatusStyle(p.Status).Render(string(p.Status)),
		})
	}
	return RenderTable([]string{"ID", "TITLE", "ROLE", "BUDGET", "TIMELINE", "STATUS"}, rows)
}

// FormatProposalInspect renders one proposal with its milestone schedule.
func FormatProposalInspect(p *domain.Proposal, ledger *alloc.Ledger, symbol string) string {
	var b strings.Builder

	b.WriteString(Header(p.Title))
	b.WriteString("\n")
	if p.Description != "" {
		b.WriteString(p.Description)
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf("%s %s  %s %s (%s)\n",
		Dim("ID:"), shortID(p.ID), Dim("Author:"), p.Author, p.Role))
	b.WriteString(fmt.Sprintf("%s %s  %s %s  %s %s\n",
		Dim("Budget:"), money.FormatInt(symbol, p.Budget),
		Dim("Timeline:"), p.Timeline,
		Dim("Start:"), fmtDate(p.StartDate)))
	b.WriteString(fmt.Sprintf("%s %s\n",
		Dim("Status:"), ProposalStatusStyle(p.Status).Render(string(p.Status))))

	b.WriteString("\n")
	b.WriteString(FormatSchedule(ledger, symbol))

	return b.String()
}

// shortID abbreviates a UUID to its first segment for display.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
