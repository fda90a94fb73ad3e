package formatter

import (
	"fmt"
	"strings"

	"github.com/smartject/smartject/internal/domain"
)

// FormatSmartjectList renders the listing overview table.
func FormatSmartjectList(listings []*domain.Smartject) string {
	rows := make([][]string, 0, len(listings))
	for _, sj := range listings {
		status := string(sj.Status)
		switch sj.Status {
		case domain.SmartjectMatched:
			status = StyleGreen.Render(status)
		case domain.SmartjectArchived:
			status = StyleDim.Render(status)
		}
		rows = append(rows, []string{
			sj.Ref,
			truncate(sj.Title, 40),
			status,
			strings.Join(sj.Tags, ", "),
		})
	}
	return RenderTable([]string{"REF", "TITLE", "STATUS", "TAGS"}, rows)
}

// FormatSmartjectInspect renders one listing with its proposals underneath.
func FormatSmartjectInspect(sj *domain.Smartject, proposals []*domain.Proposal) string {
	var b strings.Builder

	b.WriteString(Header(fmt.Sprintf("%s  %s", sj.Ref, sj.Title)))
	b.WriteString("\n")
	if sj.Mission != "" {
		b.WriteString(sj.Mission)
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Status:"), sj.Status))
	if len(sj.Tags) > 0 {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim("Tags:"), strings.Join(sj.Tags, ", ")))
	}

	if len(proposals) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Proposals"))
		b.WriteString("\n")
		b.WriteString(FormatProposalList(proposals))
	}

	return b.String()
}
