package formatter

import (
	"fmt"
	"strings"

	"github.com/smartject/smartject/internal/alloc"
	"github.com/smartject/smartject/internal/money"
)

// FormatSchedule renders the milestone payment schedule with the running
// allocation bar underneath.
func FormatSchedule(ledger *alloc.Ledger, symbol string) string {
	var b strings.Builder

	b.WriteString(Header("Milestones"))
	b.WriteString("\n")

	if ledger.Len() == 0 {
		b.WriteString(Dim("No milestones yet."))
		b.WriteString("\n")
	} else {
		rows := make([][]string, 0, ledger.Len())
		for i, m := range ledger.Milestones() {
			amount := m.Amount
			if amount == "" {
				amount = Dim("-")
			} else {
				amount = money.FormatWith(symbol, amount)
			}
			done := 0
			for _, d := range m.Deliverables {
				if d.Completed {
					done++
				}
			}
			checklist := Dim("-")
			if len(m.Deliverables) > 0 {
				checklist = fmt.Sprintf("%d/%d", done, len(m.Deliverables))
			}
			rows = append(rows, []string{
				fmt.Sprintf("%d", i+1),
				truncate(m.Name, 32),
				fmt.Sprintf("%d%%", m.Percentage),
				amount,
				fmtDate(m.DueDate),
				checklist,
				MilestoneStatusStyle(m.Status).Render(string(m.Status)),
			})
		}
		b.WriteString(RenderTable([]string{"#", "NAME", "SHARE", "AMOUNT", "DUE", "ITEMS", "STATUS"}, rows))
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s", Dim("Allocated:"), RenderAllocation(ledger.TotalPercentage(), 20)))
	if !ledger.IsComplete() {
		b.WriteString(Dim(fmt.Sprintf("  (%d%% unassigned)", ledger.Remaining())))
	}
	b.WriteString("\n")

	return b.String()
}
