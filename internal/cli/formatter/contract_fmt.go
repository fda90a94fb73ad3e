package formatter

import (
	"fmt"
	"strings"

	"github.com/smartject/smartject/internal/alloc"
	"github.com/smartject/smartject/internal/domain"
	"github.com/smartject/smartject/internal/money"
)

// FormatContractList renders the contract overview table.
func FormatContractList(contracts []*domain.Contract) string {
	rows := make([][]string, 0, len(contracts))
	for _, c := range contracts {
		rows = append(rows, []string{
			shortID(c.ID),
			c.Needer,
			c.Provider,
			money.FormatInt(money.DefaultSymbol, c.Budget),
			fmtDate(c.StartDate),
			fmtDate(c.EndDate),
			ContractStatusStyle(c.Status).Render(string(c.Status)),
		})
	}
	return RenderTable([]string{"ID", "NEEDER", "PROVIDER", "BUDGET", "START", "END", "STATUS"}, rows)
}

// FormatContractInspect renders one contract with signature state and the
// milestone schedule it governs.
func FormatContractInspect(c *domain.Contract, ledger *alloc.Ledger, symbol string) string {
	var b strings.Builder

	b.WriteString(Header("Contract " + shortID(c.ID)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s  %s %s\n", Dim("Needer:"), c.Needer, Dim("Provider:"), c.Provider))
	b.WriteString(fmt.Sprintf("%s %s  %s %s → %s\n",
		Dim("Budget:"), money.FormatInt(symbol, c.Budget),
		Dim("Term:"), fmtDate(c.StartDate), fmtDate(c.EndDate)))
	b.WriteString(fmt.Sprintf("%s %s\n",
		Dim("Status:"), ContractStatusStyle(c.Status).Render(string(c.Status))))
	b.WriteString(fmt.Sprintf("%s needer %s, provider %s\n",
		Dim("Signatures:"), signature(c.NeederSignedAt != nil), signature(c.ProviderSignedAt != nil)))

	b.WriteString("\n")
	b.WriteString(FormatSchedule(ledger, symbol))

	return b.String()
}

func signature(signed bool) string {
	if signed {
		return StyleGreen.Render("✓ signed")
	}
	return StyleYellow.Render("pending")
}
