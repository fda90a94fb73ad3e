package formatter

import (
	"fmt"
	"strings"

	"github.com/smartject/smartject/internal/domain"
	"github.com/smartject/smartject/internal/money"
)

// FormatThread renders a negotiation thread oldest-first.
func FormatThread(messages []*domain.NegotiationMessage, symbol string) string {
	if len(messages) == 0 {
		return Dim("No messages yet.")
	}

	var b strings.Builder
	for i, m := range messages {
		if i > 0 {
			b.WriteString("\n")
		}
		sender := StyleBlue.Render(m.Sender)
		if m.SenderRole == domain.RoleProvider {
			sender = StylePurple.Render(m.Sender)
		}
		b.WriteString(fmt.Sprintf("%s %s (%s) %s\n",
			Dim(m.CreatedAt.Format("2006-01-02 15:04")),
			sender, m.SenderRole,
			Dim("["+shortID(m.ID)+"]")))

		if m.Kind == domain.MessageCounterOffer {
			var terms []string
			if m.CounterBudget != nil {
				terms = append(terms, "budget "+money.FormatInt(symbol, *m.CounterBudget))
			}
			if m.CounterTimeline != nil {
				terms = append(terms, "timeline "+*m.CounterTimeline)
			}
			b.WriteString(StyleYellow.Render("  ↪ counter-offer: " + strings.Join(terms, ", ")))
			b.WriteString("\n")
		}
		if m.Content != "" {
			b.WriteString("  " + m.Content + "\n")
		}
	}
	return b.String()
}
