package domain

import (
	"fmt"
	"strings"
	"time"
)

// NegotiationMessage is one entry in the message thread attached to a
// submitted proposal. Counter-offers carry replacement budget and/or
// timeline terms; plain comments carry neither.
type NegotiationMessage struct {
	ID              string
	ProposalID      string
	Sender          string
	SenderRole      PartyRole
	Kind            MessageKind
	Content         string
	CounterBudget   *int64
	CounterTimeline *string
	CreatedAt       time.Time
}

// Validate checks message shape against its kind.
func (m *NegotiationMessage) Validate() error {
	if strings.TrimSpace(m.Content) == "" && m.Kind == MessageComment {
		return fmt.Errorf("message content is required")
	}
	if m.Kind == MessageCounterOffer && m.CounterBudget == nil && m.CounterTimeline == nil {
		return fmt.Errorf("counter-offer must change the budget or the timeline")
	}
	if !ValidPartyRoles[string(m.SenderRole)] {
		return fmt.Errorf("sender role %q must be one of: needer, provider", m.SenderRole)
	}
	return nil
}
