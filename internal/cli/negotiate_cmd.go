package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smartject/smartject/internal/cli/formatter"
	"github.com/smartject/smartject/internal/domain"
)

func newNegotiateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "negotiate",
		Short: "Discuss and counter-offer on submitted proposals",
	}

	cmd.AddCommand(
		newNegotiateCommentCmd(app),
		newNegotiateCounterCmd(app),
		newNegotiateThreadCmd(app),
		newNegotiateAcceptCmd(app),
	)

	return cmd
}

func newNegotiateCommentCmd(app *App) *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "comment PROPOSAL MESSAGE",
		Short: "Post a comment on a proposal's thread",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			proposalID, err := resolveProposalID(ctx, app, args[0])
			if err != nil {
				return err
			}
			m := &domain.NegotiationMessage{
				ProposalID: proposalID,
				Sender:     app.Actor,
				SenderRole: domain.PartyRole(role),
				Kind:       domain.MessageComment,
				Content:    args[1],
			}
			if err := app.Negotiation.Post(ctx, m); err != nil {
				return err
			}
			fmt.Printf("Posted comment %s\n", m.ID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&role, "as", "needer", "Your role in this thread (needer|provider)")

	return cmd
}

func newNegotiateCounterCmd(app *App) *cobra.Command {
	var role, timeline, message string
	var budget int64

	cmd := &cobra.Command{
		Use:   "counter PROPOSAL",
		Short: "Post a counter-offer with revised terms",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			proposalID, err := resolveProposalID(ctx, app, args[0])
			if err != nil {
				return err
			}
			m := &domain.NegotiationMessage{
				ProposalID: proposalID,
				Sender:     app.Actor,
				SenderRole: domain.PartyRole(role),
				Kind:       domain.MessageCounterOffer,
				Content:    message,
			}
			if cmd.Flags().Changed("budget") {
				m.CounterBudget = &budget
			}
			if cmd.Flags().Changed("timeline") {
				m.CounterTimeline = &timeline
			}
			if err := app.Negotiation.Post(ctx, m); err != nil {
				return err
			}
			fmt.Printf("Posted counter-offer %s\n", m.ID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&role, "as", "needer", "Your role in this thread (needer|provider)")
	cmd.Flags().Int64Var(&budget, "budget", 0, "Proposed budget")
	cmd.Flags().StringVar(&timeline, "timeline", "", "Proposed timeline text")
	cmd.Flags().StringVar(&message, "message", "", "Optional note")

	return cmd
}

func newNegotiateThreadCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "thread PROPOSAL",
		Short: "Show a proposal's negotiation thread",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			proposalID, err := resolveProposalID(ctx, app, args[0])
			if err != nil {
				return err
			}
			thread, err := app.Negotiation.Thread(ctx, proposalID)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatThread(thread, app.Symbol))
			return nil
		},
	}
}

func newNegotiateAcceptCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "accept PROPOSAL MESSAGE",
		Short: "Accept a counter-offer, applying its terms to the proposal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			proposalID, err := resolveProposalID(ctx, app, args[0])
			if err != nil {
				return err
			}
			messageID, err := resolveMessageID(ctx, app, proposalID, args[1])
			if err != nil {
				return err
			}
			if err := app.Negotiation.AcceptCounter(ctx, proposalID, messageID); err != nil {
				return err
			}
			fmt.Println("Applied counter-offer terms. If the budget changed, rework the schedule and resubmit.")
			return nil
		},
	}
}

// resolveMessageID resolves a full UUID or prefix within one thread.
func resolveMessageID(ctx context.Context, app *App, proposalID, input string) (string, error) {
	thread, err := app.Negotiation.Thread(ctx, proposalID)
	if err != nil {
		return "", err
	}
	var matches []string
	for _, m := range thread {
		if m.ID == input {
			return m.ID, nil
		}
		if len(input) > 0 && len(m.ID) >= len(input) && m.ID[:len(input)] == input {
			matches = append(matches, m.ID)
		}
	}
	return onePrefixMatch("message", input, matches)
}
