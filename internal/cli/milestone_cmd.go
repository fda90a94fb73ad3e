package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/smartject/smartject/internal/cli/formatter"
	"github.com/smartject/smartject/internal/editor"
)

func newMilestoneCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "milestone",
		Short: "Manage a proposal's milestone payment schedule",
	}

	cmd.AddCommand(
		newMilestoneScheduleCmd(app),
		newMilestoneBoardCmd(app),
		newMilestoneEditCmd(app),
		newMilestoneAddCmd(app),
		newMilestoneUpdateCmd(app),
		newMilestoneRemoveCmd(app),
		newMilestoneStartCmd(app),
		newMilestoneReviewCmd(app),
		newMilestoneApproveCmd(app),
		newMilestoneSendBackCmd(app),
		newMilestoneCheckCmd(app),
	)

	return cmd
}

func newMilestoneScheduleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "schedule PROPOSAL",
		Short: "Show a proposal's milestone schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			proposalID, err := resolveProposalID(ctx, app, args[0])
			if err != nil {
				return err
			}
			ledger, err := app.Milestones.Schedule(ctx, proposalID)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatSchedule(ledger, app.Symbol))
			return nil
		},
	}
}

func newMilestoneBoardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "board PROPOSAL",
		Short: "Browse the schedule in an interactive view",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isatty.IsTerminal(os.Stdout.Fd()) {
				return fmt.Errorf("the board requires an interactive terminal; use `milestone schedule` instead")
			}
			ctx := context.Background()
			proposalID, err := resolveProposalID(ctx, app, args[0])
			if err != nil {
				return err
			}
			return runBoard(app, proposalID)
		},
	}
}

func newMilestoneEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit PROPOSAL",
		Short: "Edit the schedule interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isatty.IsTerminal(os.Stdout.Fd()) {
				return fmt.Errorf("interactive editing requires a terminal; use `milestone add`/`update` flags instead")
			}
			ctx := context.Background()
			proposalID, err := resolveProposalID(ctx, app, args[0])
			if err != nil {
				return err
			}
			return runMilestoneWizard(ctx, app, proposalID)
		},
	}
}

// applyMilestoneFlags pushes flag values into the editor session in the
// order the interactive form would: percentage first so that an explicit
// due date or amount flag overrides its suggestion.
func applyMilestoneFlags(cmd *cobra.Command, s *editor.Session, name, description string, percent int, due, amount string, deliverables []string) error {
	if cmd.Flags().Changed("name") {
		s.SetName(name)
	}
	if cmd.Flags().Changed("description") {
		s.SetDescription(description)
	}
	if cmd.Flags().Changed("percent") {
		s.SetPercentage(percent)
	}
	if cmd.Flags().Changed("due") {
		dueDate, err := time.Parse("2006-01-02", due)
		if err != nil {
			return fmt.Errorf("invalid due date %q: %w", due, err)
		}
		s.SetDueDate(dueDate)
	}
	if cmd.Flags().Changed("amount") {
		s.SetAmount(amount)
	}
	for _, d := range deliverables {
		s.AddDeliverable(d)
	}
	return nil
}

func newMilestoneAddCmd(app *App) *cobra.Command {
	var name, description, due, amount string
	var percent int
	var deliverables []string

	cmd := &cobra.Command{
		Use:   "add PROPOSAL",
		Short: "Add a milestone to a draft proposal's schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			proposalID, err := resolveProposalID(ctx, app, args[0])
			if err != nil {
				return err
			}
			session, err := app.Milestones.EditorSession(ctx, proposalID)
			if err != nil {
				return err
			}
			if err := applyMilestoneFlags(cmd, session, name, description, percent, due, amount, deliverables); err != nil {
				return err
			}
			m, err := session.Commit()
			if err != nil {
				return err
			}
			if err := app.Milestones.Add(ctx, proposalID, &m); err != nil {
				return err
			}
			fmt.Printf("Added milestone %s (%d%%, due %s)\n", m.Name, m.Percentage, m.DueDate.Format("2006-01-02"))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Milestone name")
	cmd.Flags().StringVar(&description, "description", "", "Milestone description")
	cmd.Flags().IntVar(&percent, "percent", 0, "Share of the budget (1-100)")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD, default interpolated from the timeline)")
	cmd.Flags().StringVar(&amount, "amount", "", "Payment amount (default derived from the budget)")
	cmd.Flags().StringArrayVar(&deliverables, "deliverable", nil, "Deliverable description (repeatable)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("percent")

	return cmd
}

func newMilestoneUpdateCmd(app *App) *cobra.Command {
	var name, description, due, amount string
	var percent int
	var deliverables []string

	cmd := &cobra.Command{
		Use:   "update PROPOSAL MILESTONE",
		Short: "Update a milestone in a draft proposal's schedule",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			proposalID, err := resolveProposalID(ctx, app, args[0])
			if err != nil {
				return err
			}
			milestoneID, err := resolveMilestoneID(ctx, app, proposalID, args[1])
			if err != nil {
				return err
			}
			session, err := app.Milestones.EditorSession(ctx, proposalID)
			if err != nil {
				return err
			}
			if err := session.BeginEdit(milestoneID); err != nil {
				return err
			}
			if err := applyMilestoneFlags(cmd, session, name, description, percent, due, amount, deliverables); err != nil {
				return err
			}
			m, err := session.Commit()
			if err != nil {
				return err
			}
			m.ProposalID = proposalID
			if err := app.Milestones.Update(ctx, &m); err != nil {
				return err
			}
			fmt.Printf("Updated milestone %s (%d%%)\n", m.Name, m.Percentage)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Milestone name")
	cmd.Flags().StringVar(&description, "description", "", "Milestone description")
	cmd.Flags().IntVar(&percent, "percent", 0, "Share of the budget (1-100)")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&amount, "amount", "", "Payment amount")
	cmd.Flags().StringArrayVar(&deliverables, "deliverable", nil, "Additional deliverable (repeatable)")

	return cmd
}

func newMilestoneRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove PROPOSAL MILESTONE",
		Short: "Remove a milestone from the schedule",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			proposalID, err := resolveProposalID(ctx, app, args[0])
			if err != nil {
				return err
			}
			milestoneID, err := resolveMilestoneID(ctx, app, proposalID, args[1])
			if err != nil {
				return err
			}
			if err := app.Milestones.Remove(ctx, milestoneID); err != nil {
				return err
			}
			fmt.Printf("Removed milestone %s\n", args[1])
			return nil
		},
	}
}

func milestoneTransitionCmd(app *App, use, short, verb string, fn func(context.Context, string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " PROPOSAL MILESTONE",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			proposalID, err := resolveProposalID(ctx, app, args[0])
			if err != nil {
				return err
			}
			milestoneID, err := resolveMilestoneID(ctx, app, proposalID, args[1])
			if err != nil {
				return err
			}
			if err := fn(ctx, milestoneID); err != nil {
				return err
			}
			fmt.Printf("%s milestone %s\n", verb, args[1])
			return nil
		},
	}
}

func newMilestoneStartCmd(app *App) *cobra.Command {
	return milestoneTransitionCmd(app, "start", "Start work on a milestone", "Started",
		app.Milestones.StartWork)
}

func newMilestoneReviewCmd(app *App) *cobra.Command {
	return milestoneTransitionCmd(app, "review", "Submit a milestone for review", "Submitted",
		app.Milestones.SubmitForReview)
}

func newMilestoneApproveCmd(app *App) *cobra.Command {
	return milestoneTransitionCmd(app, "approve", "Approve a reviewed milestone", "Approved",
		app.Milestones.Approve)
}

func newMilestoneSendBackCmd(app *App) *cobra.Command {
	return milestoneTransitionCmd(app, "sendback", "Send a reviewed milestone back for rework", "Sent back",
		app.Milestones.SendBack)
}

func newMilestoneCheckCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check PROPOSAL MILESTONE DELIVERABLE",
		Short: "Toggle a deliverable's completed state",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			proposalID, err := resolveProposalID(ctx, app, args[0])
			if err != nil {
				return err
			}
			milestoneID, err := resolveMilestoneID(ctx, app, proposalID, args[1])
			if err != nil {
				return err
			}
			deliverableID, err := resolveDeliverableID(ctx, app, proposalID, milestoneID, args[2])
			if err != nil {
				return err
			}
			if err := app.Milestones.ToggleDeliverable(ctx, milestoneID, deliverableID); err != nil {
				return err
			}
			fmt.Printf("Toggled deliverable %s\n", args[2])
			return nil
		},
	}
}

// resolveDeliverableID resolves a 1-based position or ID prefix within one
// milestone's checklist.
func resolveDeliverableID(ctx context.Context, app *App, proposalID, milestoneID, input string) (string, error) {
	ledger, err := app.Milestones.Schedule(ctx, proposalID)
	if err != nil {
		return "", err
	}
	m, ok := ledger.Get(milestoneID)
	if !ok {
		return "", fmt.Errorf("milestone not found: %q", milestoneID)
	}

	if n, ok := parseIndex(input); ok {
		if n < 1 || n > len(m.Deliverables) {
			return "", fmt.Errorf("deliverable position %d out of range (checklist has %d)", n, len(m.Deliverables))
		}
		return m.Deliverables[n-1].ID, nil
	}

	var matches []string
	for _, d := range m.Deliverables {
		if d.ID == input {
			return d.ID, nil
		}
		if strings.HasPrefix(d.ID, input) {
			matches = append(matches, d.ID)
		}
	}
	return onePrefixMatch("deliverable", input, matches)
}
