package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/smartject/smartject/internal/cli/formatter"
	"github.com/smartject/smartject/internal/domain"
)

func newProposalCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "proposal",
		Short: "Manage proposals against listings",
	}

	cmd.AddCommand(
		newProposalDraftCmd(app),
		newProposalListCmd(app),
		newProposalInspectCmd(app),
		newProposalUpdateCmd(app),
		newProposalSubmitCmd(app),
		newProposalWithdrawCmd(app),
		newProposalRemoveCmd(app),
	)

	return cmd
}

func newProposalDraftCmd(app *App) *cobra.Command {
	var listing, title, description, role, timeline, start string
	var budget int64

	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Create a draft proposal against a listing",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			smartjectID, err := resolveSmartjectID(ctx, app, listing)
			if err != nil {
				return err
			}

			p := &domain.Proposal{
				SmartjectID: smartjectID,
				Author:      app.Actor,
				Role:        domain.PartyRole(role),
				Title:       title,
				Description: description,
				Budget:      budget,
				Timeline:    timeline,
			}
			if start != "" {
				startDate, err := time.Parse("2006-01-02", start)
				if err != nil {
					return fmt.Errorf("invalid start date %q: %w", start, err)
				}
				p.StartDate = startDate
			}

			if err := app.Proposals.CreateDraft(ctx, p); err != nil {
				return err
			}
			fmt.Printf("Created draft proposal %s (%s)\n", p.Title, p.ID[:8])
			fmt.Printf("Next: smartject milestone edit %s\n", p.ID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&listing, "listing", "", "Listing ref or ID")
	cmd.Flags().StringVar(&title, "title", "", "Proposal title")
	cmd.Flags().StringVar(&description, "description", "", "Proposal description")
	cmd.Flags().StringVar(&role, "role", "provider", "Your role (needer|provider)")
	cmd.Flags().Int64Var(&budget, "budget", 0, "Total budget in whole currency units")
	cmd.Flags().StringVar(&timeline, "timeline", "", `Timeline text (e.g. "3 months")`)
	cmd.Flags().StringVar(&start, "start", "", "Project start date (YYYY-MM-DD, default today)")
	_ = cmd.MarkFlagRequired("listing")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newProposalListCmd(app *App) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List proposals",
		RunE: func(cmd *cobra.Command, args []string) error {
			var statuses []domain.ProposalStatus
			if status != "" {
				statuses = append(statuses, domain.ProposalStatus(status))
			}
			proposals, err := app.Proposals.List(context.Background(), statuses...)
			if err != nil {
				return err
			}
			if len(proposals) == 0 {
				fmt.Println("No proposals found.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatProposalList(proposals))
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "",
		"Filter by status ("+statusList(domain.ProposalDraft, domain.ProposalSubmitted,
			domain.ProposalAccepted, domain.ProposalRejected, domain.ProposalWithdrawn)+")")

	return cmd
}

func newProposalInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect ID",
		Short: "Show proposal details and its milestone schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveProposalID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Proposals.GetByID(ctx, id)
			if err != nil {
				return err
			}
			ledger, err := app.Milestones.Schedule(ctx, id)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatProposalInspect(p, ledger, app.Symbol))
			return nil
		},
	}
}

func newProposalUpdateCmd(app *App) *cobra.Command {
	var title, description, timeline, start string
	var budget int64

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a draft proposal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveProposalID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Proposals.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if p.Status != domain.ProposalDraft {
				return fmt.Errorf("only draft proposals can be updated (status is %s)", p.Status)
			}

			if cmd.Flags().Changed("title") {
				p.Title = title
			}
			if cmd.Flags().Changed("description") {
				p.Description = description
			}
			if cmd.Flags().Changed("budget") {
				p.Budget = budget
			}
			if cmd.Flags().Changed("timeline") {
				p.Timeline = timeline
			}
			if cmd.Flags().Changed("start") {
				startDate, err := time.Parse("2006-01-02", start)
				if err != nil {
					return fmt.Errorf("invalid start date %q: %w", start, err)
				}
				p.StartDate = startDate
			}

			if err := app.Proposals.Update(ctx, p); err != nil {
				return err
			}
			fmt.Printf("Updated proposal %s\n", p.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Proposal title")
	cmd.Flags().StringVar(&description, "description", "", "Proposal description")
	cmd.Flags().Int64Var(&budget, "budget", 0, "Total budget in whole currency units")
	cmd.Flags().StringVar(&timeline, "timeline", "", "Timeline text")
	cmd.Flags().StringVar(&start, "start", "", "Project start date (YYYY-MM-DD)")

	return cmd
}

func newProposalSubmitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "submit ID",
		Short: "Submit a draft proposal (requires a complete milestone schedule)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveProposalID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Proposals.Submit(ctx, id); err != nil {
				return err
			}
			fmt.Printf("Submitted proposal %s\n", args[0])
			return nil
		},
	}
}

func newProposalWithdrawCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "withdraw ID",
		Short: "Withdraw a proposal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveProposalID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Proposals.Withdraw(ctx, id); err != nil {
				return err
			}
			fmt.Printf("Withdrew proposal %s\n", args[0])
			return nil
		},
	}
}

func newProposalRemoveCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a proposal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveProposalID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Proposals.Delete(ctx, id, force); err != nil {
				return err
			}
			fmt.Printf("Removed proposal %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Remove regardless of status")

	return cmd
}
