package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smartject/smartject/internal/cli/formatter"
	"github.com/smartject/smartject/internal/domain"
)

func newContractCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contract",
		Short: "Accept proposals and manage the resulting contracts",
	}

	cmd.AddCommand(
		newContractAcceptCmd(app),
		newContractRejectCmd(app),
		newContractListCmd(app),
		newContractInspectCmd(app),
		newContractSignCmd(app),
		newContractCompleteCmd(app),
		newContractCancelCmd(app),
	)

	return cmd
}

func newContractAcceptCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "accept PROPOSAL",
		Short: "Accept a submitted proposal and create the contract",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			proposalID, err := resolveProposalID(ctx, app, args[0])
			if err != nil {
				return err
			}
			c, err := app.Contracts.AcceptProposal(ctx, proposalID)
			if err != nil {
				return err
			}
			fmt.Printf("Created contract %s awaiting both signatures\n", c.ID[:8])
			fmt.Printf("Next: smartject contract sign %s --as needer|provider\n", c.ID[:8])
			return nil
		},
	}
}

func newContractRejectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reject PROPOSAL",
		Short: "Reject a submitted proposal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			proposalID, err := resolveProposalID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Contracts.RejectProposal(ctx, proposalID); err != nil {
				return err
			}
			fmt.Printf("Rejected proposal %s\n", args[0])
			return nil
		},
	}
}

func newContractListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List contracts",
		RunE: func(cmd *cobra.Command, args []string) error {
			contracts, err := app.Contracts.List(context.Background())
			if err != nil {
				return err
			}
			if len(contracts) == 0 {
				fmt.Println("No contracts found.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatContractList(contracts))
			return nil
		},
	}
}

func newContractInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect ID",
		Short: "Show contract details and its milestone schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveContractID(ctx, app, args[0])
			if err != nil {
				return err
			}
			c, err := app.Contracts.GetByID(ctx, id)
			if err != nil {
				return err
			}
			ledger, err := app.Milestones.Schedule(ctx, c.ProposalID)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatContractInspect(c, ledger, app.Symbol))
			return nil
		},
	}
}

func newContractSignCmd(app *App) *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "sign ID",
		Short: "Sign a contract as one of its parties",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveContractID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Contracts.Sign(ctx, id, domain.PartyRole(role)); err != nil {
				return err
			}
			c, err := app.Contracts.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if c.Status == domain.ContractActive {
				fmt.Println("Both parties have signed; the contract is active.")
			} else {
				fmt.Printf("Signed as %s; awaiting the other party.\n", role)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&role, "as", "", "Signing party (needer|provider)")
	_ = cmd.MarkFlagRequired("as")

	return cmd
}

func newContractCompleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "complete ID",
		Short: "Complete an active contract (requires all milestones approved)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveContractID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Contracts.Complete(ctx, id); err != nil {
				return err
			}
			fmt.Printf("Completed contract %s\n", args[0])
			return nil
		},
	}
}

func newContractCancelCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel ID",
		Short: "Cancel a contract",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveContractID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Contracts.Cancel(ctx, id); err != nil {
				return err
			}
			fmt.Printf("Cancelled contract %s\n", args[0])
			return nil
		},
	}
}
