package cli

import (
	"github.com/spf13/cobra"

	"github.com/smartject/smartject/internal/service"
)

// App holds references to all service interfaces used by CLI commands,
// plus the per-machine identity and display defaults from config.
type App struct {
	Smartjects  service.SmartjectService
	Proposals   service.ProposalService
	Milestones  service.MilestoneService
	Contracts   service.ContractService
	Negotiation service.NegotiationService

	Actor  string
	Symbol string
}

// NewRootCmd creates the top-level "smartject" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "smartject",
		Short: "Smartject marketplace: listings, proposals, milestone schedules and contracts",
	}

	root.AddCommand(
		newListingCmd(app),
		newProposalCmd(app),
		newMilestoneCmd(app),
		newNegotiateCmd(app),
		newContractCmd(app),
		newConfigCmd(),
	)

	return root
}
