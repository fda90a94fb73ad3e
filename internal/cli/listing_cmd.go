package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smartject/smartject/internal/cli/formatter"
	"github.com/smartject/smartject/internal/domain"
)

func newListingCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "listing",
		Aliases: []string{"sj"},
		Short:   "Manage smartject listings",
	}

	cmd.AddCommand(
		newListingAddCmd(app),
		newListingListCmd(app),
		newListingInspectCmd(app),
		newListingUpdateCmd(app),
		newListingArchiveCmd(app),
		newListingRemoveCmd(app),
	)

	return cmd
}

func newListingAddCmd(app *App) *cobra.Command {
	var ref, title, mission, problematics string
	var tags []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new listing",
		RunE: func(cmd *cobra.Command, args []string) error {
			sj := &domain.Smartject{
				Ref:          strings.ToUpper(ref),
				Title:        title,
				Mission:      mission,
				Problematics: problematics,
				Tags:         tags,
			}
			if err := app.Smartjects.Create(context.Background(), sj); err != nil {
				return err
			}
			fmt.Printf("Created listing %s [%s]\n", sj.Title, sj.Ref)
			return nil
		},
	}

	cmd.Flags().StringVar(&ref, "ref", "", "Listing ref (SJ- followed by 3-5 digits, e.g. SJ-041)")
	cmd.Flags().StringVar(&title, "title", "", "Listing title")
	cmd.Flags().StringVar(&mission, "mission", "", "One-line mission statement")
	cmd.Flags().StringVar(&problematics, "problematics", "", "Problem the smartject addresses")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Tags (repeatable)")
	_ = cmd.MarkFlagRequired("ref")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newListingListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List listings",
		RunE: func(cmd *cobra.Command, args []string) error {
			listings, err := app.Smartjects.List(context.Background(), all)
			if err != nil {
				return err
			}
			if len(listings) == 0 {
				fmt.Println("No listings found.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatSmartjectList(listings))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include archived listings")

	return cmd
}

func newListingInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect ID",
		Short: "Show listing details and its proposals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveSmartjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			sj, err := app.Smartjects.GetByID(ctx, id)
			if err != nil {
				return err
			}
			proposals, err := app.Proposals.ListBySmartject(ctx, id)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatSmartjectInspect(sj, proposals))
			return nil
		},
	}
}

func newListingUpdateCmd(app *App) *cobra.Command {
	var title, mission, problematics string
	var tags []string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveSmartjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			sj, err := app.Smartjects.GetByID(ctx, id)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("title") {
				sj.Title = title
			}
			if cmd.Flags().Changed("mission") {
				sj.Mission = mission
			}
			if cmd.Flags().Changed("problematics") {
				sj.Problematics = problematics
			}
			if cmd.Flags().Changed("tag") {
				sj.Tags = tags
			}

			if err := app.Smartjects.Update(ctx, sj); err != nil {
				return err
			}
			fmt.Printf("Updated listing %s [%s]\n", sj.Title, sj.Ref)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Listing title")
	cmd.Flags().StringVar(&mission, "mission", "", "One-line mission statement")
	cmd.Flags().StringVar(&problematics, "problematics", "", "Problem the smartject addresses")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Tags (repeatable, replaces existing)")

	return cmd
}

func newListingArchiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "archive ID",
		Short: "Archive a listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveSmartjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Smartjects.Archive(ctx, id); err != nil {
				return err
			}
			fmt.Printf("Archived listing %s\n", args[0])
			return nil
		},
	}
}

func newListingRemoveCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveSmartjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Smartjects.Delete(ctx, id, force); err != nil {
				return err
			}
			fmt.Printf("Removed listing %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Remove even if the listing is not archived")

	return cmd
}
