package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smartject/smartject/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or initialize configuration",
	}

	cmd.AddCommand(
		newConfigShowCmd(),
		newConfigInitCmd(),
	)

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			fmt.Printf("config file:        %s", config.ConfigPath())
			if !config.Exists() {
				fmt.Printf(" (not present, using defaults)")
			}
			fmt.Println()
			fmt.Printf("database:           %s\n", cfg.DBPath())
			fmt.Printf("actor:              %s\n", cfg.Actor())
			fmt.Printf("currency symbol:    %s\n", cfg.Schedule.CurrencySymbol)
			fmt.Printf("default timeline:   %g months\n", cfg.Schedule.DefaultTimelineMonths)
			return nil
		},
	}
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the current defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			if config.Exists() && !force {
				return fmt.Errorf("config already exists at %s (use --force to overwrite)", config.ConfigPath())
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := config.Save(cfg); err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", config.ConfigPath())
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	return cmd
}
