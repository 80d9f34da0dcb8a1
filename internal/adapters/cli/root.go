package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath  string
	catalogPath string
	verbose     bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ficsit-planner",
		Short: "Factory planner - build production chains from a recipe catalog",
		Long: `ficsit-planner expands a target item and rate into a tree of recipes,
machine multipliers and power draw, and lets you compare alternative recipes.

Examples:
  ficsit-planner plan "Reinforced Iron Plate" --rate 5
  ficsit-planner plan "Heavy Modular Frame" --rate 2 --policy total-power --summary
  ficsit-planner items --locked
  ficsit-planner catalog import game-data.yaml
  ficsit-planner shell`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: config.yaml in ., ./configs or /etc/ficsit-planner)")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "",
		"Read the catalog from this file instead of the configured source")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	// Add command groups
	rootCmd.AddCommand(NewPlanCommand())
	rootCmd.AddCommand(NewItemsCommand())
	rootCmd.AddCommand(NewCatalogCommand())
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewShellCommand())

	return rootCmd
}

// Execute runs the root command. An interrupt cancels the command's context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := NewRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
