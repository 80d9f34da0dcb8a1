package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/ficsit-planner-go/internal/domain/planning"
	"github.com/andrescamacho/ficsit-planner-go/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage planner configuration settings.

Configuration is loaded from multiple sources with priority:
1. User preferences (~/.ficsit-planner/preferences.json, planner defaults only)
2. Environment variables (FP_* prefix)
3. Config file (config.yaml)
4. Default values

Examples:
  ficsit-planner config show
  ficsit-planner config set-policy total-power
  ficsit-planner config set-policy --allow-locked=true
  ficsit-planner config clear`,
	}

	// Add subcommands
	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetPolicyCommand())
	cmd.AddCommand(newConfigClearCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfg, err := loadConfig()
			if err != nil {
				fmt.Fprintf(out, "Warning: Failed to load config: %v\n", err)
				fmt.Fprintln(out, "Using default configuration.")
				cfg = config.LoadConfigOrDefault(configPath)
			}

			fmt.Fprintln(out, "Planner Configuration")
			fmt.Fprintln(out, "=====================")

			if handler, err := config.NewPreferencesHandler(); err == nil {
				fmt.Fprintf(out, "  Preferences:      %s\n", handler.Path())
			}

			fmt.Fprintln(out, "\nCatalog:")
			fmt.Fprintf(out, "  Source:           %s\n", cfg.Catalog.Source)
			if cfg.Catalog.Source == "file" {
				fmt.Fprintf(out, "  Path:             %s\n", cfg.Catalog.Path)
			}
			fmt.Fprintf(out, "  Producers:        %s\n", cfg.Catalog.ProducerPredicate)
			fmt.Fprintf(out, "  Building Prefix:  %s\n", cfg.Catalog.BuildingPrefix)
			if len(cfg.Catalog.IngredientDenylist) > 0 {
				fmt.Fprintf(out, "  Denied Inputs:    %s\n", strings.Join(cfg.Catalog.IngredientDenylist, ", "))
			}

			fmt.Fprintln(out, "\nPlanner:")
			fmt.Fprintf(out, "  Default Policy:   %s\n", cfg.Planner.DefaultPolicy)
			fmt.Fprintf(out, "  Allow Locked:     %t\n", cfg.Planner.AllowLocked)
			fmt.Fprintf(out, "  Max Depth:        %s\n", formatLimit(cfg.Planner.MaxDepth))
			fmt.Fprintf(out, "  Max Nodes:        %s\n", formatLimit(cfg.Planner.MaxNodes))

			fmt.Fprintln(out, "\nDatabase:")
			fmt.Fprintf(out, "  Type:             %s\n", cfg.Database.Type)
			switch {
			case cfg.Database.URL != "":
				fmt.Fprintf(out, "  URL:              %s\n", maskPassword(cfg.Database.URL))
			case cfg.Database.Type == "sqlite":
				fmt.Fprintf(out, "  Path:             %s\n", cfg.Database.Path)
			default:
				fmt.Fprintf(out, "  Host:             %s\n", cfg.Database.Host)
				fmt.Fprintf(out, "  Port:             %d\n", cfg.Database.Port)
				fmt.Fprintf(out, "  Database:         %s\n", cfg.Database.Name)
				fmt.Fprintf(out, "  User:             %s\n", cfg.Database.User)
			}

			fmt.Fprintln(out, "\nLogging:")
			fmt.Fprintf(out, "  Level:            %s\n", cfg.Logging.Level)
			fmt.Fprintf(out, "  Format:           %s\n", cfg.Logging.Format)
			fmt.Fprintf(out, "  Output:           %s\n", cfg.Logging.Output)

			fmt.Fprintln(out, "\nMetrics:")
			fmt.Fprintf(out, "  Enabled:          %t\n", cfg.Metrics.Enabled)
			if cfg.Metrics.Enabled {
				fmt.Fprintf(out, "  Endpoint:         http://%s%s\n", cfg.Metrics.Address(), cfg.Metrics.Path)
			}

			return nil
		},
	}
}

// newConfigSetPolicyCommand creates the config set-policy subcommand
func newConfigSetPolicyCommand() *cobra.Command {
	var allowLocked bool

	cmd := &cobra.Command{
		Use:   "set-policy [policy]",
		Short: "Set default planner preferences",
		Long: `Store a default selection policy and/or allow-locked setting.

Examples:
  ficsit-planner config set-policy power
  ficsit-planner config set-policy --allow-locked=true`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !cmd.Flags().Changed("allow-locked") {
				return fmt.Errorf("a policy or --allow-locked is required")
			}

			handler, err := config.NewPreferencesHandler()
			if err != nil {
				return fmt.Errorf("failed to create preferences handler: %w", err)
			}
			prefs, err := handler.Load()
			if err != nil {
				return err
			}

			if len(args) == 1 {
				policy, err := planning.ParseOptimizationPolicy(args[0])
				if err != nil {
					return err
				}
				prefs.DefaultPolicy = string(policy)
			}
			if cmd.Flags().Changed("allow-locked") {
				prefs.AllowLocked = &allowLocked
			}

			if err := handler.Save(prefs); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Preferences saved to %s\n", handler.Path())
			return nil
		},
	}

	cmd.Flags().BoolVar(&allowLocked, "allow-locked", false, "Plan with locked recipes by default")

	return cmd
}

// newConfigClearCommand creates the config clear subcommand
func newConfigClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove stored planner preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			handler, err := config.NewPreferencesHandler()
			if err != nil {
				return fmt.Errorf("failed to create preferences handler: %w", err)
			}
			if err := handler.Save(&config.Preferences{}); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "✓ Preferences cleared")
			return nil
		},
	}
}

func formatLimit(value int) string {
	if value < 0 {
		return "unlimited"
	}
	return fmt.Sprintf("%d", value)
}
