package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/ficsit-planner-go/internal/application/planning/commands"
	"github.com/andrescamacho/ficsit-planner-go/internal/application/planning/queries"
	"github.com/andrescamacho/ficsit-planner-go/internal/application/planning/services"
)

// NewPlanCommand creates the plan command
func NewPlanCommand() *cobra.Command {
	var (
		rate        float64
		policyName  string
		allowLocked bool
		summary     bool
		headerOnly  bool
		tree        bool
		colors      bool
	)

	cmd := &cobra.Command{
		Use:   "plan <item name>",
		Short: "Build a production plan for an item",
		Long: `Build a production plan for an item at a target rate (items per minute).

The item is matched by display name, ignoring case. Items with several recipes
become choice nodes; the policy picks which recipe is active.

Policies:
  none              first candidate
  power             lowest power of the node itself
  complexity        lowest complexity of the node itself
  total-power       lowest power of the whole subtree
  total-complexity  lowest complexity of the whole subtree

Examples:
  ficsit-planner plan "Reinforced Iron Plate" --rate 5
  ficsit-planner plan Screw --rate 240 --policy total-power --allow-locked
  ficsit-planner plan "Modular Frame" --rate 2 --tree --summary`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, ctx, err := newApplication(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer app.Close()

			policy, err := resolvePolicy(policyName, app.cfg.Planner.DefaultPolicy)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("allow-locked") {
				allowLocked = app.cfg.Planner.AllowLocked
			}
			if rate <= 0 {
				return fmt.Errorf("--rate must be positive")
			}

			created, err := send[*commands.CreatePlanResponse](ctx, app.mediator, &commands.CreatePlanCommand{
				ItemName:    strings.Join(args, " "),
				Rate:        rate,
				AllowLocked: allowLocked,
				Policy:      policy,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case headerOnly:
				fmt.Fprintln(out, app.planner.RenderHeader(created.Root))
			case tree:
				fmt.Fprintln(out, app.planner.RenderHeader(created.Root))
				index, err := app.planner.Index()
				if err != nil {
					return err
				}
				fmt.Fprint(out, NewTreeFormatter(colors, index.ItemName).FormatTree(created.Root))
			default:
				report, err := send[*queries.RenderPlanResponse](ctx, app.mediator, &queries.RenderPlanQuery{
					Root:   created.Root,
					Format: services.ReportFull,
				})
				if err != nil {
					return err
				}
				fmt.Fprint(out, report.Report)
			}

			if summary {
				fmt.Fprintln(out)
				fmt.Fprint(out, app.planner.RenderSummary(created.Root))
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&rate, "rate", 0, "Target rate in items per minute (required)")
	cmd.Flags().StringVar(&policyName, "policy", "", "Selection policy (default from config)")
	cmd.Flags().BoolVar(&allowLocked, "allow-locked", false, "Include recipes that are not unlocked yet")
	cmd.Flags().BoolVar(&summary, "summary", false, "Append node counts and raw resource totals")
	cmd.Flags().BoolVar(&headerOnly, "header", false, "Print only the summary line")
	cmd.Flags().BoolVar(&tree, "tree", false, "Draw the plan as a tree")
	cmd.Flags().BoolVar(&colors, "color", false, "Highlight choice nodes in tree output")
	_ = cmd.MarkFlagRequired("rate")

	return cmd
}
