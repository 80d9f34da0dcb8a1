package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/ficsit-planner-go/internal/application/planning/queries"
)

// NewItemsCommand creates the items command
func NewItemsCommand() *cobra.Command {
	var locked bool

	cmd := &cobra.Command{
		Use:   "items",
		Short: "List items the catalog can produce",
		Long: `List every item produced by at least one indexed recipe.

By default only unlocked recipes count; --locked includes every recipe.

Examples:
  ficsit-planner items
  ficsit-planner items --locked`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, ctx, err := newApplication(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer app.Close()

			response, err := send[*queries.ListItemsResponse](ctx, app.mediator, &queries.ListItemsQuery{
				AllowLocked: locked,
			})
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tID")
			for _, item := range response.Items {
				fmt.Fprintf(w, "%s\t%s\n", item.Name, item.ID)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\n%d items\n", len(response.Items))
			return nil
		},
	}

	cmd.Flags().BoolVar(&locked, "locked", false, "Include items only locked recipes produce")

	return cmd
}
