package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/ficsit-planner-go/internal/adapters/catalogfile"
	"github.com/andrescamacho/ficsit-planner-go/internal/application/planning/commands"
	"github.com/andrescamacho/ficsit-planner-go/internal/application/setup"
)

// NewCatalogCommand creates the catalog command with subcommands
func NewCatalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the recipe catalog database",
		Long: `Move catalog data between files and the configured database.

Catalog files are YAML (JSON is accepted) with items, buildings and recipes.

Examples:
  ficsit-planner catalog import game-data.yaml
  ficsit-planner catalog export backup.yaml
  ficsit-planner catalog status`,
	}

	cmd.AddCommand(newCatalogImportCommand())
	cmd.AddCommand(newCatalogExportCommand())
	cmd.AddCommand(newCatalogStatusCommand())

	return cmd
}

// newCatalogImportCommand creates the catalog import subcommand
func newCatalogImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the database catalog with a catalog file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, ctx, err := newApplication(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer app.Close()

			store, err := app.openStore()
			if err != nil {
				return err
			}
			store = store.WithSource(args[0])

			// The application mediator only has an import handler when the database is the source
			m, err := setup.NewHandlerRegistry(nil, store).CreateConfiguredMediator(nil)
			if err != nil {
				return err
			}

			response, err := send[*commands.ImportCatalogResponse](ctx, m, &commands.ImportCatalogCommand{
				Source: catalogfile.NewFileCatalogSource(args[0]),
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Imported %d items, %d buildings, %d recipes from %s\n",
				response.Items, response.Buildings, response.Recipes, args[0])
			return nil
		},
	}
}

// newCatalogExportCommand creates the catalog export subcommand
func newCatalogExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Write the database catalog to a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, ctx, err := newApplication(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer app.Close()

			store, err := app.openStore()
			if err != nil {
				return err
			}

			snapshot, err := store.Load(ctx)
			if err != nil {
				return err
			}
			if err := catalogfile.WriteFile(args[0], snapshot); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d recipes to %s\n", len(snapshot.Recipes()), args[0])
			return nil
		},
	}
}

// newCatalogStatusCommand creates the catalog status subcommand
func newCatalogStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the last catalog import",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, ctx, err := newApplication(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer app.Close()

			store, err := app.openStore()
			if err != nil {
				return err
			}

			last, err := store.LastImport(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if last == nil {
				fmt.Fprintln(out, "No catalog has been imported")
				return nil
			}

			fmt.Fprintf(out, "Import:     %s\n", last.ID)
			fmt.Fprintf(out, "Source:     %s\n", last.Source)
			fmt.Fprintf(out, "Items:      %d\n", last.Items)
			fmt.Fprintf(out, "Buildings:  %d\n", last.Buildings)
			fmt.Fprintf(out, "Recipes:    %d\n", last.Recipes)
			fmt.Fprintf(out, "Imported:   %s\n", last.ImportedAt.Format("2006-01-02 15:04:05 MST"))
			return nil
		},
	}
}
