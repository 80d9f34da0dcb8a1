package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/ficsit-planner-go/internal/adapters/metrics"
	"github.com/andrescamacho/ficsit-planner-go/internal/application/common"
	"github.com/andrescamacho/ficsit-planner-go/internal/application/mediator"
	"github.com/andrescamacho/ficsit-planner-go/internal/application/planning/commands"
	"github.com/andrescamacho/ficsit-planner-go/internal/application/planning/queries"
	"github.com/andrescamacho/ficsit-planner-go/internal/application/planning/services"
	"github.com/andrescamacho/ficsit-planner-go/internal/domain/planning"
)

var serveMetrics bool

const shellHelp = `Commands:
  plan <rate> <item name>         build and store a plan
  list                            list stored plans
  show <id> [tree]                print a stored plan
  header <id>                     print the summary line of a plan
  summary <id>                    print node counts and raw inputs of a plan
  node <id> <node>                compare the alternatives of a node
  select <id> <node> <option>     activate an alternative (options start at 1)
  optimize <id> <policy>          rebuild a plan under another policy
  delete <id>                     remove a plan (later ids shift down)
  policy [name]                   show or set the policy for new plans
  locked on|off                   include locked recipes in new plans
  find <item name>                look up an item by display name
  reload                          re-read the catalog
  help                            show this help
  quit                            leave the shell`

// errQuit ends the shell loop
var errQuit = errors.New("quit")

// Shell is an interactive session over the planner.
// Plans live for the duration of the session.
type Shell struct {
	mediator    mediator.Mediator
	planner     *services.PlannerService
	policy      planning.OptimizationPolicy
	allowLocked bool
	colors      bool

	in  io.Reader
	out io.Writer
}

// NewShell creates a shell reading commands from in and writing to out
func NewShell(
	m mediator.Mediator,
	planner *services.PlannerService,
	policy planning.OptimizationPolicy,
	allowLocked bool,
	in io.Reader,
	out io.Writer,
) *Shell {
	return &Shell{
		mediator:    m,
		planner:     planner,
		policy:      policy,
		allowLocked: allowLocked,
		in:          in,
		out:         out,
	}
}

// Run reads commands until quit or end of input.
// Command errors are printed and do not end the session.
func (s *Shell) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(s.in)
	for {
		fmt.Fprint(s.out, "planner> ")
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return scanner.Err()
		}

		err := s.Execute(ctx, scanner.Text())
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// Execute runs a single shell command line
func (s *Shell) Execute(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	name, args := strings.ToLower(fields[0]), fields[1:]

	switch name {
	case "plan":
		return s.plan(ctx, args)
	case "list", "ls":
		return s.list(ctx)
	case "show":
		return s.show(ctx, args)
	case "header":
		return s.render(ctx, args, services.ReportHeader)
	case "summary":
		return s.render(ctx, args, services.ReportSummary)
	case "node":
		return s.node(args)
	case "select":
		return s.selectAlternative(ctx, args)
	case "optimize":
		return s.optimize(ctx, args)
	case "delete", "rm":
		return s.deletePlan(ctx, args)
	case "policy":
		return s.setPolicy(args)
	case "locked":
		return s.setLocked(args)
	case "find":
		return s.find(ctx, args)
	case "reload":
		return s.reload(ctx)
	case "help", "?":
		fmt.Fprintln(s.out, shellHelp)
		return nil
	case "quit", "exit":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q (try help)", name)
	}
}

func (s *Shell) plan(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: plan <rate> <item name>")
	}
	rate, err := parseRate(args[0])
	if err != nil {
		return err
	}

	created, err := send[*commands.CreatePlanResponse](ctx, s.mediator, &commands.CreatePlanCommand{
		ItemName:    strings.Join(args[1:], " "),
		Rate:        rate,
		AllowLocked: s.allowLocked,
		Policy:      s.policy,
		Save:        true,
	})
	if err != nil {
		return err
	}

	header, err := s.renderStored(ctx, created.PlanID, services.ReportHeader)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Plan %d: %s\n", created.PlanID, header)
	return nil
}

func (s *Shell) list(ctx context.Context) error {
	response, err := send[*queries.ListPlansResponse](ctx, s.mediator, &queries.ListPlansQuery{})
	if err != nil {
		return err
	}
	if len(response.Plans) == 0 {
		fmt.Fprintln(s.out, "No plans")
		return nil
	}

	w := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTARGET\tRATE\tPOWER\tCOMPLEXITY\tNODES\tSAVED")
	for _, plan := range response.Plans {
		fmt.Fprintf(w, "%d\t%s\t%.2f/min\t%.2f MW\t%d\t%d\t%s\n",
			plan.PlanID,
			plan.Target,
			plan.Rate,
			plan.TotalPower,
			plan.TotalComplexity,
			plan.Nodes,
			plan.SavedAt.Format(time.TimeOnly))
	}
	return w.Flush()
}

func (s *Shell) show(ctx context.Context, args []string) error {
	if len(args) == 2 && args[1] == "tree" {
		ids, err := parseInts(args[:1], "<id>")
		if err != nil {
			return err
		}
		return s.tree(ids[0])
	}
	return s.render(ctx, args, services.ReportFull)
}

func (s *Shell) tree(id int) error {
	index, err := s.planner.Index()
	if err != nil {
		return err
	}
	formatter := NewTreeFormatter(s.colors, index.ItemName)

	return s.planner.InspectPlan(id, func(root *planning.PlanNode) error {
		fmt.Fprint(s.out, formatter.FormatTree(root))
		return nil
	})
}

func (s *Shell) render(ctx context.Context, args []string, format services.ReportFormat) error {
	ids, err := parseInts(args, "<id>")
	if err != nil {
		return err
	}
	report, err := s.renderStored(ctx, ids[0], format)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, strings.TrimRight(report, "\n"))
	return nil
}

func (s *Shell) renderStored(ctx context.Context, id int, format services.ReportFormat) (string, error) {
	response, err := send[*queries.RenderPlanResponse](ctx, s.mediator, &queries.RenderPlanQuery{
		PlanID: id,
		Format: format,
	})
	if err != nil {
		return "", err
	}
	return response.Report, nil
}

func (s *Shell) node(args []string) error {
	values, err := parseInts(args, "<id>", "<node>")
	if err != nil {
		return err
	}
	index, err := s.planner.Index()
	if err != nil {
		return err
	}
	formatter := NewTreeFormatter(s.colors, index.ItemName)

	return s.planner.InspectPlan(values[0], func(root *planning.PlanNode) error {
		node, ok := planning.FindByOrdinal(root, values[1])
		if !ok {
			return &planning.ErrInvalidIndex{What: "node ordinal", Index: values[1]}
		}
		fmt.Fprint(s.out, formatter.FormatNodeDetails(values[1], node))
		return nil
	})
}

func (s *Shell) selectAlternative(ctx context.Context, args []string) error {
	values, err := parseInts(args, "<id>", "<node>", "<option>")
	if err != nil {
		return err
	}
	if _, err := s.mediator.Send(ctx, &commands.SelectAlternativeCommand{
		PlanID:      values[0],
		NodeOrdinal: values[1],
		Alternative: values[2],
	}); err != nil {
		return err
	}
	return s.render(ctx, args[:1], services.ReportHeader)
}

func (s *Shell) optimize(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: optimize <id> <policy>")
	}
	ids, err := parseInts(args[:1], "<id>")
	if err != nil {
		return err
	}
	policy, err := planning.ParseOptimizationPolicy(args[1])
	if err != nil {
		return err
	}
	if _, err := s.mediator.Send(ctx, &commands.OptimizePlanCommand{PlanID: ids[0], Policy: policy}); err != nil {
		return err
	}
	return s.render(ctx, args[:1], services.ReportHeader)
}

func (s *Shell) deletePlan(ctx context.Context, args []string) error {
	ids, err := parseInts(args, "<id>")
	if err != nil {
		return err
	}
	if _, err := s.mediator.Send(ctx, &commands.DeletePlanCommand{PlanID: ids[0]}); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Deleted plan %d\n", ids[0])
	return nil
}

func (s *Shell) setPolicy(args []string) error {
	if len(args) == 0 {
		fmt.Fprintf(s.out, "policy: %s\n", s.policy)
		return nil
	}
	policy, err := planning.ParseOptimizationPolicy(args[0])
	if err != nil {
		return err
	}
	s.policy = policy
	fmt.Fprintf(s.out, "policy: %s\n", s.policy)
	return nil
}

func (s *Shell) setLocked(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: locked on|off")
	}
	switch strings.ToLower(args[0]) {
	case "on", "true", "yes":
		s.allowLocked = true
	case "off", "false", "no":
		s.allowLocked = false
	default:
		return fmt.Errorf("usage: locked on|off")
	}
	fmt.Fprintf(s.out, "locked recipes: %t\n", s.allowLocked)
	return nil
}

func (s *Shell) find(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: find <item name>")
	}
	response, err := send[*queries.FindItemResponse](ctx, s.mediator, &queries.FindItemQuery{
		Name:            strings.Join(args, " "),
		CaseInsensitive: true,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%s (%s)\n", response.Item.Name, response.Item.ID)
	return nil
}

func (s *Shell) reload(ctx context.Context) error {
	stats, err := send[*services.CatalogStats](ctx, s.mediator, &commands.ReloadCatalogCommand{})
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Catalog reloaded: %d items, %d unlocked recipes, %d total\n",
		stats.Items, stats.UnlockedRecipes, stats.AllRecipes)
	return nil
}

// NewShellCommand creates the shell command
func NewShellCommand() *cobra.Command {
	var colors bool

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive planning session",
		Long: `Start an interactive session where plans are stored, compared and edited.

With --serve-metrics (or metrics.enabled in config) a Prometheus endpoint is served
for the lifetime of the session.

` + shellHelp,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, ctx, err := newApplication(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer app.Close()

			if metrics.IsEnabled() {
				server, err := metrics.NewServer(app.cfg.Metrics.Address(), app.cfg.Metrics.Path, app.Slog())
				if err != nil {
					return err
				}
				server.Start()
				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					_ = server.Shutdown(shutdownCtx)
				}()
			}

			policy, err := planning.ParseOptimizationPolicy(app.cfg.Planner.DefaultPolicy)
			if err != nil {
				return err
			}

			common.LoggerFromContext(ctx).Debug("shell started", "policy", policy)
			shell := NewShell(app.mediator, app.planner, policy, app.cfg.Planner.AllowLocked, os.Stdin, cmd.OutOrStdout())
			shell.colors = colors
			fmt.Fprintln(cmd.OutOrStdout(), "Type help for commands.")
			return shell.Run(ctx)
		},
	}

	cmd.Flags().BoolVar(&serveMetrics, "serve-metrics", false, "Serve Prometheus metrics while the shell runs")
	cmd.Flags().BoolVar(&colors, "color", false, "Highlight choice nodes in tree output")

	return cmd
}
