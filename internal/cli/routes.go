package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// routesCommand creates the routes command.
func (c *CLI) routesCommand() *cobra.Command {
	var (
		from, to    string
		interactive bool
		asJSON      bool
		flags       planFlags
	)

	cmd := &cobra.Command{
		Use:   "routes [project]",
		Short: "List the hop-count routes between all sites",
		Long: `List the hop-count routes between all sites.

Routes follow the fewest links; ties go to the path through the lower site
id. --from and --to keep routes whose endpoint names contain the given text.
A project without links is connected first, as with 'build'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRoutes(cmd.Context(), args[0], from, to, interactive, asJSON, &flags)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "filter by source site name")
	cmd.Flags().StringVar(&to, "to", "", "filter by destination site name")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse routes interactively")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print routes as JSON")
	addPlanFlags(cmd, &flags)

	return cmd
}

func (c *CLI) runRoutes(ctx context.Context, input, from, to string, interactive, asJSON bool, flags *planFlags) error {
	net, err := loadProject(input)
	if err != nil {
		return err
	}
	opts, err := c.planningOptions(flags)
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	if net.EdgeCount() == 0 || opts.Rebuild {
		if net, err = runner.BuildTopology(ctx, net.Nodes, opts); err != nil {
			return fmt.Errorf("build topology: %w", err)
		}
	}

	table, cached, err := runner.RoutesWithCacheInfo(ctx, net, opts)
	if err != nil {
		return fmt.Errorf("compute routes: %w", err)
	}
	names := net.Names()

	if interactive {
		_, err := tea.NewProgram(NewRouteBrowserModel(table, names, from, to), tea.WithContext(ctx)).Run()
		return err
	}

	entries := table.Filter(names, from, to)
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		printInfo("No matching routes")
		return nil
	}
	fmt.Println(routesTable(names, entries))
	printStats(net.NodeCount(), net.EdgeCount(), cached)
	return nil
}
