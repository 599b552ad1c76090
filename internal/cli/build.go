package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// buildCommand creates the build command, which replaces a project's links
// with a freshly built topology.
func (c *CLI) buildCommand() *cobra.Command {
	var (
		output string
		flags  planFlags
	)

	cmd := &cobra.Command{
		Use:   "build [project]",
		Short: "Connect the sites of a project with a resilient topology",
		Long: `Connect the sites of a project with a resilient topology.

The sites are joined by a minimum spanning tree over their straight-line
distances. Unless --no-augment is given, every leaf site then gets a second
link to the nearest site it is not yet connected to. Existing links are
discarded.

The project is updated in place unless --output is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBuild(cmd.Context(), args[0], output, &flags)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output project file (default: update the input)")
	addPlanFlags(cmd, &flags)

	return cmd
}

func (c *CLI) runBuild(ctx context.Context, input, output string, flags *planFlags) error {
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

	built, err := runner.BuildTopology(ctx, net.Nodes, opts)
	if err != nil {
		return fmt.Errorf("build topology: %w", err)
	}

	if output == "" {
		output = input
	}
	if err := saveProject(built, output); err != nil {
		return err
	}

	printSuccess("Topology built")
	printFile(output)
	printStats(built.NodeCount(), built.EdgeCount(), false)
	printNewline()
	printNextStep("Plan capacities", appName+" plan "+output+" --demands demands.csv")
	return nil
}
