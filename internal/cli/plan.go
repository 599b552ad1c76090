package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/netplan/pkg/network"
	"github.com/matzehuels/netplan/pkg/pipeline"
	"github.com/matzehuels/netplan/pkg/project"
	"github.com/matzehuels/netplan/pkg/store"
	"github.com/matzehuels/netplan/pkg/traffic"
)

// planOpts holds the flags of the plan command.
type planOpts struct {
	demands string
	output  string
	formats string
	labels  bool
	save    string
}

// planCommand creates the plan command, which runs the whole pipeline.
func (c *CLI) planCommand() *cobra.Command {
	var (
		opts  planOpts
		flags planFlags
	)

	cmd := &cobra.Command{
		Use:   "plan [project]",
		Short: "Route demands, size links and evaluate the network",
		Long: `Route demands, size links and evaluate the network.

Demands are read from --demands: a headerless CSV traffic matrix (rows and
columns in ascending site id order) or a JSON/YAML list of
{from_id, to_id, volume}. Each demand follows its hop-count route; every
link then gets the smallest catalog capacity that carries its flow.

A project without links is connected first, as with 'build'. The planned
project is written next to the input (<name>.planned.<ext>) unless
--output is given. Results are cached locally.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPlan(cmd.Context(), args[0], opts, &flags)
		},
	}

	cmd.Flags().StringVarP(&opts.demands, "demands", "d", "", "demand file (.csv matrix, .json or .yaml list)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output project file")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "also render: dot, svg, png (comma-separated)")
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "label rendered links with flow/capacity")
	cmd.Flags().StringVar(&opts.save, "save", "", "store the plan under this name")
	addPlanFlags(cmd, &flags)

	return cmd
}

func (c *CLI) runPlan(ctx context.Context, input string, po planOpts, flags *planFlags) error {
	net, err := loadProject(input)
	if err != nil {
		return err
	}

	var demands []network.Demand
	if po.demands != "" {
		if demands, err = traffic.Load(po.demands, net.NodeIDs()); err != nil {
			return fmt.Errorf("load demands: %w", err)
		}
	}

	if po.formats != "" {
		flags.opts.Formats = parseFormats(po.formats)
	}
	flags.opts.Labels = po.labels
	opts, err := c.planningOptions(flags)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, "Planning...")
	spinner.Start()

	result, err := runner.Execute(ctx, pipeline.Input{Network: net, Demands: demands}, opts)
	if err != nil {
		spinner.StopWithError("Planning failed")
		return err
	}
	spinner.Stop()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	prog.done("planned", "links", result.Stats.EdgeCount, "routed", result.Stats.Routed)

	output := po.output
	if output == "" {
		output = derivedPath(input, ".planned", filepath.Ext(input))
	}
	if err := saveProject(result.Network, output); err != nil {
		return err
	}

	printSuccess("Plan complete")
	printFile(output)
	for _, format := range opts.Formats {
		path := derivedPath(output, "", "."+format)
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.PlanHit)
	printWarnings(result.Warnings)
	printNewline()

	if result.Evaluated {
		printReport(result.Report, *opts.Thresholds)
		printNewline()
	} else {
		printInfo("No link carries flow; evaluation skipped")
	}

	if po.save != "" {
		if err := c.savePlan(ctx, po.save, result, demands); err != nil {
			return err
		}
	}

	printNextStep("Render", appName+" render "+output+" -f svg --labels")
	return nil
}

func (c *CLI) savePlan(ctx context.Context, name string, result *pipeline.Result, demands []network.Demand) error {
	st, err := c.openStore(ctx)
	if err != nil {
		return fmt.Errorf("open plan store: %w", err)
	}
	defer st.Close()

	plan := store.NewPlan(name, project.FromNetwork(result.Network), traffic.FromDemands(demands), result.Report, result.Warnings)
	if err := st.Put(ctx, plan); err != nil {
		return fmt.Errorf("save plan: %w", err)
	}
	printSuccess("Saved plan %s", StyleValue.Render(plan.ID))
	return nil
}
