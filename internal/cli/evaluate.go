package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// evaluateCommand creates the evaluate command.
func (c *CLI) evaluateCommand() *cobra.Command {
	var (
		output string
		asJSON bool
		flags  planFlags
	)

	cmd := &cobra.Command{
		Use:   "evaluate [project]",
		Short: "Report cost and delay of a planned project",
		Long: `Report cost and delay of a planned project.

Link delays are recomputed from the current flows and capacities using the
M/M/1 estimate for the configured packet size. A link whose flow reaches its
capacity is saturated: its delay is shown as ∞ and it is left out of the
maximum end-to-end delay.

At least one link must carry flow; run 'plan' first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runEvaluate(cmd.Context(), args[0], output, asJSON, &flags)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the project with recomputed delays")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	cmd.Flags().IntVar(&flags.opts.PacketSizeBytes, "packet-size", 0, "packet size in bytes for delay estimates (64-9000)")

	return cmd
}

func (c *CLI) runEvaluate(ctx context.Context, input, output string, asJSON bool, flags *planFlags) error {
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

	report, evaluated, err := runner.Evaluate(ctx, net, opts)
	if err != nil {
		return fmt.Errorf("evaluate: %w", err)
	}

	if output != "" {
		if err := saveProject(evaluated, output); err != nil {
			return err
		}
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	printReport(report, *opts.Thresholds)
	if output != "" {
		printNewline()
		printFile(output)
	}
	return nil
}
