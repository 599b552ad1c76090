package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/netplan/pkg/errors"
)

// renderOpts holds the flags of the render command.
type renderOpts struct {
	output  string
	formats string
	route   []int
	labels  bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [project]",
		Short: "Draw a project as DOT, SVG or PNG",
		Long: `Draw a project as DOT, SVG or PNG.

Sites are pinned to their coordinates. Links are coloured by load: black
below the high threshold, orange up to the overload threshold and dark red
above it. Saturated links are dashed. --route draws the route between two
sites in green.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output base path (default: input without extension)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "svg", "output formats: dot, svg, png (comma-separated)")
	cmd.Flags().IntSliceVar(&opts.route, "route", nil, "highlight the route FROM,TO")
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "label links with flow/capacity")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, ro renderOpts) error {
	net, err := loadProject(input)
	if err != nil {
		return err
	}

	flags := &planFlags{}
	flags.opts.Formats = parseFormats(ro.formats)
	flags.opts.Labels = ro.labels
	opts, err := c.planningOptions(flags)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	if len(ro.route) > 0 {
		if len(ro.route) != 2 {
			return errors.New(errors.ErrCodeInvalidInput, "--route takes two site ids, got %v", ro.route)
		}
		table, err := runner.Routes(ctx, net, opts)
		if err != nil {
			return fmt.Errorf("compute routes: %w", err)
		}
		path, ok := table.Route(ro.route[0], ro.route[1])
		if !ok {
			return errors.New(errors.ErrCodeInvalidInput, "no route from %d to %d", ro.route[0], ro.route[1])
		}
		opts.Highlight = path
	}

	artifacts, cached, err := runner.RenderWithCacheInfo(ctx, net, opts)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	base := ro.output
	if base == "" {
		base = derivedPath(input, "", "")
	}
	printSuccess("Rendered")
	for _, format := range opts.Formats {
		path := base + "." + format
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	printStats(net.NodeCount(), net.EdgeCount(), cached)
	return nil
}
