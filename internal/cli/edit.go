package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/netplan/pkg/capacity"
	"github.com/matzehuels/netplan/pkg/errors"
	"github.com/matzehuels/netplan/pkg/network"
)

// editCommand groups the project editing subcommands. Every subcommand
// rewrites the project in place unless --output is given.
func (c *CLI) editCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Add, move and remove sites and links of a project",
	}
	cmd.PersistentFlags().StringVarP(&output, "output", "o", "", "output project file (default: update the input)")

	cmd.AddCommand(c.editAddNodeCommand(&output))
	cmd.AddCommand(c.editRemoveNodeCommand(&output))
	cmd.AddCommand(c.editMoveNodeCommand(&output))
	cmd.AddCommand(c.editAddEdgeCommand(&output))
	cmd.AddCommand(c.editRemoveEdgeCommand(&output))
	cmd.AddCommand(c.editCapacityCommand(&output))

	return cmd
}

// editProject loads a project, applies fn and writes the result.
func editProject(input, output string, fn func(net *network.Network) error) error {
	net, err := loadProject(input)
	if err != nil {
		return err
	}
	if err := fn(net); err != nil {
		return err
	}
	if output == "" {
		output = input
	}
	return saveProject(net, output)
}

func (c *CLI) editAddNodeCommand(output *string) *cobra.Command {
	var (
		name string
		x, y float64
		cost float64
	)
	cmd := &cobra.Command{
		Use:   "add-node [project]",
		Short: "Add a site with the next free id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editProject(args[0], *output, func(net *network.Network) error {
				nd, err := net.AddNode(name, network.Point{X: x, Y: y}, cost)
				if err != nil {
					return err
				}
				printSuccess("Added site %d (%s)", nd.ID, nd.Name)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "site name (default: Node<id>)")
	cmd.Flags().Float64Var(&x, "x", 0, "x coordinate")
	cmd.Flags().Float64Var(&y, "y", 0, "y coordinate")
	cmd.Flags().Float64Var(&cost, "cost", 0, "site cost")
	return cmd
}

func (c *CLI) editRemoveNodeCommand(output *string) *cobra.Command {
	return &cobra.Command{
		Use:   "remove-node [project] [id]",
		Short: "Remove a site and every link touching it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseNodeID(args[1])
			if err != nil {
				return err
			}
			return editProject(args[0], *output, func(net *network.Network) error {
				before := net.EdgeCount()
				if err := net.RemoveNode(id); err != nil {
					return err
				}
				printSuccess("Removed site %d and %d links", id, before-net.EdgeCount())
				return nil
			})
		},
	}
}

func (c *CLI) editMoveNodeCommand(output *string) *cobra.Command {
	var x, y float64
	cmd := &cobra.Command{
		Use:   "move-node [project] [id]",
		Short: "Move a site; existing link lengths are kept",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseNodeID(args[1])
			if err != nil {
				return err
			}
			return editProject(args[0], *output, func(net *network.Network) error {
				if err := net.MoveNode(id, network.Point{X: x, Y: y}); err != nil {
					return err
				}
				printSuccess("Moved site %d to (%g, %g)", id, x, y)
				return nil
			})
		},
	}
	cmd.Flags().Float64Var(&x, "x", 0, "new x coordinate")
	cmd.Flags().Float64Var(&y, "y", 0, "new y coordinate")
	return cmd
}

func (c *CLI) editAddEdgeCommand(output *string) *cobra.Command {
	return &cobra.Command{
		Use:   "add-edge [project] [from] [to]",
		Short: "Link two sites",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, b, err := parseNodePair(args[1], args[2])
			if err != nil {
				return err
			}
			return editProject(args[0], *output, func(net *network.Network) error {
				e, added, err := net.AddEdge(a, b)
				if err != nil {
					return err
				}
				if !added {
					printInfo("Sites %d and %d are already linked", a, b)
					return nil
				}
				printSuccess("Linked %d and %d (length %s)", a, b, strconv.FormatFloat(e.Length, 'f', 1, 64))
				return nil
			})
		},
	}
}

func (c *CLI) editRemoveEdgeCommand(output *string) *cobra.Command {
	return &cobra.Command{
		Use:   "remove-edge [project] [from] [to]",
		Short: "Remove the link between two sites",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, b, err := parseNodePair(args[1], args[2])
			if err != nil {
				return err
			}
			return editProject(args[0], *output, func(net *network.Network) error {
				if err := net.RemoveEdge(a, b); err != nil {
					return err
				}
				printSuccess("Removed link %d-%d", a, b)
				return nil
			})
		},
	}
}

func (c *CLI) editCapacityCommand(output *string) *cobra.Command {
	return &cobra.Command{
		Use:   "capacity [project] [from] [to] [capacity]",
		Short: "Override the capacity of a link",
		Long: `Override the capacity of a link and reprice it.

The capacity must be a catalog entry. A capacity below the link's current
flow is rejected, except 0, which switches the link off.`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, b, err := parseNodePair(args[1], args[2])
			if err != nil {
				return err
			}
			value, err := strconv.ParseFloat(args[3], 64)
			if err != nil {
				return errors.New(errors.ErrCodeInvalidInput, "invalid capacity %q", args[3])
			}
			opts, err := c.planningOptions(nil)
			if err != nil {
				return err
			}
			catalog, err := capacity.NewCatalog(opts.Catalog)
			if err != nil {
				return err
			}
			return editProject(args[0], *output, func(net *network.Network) error {
				e, ok := net.Edge(a, b)
				if !ok {
					return errors.New(errors.ErrCodeInvalidInput, "sites %d and %d are not linked", a, b)
				}
				e, err := capacity.Override(e, value, catalog, *opts.Costs)
				if err != nil {
					return err
				}
				if err := net.SetEdge(e); err != nil {
					return err
				}
				printSuccess("Link %d-%d capacity %s, cost %s", a, b, formatNumber(e.Capacity), formatMoney(e.Cost))
				return nil
			})
		},
	}
}
