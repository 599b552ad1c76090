package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/netplan/pkg/store"
)

// plansCommand creates the command group for stored plans.
func (c *CLI) plansCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plans",
		Short: "Manage stored plans",
		Long: `Manage stored plans.

Plans are saved with 'plan --save NAME' or through the HTTP API. They live in
the configured store: local files by default, or MongoDB.`,
	}

	cmd.AddCommand(c.plansListCommand())
	cmd.AddCommand(c.plansShowCommand())
	cmd.AddCommand(c.plansDeleteCommand())

	return cmd
}

func (c *CLI) plansListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored plans, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(ctx context.Context, st store.Store) error {
				plans, err := st.List(ctx)
				if err != nil {
					return err
				}
				if len(plans) == 0 {
					printInfo("No stored plans")
					return nil
				}
				fmt.Println(plansTable(plans))
				return nil
			})
		},
	}
}

func (c *CLI) plansShowCommand() *cobra.Command {
	var (
		export string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show the evaluation of a stored plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(ctx context.Context, st store.Store) error {
				plan, err := st.Get(ctx, args[0])
				if err != nil {
					return err
				}
				if asJSON {
					enc := json.NewEncoder(os.Stdout)
					enc.SetIndent("", "  ")
					return enc.Encode(plan)
				}
				return c.showPlan(plan, export)
			})
		},
	}
	cmd.Flags().StringVarP(&export, "export", "e", "", "write the planned project to this file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full plan record as JSON")
	return cmd
}

func (c *CLI) showPlan(plan *store.Plan, export string) error {
	fmt.Println(StyleTitle.Render(plan.Name) + " " + StyleDim.Render(plan.ID))
	printKeyValue("Created", plan.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	printKeyValue("Demands", fmt.Sprint(len(plan.Demands)))
	printWarnings(plan.Warnings)
	printNewline()

	opts, err := c.planningOptions(nil)
	if err != nil {
		return err
	}
	printReport(plan.Report, *opts.Thresholds)

	if export != "" {
		net, err := plan.Project.Network()
		if err != nil {
			return fmt.Errorf("decode stored project: %w", err)
		}
		if err := saveProject(net, export); err != nil {
			return err
		}
		printNewline()
		printFile(export)
	}
	return nil
}

func (c *CLI) plansDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a stored plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(ctx context.Context, st store.Store) error {
				if err := st.Delete(ctx, args[0]); err != nil {
					return err
				}
				printSuccess("Deleted plan %s", args[0])
				return nil
			})
		},
	}
}

func (c *CLI) withStore(ctx context.Context, fn func(context.Context, store.Store) error) error {
	st, err := c.openStore(ctx)
	if err != nil {
		return fmt.Errorf("open plan store: %w", err)
	}
	defer st.Close()
	return fn(ctx, st)
}
