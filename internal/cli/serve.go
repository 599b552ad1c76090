package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/netplan/internal/api"
	"github.com/matzehuels/netplan/pkg/metrics"
	"github.com/matzehuels/netplan/pkg/observability"
)

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr  string
		flags planFlags
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the planning HTTP API",
		Long: `Run the planning HTTP API.

Every request carries its own project; the server shares only the result
cache and the plan store. The planning flags set the defaults requests start
from. Prometheus metrics are served at /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, &flags)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	addPlanFlags(cmd, &flags)

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, flags *planFlags) error {
	cfg, err := c.config()
	if err != nil {
		return err
	}
	opts, err := c.planningOptions(flags)
	if err != nil {
		return err
	}
	if addr == "" {
		addr = cfg.Server.Addr
	}

	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	st, err := c.openStore(ctx)
	if err != nil {
		return fmt.Errorf("open plan store: %w", err)
	}
	defer st.Close()

	reg := metrics.NewRegistry()
	observability.SetPipelineHooks(reg)
	observability.SetCacheHooks(reg)
	observability.SetAPIHooks(reg)
	defer observability.Reset()

	logger := loggerFromContext(ctx)
	srv := api.New(api.Config{
		Runner:   runner,
		Store:    st,
		Defaults: opts,
		Metrics:  reg.Handler(),
		Logger:   logger,
	})

	logger.Info("serving", "addr", addr, "cache", cfg.Cache.Backend, "store", cfg.Store.Backend)
	return srv.ListenAndServe(ctx, addr, cfg.Server.ReadTimeout, cfg.Server.WriteTimeout)
}
