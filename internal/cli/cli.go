// Package cli implements the netplan command-line interface.
//
// # Commands
//
//   - build: connect a project's sites with a resilient topology
//   - routes: list or browse the hop-count routes of a project
//   - plan: route demands, size the links and evaluate the result
//   - evaluate: report cost and delay of an already planned project
//   - render: draw a project as DOT, SVG or PNG
//   - edit: add, move and remove sites and links, override capacities
//   - plans: list, show and delete stored plans
//   - serve: run the planning HTTP API
//   - cache: manage the result cache
//
// Settings come from the config file (see package config); flags override
// them per run. All commands support --verbose (-v) for debug logging.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/netplan/pkg/buildinfo"
	"github.com/matzehuels/netplan/pkg/cache"
	"github.com/matzehuels/netplan/pkg/config"
	"github.com/matzehuels/netplan/pkg/network"
	"github.com/matzehuels/netplan/pkg/pipeline"
	"github.com/matzehuels/netplan/pkg/project"
	"github.com/matzehuels/netplan/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "netplan"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	verbose    bool
	noCache    bool
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "netplan plans and evaluates network topologies",
		Long: `netplan connects a set of sites with a cost-minimal, resilient topology,
routes traffic demands over it, sizes every link from a capacity catalog and
reports the resulting cost and delay.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "config file (default: $NETPLAN_CONFIG or ~/.config/netplan/config.toml)")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	flags.BoolVar(&c.noCache, "no-cache", false, "disable result caching")

	root.AddCommand(c.buildCommand())
	root.AddCommand(c.routesCommand())
	root.AddCommand(c.planCommand())
	root.AddCommand(c.evaluateCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.plansCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Configuration
// =============================================================================

// config loads the configuration once. The configured log level applies
// unless --verbose was given.
func (c *CLI) config() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	if !c.verbose {
		if level, err := log.ParseLevel(cfg.Log.Level); err == nil {
			c.SetLogLevel(level)
		}
	}
	c.cfg = cfg
	return cfg, nil
}

// planningOptions merges flag values over the configured planning options.
func (c *CLI) planningOptions(flags *planFlags) (pipeline.Options, error) {
	cfg, err := c.config()
	if err != nil {
		return pipeline.Options{}, err
	}
	opts := cfg.PlanningOptions()
	if flags != nil {
		opts = opts.WithOverrides(&flags.opts)
	}
	opts.Logger = c.Logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return pipeline.Options{}, err
	}
	return opts, nil
}

// =============================================================================
// Runner, Cache and Store Factories
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context) (*pipeline.Runner, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	rc, err := c.newCache(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	var keyer cache.Keyer
	if cfg.Cache.Prefix != "" {
		keyer = cache.NewScopedKeyer(nil, cfg.Cache.Prefix)
	}
	runner := pipeline.NewRunner(rc, keyer, c.Logger)
	runner.TTL = cfg.Cache.TTL
	return runner, nil
}

func (c *CLI) newCache(ctx context.Context, cfg *config.Config) (cache.Cache, error) {
	if c.noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Cache.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		return cache.DialRedis(ctx, cache.RedisOptions{Addr: cfg.Cache.RedisAddr, DB: cfg.Cache.RedisDB})
	}
	dir := cfg.Cache.Dir
	if dir == "" {
		d, err := cacheDir()
		if err != nil {
			c.Logger.Debug("no cache directory, caching disabled", "error", err)
			return cache.NewNullCache(), nil
		}
		dir = d
	}
	return cache.NewFileCache(dir)
}

// openStore opens the configured plan store.
func (c *CLI) openStore(ctx context.Context) (store.Store, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	if cfg.Store.Backend == config.BackendMongo {
		return store.DialMongo(ctx, store.MongoOptions{URI: cfg.Store.MongoURI, Database: cfg.Store.Database})
	}
	return store.NewFileStore(cfg.Store.Dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/netplan/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// derivedPath replaces the extension of input: derivedPath("net.yaml",
// ".planned", ".yaml") is "net.planned.yaml".
func derivedPath(input, suffix, ext string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + suffix + ext
}

// =============================================================================
// Project Helpers
// =============================================================================

func loadProject(path string) (*network.Network, error) {
	net, err := project.Import(path)
	if err != nil {
		return nil, fmt.Errorf("load project %s: %w", path, err)
	}
	return net, nil
}

func saveProject(net *network.Network, path string) error {
	if err := project.Export(net, path); err != nil {
		return fmt.Errorf("write project %s: %w", path, err)
	}
	return nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{"svg"}
	}
	return strings.Split(s, ",")
}
