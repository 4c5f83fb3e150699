// Package cli implements the rackplan command-line interface.
//
// The CLI wraps the planning pipeline in pkg/pipeline: arrange runs the
// whole thing from a proposal export, items arranges an already-resolved
// equipment list, catalog queries and maintains the spec backends, and
// serve exposes the same pipeline over HTTP.
//
// # Commands
//
//   - arrange: plan rack layouts from a proposal CSV
//   - items: arrange a prepared JSON equipment list
//   - catalog: look up specs and import catalog entries
//   - cache: manage the resolved-spec cache
//   - serve: run the planning HTTP API
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Styled
// status output goes to stdout; log lines go to the logger's writer.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/racklabs/rackplan/internal/config"
	"github.com/racklabs/rackplan/pkg/buildinfo"
	"github.com/racklabs/rackplan/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "rackplan"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
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
		Use:   "rackplan",
		Short: "Rackplan turns AV proposals into rack elevations",
		Long: `Rackplan reads an integrator proposal export, resolves each product's
rack dimensions from the configured catalogs (with AI inference and
physical estimation as fallbacks), and arranges the equipment into
ventilated rack layouts.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "",
		"config file (default ~/.config/rackplan/rackplan.toml)")

	root.AddCommand(c.arrangeCommand())
	root.AddCommand(c.itemsCommand())
	root.AddCommand(c.catalogCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the configuration once per invocation. Subcommands
// run after this, so c.cfg is always set inside RunE.
func (c *CLI) loadConfig() error {
	if c.cfg != nil {
		return nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}

// newRunner assembles the planning pipeline from the loaded
// configuration. The caller owns the runner and must Close it.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	specCache, err := c.cfg.SpecCache(noCache)
	if err != nil {
		return nil, err
	}
	runner := pipeline.NewRunner(c.cfg.Sources(ctx, c.Logger), specCache, c.cfg.Keyer(), c.Logger)
	runner.Splitter = c.cfg.Splitter()
	return runner, nil
}

// applyConfig overlays configured arrange defaults onto opts for flags
// the user left untouched. The arrangement geometry has no flags and
// always comes from the file.
func (c *CLI) applyConfig(cmd *cobra.Command, opts *pipeline.Options) {
	seed := c.cfg.Options()
	if seed.Project != "" && !cmd.Flags().Changed("project") {
		opts.Project = seed.Project
	}
	if seed.Capacity != 0 && !cmd.Flags().Changed("capacity") {
		opts.Capacity = seed.Capacity
	}
	if seed.Margin != 0 && !cmd.Flags().Changed("margin") {
		opts.Margin = seed.Margin
	}
	opts.TopBuffer = seed.TopBuffer
	opts.BottomBuffer = seed.BottomBuffer
	opts.VentInterval = seed.VentInterval
	opts.UpgradeCapacity = seed.UpgradeCapacity
}
