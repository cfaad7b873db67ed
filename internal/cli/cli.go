// Package cli implements the cardsheet command-line interface.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cardsheet/pkg/buildinfo"
	"github.com/matzehuels/cardsheet/pkg/canvas"
	"github.com/matzehuels/cardsheet/pkg/config"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display and completions.
const appName = "cardsheet"

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
	cfg        *config.Config
	levelSet   bool // an explicit level wins over the configured one
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level. The level set here takes
// precedence over log.level from the config file.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	c.levelSet = true
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Cardsheet replays card moves, shifts and swaps on a grid",
		Long: `Cardsheet is a card board engine. Cards sit on the cells of sheets and are
moved, shifted, swapped and clustered. The CLI replays TOML scenarios against
the engine and prints the resulting boards.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (default $XDG_CONFIG_HOME/cardsheet/config.toml)")
	_ = root.MarkPersistentFlagFilename("config", "toml")

	root.AddCommand(c.runCommand())
	root.AddCommand(c.clustersCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config & Canvas Factory
// =============================================================================

// loadConfig resolves the configuration once per CLI.
func (c *CLI) loadConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := config.Resolve(c.configPath)
	if err != nil {
		return nil, err
	}
	if !c.levelSet {
		if level, err := log.ParseLevel(cfg.Log.Level); err == nil {
			c.Logger.SetLevel(level)
		}
	}
	c.cfg = cfg
	return cfg, nil
}

// newCanvas creates a canvas that logs through the CLI logger and records
// history into j.
func (c *CLI) newCanvas(cfg *config.Config, j *journal) *canvas.Canvas {
	opts := []canvas.Option{
		canvas.WithConfig(cfg),
		canvas.WithLogger(c.Logger),
	}
	if j != nil {
		opts = append(opts, canvas.WithHistory(j))
	}
	return canvas.New(opts...)
}
