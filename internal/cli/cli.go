// Package cli implements the aepplanner command-line interface.
//
// # Commands
//
//   - analyze: reconstruct and print the field tree of an XDM schema export
//   - graph: derive and lay out the architecture graph of a project
//   - export: write the graph as Mermaid, DOT, SVG, PNG, PDF or JSON
//   - project: create, inspect, validate and edit project files
//   - import: merge Schema Registry and Catalog payloads into a project
//   - serve: run the HTTP API
//   - cache: manage the layout cache
//
// # Configuration
//
// Settings are read from $XDG_CONFIG_HOME/aepplanner/config.toml (or
// --config). Flags override file values.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// logs pipeline events through the observability hooks.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/aepplanner/pkg/buildinfo"
	"github.com/matzehuels/aepplanner/pkg/cache"
	"github.com/matzehuels/aepplanner/pkg/observability"
	"github.com/matzehuels/aepplanner/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "aepplanner"

	// defaultProjectFile is used when neither an argument, --project nor the
	// config names a project.
	defaultProjectFile = "aepplanner.json"
)

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
	Config Config

	configPath string
	project    string
	noCache    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level. Debug also routes pipeline
// events to the log.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		observability.NewLogHooks(c.Logger).Register()
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "aepplanner plans Adobe Experience Platform data architectures",
		Long:         `aepplanner reviews XDM schema exports as field trees and draws the flow from ingestion sources through datasets and schemas into the Unified Profile.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/aepplanner/config.toml)")
	root.PersistentFlags().StringVarP(&c.project, "project", "p", "", "project file (.json, .toml, .yaml)")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable the layout cache")

	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.projectCommand())
	root.AddCommand(c.importCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if c.Config.Cache.RedisURL != "" && !c.noCache {
		// A Redis instance may be shared with other tools.
		keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), appName+":")
	}
	return pipeline.NewRunner(ch, keyer, c.Logger), nil
}

// newCache picks the cache backend: none with --no-cache, Redis when
// configured, else files under the cache directory.
func (c *CLI) newCache(ctx context.Context) (cache.Cache, error) {
	if c.noCache {
		return cache.NewNullCache(), nil
	}
	if url := c.Config.Cache.RedisURL; url != "" {
		return cache.NewRedisCache(ctx, url)
	}
	dir := c.Config.Cache.Dir
	if dir == "" {
		d, err := cacheDir()
		if err != nil {
			c.Logger.Warn("no cache directory, caching disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		dir = d
	}
	return cache.NewFileCache(dir)
}

// pipelineOptions returns run options derived from the config.
func (c *CLI) pipelineOptions(refresh bool) pipeline.Options {
	return pipeline.Options{TTL: c.Config.Cache.TTL.Duration, Refresh: refresh}
}

// projectPath resolves the project file: explicit argument, then
// --project, then the config, then ./aepplanner.json.
func (c *CLI) projectPath(args []string) string {
	switch {
	case len(args) > 0 && args[0] != "":
		return args[0]
	case c.project != "":
		return c.project
	case c.Config.Project != "":
		return c.Config.Project
	}
	return defaultProjectFile
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/aepplanner/).
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

// configDir returns the config directory using XDG standard (~/.config/aepplanner/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
