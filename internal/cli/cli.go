package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/scenetree/pkg/buildinfo"
	"github.com/matzehuels/scenetree/pkg/cache"
	"github.com/matzehuels/scenetree/pkg/errors"
	"github.com/matzehuels/scenetree/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "scenetree"

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

	verbose    bool
	noCache    bool
	configPath string
}

// New creates a new CLI instance with a default logger and configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
//
// Without arguments the root command opens the interactive explorer. With a
// file it pre-loads that document, and with --dump-tree it prints the scene
// graph outline instead of starting the explorer.
func (c *CLI) RootCommand() *cobra.Command {
	var dumpTree bool

	root := &cobra.Command{
		Use:   "scenetree [file]",
		Short: "Scenetree explores the scene graph of glTF documents",
		Long: `Scenetree shows the scenes and node hierarchy of glTF 2.0 documents
(.gltf and .glb) as an indented outline.

Run it without arguments to pick a document in the interactive explorer, or
pass --dump-tree to print the outline and exit.`,
		Version:      buildinfo.Version,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if dumpTree {
				if len(args) == 0 {
					return errors.New(errors.ErrCodeInvalidInput, "file is required with --dump-tree")
				}
				return c.runDump(cmd, args[0])
			}
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return c.runExplorer(cmd.Context(), path)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable the rendered artifact cache")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/scenetree/config.toml)")
	root.Flags().BoolVar(&dumpTree, "dump-tree", false, "print the scene graph outline instead of opening the explorer")

	// Register all subcommands
	root.AddCommand(c.statsCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.outlineCommand())
	root.AddCommand(c.fsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup applies the log level, loads the configuration and attaches the
// logger to the command context.
func (c *CLI) setup(cmd *cobra.Command) error {
	c.SetLogLevel(resolveLevel(c.verbose))

	cfg, err := loadConfig(findConfig(c.configPath))
	if err != nil {
		return err
	}
	c.Config = cfg
	if cfg.Path != "" {
		c.Logger.Debug("loaded config", "path", cfg.Path)
	}

	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.newCache(), c.Logger)
}

// newCache returns the artifact cache below the XDG cache directory, or a
// NullCache with --no-cache or when the directory cannot be created.
func (c *CLI) newCache() cache.Cache {
	if c.noCache {
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(cache.DefaultDir(appName))
	if err != nil {
		c.Logger.Debug("artifact cache disabled", "err", err)
		return cache.NewNullCache()
	}
	return fc
}

// =============================================================================
// Options Helpers
// =============================================================================

// outlineOptions returns pipeline options for path with the configured
// outline style. A non-empty style overrides the configuration.
func (c *CLI) outlineOptions(path, format, style string) pipeline.Options {
	if style == "" {
		style = c.Config.Outline.Style
	}
	return pipeline.Options{
		Path:           path,
		Format:         format,
		Style:          style,
		RootConnectors: c.Config.Outline.RootConnectors,
	}
}
