package cli

import (
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"

	"github.com/matzehuels/scenetree/pkg/errors"
	"github.com/matzehuels/scenetree/pkg/pipeline"
)

// configFile is the config path relative to the XDG config directories.
var configFile = filepath.Join(appName, "config.toml")

// Config holds user preferences read from config.toml.
type Config struct {
	Outline  OutlineConfig
	Explorer ExplorerConfig
	Serve    ServeConfig

	// Path is the file the config was read from, or "" for the defaults.
	Path string
}

// OutlineConfig controls the text outline.
type OutlineConfig struct {
	Style          string // "unicode" or "ascii"
	RootConnectors bool
}

// ExplorerConfig controls the interactive explorer.
type ExplorerConfig struct {
	PageSize int    // rows per page; 0 fits the terminal
	StartDir string // initial file picker directory; "" is the working directory
}

// ServeConfig controls the serve command.
type ServeConfig struct {
	Addr string
}

// DefaultConfig returns the configuration used when no file sets a key.
func DefaultConfig() Config {
	return Config{
		Outline:  OutlineConfig{Style: pipeline.DefaultStyle},
		Explorer: ExplorerConfig{PageSize: 0},
		Serve:    ServeConfig{Addr: "127.0.0.1:8080"},
	}
}

// config.toml key mapping.
type fileConfig struct {
	Outline struct {
		Style          string `toml:"style"`
		RootConnectors bool   `toml:"root_connectors"`
	} `toml:"outline"`
	Explorer struct {
		PageSize int    `toml:"page_size"`
		StartDir string `toml:"start_dir"`
	} `toml:"explorer"`
	Serve struct {
		Addr string `toml:"addr"`
	} `toml:"serve"`
}

// findConfig returns the config path to load: explicit if set, else the
// first config.toml found in the XDG config directories, else "".
func findConfig(explicit string) string {
	if explicit != "" {
		return explicit
	}
	path, err := xdg.SearchConfigFile(configFile)
	if err != nil {
		return ""
	}
	return path
}

// loadConfig reads path over the defaults. An empty path yields the
// defaults. Keys absent from the file keep their default values.
func loadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load config %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "config %s: unknown key %q", path, undecoded[0].String())
	}
	cfg.Path = path

	if meta.IsDefined("outline", "style") {
		cfg.Outline.Style = strings.TrimSpace(raw.Outline.Style)
	}
	if meta.IsDefined("outline", "root_connectors") {
		cfg.Outline.RootConnectors = raw.Outline.RootConnectors
	}
	if meta.IsDefined("explorer", "page_size") {
		cfg.Explorer.PageSize = raw.Explorer.PageSize
	}
	if meta.IsDefined("explorer", "start_dir") {
		cfg.Explorer.StartDir = strings.TrimSpace(raw.Explorer.StartDir)
	}
	if meta.IsDefined("serve", "addr") {
		cfg.Serve.Addr = strings.TrimSpace(raw.Serve.Addr)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if err := pipeline.ValidateStyle(c.Outline.Style); err != nil {
		return err
	}
	if c.Explorer.PageSize < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "explorer.page_size must not be negative")
	}
	if c.Serve.Addr == "" {
		return errors.New(errors.ErrCodeInvalidInput, "serve.addr must not be empty")
	}
	return nil
}
