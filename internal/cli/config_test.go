package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/scenetree/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigOverlay(t *testing.T) {
	path := writeConfig(t, `
[outline]
style = "ascii"

[explorer]
page_size = 25
`)

	cfg, err := loadConfig(path)
	require.NoError(t, err)

	want := DefaultConfig()
	want.Path = path
	want.Outline.Style = "ascii"
	want.Explorer.PageSize = 25
	assert.Equal(t, want, cfg)
}

func TestLoadConfigAllKeys(t *testing.T) {
	path := writeConfig(t, `
[outline]
style = " unicode "
root_connectors = true

[explorer]
page_size = 0
start_dir = "/models"

[serve]
addr = ":9000"
`)

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "unicode", cfg.Outline.Style)
	assert.True(t, cfg.Outline.RootConnectors)
	assert.Equal(t, "/models", cfg.Explorer.StartDir)
	assert.Equal(t, ":9000", cfg.Serve.Addr)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"syntax", "[outline\nstyle = 1"},
		{"wrong type", "[explorer]\npage_size = \"big\""},
		{"unknown key", "[outline]\ncolour = \"red\""},
		{"bad style", "[outline]\nstyle = \"fancy\""},
		{"negative page size", "[explorer]\npage_size = -1"},
		{"empty addr", "[serve]\naddr = \"\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig), "error: %v", err)
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig))
}

func TestFindConfigExplicit(t *testing.T) {
	assert.Equal(t, "/etc/custom.toml", findConfig("/etc/custom.toml"))
}
