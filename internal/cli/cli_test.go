package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/scenetree/pkg/errors"
	"github.com/matzehuels/scenetree/pkg/render"
)

const carOutline = "" +
	"Scene [default]\n" +
	"├── Body\n" +
	"│   └── Door\n" +
	"└── Light\n"

func writeCar(t *testing.T) string {
	t.Helper()
	doc := &gltf.Document{
		Asset:  gltf.Asset{Version: "2.0"},
		Scene:  gltf.Index(0),
		Scenes: []*gltf.Scene{{Name: "Scene", Nodes: []int{0, 2}}},
		Nodes: []*gltf.Node{
			{Name: "Body", Children: []int{1}},
			{Name: "Door"},
			{Name: "Light"},
		},
	}
	path := filepath.Join(t.TempDir(), "car.gltf")
	require.NoError(t, gltf.Save(doc, path))
	return path
}

// execute runs the root command with an empty config file so the user's own
// configuration never leaks into tests.
func execute(t *testing.T, config string, args ...string) (string, error) {
	t.Helper()
	if config == "" {
		config = writeConfig(t, "")
	}

	var out bytes.Buffer
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{"--config", config, "--no-cache"}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestDumpTree(t *testing.T) {
	out, err := execute(t, "", "--dump-tree", writeCar(t))
	require.NoError(t, err)
	assert.Equal(t, carOutline, out)
}

func TestDumpTreeASCIIConfig(t *testing.T) {
	config := writeConfig(t, "[outline]\nstyle = \"ascii\"\n")

	out, err := execute(t, config, "--dump-tree", writeCar(t))
	require.NoError(t, err)
	assert.Equal(t, "Scene [default]\n|-- Body\n|   `-- Door\n`-- Light\n", out)
}

func TestDumpTreeRequiresFile(t *testing.T) {
	_, err := execute(t, "", "--dump-tree")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
	assert.Equal(t, "file is required with --dump-tree", errors.UserMessage(err))
}

func TestDumpTreeMissingFile(t *testing.T) {
	_, err := execute(t, "", "--dump-tree", filepath.Join(t.TempDir(), "missing.glb"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound), "got %v", err)
}

func TestStatsJSON(t *testing.T) {
	out, err := execute(t, "", "stats", "--json", writeCar(t))
	require.NoError(t, err)

	var report statsReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "car.gltf", report.File)
	assert.Equal(t, 3, report.Stats.Nodes)
	assert.Equal(t, 1, report.Stats.Scenes)
	assert.Equal(t, 4, report.Rows)
	assert.Equal(t, 2, report.MaxDepth)
}

func TestStatsText(t *testing.T) {
	out, err := execute(t, "", "stats", writeCar(t))
	require.NoError(t, err)
	assert.Contains(t, out, "car.gltf")
	assert.Contains(t, out, "Has default scene")
	assert.Contains(t, out, "4 rows")
}

func TestExportStdout(t *testing.T) {
	out, err := execute(t, "", "export", "-f", "json", writeCar(t))
	require.NoError(t, err)

	var doc render.JSONDocument
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Rows, 4)
	assert.Equal(t, "Door", doc.Rows[2].Label)
	assert.Equal(t, 1, doc.Rows[2].Parent)
}

func TestExportToFile(t *testing.T) {
	output := filepath.Join(t.TempDir(), "car.dot")

	out, err := execute(t, "", "export", "-f", "dot", "-o", output, writeCar(t))
	require.NoError(t, err)
	assert.Contains(t, out, output)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), `r1 [label="Body"];`)
}

func TestExportErrors(t *testing.T) {
	car := writeCar(t)

	_, err := execute(t, "", "export", "-f", "bmp", car)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat), "got %v", err)

	_, err = execute(t, "", "export", "-f", "png", car)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "got %v", err)

	_, err = execute(t, "", "export", "--style", "fancy", car)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidStyle), "got %v", err)
}

func TestOutline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forest.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"name": "R1", "children": [{"name": "A"}, {"name": "B"}]},
		{"name": "R2"}
	]`), 0o644))

	out, err := execute(t, "", "outline", path)
	require.NoError(t, err)
	assert.Equal(t, "R1\n├── A\n└── B\nR2\n", out)
}

func TestOutlineInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forest.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name": "R", "kids": []}`), 0o644))

	_, err := execute(t, "", "outline", path)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidDocument), "got %v", err)
}

func TestFS(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "a", "b"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a", "f.txt"), []byte("hello"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden"), nil, 0o644))

	out, err := execute(t, "", "fs", dir)
	require.NoError(t, err)
	assert.Equal(t, dir+"/\n└── a/\n    └── b/\n", out)

	out, err = execute(t, "", "fs", "--files", dir)
	require.NoError(t, err)
	assert.Equal(t, dir+"/\n└── a/\n    ├── b/\n    └── f.txt (5b)\n", out)

	out, err = execute(t, "", "fs", "--files", "--all", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "├── .hidden (empty)\n")
}

func TestFSNotADirectory(t *testing.T) {
	_, err := execute(t, "", "fs", writeCar(t))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidPath), "got %v", err)
}

func TestInvalidConfig(t *testing.T) {
	config := writeConfig(t, "[outline]\ncolour = \"red\"\n")

	_, err := execute(t, config, "stats", writeCar(t))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig), "got %v", err)
}

func TestExportForestRoundTrip(t *testing.T) {
	forest := filepath.Join(t.TempDir(), "car.json")

	_, err := execute(t, "", "export", "-f", "forest", "-o", forest, writeCar(t))
	require.NoError(t, err)

	out, err := execute(t, "", "outline", forest)
	require.NoError(t, err)
	assert.Equal(t, carOutline, out)
}

func TestExportForestStdout(t *testing.T) {
	out, err := execute(t, "", "export", "-f", "forest", writeCar(t))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "[\n"))
	assert.Contains(t, out, `"name": "Door"`)
}
