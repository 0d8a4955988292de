package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/scenetree/pkg/cache"
	"github.com/matzehuels/scenetree/pkg/errors"
	"github.com/matzehuels/scenetree/pkg/observability"
	"github.com/matzehuels/scenetree/pkg/render"
)

func writeDoc(t *testing.T, dir string, nodes ...*gltf.Node) string {
	t.Helper()
	roots := make([]int, 0, len(nodes))
	for i := range nodes {
		roots = append(roots, i)
	}
	doc := &gltf.Document{
		Asset:  gltf.Asset{Version: "2.0"},
		Scene:  gltf.Index(0),
		Scenes: []*gltf.Scene{{Name: "Scene", Nodes: roots}},
		Nodes:  nodes,
	}
	path := filepath.Join(dir, "car.gltf")
	require.NoError(t, gltf.Save(doc, path))
	return path
}

type fixture struct {
	srv     *Server
	ts      *httptest.Server
	metrics *Metrics
	path    string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	observability.SetPipelineHooks(m)
	observability.SetCacheHooks(m)
	observability.SetHTTPHooks(m)
	t.Cleanup(observability.Reset)

	path := writeDoc(t, t.TempDir(), &gltf.Node{Name: "Body"}, &gltf.Node{Name: "Light"})
	srv, err := New(context.Background(), log.New(io.Discard), path, Options{Gatherer: reg, Cache: cache.NewMemoryCache(8)})
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return &fixture{srv: srv, ts: ts, metrics: m, path: path}
}

func (f *fixture) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(f.ts.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestTextOutline(t *testing.T) {
	f := newFixture(t)

	resp, body := f.get(t, "/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/plain; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Equal(t, "Scene [default]\n├── Body\n└── Light\n", body)
}

func TestRows(t *testing.T) {
	f := newFixture(t)

	resp, body := f.get(t, "/api/rows")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var doc render.JSONDocument
	require.NoError(t, json.Unmarshal([]byte(body), &doc))
	require.Len(t, doc.Rows, 3)
	assert.Equal(t, "Scene [default]", doc.Rows[0].Label)
	assert.Equal(t, -1, doc.Rows[0].Parent)
	assert.Equal(t, "Light", doc.Rows[2].Label)
	assert.Equal(t, 1, doc.Rows[2].Depth)
	assert.Equal(t, 0, doc.Rows[2].Parent)
}

func TestStats(t *testing.T) {
	f := newFixture(t)

	resp, body := f.get(t, "/api/stats")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got statsResponse
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.Equal(t, "car.gltf", got.File)
	assert.Equal(t, 2, got.Stats.Nodes)
	assert.Equal(t, 1, got.Stats.Scenes)
	assert.True(t, got.Stats.HasDefaultScene)
	assert.Equal(t, 3, got.Rows)
	assert.Equal(t, 1, got.MaxDepth)
}

func TestExport(t *testing.T) {
	f := newFixture(t)

	resp, body := f.get(t, "/api/export/dot")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/vnd.graphviz", resp.Header.Get("Content-Type"))
	assert.True(t, strings.HasPrefix(body, "digraph"), body)
	assert.Contains(t, body, "r0 -> r1;")

	resp, _ = f.get(t, "/api/export/text")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = f.get(t, "/api/export/bmp")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var e errorResponse
	require.NoError(t, json.Unmarshal([]byte(body), &e))
	assert.Equal(t, errors.ErrCodeInvalidFormat, e.Code)
}

func TestReload(t *testing.T) {
	f := newFixture(t)

	writeDoc(t, filepath.Dir(f.path), &gltf.Node{Name: "Body"})
	resp, err := http.Post(f.ts.URL+"/api/reload", "", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	_, body := f.get(t, "/")
	assert.Equal(t, "Scene [default]\n└── Body\n", body)
}

func TestReloadKeepsOutlineOnFailure(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, os.WriteFile(f.path, []byte("not json"), 0o644))
	resp, err := http.Post(f.ts.URL+"/api/reload", "", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	_, body := f.get(t, "/")
	assert.Contains(t, body, "Light")
}

func TestNewErrors(t *testing.T) {
	logger := log.New(io.Discard)

	_, err := New(context.Background(), logger, filepath.Join(t.TempDir(), "missing.glb"), Options{})
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound), "got %v", err)

	_, err = New(context.Background(), logger, "car.glb", Options{Style: "fancy"})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidStyle), "got %v", err)
}

func TestMetrics(t *testing.T) {
	f := newFixture(t)

	f.get(t, "/healthz")
	f.get(t, "/api/export/json")

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.imports.WithLabelValues("ok")))
	assert.Equal(t, 2.0, testutil.ToFloat64(f.metrics.importedNodes))
	assert.Equal(t, 3.0, testutil.ToFloat64(f.metrics.flattenRows.WithLabelValues("scene")))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.renders.WithLabelValues("json", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.httpRequests.WithLabelValues("GET", "/api/export/{format}", "200")))
	assert.Equal(t, 0.0, testutil.ToFloat64(f.metrics.httpInFlight))

	_, body := f.get(t, "/metrics")
	assert.Contains(t, body, "scenetree_http_requests_total")
	assert.Contains(t, body, `route="/healthz"`)
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	f := newFixture(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.srv.ListenAndServe(ctx, "127.0.0.1:0") }()
	cancel()
	assert.NoError(t, <-done)
}
