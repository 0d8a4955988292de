package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/scenetree/pkg/cache"
	"github.com/matzehuels/scenetree/pkg/observability"
	"github.com/matzehuels/scenetree/pkg/render"
	"github.com/matzehuels/scenetree/pkg/scene"
	"github.com/matzehuels/scenetree/pkg/tree"
)

// Runner encapsulates pipeline execution with caching, logging and hooks.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner with the given artifact cache.
// If c is nil, a NullCache is used (caching disabled).
// If logger is nil, the default logger is used.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute runs the complete import → flatten → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Import
	importStart := time.Now()
	doc, err := r.Import(ctx, opts.Path)
	if err != nil {
		return nil, fmt.Errorf("import: %w", err)
	}
	result.Document = doc
	result.Stats.ImportTime = time.Since(importStart)

	// Stage 2: Flatten
	flattenStart := time.Now()
	result.Rows = r.Outline(ctx, doc)
	result.Stats.FlattenTime = time.Since(flattenStart)
	result.Stats.Rows = len(result.Rows)
	result.Stats.MaxDepth = tree.MaxDepth(result.Rows)

	// Stage 3: Render
	renderStart := time.Now()
	artifact, hit, err := r.RenderWithCacheInfo(ctx, result.Rows, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifact = artifact
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = hit

	r.Logger.Info("rendered outline",
		"format", opts.Format,
		"bytes", len(artifact),
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Import opens and validates the glTF document at path.
func (r *Runner) Import(ctx context.Context, path string) (*scene.Document, error) {
	hooks := observability.Pipeline()
	hooks.OnImportStart(ctx, path)

	start := time.Now()
	doc, err := scene.Import(path)
	elapsed := time.Since(start)

	nodes := 0
	if err == nil {
		nodes = len(doc.GLTF.Nodes)
	}
	hooks.OnImportComplete(ctx, path, nodes, elapsed, err)

	if err != nil {
		r.Logger.Debug("import failed", "path", path, "err", err)
		return nil, err
	}
	r.Logger.Info("imported document",
		"file", doc.Name(),
		"scenes", len(doc.GLTF.Scenes),
		"nodes", nodes,
		"duration", elapsed)
	return doc, nil
}

// Outline flattens the scene graph of doc.
func (r *Runner) Outline(ctx context.Context, doc *scene.Document) []tree.Row[scene.NodeInfo] {
	return Flatten(ctx, r.Logger, "scene", scene.NewTraverser(doc.GLTF))
}

// Flatten runs [tree.Flatten] over t and reports the walk to the pipeline
// hooks under the given source name.
func Flatten[T any](ctx context.Context, logger *log.Logger, source string, t tree.Traverser[T]) []tree.Row[T] {
	start := time.Now()
	rows := tree.Flatten(t)
	elapsed := time.Since(start)

	depth := tree.MaxDepth(rows)
	observability.Pipeline().OnFlatten(ctx, source, len(rows), depth, elapsed)
	if logger != nil {
		logger.Debug("flattened", "source", source, "rows", len(rows), "max_depth", depth, "duration", elapsed)
	}
	return rows
}

// Render produces the artifact for opts.Format from scene rows.
// opts.Path is ignored.
func (r *Runner) Render(ctx context.Context, rows []tree.Row[scene.NodeInfo], opts Options) ([]byte, error) {
	out, _, err := r.RenderWithCacheInfo(ctx, rows, opts)
	return out, err
}

// RenderWithCacheInfo renders like [Runner.Render] and reports whether the
// artifact came from the cache. Only Graphviz formats are cached; the others
// are cheaper to produce than to look up.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, rows []tree.Row[scene.NodeInfo], opts Options) ([]byte, bool, error) {
	if err := opts.validateRender(); err != nil {
		return nil, false, err
	}

	start := time.Now()
	var key string
	if render.UsesGraphviz(opts.Format) {
		key = cache.ArtifactKey(opts.Format, renderScale, render.ToDOT(rows, scene.NodeInfo.Label))
		if out, ok := r.cached(ctx, key); ok {
			observability.Pipeline().OnRender(ctx, opts.Format, len(out), time.Since(start), nil)
			return out, true, nil
		}
	}

	out, err := render.Render(ctx, opts.Format, rows, scene.NodeInfo.Label, render.Options{
		Style: TextStyle(opts.Style, opts.RootConnectors),
		Scale: renderScale,
	})
	observability.Pipeline().OnRender(ctx, opts.Format, len(out), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if key != "" {
		if err := r.Cache.Set(ctx, key, out, artifactTTL); err != nil {
			r.Logger.Warn("cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "artifact", len(out))
		}
	}
	return out, false, nil
}

// cached looks key up in the cache. Read errors count as misses.
func (r *Runner) cached(ctx context.Context, key string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Debug("cache read failed", "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "artifact")
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "artifact")
	return data, true
}
