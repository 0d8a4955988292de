// Package pipeline provides the import → flatten → render pipeline for
// scenetree.
//
// The CLI commands, the interactive explorer and the HTTP server all go
// through a [Runner], so caching, logging and observability hooks behave the
// same regardless of the entry point.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Import: Open, decode and validate a glTF document ([scene.Import])
//  2. Flatten: Walk the scene graph into rows ([tree.Flatten])
//  3. Render: Produce an artifact in one output format ([render.Render])
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache.NewMemoryCache(64), logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Path:   "car.glb",
//	    Format: "svg",
//	})
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("car.svg", result.Artifact, 0o644)
//
// Run individual stages:
//
//	doc, err := runner.Import(ctx, "car.glb")
//	rows := runner.Outline(ctx, doc)
package pipeline

import (
	"time"

	"github.com/matzehuels/scenetree/pkg/errors"
	"github.com/matzehuels/scenetree/pkg/render"
	"github.com/matzehuels/scenetree/pkg/scene"
	"github.com/matzehuels/scenetree/pkg/tree"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultFormat is the output format when none is given.
	DefaultFormat = render.FormatText

	// DefaultStyle is the outline style when none is given.
	DefaultStyle = StyleUnicode
)

const (
	// renderScale is the PNG scale factor; it is part of the cache key.
	renderScale = 2.0

	// artifactTTL bounds how long a cached artifact is reused. Keys already
	// change with the outline, so this only limits disk growth.
	artifactTTL = 30 * 24 * time.Hour
)

// Outline style names.
const (
	StyleUnicode = "unicode"
	StyleASCII   = "ascii"
)

// Styles lists the outline style names in the order shown to users.
var Styles = []string{StyleUnicode, StyleASCII}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
type Options struct {
	Path           string `json:"path"`
	Format         string `json:"format,omitempty"`
	Style          string `json:"style,omitempty"`
	RootConnectors bool   `json:"root_connectors,omitempty"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the imported glTF document.
	Document *scene.Document

	// Rows is the flattened scene graph.
	Rows []tree.Row[scene.NodeInfo]

	// Artifact is the rendered output in Options.Format.
	Artifact []byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo reports which stages were served from the cache.
	CacheInfo CacheInfo
}

// CacheInfo reports cache hits for a pipeline run.
type CacheInfo struct {
	RenderHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Rows        int
	MaxDepth    int
	ImportTime  time.Duration
	FlattenTime time.Duration
	RenderTime  time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateStyle checks that a style name is valid.
func ValidateStyle(style string) error {
	return errors.ValidateOneOf(errors.ErrCodeInvalidStyle, "style", style, Styles)
}

// TextStyle returns the outline style for a validated style name.
func TextStyle(style string, rootConnectors bool) tree.TextStyle {
	s := tree.UnicodeStyle
	if style == StyleASCII {
		s = tree.ASCIIStyle
	}
	s.RootConnectors = rootConnectors
	return s
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// Calling it more than once has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if err := errors.ValidatePath(o.Path); err != nil {
		return err
	}
	return o.validateRender()
}

// validateRender applies the render defaults and checks format and style.
// Path is not required.
func (o *Options) validateRender() error {
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if err := render.ValidateFormat(o.Format); err != nil {
		return err
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	return ValidateStyle(o.Style)
}
