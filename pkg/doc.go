// Package pkg provides the core libraries for scenetree scene graph outlines.
//
// # Overview
//
// Scenetree turns hierarchies into indented outlines: the scenes and node
// trees of glTF 2.0 documents first, but also directory trees and plain JSON
// forests. The core is a pull-driven flattening engine that asks a data
// source for one step at a time and annotates every item with its depth and
// the connector a renderer should draw in front of it.
//
// # Architecture
//
// The typical data flow through scenetree:
//
//	glTF document / directory / JSON forest
//	         ↓
//	    [scene], [fstree] or [io] (open the source, expose a traverser)
//	         ↓
//	    [tree] package (flatten into depth + connector rows)
//	         ↓
//	    [render] package (text, JSON, DOT, SVG, PDF, PNG)
//
// # Quick Start
//
// Outline a glTF document:
//
//	import (
//	    "os"
//
//	    "github.com/matzehuels/scenetree/pkg/scene"
//	    "github.com/matzehuels/scenetree/pkg/tree"
//	)
//
//	doc, err := scene.Import("car.glb")
//	if err != nil {
//	    return err
//	}
//	rows := tree.Flatten(scene.NewTraverser(doc.GLTF))
//	tree.WriteText(os.Stdout, rows, scene.NodeInfo.Label, tree.UnicodeStyle)
//
// # Main Packages
//
// ## Core
//
// [tree] - The traversal protocol ([tree.Traverser]), the flattening engine
// ([tree.Flatten]), connector kinds and the text outline writer. Generic over
// the item type and free of I/O.
//
// ## Data Sources
//
// [scene] - glTF import, structural validation, statistics and the scene
// graph traverser. Scenes are depth-0 items, their nodes hang below them.
//
// [fstree] - Directory trees over any [io/fs.FS].
//
// [io] - JSON forests of named nodes, read into [tree.Node] values.
//
// ## Output
//
// [render] - Output formats for flattened rows: text outline, JSON rows,
// Graphviz DOT, and SVG/PDF/PNG drawn with Graphviz.
//
// ## Infrastructure
//
// [pipeline] - The import → flatten → render pipeline used by the CLI, the
// explorer and the HTTP server. Ensures consistent behavior across all entry
// points.
//
// [cache] - Artifact cache for the expensive Graphviz formats, with file,
// memory and no-op implementations.
//
// [observability] - Hooks for metrics around imports, flattening, rendering,
// the cache and HTTP requests.
//
// [errors] - Structured errors with machine-readable codes.
//
// [buildinfo] - Version information injected at build time.
package pkg
