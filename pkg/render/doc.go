// Package render turns flattened rows into output artifacts.
//
// # Overview
//
// Every sink consumes the []tree.Row[T] produced by [tree.Flatten] plus a
// label function, so the same sinks serve glTF scenes, directory trees and
// JSON forests:
//
//   - text: indented outline ([tree.WriteText])
//   - json: rows with label, depth, connector and parent index
//   - dot:  Graphviz digraph with one node per row
//   - svg:  the DOT graph laid out by Graphviz
//   - pdf, png: the SVG converted with rsvg-convert
//
// # Dispatch
//
// [Render] picks the sink by format name:
//
//	rows := tree.Flatten(scene.NewTraverser(doc.GLTF))
//	out, err := render.Render(ctx, "svg", rows, scene.NodeInfo.Label, render.Options{})
//
// # Graphviz
//
// [RenderSVG] uses the WebAssembly build of Graphviz from go-graphviz, so
// no system installation is needed. PDF and PNG conversion shell out to
// rsvg-convert from librsvg:
//
//	brew install librsvg        # macOS
//	apt install librsvg2-bin    # Debian/Ubuntu
package render
