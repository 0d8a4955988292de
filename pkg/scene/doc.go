// Package scene adapts glTF 2.0 documents to the tree traversal protocol.
//
// # Overview
//
// A glTF document stores its scene graph as flat arrays: scenes list the
// indices of their root nodes, and nodes list the indices of their children.
// This package walks that graph with index cursors and reports each scene
// and node to [tree.Flatten] as a [NodeInfo]:
//
//	doc, err := scene.Import("car.glb")
//	if err != nil {
//	    return err
//	}
//	rows := tree.Flatten(scene.NewTraverser(doc.GLTF))
//
// Scenes are roots at depth 0. A scene's root nodes sit at depth 1 and node
// children below them. The default scene is only flagged on its [NodeInfo];
// it is not reordered.
//
// # Import
//
// [Import] accepts .gltf and .glb files (case-insensitive). Failures carry a
// code from [github.com/matzehuels/scenetree/pkg/errors]:
//
//   - UNSUPPORTED: the extension is neither .gltf nor .glb
//   - FILE_NOT_FOUND: the path does not exist
//   - INVALID_DOCUMENT: decoding failed or [Validate] rejected the graph
//
// # Validation
//
// The traverser trusts the node graph to be a forest. [Validate] checks that
// every index is in range, that no node has two parents and that no scene
// root is also some node's child. Together these guarantee every walk from a
// scene terminates.
//
// # Statistics
//
// [Stats] counts the top-level arrays of a document for the explorer's
// statistics panel and the stats command.
package scene
