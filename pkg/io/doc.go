// Package io provides JSON import and export for in-memory forests.
//
// # Overview
//
// The outline command flattens arbitrary hierarchies given as nested JSON,
// which shows the traversal protocol working over a data source other than
// glTF. This package reads and writes that format as []*tree.Node.
//
// # JSON Format
//
// A document is either a single node object or an array of root nodes:
//
//	{
//	  "name": "Scene",
//	  "children": [
//	    {"name": "Camera"},
//	    {"name": "Car", "children": [{"name": "Wheel.L"}, {"name": "Wheel.R"}]}
//	  ]
//	}
//
// Fields:
//   - name: Display label (required, may be empty)
//   - children: Child nodes in order (optional)
//
// Unknown fields are rejected so typos such as "childs" do not silently drop
// subtrees.
//
// # Import
//
// Use [ImportJSON] to read a forest from a file path, or [ReadJSON] to read
// from any io.Reader:
//
//	roots, err := io.ImportJSON("forest.json")
//	if err != nil {
//	    return err
//	}
//	rows := tree.Flatten(tree.NewNodeTraverser(roots...))
//
// # Export
//
// [WriteJSON] and [ExportJSON] always write the array form, so a single root
// round-trips as a one-element array.
package io
