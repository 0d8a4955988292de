// Package tree flattens hierarchical data into an indented, connector-annotated
// list without ever building the hierarchy as a data structure.
//
// # Overview
//
// A data source exposes itself through the three-operation [Traverser]
// protocol: descend to the first child, advance to the next sibling, or
// ascend to the next "uncle" (a sibling of some ancestor). [Flatten] drives
// the protocol to exhaustion and returns one [Row] per visited node in
// pre-order, each carrying the node's depth and its [Connector] kind.
//
//	rows := tree.Flatten(tree.NewNodeTraverser(root))
//	for _, r := range rows {
//	    fmt.Println(strings.Repeat("  ", r.Depth), r.Connector.Glyph(), r.Item.Name)
//	}
//
// # Connector Correction
//
// Whether a node is the last of its siblings is only known once the walk
// asks for the next node, which may happen many steps later after the node's
// own subtree has been emitted. Flatten therefore appends every row with an
// optimistic guess ([OnlyChild] after a descent, [LastChild] after a sibling
// or uncle step) and promotes the guess exactly once, in place, when a later
// sibling at the same depth turns up:
//
//   - [OnlyChild] becomes [FirstChild]
//   - [LastChild] becomes [Sibling]
//
// The engine keeps a frontier stack with one frame per open depth recording
// the output index of the most recent row at that depth. A sibling step
// promotes the row in the top frame; an uncle step pops as many frames as
// the traverser climbed and promotes the row in the frame it lands on.
//
// # Traversers
//
// Any hierarchy can implement [Traverser]: this package ships
// [NodeTraverser] for in-memory [Node] forests; the scene and fstree
// packages walk glTF documents and directory trees. Traversers keep their
// cursors on an explicit stack, so depth is not bounded by the call stack.
//
// # Presentation
//
// Rows are presentation-neutral. [Text] and [WriteText] turn them into a
// tree(1)-style outline using a [TextStyle]; the render package adds JSON,
// Graphviz DOT and SVG sinks.
//
// # Concurrency
//
// Flatten is synchronous and single-threaded. The underlying data must not
// change while a walk is in progress. The returned rows are owned by the
// caller and safe to share once Flatten returns.
package tree
