package tree

// Traverser walks a hierarchical data source one step at a time.
//
// A traverser owns a cursor into its data source. Each method either moves the
// cursor and reports the item it moved to, or reports nothing and leaves the
// cursor where it was. The engine calls the methods in the fixed order
// FirstChild, NextSibling, NextUncle and stops for good once all three report
// nothing for the same position.
//
// Consider the forest:
//
//	root
//	├── node1
//	├── node2
//	├── node3
//	│   └── node4
//	│       ├── node5
//	│       └── node6
//	└── node7
type Traverser[T any] interface {
	// FirstChild moves to the first child of the current node.
	//
	// From node3 it moves to node4. From node1 it reports nothing and the
	// cursor stays put; repeated calls keep reporting nothing. Before the
	// first call the cursor is "above" the roots, so the first FirstChild
	// yields the first root.
	FirstChild() (T, bool)

	// NextSibling moves to the next node under the same parent.
	//
	// From node1 it moves to node2. From node3 it moves to node7. From node7
	// it reports nothing.
	NextSibling() (T, bool)

	// NextUncle climbs until some ancestor level has a next sibling, moves
	// there and reports how many levels it climbed.
	//
	// From node4 it moves to node7 and reports 1; from node5 or node6 it
	// reports 2. From a depth-0 node, or when no ancestor has a further
	// sibling, it reports nothing and the walk is over.
	//
	// levelsUp must never exceed the depth of the current node.
	NextUncle() (item T, levelsUp int, ok bool)
}
