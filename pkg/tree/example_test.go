package tree_test

import (
	"fmt"

	"github.com/matzehuels/scenetree/pkg/tree"
)

func ExampleFlatten() {
	// root → {A, B}, A → {A1}
	root := tree.N("root", tree.N("A", tree.N("A1")), tree.N("B"))

	for _, r := range tree.Flatten(tree.NewNodeTraverser(root)) {
		fmt.Println(r.Item.Name, r.Depth, r.Connector)
	}
	// Output:
	// root 0 only
	// A 1 first
	// A1 2 only
	// B 1 last
}

func ExampleFlatten_forest() {
	rows := tree.Flatten(tree.NewNodeTraverser(tree.N("R1"), tree.N("R2")))
	for _, r := range rows {
		fmt.Println(r.Item.Name, r.Depth, r.Connector)
	}
	// Output:
	// R1 0 first
	// R2 0 last
}

func ExampleText() {
	root := tree.N("Scene",
		tree.N("Camera"),
		tree.N("Car", tree.N("Wheel.L"), tree.N("Wheel.R")),
	)
	rows := tree.Flatten(tree.NewNodeTraverser(root))

	fmt.Print(tree.Text(rows, func(n *tree.Node) string { return n.Name }, tree.UnicodeStyle))
	// Output:
	// Scene
	// ├── Camera
	// └── Car
	//     ├── Wheel.L
	//     └── Wheel.R
}
