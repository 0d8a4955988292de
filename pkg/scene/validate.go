package scene

import (
	"fmt"

	"github.com/qmuntal/gltf"
)

// Validate checks that the scene graph of g can be walked as a forest.
//
// It rejects out-of-range scene, node and child indices, nodes with more than
// one parent, nodes listed as their own child and scene roots that are also
// children of another node. A nil document is valid and empty.
func Validate(g *gltf.Document) error {
	if g == nil {
		return nil
	}
	n := len(g.Nodes)

	if g.Scene != nil && (*g.Scene < 0 || *g.Scene >= len(g.Scenes)) {
		return fmt.Errorf("default scene %d out of range (%d scenes)", *g.Scene, len(g.Scenes))
	}

	parent := make([]int, n)
	for i := range parent {
		parent[i] = -1
	}
	for i, node := range g.Nodes {
		if node == nil {
			return fmt.Errorf("node %d is null", i)
		}
		for _, c := range node.Children {
			if c < 0 || c >= n {
				return fmt.Errorf("node %d: child %d out of range (%d nodes)", i, c, n)
			}
			if c == i {
				return fmt.Errorf("node %d lists itself as a child", i)
			}
			if parent[c] >= 0 {
				return fmt.Errorf("node %d has two parents: %d and %d", c, parent[c], i)
			}
			parent[c] = i
		}
	}

	for i, s := range g.Scenes {
		if s == nil {
			return fmt.Errorf("scene %d is null", i)
		}
		for _, r := range s.Nodes {
			if r < 0 || r >= n {
				return fmt.Errorf("scene %d: node %d out of range (%d nodes)", i, r, n)
			}
			if parent[r] >= 0 {
				return fmt.Errorf("scene %d: root node %d is a child of node %d", i, r, parent[r])
			}
		}
	}
	return nil
}
