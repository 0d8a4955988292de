package tree

// Node is a minimal in-memory tree node.
//
// Node exists for callers that already hold a hierarchy (decoded JSON, test
// fixtures); Flatten itself never needs one.
type Node struct {
	Name     string  `json:"name"`
	Children []*Node `json:"children,omitempty"`
}

// N is shorthand for building Node literals.
func N(name string, children ...*Node) *Node {
	return &Node{Name: name, Children: children}
}

// Count returns the number of nodes in the forest rooted at roots.
func Count(roots ...*Node) int {
	n := 0
	stack := append([]*Node(nil), roots...)
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n++
		stack = append(stack, top.Children...)
	}
	return n
}

type level struct {
	nodes []*Node
	i     int
}

// NodeTraverser implements [Traverser] over a forest of [Node] values.
// The cursor is a stack of sibling slices, one per open depth.
type NodeTraverser struct {
	roots  []*Node
	levels []level
	done   bool
}

// NewNodeTraverser returns a traverser positioned above roots.
// Nil roots are skipped.
func NewNodeTraverser(roots ...*Node) *NodeTraverser {
	kept := make([]*Node, 0, len(roots))
	for _, r := range roots {
		if r != nil {
			kept = append(kept, r)
		}
	}
	return &NodeTraverser{roots: kept}
}

func (t *NodeTraverser) current() *Node {
	top := t.levels[len(t.levels)-1]
	return top.nodes[top.i]
}

// FirstChild implements [Traverser].
func (t *NodeTraverser) FirstChild() (*Node, bool) {
	if len(t.levels) == 0 {
		if t.done || len(t.roots) == 0 {
			return nil, false
		}
		t.done = true
		t.levels = append(t.levels, level{nodes: t.roots})
		return t.roots[0], true
	}
	children := t.current().Children
	if len(children) == 0 {
		return nil, false
	}
	t.levels = append(t.levels, level{nodes: children})
	return children[0], true
}

// NextSibling implements [Traverser].
func (t *NodeTraverser) NextSibling() (*Node, bool) {
	if len(t.levels) == 0 {
		return nil, false
	}
	top := &t.levels[len(t.levels)-1]
	if top.i+1 >= len(top.nodes) {
		return nil, false
	}
	top.i++
	return top.nodes[top.i], true
}

// NextUncle implements [Traverser].
func (t *NodeTraverser) NextUncle() (*Node, int, bool) {
	for k := len(t.levels) - 2; k >= 0; k-- {
		lv := &t.levels[k]
		if lv.i+1 < len(lv.nodes) {
			up := len(t.levels) - 1 - k
			t.levels = t.levels[:k+1]
			lv.i++
			return lv.nodes[lv.i], up, true
		}
	}
	return nil, 0, false
}

var _ Traverser[*Node] = (*NodeTraverser)(nil)
