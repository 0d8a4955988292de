package tree

import "fmt"

// Row is one flattened node: the traverser's item, its depth (0 for roots)
// and its connector kind.
type Row[T any] struct {
	Item      T
	Depth     int
	Connector Connector
}

// frame is one open depth on the frontier stack.
type frame struct {
	row   int // output index of the most recent row at this depth
	depth int
	prev  int // output index of the previous sibling, or -1
}

// Flatten walks t to exhaustion and returns its nodes in pre-order.
//
// Connector kinds of earlier rows are corrected in place as later siblings
// are discovered, so the result is final only once Flatten returns. Flatten
// panics if t reports an uncle more levels up than the current depth; that is
// a bug in the traverser, not a runtime condition.
func Flatten[T any](t Traverser[T]) []Row[T] {
	rows := make([]Row[T], 0, 16)
	stack := make([]frame, 0, 16)

	promote := func(i int) {
		rows[i].Connector = rows[i].Connector.promote()
	}

	for {
		if item, ok := t.FirstChild(); ok {
			depth := 0
			if n := len(stack); n > 0 {
				depth = stack[n-1].depth + 1
			}
			stack = append(stack, frame{row: len(rows), depth: depth, prev: -1})
			rows = append(rows, Row[T]{Item: item, Depth: depth, Connector: OnlyChild})
			continue
		}

		if item, ok := t.NextSibling(); ok {
			n := len(stack)
			if n == 0 {
				stack = append(stack, frame{row: len(rows), prev: -1})
				rows = append(rows, Row[T]{Item: item, Connector: LastChild})
				continue
			}
			top := stack[n-1]
			promote(top.row)
			stack[n-1] = frame{row: len(rows), depth: top.depth, prev: top.row}
			rows = append(rows, Row[T]{Item: item, Depth: top.depth, Connector: LastChild})
			continue
		}

		if item, up, ok := t.NextUncle(); ok {
			n := len(stack)
			if up < 0 || up > n {
				panic(fmt.Sprintf("tree: traverser climbed %d levels from a stack of %d", up, n))
			}
			last := 0
			if n > 0 {
				last = stack[n-1].depth
			}
			depth := max(last-up, 0)
			root := -1
			if n > 0 {
				root = stack[0].row
			}
			stack = stack[:n-up]

			if k := len(stack); k > 0 {
				prev := stack[k-1].row
				promote(prev)
				stack[k-1] = frame{row: len(rows), depth: depth, prev: prev}
			} else {
				// A full ascent lands beside the last root.
				if root >= 0 {
					promote(root)
				}
				stack = append(stack, frame{row: len(rows), depth: depth, prev: root})
			}
			rows = append(rows, Row[T]{Item: item, Depth: depth, Connector: LastChild})
			continue
		}

		return rows
	}
}

// MaxDepth returns the greatest depth among rows, or -1 when rows is empty.
func MaxDepth[T any](rows []Row[T]) int {
	d := -1
	for _, r := range rows {
		d = max(d, r.Depth)
	}
	return d
}

// Parents returns, for each row, the index of its parent row, or -1 for roots.
// The parent of a row at depth d is the closest preceding row at depth d-1.
func Parents[T any](rows []Row[T]) []int {
	parents := make([]int, len(rows))
	var last []int // last[d] = index of the most recent row at depth d
	for i, r := range rows {
		if r.Depth < len(last) {
			last = last[:r.Depth]
		}
		for len(last) < r.Depth {
			last = append(last, -1)
		}
		if r.Depth > 0 {
			parents[i] = last[r.Depth-1]
		} else {
			parents[i] = -1
		}
		last = append(last, i)
	}
	return parents
}

// Nodes rebuilds the hierarchy described by rows as a forest of named nodes,
// one root per depth-0 row. Flattening the result with [NewNodeTraverser]
// yields rows with the same depths and connectors.
func Nodes[T any](rows []Row[T], label func(T) string) []*Node {
	nodes := make([]*Node, len(rows))
	var roots []*Node
	for i, p := range Parents(rows) {
		nodes[i] = &Node{Name: label(rows[i].Item)}
		if p < 0 {
			roots = append(roots, nodes[i])
		} else {
			nodes[p].Children = append(nodes[p].Children, nodes[i])
		}
	}
	return roots
}
