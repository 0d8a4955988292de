package tree

import (
	"fmt"
	"math/rand/v2"
	"reflect"
	"strings"
	"testing"
)

type flat struct {
	name  string
	depth int
	conn  Connector
}

func flatten(roots ...*Node) []flat {
	rows := Flatten(NewNodeTraverser(roots...))
	out := make([]flat, len(rows))
	for i, r := range rows {
		out[i] = flat{r.Item.Name, r.Depth, r.Connector}
	}
	return out
}

// reference computes the expected rows recursively.
func reference(roots []*Node) []flat {
	var out []flat
	var walk func(nodes []*Node, depth int)
	walk = func(nodes []*Node, depth int) {
		for i, n := range nodes {
			conn := Sibling
			switch {
			case len(nodes) == 1:
				conn = OnlyChild
			case i == 0:
				conn = FirstChild
			case i == len(nodes)-1:
				conn = LastChild
			}
			out = append(out, flat{n.Name, depth, conn})
			walk(n.Children, depth+1)
		}
	}
	walk(roots, 0)
	return out
}

func TestFlattenScenarios(t *testing.T) {
	tests := []struct {
		name  string
		roots []*Node
		want  []flat
	}{
		{
			name:  "single node",
			roots: []*Node{N("root")},
			want:  []flat{{"root", 0, OnlyChild}},
		},
		{
			name:  "root with nested first child",
			roots: []*Node{N("root", N("A", N("A1")), N("B"))},
			want: []flat{
				{"root", 0, OnlyChild},
				{"A", 1, FirstChild},
				{"A1", 2, OnlyChild},
				{"B", 1, LastChild},
			},
		},
		{
			name:  "forest of two roots",
			roots: []*Node{N("R1"), N("R2")},
			want:  []flat{{"R1", 0, FirstChild}, {"R2", 0, LastChild}},
		},
		{
			name:  "three siblings",
			roots: []*Node{N("r", N("a"), N("b"), N("c"))},
			want: []flat{
				{"r", 0, OnlyChild},
				{"a", 1, FirstChild},
				{"b", 1, Sibling},
				{"c", 1, LastChild},
			},
		},
		{
			name: "multi-level ascent promotes the landing sibling",
			roots: []*Node{
				N("root",
					N("node1"),
					N("node2"),
					N("node3", N("node4", N("node5"), N("node6"))),
					N("node7")),
			},
			want: []flat{
				{"root", 0, OnlyChild},
				{"node1", 1, FirstChild},
				{"node2", 1, Sibling},
				{"node3", 1, Sibling},
				{"node4", 2, OnlyChild},
				{"node5", 3, FirstChild},
				{"node6", 3, LastChild},
				{"node7", 1, LastChild},
			},
		},
		{
			name:  "ascent to the root level",
			roots: []*Node{N("a", N("a1", N("a2"))), N("b")},
			want: []flat{
				{"a", 0, FirstChild},
				{"a1", 1, OnlyChild},
				{"a2", 2, OnlyChild},
				{"b", 0, LastChild},
			},
		},
		{
			name:  "empty forest",
			roots: nil,
			want:  []flat{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := flatten(tt.roots...)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Flatten() =\n%v\nwant\n%v", got, tt.want)
			}
		})
	}
}

func randomForest(r *rand.Rand, budget int) []*Node {
	id := 0
	var grow func(depth int) []*Node
	grow = func(depth int) []*Node {
		if budget <= 0 || depth > 6 {
			return nil
		}
		n := r.IntN(4)
		if depth == 0 {
			n = 1 + r.IntN(3)
		}
		var nodes []*Node
		for i := 0; i < n && budget > 0; i++ {
			budget--
			id++
			node := &Node{Name: fmt.Sprintf("n%d", id)}
			node.Children = grow(depth + 1)
			nodes = append(nodes, node)
		}
		return nodes
	}
	return grow(0)
}

func TestFlattenMatchesReference(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 200; i++ {
		roots := randomForest(r, 1+r.IntN(60))
		got := flatten(roots...)
		want := reference(roots)

		if len(got) != Count(roots...) {
			t.Fatalf("case %d: got %d rows, want %d", i, len(got), Count(roots...))
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("case %d: Flatten() =\n%v\nwant\n%v", i, got, want)
		}
	}
}

func TestFlattenIsIdempotent(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 7))
	roots := randomForest(r, 40)

	first := Flatten(NewNodeTraverser(roots...))
	second := Flatten(NewNodeTraverser(roots...))
	if !reflect.DeepEqual(first, second) {
		t.Error("flattening the same tree twice should give identical rows")
	}
}

// scripted replays a fixed sequence of protocol answers.
type scripted struct {
	steps []step
	calls []string
}

type step struct {
	op   string // "child", "sibling" or "uncle"
	item string
	up   int
}

func (s *scripted) next(op string) (step, bool) {
	s.calls = append(s.calls, op)
	if len(s.steps) == 0 || s.steps[0].op != op {
		return step{}, false
	}
	st := s.steps[0]
	s.steps = s.steps[1:]
	return st, true
}

func (s *scripted) FirstChild() (string, bool) {
	st, ok := s.next("child")
	return st.item, ok
}

func (s *scripted) NextSibling() (string, bool) {
	st, ok := s.next("sibling")
	return st.item, ok
}

func (s *scripted) NextUncle() (string, int, bool) {
	st, ok := s.next("uncle")
	return st.item, st.up, ok
}

func TestFlattenUncleToDepthZero(t *testing.T) {
	s := &scripted{steps: []step{
		{op: "child", item: "a"},
		{op: "child", item: "b"},
		{op: "uncle", item: "c", up: 2},
		{op: "sibling", item: "d"},
	}}
	rows := Flatten[string](s)

	want := []Row[string]{
		{Item: "a", Depth: 0, Connector: FirstChild},
		{Item: "b", Depth: 1, Connector: OnlyChild},
		{Item: "c", Depth: 0, Connector: Sibling},
		{Item: "d", Depth: 0, Connector: LastChild},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("Flatten() = %v, want %v", rows, want)
	}
}

func TestFlattenCallOrder(t *testing.T) {
	s := &scripted{steps: []step{
		{op: "child", item: "a"},
		{op: "sibling", item: "b"},
	}}
	Flatten[string](s)

	want := "child child sibling child sibling uncle"
	if got := strings.Join(s.calls, " "); got != want {
		t.Errorf("calls = %q, want %q", got, want)
	}
}

func TestFlattenSiblingWithoutFrame(t *testing.T) {
	s := &scripted{steps: []step{{op: "sibling", item: "x"}}}
	rows := Flatten[string](s)
	if len(rows) != 1 || rows[0].Depth != 0 || rows[0].Connector != LastChild {
		t.Errorf("Flatten() = %v, want one depth-0 LastChild row", rows)
	}
}

func TestFlattenPanicsOnOverlongAscent(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Flatten should panic when the traverser climbs past the roots")
		}
	}()
	s := &scripted{steps: []step{
		{op: "child", item: "a"},
		{op: "uncle", item: "b", up: 2},
	}}
	Flatten[string](s)
}

func TestMaxDepth(t *testing.T) {
	if got := MaxDepth[string](nil); got != -1 {
		t.Errorf("MaxDepth(nil) = %d, want -1", got)
	}
	rows := Flatten(NewNodeTraverser(N("r", N("a", N("b")), N("c"))))
	if got := MaxDepth(rows); got != 2 {
		t.Errorf("MaxDepth() = %d, want 2", got)
	}
}

func TestParents(t *testing.T) {
	rows := Flatten(NewNodeTraverser(N("r", N("a", N("a1")), N("b")), N("s")))
	got := Parents(rows)
	want := []int{-1, 0, 1, 0, -1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Parents() = %v, want %v", got, want)
	}
}

func TestConnectorPromote(t *testing.T) {
	tests := []struct {
		in, want Connector
	}{
		{OnlyChild, FirstChild},
		{LastChild, Sibling},
		{FirstChild, FirstChild},
		{Sibling, Sibling},
	}
	for _, tt := range tests {
		if got := tt.in.promote(); got != tt.want {
			t.Errorf("%v.promote() = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestConnectorText(t *testing.T) {
	for _, c := range []Connector{OnlyChild, FirstChild, Sibling, LastChild} {
		b, err := c.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", c, err)
		}
		var back Connector
		if err := back.UnmarshalText(b); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", b, err)
		}
		if back != c {
			t.Errorf("round trip of %v gave %v", c, back)
		}
	}
	if _, err := ParseConnector("middle"); err == nil {
		t.Error("ParseConnector should reject unknown names")
	}
	if got := Connector(9).String(); got != "Connector(9)" {
		t.Errorf("String() = %q", got)
	}
}

func TestConnectorGlyph(t *testing.T) {
	want := map[Connector]string{
		FirstChild: "├",
		Sibling:    "├",
		LastChild:  "└",
		OnlyChild:  "└",
	}
	for c, g := range want {
		if got := c.Glyph(); got != g {
			t.Errorf("%v.Glyph() = %q, want %q", c, got, g)
		}
	}
}

func TestNodesRoundTrip(t *testing.T) {
	roots := []*Node{
		N("Scene", N("Car", N("Wheel.L"), N("Wheel.R")), N("Lamp")),
		N("Alt", N("Bulb")),
	}
	rows := Flatten(NewNodeTraverser(roots...))

	rebuilt := Nodes(rows, func(n *Node) string { return n.Name })
	if !reflect.DeepEqual(rebuilt, roots) {
		t.Fatalf("Nodes() did not rebuild the forest")
	}

	again := Flatten(NewNodeTraverser(rebuilt...))
	for i := range rows {
		if again[i].Depth != rows[i].Depth || again[i].Connector != rows[i].Connector {
			t.Errorf("row %d = (%d, %v), want (%d, %v)", i,
				again[i].Depth, again[i].Connector, rows[i].Depth, rows[i].Connector)
		}
	}
}

func TestNodesEmpty(t *testing.T) {
	if got := Nodes[*Node](nil, nil); got != nil {
		t.Errorf("Nodes(nil) = %v, want nil", got)
	}
}
