package tree

import (
	"bytes"
	"testing"
)

func name(n *Node) string { return n.Name }

func TestText(t *testing.T) {
	roots := []*Node{
		N("Scene",
			N("root1", N("child1", N("leaf")), N("child2")),
			N("root2")),
	}
	rows := Flatten(NewNodeTraverser(roots...))

	want := "" +
		"Scene\n" +
		"├── root1\n" +
		"│   ├── child1\n" +
		"│   │   └── leaf\n" +
		"│   └── child2\n" +
		"└── root2\n"
	if got := Text(rows, name, UnicodeStyle); got != want {
		t.Errorf("Text() =\n%s\nwant\n%s", got, want)
	}
}

func TestTextASCIIWithRootConnectors(t *testing.T) {
	rows := Flatten(NewNodeTraverser(N("a", N("a1")), N("b")))

	style := ASCIIStyle
	style.RootConnectors = true
	want := "" +
		"|-- a\n" +
		"|   `-- a1\n" +
		"`-- b\n"
	if got := Text(rows, name, style); got != want {
		t.Errorf("Text() =\n%s\nwant\n%s", got, want)
	}
}

func TestWriteTextEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText[*Node](&buf, nil, name, UnicodeStyle); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("WriteText(nil) wrote %q", buf.String())
	}
}

func TestIndent(t *testing.T) {
	r := Row[*Node]{Item: N("x"), Depth: 2, Connector: Sibling}
	if got, want := Indent(r, name), "    ├ x"; got != want {
		t.Errorf("Indent() = %q, want %q", got, want)
	}
}

func TestTextPipesUnderRootChildrenWithLaterSiblings(t *testing.T) {
	rows := Flatten(NewNodeTraverser(N("Scene", N("Body", N("Door")), N("Light"))))

	want := "" +
		"Scene\n" +
		"├── Body\n" +
		"│   └── Door\n" +
		"└── Light\n"
	if got := Text(rows, name, UnicodeStyle); got != want {
		t.Errorf("Text() =\n%s\nwant\n%s", got, want)
	}
}
