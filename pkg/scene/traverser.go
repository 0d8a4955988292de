package scene

import (
	"github.com/qmuntal/gltf"

	"github.com/matzehuels/scenetree/pkg/tree"
)

// Kind distinguishes scenes from nodes in a flattened outline.
type Kind int

const (
	KindScene Kind = iota
	KindNode
)

func (k Kind) String() string {
	if k == KindScene {
		return "scene"
	}
	return "node"
}

// NodeInfo is the item the glTF traverser reports for every scene and node.
type NodeInfo struct {
	Index   int    // index into Document.Scenes or Document.Nodes
	Name    string // may be empty
	Kind    Kind
	Default bool // the document's default scene; always false for nodes
}

// Label returns the display name, falling back to "<unnamed scene>" or
// "<unnamed node>". The default scene is suffixed with " [default]".
func (n NodeInfo) Label() string {
	label := n.Name
	if label == "" {
		label = "<unnamed " + n.Kind.String() + ">"
	}
	if n.Default {
		label += " [default]"
	}
	return label
}

// level is a cursor over one list of sibling node indices.
type level struct {
	ids []int
	pos int
}

// Traverser walks the scenes of a glTF document and the node hierarchy below
// each scene. It holds only index cursors and never recurses.
type Traverser struct {
	doc    *gltf.Document
	scene  int     // index of the current scene, -1 before the first
	levels []level // node cursors; levels[0] holds the current scene's roots
}

var _ tree.Traverser[NodeInfo] = (*Traverser)(nil)

// NewTraverser returns a traverser positioned above the first scene of doc.
// The document must not change while it is walked; run [Validate] first for
// documents from untrusted sources. A nil document yields nothing.
func NewTraverser(doc *gltf.Document) *Traverser {
	return &Traverser{doc: doc, scene: -1}
}

func (t *Traverser) sceneInfo(i int) NodeInfo {
	s := t.doc.Scenes[i]
	return NodeInfo{
		Index:   i,
		Name:    s.Name,
		Kind:    KindScene,
		Default: t.doc.Scene != nil && *t.doc.Scene == i,
	}
}

func (t *Traverser) nodeInfo(i int) NodeInfo {
	return NodeInfo{Index: i, Name: t.doc.Nodes[i].Name, Kind: KindNode}
}

func (t *Traverser) numScenes() int {
	if t.doc == nil {
		return 0
	}
	return len(t.doc.Scenes)
}

// FirstChild implements [tree.Traverser].
func (t *Traverser) FirstChild() (NodeInfo, bool) {
	if t.scene < 0 {
		if t.numScenes() == 0 {
			return NodeInfo{}, false
		}
		t.scene = 0
		return t.sceneInfo(0), true
	}

	var children []int
	if n := len(t.levels); n == 0 {
		children = t.doc.Scenes[t.scene].Nodes
	} else {
		top := t.levels[n-1]
		children = t.doc.Nodes[top.ids[top.pos]].Children
	}
	if len(children) == 0 {
		return NodeInfo{}, false
	}
	t.levels = append(t.levels, level{ids: children})
	return t.nodeInfo(children[0]), true
}

// NextSibling implements [tree.Traverser].
func (t *Traverser) NextSibling() (NodeInfo, bool) {
	n := len(t.levels)
	if n == 0 {
		if t.scene < 0 || t.scene+1 >= t.numScenes() {
			return NodeInfo{}, false
		}
		t.scene++
		return t.sceneInfo(t.scene), true
	}

	top := &t.levels[n-1]
	if top.pos+1 >= len(top.ids) {
		return NodeInfo{}, false
	}
	top.pos++
	return t.nodeInfo(top.ids[top.pos]), true
}

// NextUncle implements [tree.Traverser]. Climbing out of the last node of a
// scene continues with the next scene.
func (t *Traverser) NextUncle() (NodeInfo, int, bool) {
	n := len(t.levels)
	for up := 1; up <= n; up++ {
		k := n - up // levels left once the walk climbs up levels
		if k == 0 {
			if t.scene+1 >= t.numScenes() {
				break
			}
			t.levels = t.levels[:0]
			t.scene++
			return t.sceneInfo(t.scene), up, true
		}
		l := &t.levels[k-1]
		if l.pos+1 < len(l.ids) {
			t.levels = t.levels[:k]
			l.pos++
			return t.nodeInfo(l.ids[l.pos]), up, true
		}
	}
	return NodeInfo{}, 0, false
}
