package scene

import (
	"strconv"

	"github.com/qmuntal/gltf"
)

// Statistics counts the top-level arrays of a glTF document.
type Statistics struct {
	Accessors          int  `json:"accessors"`
	Animations         int  `json:"animations"`
	Buffers            int  `json:"buffers"`
	BufferViews        int  `json:"buffer_views"`
	Cameras            int  `json:"cameras"`
	Images             int  `json:"images"`
	Materials          int  `json:"materials"`
	Meshes             int  `json:"meshes"`
	Nodes              int  `json:"nodes"`
	Samplers           int  `json:"samplers"`
	Scenes             int  `json:"scenes"`
	Skins              int  `json:"skins"`
	Textures           int  `json:"textures"`
	ExtensionsUsed     int  `json:"extensions_used"`
	ExtensionsRequired int  `json:"extensions_required"`
	HasDefaultScene    bool `json:"has_default_scene"`
}

// Field is one labelled statistic, ready for display.
type Field struct {
	Label string
	Value string
}

// Stats counts the contents of g. A nil document has all counts zero.
func Stats(g *gltf.Document) Statistics {
	if g == nil {
		return Statistics{}
	}
	return Statistics{
		Accessors:          len(g.Accessors),
		Animations:         len(g.Animations),
		Buffers:            len(g.Buffers),
		BufferViews:        len(g.BufferViews),
		Cameras:            len(g.Cameras),
		Images:             len(g.Images),
		Materials:          len(g.Materials),
		Meshes:             len(g.Meshes),
		Nodes:              len(g.Nodes),
		Samplers:           len(g.Samplers),
		Scenes:             len(g.Scenes),
		Skins:              len(g.Skins),
		Textures:           len(g.Textures),
		ExtensionsUsed:     len(g.ExtensionsUsed),
		ExtensionsRequired: len(g.ExtensionsRequired),
		HasDefaultScene:    g.Scene != nil,
	}
}

// Fields returns the statistics in display order.
func (s Statistics) Fields() []Field {
	itoa := strconv.Itoa
	return []Field{
		{"Accessors", itoa(s.Accessors)},
		{"Animations", itoa(s.Animations)},
		{"Buffers", itoa(s.Buffers)},
		{"Buffer views", itoa(s.BufferViews)},
		{"Cameras", itoa(s.Cameras)},
		{"Has default scene", strconv.FormatBool(s.HasDefaultScene)},
		{"Extensions used", itoa(s.ExtensionsUsed)},
		{"Extensions required", itoa(s.ExtensionsRequired)},
		{"Images", itoa(s.Images)},
		{"Materials", itoa(s.Materials)},
		{"Meshes", itoa(s.Meshes)},
		{"Nodes", itoa(s.Nodes)},
		{"Samplers", itoa(s.Samplers)},
		{"Scenes", itoa(s.Scenes)},
		{"Skins", itoa(s.Skins)},
		{"Textures", itoa(s.Textures)},
	}
}
