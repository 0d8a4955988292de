// Package fstree walks a directory hierarchy through the tree traversal
// protocol.
//
// It is the second data source for [tree.Flatten] next to glTF documents and
// works on any [fs.FS], so tests run against [testing/fstest.MapFS] and the
// CLI against [os.DirFS].
package fstree

import (
	"io/fs"
	"path"
	"strconv"

	"github.com/matzehuels/scenetree/pkg/tree"
)

// Entry is one file or directory.
type Entry struct {
	Name  string
	Path  string // slash-separated, relative to the fs.FS
	IsDir bool
	Size  int64
}

// Label returns the entry name. Directories get a trailing slash and files
// their size in bytes, or " (empty)" when they have none.
func (e Entry) Label() string {
	switch {
	case e.IsDir:
		return e.Name + "/"
	case e.Size == 0:
		return e.Name + " (empty)"
	default:
		return e.Name + " (" + strconv.FormatInt(e.Size, 10) + "b)"
	}
}

// Options controls which entries are reported.
type Options struct {
	Files  bool // report regular files, not only directories
	Hidden bool // report names starting with "."
}

type level struct {
	entries []Entry
	pos     int
}

// Traverser walks fsys below root. Directory listings are read lazily, one
// per FirstChild call on a directory.
type Traverser struct {
	fsys    fs.FS
	opts    Options
	started bool
	root    Entry
	levels  []level
	err     error
}

var _ tree.Traverser[Entry] = (*Traverser)(nil)

// New returns a traverser whose single root is the directory root of fsys.
// Use "." for the top of fsys.
func New(fsys fs.FS, root string, opts Options) *Traverser {
	name := path.Base(root)
	return &Traverser{
		fsys: fsys,
		opts: opts,
		root: Entry{Name: name, Path: root, IsDir: true},
	}
}

// Err returns the first error hit while listing a directory. A directory that
// cannot be listed is reported without children, so the walk still completes.
func (t *Traverser) Err() error {
	return t.err
}

func (t *Traverser) list(dir string) []Entry {
	des, err := fs.ReadDir(t.fsys, dir)
	if err != nil && t.err == nil {
		t.err = err
	}
	entries := make([]Entry, 0, len(des))
	for _, de := range des {
		name := de.Name()
		if !t.opts.Hidden && len(name) > 0 && name[0] == '.' {
			continue
		}
		if !de.IsDir() && !t.opts.Files {
			continue
		}
		e := Entry{Name: name, Path: path.Join(dir, name), IsDir: de.IsDir()}
		if !e.IsDir {
			if info, err := de.Info(); err == nil {
				e.Size = info.Size()
			}
		}
		entries = append(entries, e)
	}
	return entries
}

func (t *Traverser) current() Entry {
	if n := len(t.levels); n > 0 {
		return t.levels[n-1].entries[t.levels[n-1].pos]
	}
	return t.root
}

// FirstChild implements [tree.Traverser].
func (t *Traverser) FirstChild() (Entry, bool) {
	if !t.started {
		t.started = true
		return t.root, true
	}
	cur := t.current()
	if !cur.IsDir {
		return Entry{}, false
	}
	entries := t.list(cur.Path)
	if len(entries) == 0 {
		return Entry{}, false
	}
	t.levels = append(t.levels, level{entries: entries})
	return entries[0], true
}

// NextSibling implements [tree.Traverser].
func (t *Traverser) NextSibling() (Entry, bool) {
	n := len(t.levels)
	if n == 0 {
		return Entry{}, false
	}
	top := &t.levels[n-1]
	if top.pos+1 >= len(top.entries) {
		return Entry{}, false
	}
	top.pos++
	return top.entries[top.pos], true
}

// NextUncle implements [tree.Traverser].
func (t *Traverser) NextUncle() (Entry, int, bool) {
	for up := 1; up < len(t.levels); up++ {
		l := &t.levels[len(t.levels)-1-up]
		if l.pos+1 < len(l.entries) {
			t.levels = t.levels[:len(t.levels)-up]
			l.pos++
			return l.entries[l.pos], up, true
		}
	}
	return Entry{}, 0, false
}
