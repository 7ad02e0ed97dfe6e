package xdm

import (
	"fmt"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Conflict records a path that one field uses as a leaf and another uses as
// an interior node. The later field decides the node's type; the earlier
// field's metadata and children are both kept.
type Conflict struct {
	Path  string `json:"path"`  // contested node
	Field string `json:"field"` // path of the field that changed the node's shape
}

func (c Conflict) String() string {
	return fmt.Sprintf("%s is both a leaf and an object (changed by %s)", c.Path, c.Field)
}

// Reconstruct rebuilds the nested tree from a flat field list.
//
// Nodes live in an arena indexed by full dot path, so a prefix shared by
// several fields resolves to the same node. Interior placeholders are
// created as {title: key, type: "object"} and never replaced. A leaf overlays
// the field's original metadata and then its type, name and identity flag.
// Sibling order is the order in which keys first appear in fields.
//
// The result depends only on fields; fields are not modified.
func Reconstruct(fields []Field) (*Node, []Conflict) {
	b := &builder{
		root:     newObjectNode(RootTitle),
		arena:    make(map[string]*Node),
		leaves:   make(map[string]bool),
		interior: make(map[string]bool),
	}
	for _, f := range fields {
		b.add(f)
	}
	return b.root, b.conflicts
}

type builder struct {
	root      *Node
	arena     map[string]*Node
	leaves    map[string]bool
	interior  map[string]bool
	conflicts []Conflict
	seen      map[Conflict]bool
}

func (b *builder) add(f Field) {
	keys := strings.Split(f.Path, ".")
	parent := b.root
	for i, key := range keys[:len(keys)-1] {
		path := strings.Join(keys[:i+1], ".")
		node, ok := b.arena[path]
		switch {
		case !ok:
			node = newObjectNode(key)
			b.attach(parent, key, path, node)
		case b.leaves[path]:
			b.conflict(path, f.Path)
			node.Type = "object"
		}
		if node.Properties == nil {
			node.Properties = orderedmap.New[string, *Node]()
		}
		b.interior[path] = true
		parent = node
	}

	key := keys[len(keys)-1]
	node, ok := b.arena[f.Path]
	switch {
	case !ok:
		node = &Node{}
		b.attach(parent, key, f.Path, node)
	case b.interior[f.Path]:
		b.conflict(f.Path, f.Path)
	}
	node.overlay(f.Original)
	node.Type = f.Type
	node.Title = f.Name
	node.Identity = f.IsIdentity
	b.leaves[f.Path] = true
}

func (b *builder) attach(parent *Node, key, path string, node *Node) {
	parent.Properties.Set(key, node)
	b.arena[path] = node
}

func (b *builder) conflict(path, field string) {
	c := Conflict{Path: path, Field: field}
	if b.seen == nil {
		b.seen = make(map[Conflict]bool)
	}
	if b.seen[c] {
		return
	}
	b.seen[c] = true
	b.conflicts = append(b.conflicts, c)
}
