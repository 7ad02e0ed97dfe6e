package xdm

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// NodeKind is the structural role of a tree node when displayed.
type NodeKind int

const (
	KindLeaf NodeKind = iota
	KindObject
	KindArray
)

func (k NodeKind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "leaf"
	}
}

// ArrayItemKey labels the single element schema shown under an array node.
const ArrayItemKey = "[ ]"

// KindOf classifies n. Objects need type "object" and at least one property;
// arrays need type "array" and an items schema. Everything else is a leaf.
func KindOf(n *Node) NodeKind {
	switch {
	case n == nil:
		return KindLeaf
	case n.Type == "object" && n.Properties != nil && n.Properties.Len() > 0:
		return KindObject
	case n.Type == "array" && n.Items != nil:
		return KindArray
	}
	return KindLeaf
}

// Child is one displayed child of a node.
type Child struct {
	Key      string
	Node     *Node
	Required bool
}

// Children lists the displayed children of n in order. Object children take
// their required flag from n's "required" list; the array element is never
// required.
func Children(n *Node) []Child {
	switch KindOf(n) {
	case KindObject:
		required := make(map[string]bool, len(n.Required))
		for _, r := range n.Required {
			required[r] = true
		}
		out := make([]Child, 0, n.Properties.Len())
		for p := n.Properties.Oldest(); p != nil; p = p.Next() {
			out = append(out, Child{Key: p.Key, Node: p.Value, Required: required[p.Key]})
		}
		return out
	case KindArray:
		return []Child{{Key: ArrayItemKey, Node: n.Items}}
	}
	return nil
}

// Enum returns the enumerated values of n, from "enum" or else the keys of
// "meta:enum". ok is false when n carries neither.
func Enum(n *Node) (values []string, ok bool) {
	if n == nil {
		return nil, false
	}
	if n.Enum != nil {
		values = make([]string, 0, len(n.Enum))
		for _, v := range n.Enum {
			values = append(values, enumString(v))
		}
		return values, true
	}
	if n.MetaEnum != nil {
		values = make([]string, 0, n.MetaEnum.Len())
		for p := n.MetaEnum.Oldest(); p != nil; p = p.Next() {
			values = append(values, p.Key)
		}
		return values, true
	}
	return nil, false
}

func enumString(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case nil:
		return "null"
	case float64, bool:
		return fmt.Sprint(v)
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(raw)
}

// IsIdentity reports whether a node shown under key is an identity: its
// marker is set, or key is "_id" or "identityMap".
func IsIdentity(key string, n *Node) bool {
	if key == "_id" || key == "identityMap" {
		return true
	}
	return n != nil && n.Identity
}

// DisplayType is the type label of n.
func DisplayType(n *Node) string {
	switch {
	case n == nil:
		return "unknown"
	case n.Type != "":
		return n.Type
	case n.Properties != nil && n.Properties.Len() > 0:
		return "object"
	}
	return "unknown"
}

// =============================================================================
// Expansion state
// =============================================================================

// ExpansionState tracks which nodes are expanded, keyed by display path.
// The root (path "") starts expanded and every other node collapsed.
// The zero value is ready to use.
type ExpansionState struct {
	open map[string]bool
}

// Expanded reports whether the node at path is expanded.
func (s *ExpansionState) Expanded(path string) bool {
	if v, ok := s.open[path]; ok {
		return v
	}
	return path == ""
}

// Set expands or collapses the node at path.
func (s *ExpansionState) Set(path string, open bool) {
	if s.open == nil {
		s.open = make(map[string]bool)
	}
	s.open[path] = open
}

// Toggle flips the node at path. Other nodes are unaffected.
func (s *ExpansionState) Toggle(path string) {
	s.Set(path, !s.Expanded(path))
}

// ExpandAll expands every expandable node under root.
func (s *ExpansionState) ExpandAll(root *Node) {
	var visit func(n *Node, path string)
	visit = func(n *Node, path string) {
		if KindOf(n) == KindLeaf {
			return
		}
		s.Set(path, true)
		for _, c := range Children(n) {
			visit(c.Node, ChildPath(path, c.Key))
		}
	}
	visit(root, "")
}

// ChildPath is the display path of the child key under parent.
func ChildPath(parent, key string) string { return joinPath(parent, key) }

// =============================================================================
// Rows
// =============================================================================

// Row is one visible line of a rendered tree.
type Row struct {
	Path     string
	Key      string
	Depth    int
	Node     *Node
	Kind     NodeKind
	Required bool
	Expanded bool
}

// Rows flattens the visible part of the tree under the given state. The
// root row is keyed by its title. A nil state expands only the root.
func Rows(root *Node, state *ExpansionState) []Row {
	if state == nil {
		state = &ExpansionState{}
	}
	var out []Row
	var visit func(c Child, path string, depth int)
	visit = func(c Child, path string, depth int) {
		kind := KindOf(c.Node)
		row := Row{
			Path:     path,
			Key:      c.Key,
			Depth:    depth,
			Node:     c.Node,
			Kind:     kind,
			Required: c.Required,
			Expanded: kind != KindLeaf && state.Expanded(path),
		}
		out = append(out, row)
		if !row.Expanded {
			return
		}
		for _, child := range Children(c.Node) {
			visit(child, ChildPath(path, child.Key), depth+1)
		}
	}
	if root != nil {
		visit(Child{Key: root.Title, Node: root}, "", 0)
	}
	return out
}

// Badges returns the badge labels for a row: "id", "enum:N", "required".
func (r Row) Badges() []string {
	var b []string
	if r.Depth > 0 && IsIdentity(r.Key, r.Node) {
		b = append(b, "id")
	}
	if values, ok := Enum(r.Node); ok {
		b = append(b, fmt.Sprintf("enum:%d", len(values)))
	}
	if r.Required {
		b = append(b, "required")
	}
	return b
}

// Label is the key, followed by the title when the two differ.
func (r Row) Label() string {
	if r.Depth == 0 || r.Node == nil || r.Node.Title == "" || r.Node.Title == r.Key {
		return r.Key
	}
	return fmt.Sprintf("%s (%s)", r.Key, r.Node.Title)
}

// Marker is the expansion glyph for a row.
func (r Row) Marker() string {
	switch {
	case r.Kind == KindLeaf:
		return "•"
	case r.Expanded:
		return "▾"
	default:
		return "▸"
	}
}

// Render writes the visible tree as indented text, one row per line.
func Render(w io.Writer, root *Node, state *ExpansionState) error {
	for _, r := range Rows(root, state) {
		line := fmt.Sprintf("%s%s %s  %s", strings.Repeat("  ", r.Depth), r.Marker(), r.Label(), DisplayType(r.Node))
		if b := r.Badges(); len(b) > 0 {
			line += " [" + strings.Join(b, ", ") + "]"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
