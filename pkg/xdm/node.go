package xdm

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// RootTitle is the title of every reconstructed tree root.
const RootTitle = "Schema Root"

// Properties is an ordered mapping from structural key to child node.
type Properties = orderedmap.OrderedMap[string, *Node]

// Node is one node of a reconstructed schema tree.
//
// Only the keys the pipeline interprets have typed fields. Every other key
// found in the source document is kept verbatim in Extra and written back
// out by MarshalJSON.
type Node struct {
	Title      string
	Type       string
	Identity   bool        // set from the field's identity flag
	Properties *Properties // nil on leaves
	Items      *Node       // element schema of an array node
	Required   []string
	Enum       []any
	MetaEnum   *Bag // "meta:enum": value -> label
	Extra      *Bag
}

func newObjectNode(title string) *Node {
	return &Node{Title: title, Type: "object", Properties: orderedmap.New[string, *Node]()}
}

// Child returns the child stored under key.
func (n *Node) Child(key string) (*Node, bool) {
	if n == nil || n.Properties == nil {
		return nil, false
	}
	return n.Properties.Get(key)
}

// Lookup walks Properties along a dot-delimited path.
func (n *Node) Lookup(keys ...string) (*Node, bool) {
	cur := n
	for _, k := range keys {
		next, ok := cur.Child(k)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// apply stores one source member on the node. Typed keys with an unexpected
// JSON type fall through to Extra so nothing is lost.
func (n *Node) apply(key string, v gjson.Result) {
	switch key {
	case keyTitle:
		if v.Type == gjson.String {
			n.Title = v.Str
			return
		}
	case keyType:
		if v.Type == gjson.String {
			n.Type = v.Str
			return
		}
	case keyIdentity:
		if v.IsBool() {
			n.Identity = v.Bool()
			return
		}
	case keyProperties:
		if v.IsObject() {
			n.mergeProperties(v)
			return
		}
	case keyItems:
		if v.IsObject() {
			n.Items = decodeNode(v)
			return
		}
	case keyRequired:
		if v.IsArray() {
			n.Required = n.Required[:0:0]
			for _, r := range v.Array() {
				if r.Type == gjson.String {
					n.Required = append(n.Required, r.Str)
				}
			}
			return
		}
	case keyEnum:
		if v.IsArray() {
			n.Enum = n.Enum[:0:0]
			for _, e := range v.Array() {
				n.Enum = append(n.Enum, e.Value())
			}
			return
		}
	case keyMetaEnum:
		if v.IsObject() {
			n.MetaEnum = newBag()
			for _, e := range entries(v) {
				n.MetaEnum.Set(e.key, json.RawMessage(e.value.Raw))
			}
			return
		}
	}
	if n.Extra == nil {
		n.Extra = newBag()
	}
	n.Extra.Set(key, json.RawMessage(v.Raw))
}

// mergeProperties adds children from a "properties" object. Children that
// already exist are kept as they are.
func (n *Node) mergeProperties(v gjson.Result) {
	if n.Properties == nil {
		n.Properties = orderedmap.New[string, *Node]()
	}
	for _, e := range entries(v) {
		if _, ok := n.Properties.Get(e.key); ok {
			continue
		}
		n.Properties.Set(e.key, decodeNode(e.value))
	}
}

// overlay applies a carried-through metadata bag in order.
func (n *Node) overlay(bag *Bag) {
	if bag == nil {
		return
	}
	for p := bag.Oldest(); p != nil; p = p.Next() {
		n.apply(p.Key, gjson.ParseBytes(p.Value))
	}
}

func decodeNode(v gjson.Result) *Node {
	n := &Node{}
	for _, e := range entries(v) {
		n.apply(e.key, e.value)
	}
	return n
}

// DecodeNode parses a JSON schema node, preserving key order.
func DecodeNode(data []byte) (*Node, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrParse
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, ErrUnrecognizedShape
	}
	return decodeNode(doc), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Node) UnmarshalJSON(data []byte) error {
	d, err := DecodeNode(data)
	if err != nil {
		return err
	}
	*n = *d
	return nil
}

// MarshalJSON implements json.Marshaler. Keys are written in a fixed order:
// title, type, isIdentity, required, enum, meta:enum, the carried-through
// metadata in source order, items and finally properties.
func (n *Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	write := func(key string, v any) error {
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", key, err)
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		k, _ := json.Marshal(key)
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(raw)
		return nil
	}

	type member struct {
		key  string
		skip bool
		val  any
	}
	members := []member{
		{keyTitle, n.Title == "", n.Title},
		{keyType, n.Type == "", n.Type},
		{keyIdentity, !n.Identity, true},
		{keyRequired, n.Required == nil, n.Required},
		{keyEnum, n.Enum == nil, n.Enum},
		{keyMetaEnum, n.MetaEnum == nil, n.MetaEnum},
	}
	for _, m := range members {
		if m.skip {
			continue
		}
		if err := write(m.key, m.val); err != nil {
			return nil, err
		}
	}
	if n.Extra != nil {
		for p := n.Extra.Oldest(); p != nil; p = p.Next() {
			if err := write(p.Key, p.Value); err != nil {
				return nil, err
			}
		}
	}
	if n.Items != nil {
		if err := write(keyItems, n.Items); err != nil {
			return nil, err
		}
	}
	if n.Properties != nil {
		if err := write(keyProperties, n.Properties); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
