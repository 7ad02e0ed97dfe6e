package xdm

import (
	"encoding/json"

	"github.com/tidwall/gjson"

	"github.com/matzehuels/aepplanner/pkg/model"
)

// Field is a leaf attribute discovered during extraction.
//
// The embedded [model.Field] carries the display name, type, dot path and
// flags. Original holds every other key of the source node (enums,
// descriptions, nested constraints) so reconstruction can reattach it.
type Field struct {
	model.Field
	Original *Bag `json:"-"`
}

// Extract flattens a classified document into fields, depth-first, in
// document key order.
//
// For a [SingleSchema] the "properties" mapping is walked from the root.
// For a [MixinArray] every fragment's definitions.customFields.properties is
// scanned per tenant, and each tenant's "properties" is walked with the
// tenant id as path prefix. Descriptors are not applied here; see [Annotate].
func Extract(in Input) []Field {
	var out []Field
	switch v := in.(type) {
	case SingleSchema:
		out = walk(v.Properties, "", out)
	case MixinArray:
		for _, frag := range v.Fragments {
			tenants := memberPath(frag, "definitions", "customFields", keyProperties)
			for _, t := range entries(tenants) {
				if props := member(t.value, keyProperties); props.IsObject() {
					out = walk(props, t.key, out)
				}
			}
		}
	}
	return out
}

// walk visits one "properties" mapping. Nodes holding their own "properties"
// object are descended into when typed "object" or untyped, so untyped field
// groups in mixin exports ("_tenant.group.field") flatten to their leaves.
// Everything else is emitted as a field.
func walk(props gjson.Result, prefix string, out []Field) []Field {
	for _, e := range entries(props) {
		path := joinPath(prefix, e.key)
		if isContainer(e.value) {
			out = walk(member(e.value, keyProperties), path, out)
			continue
		}
		out = append(out, newField(e.key, path, e.value))
	}
	return out
}

func isContainer(v gjson.Result) bool {
	if !member(v, keyProperties).IsObject() {
		return false
	}
	t := member(v, keyType)
	return !t.Exists() || str(t) == "object"
}

func newField(key, path string, v gjson.Result) Field {
	name := str(member(v, keyTitle))
	if name == "" {
		name = key
	}
	original := newBag()
	for _, e := range entries(v) {
		if e.key == keyTitle || e.key == keyType {
			continue
		}
		original.Set(e.key, json.RawMessage(e.value.Raw))
	}
	return Field{
		Field: model.Field{
			Name: name,
			Type: str(member(v, keyType)),
			Path: path,
		},
		Original: original,
	}
}

// ModelFields strips the carried metadata, returning plain entity fields.
func ModelFields(fields []Field) []model.Field {
	out := make([]model.Field, len(fields))
	for i, f := range fields {
		out[i] = f.Field
	}
	return out
}
