package xdm

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Keys with special meaning in XDM exports.
const (
	keyProperties   = "properties"
	keyType         = "type"
	keyTitle        = "title"
	keyItems        = "items"
	keyRequired     = "required"
	keyEnum         = "enum"
	keyMetaEnum     = "meta:enum"
	keyIdentity     = "isIdentity"
	keyResourceType = "meta:resourceType"
	keyDescType     = "@type"
	keySourceProp   = "xdm:sourceProperty"
	keySourceSchema = "xdm:sourceSchema"
	keyNamespace    = "xdm:namespace"

	resourceDescriptors = "descriptors"
	descriptorIdentity  = "xdm:descriptorIdentity"
)

// Bag is an ordered mapping of metadata keys to raw JSON values.
// It carries source metadata through the pipeline without interpreting it.
type Bag = orderedmap.OrderedMap[string, json.RawMessage]

func newBag() *Bag { return orderedmap.New[string, json.RawMessage]() }

// Input is the classified shape of a schema document.
// It is either a [SingleSchema] or a [MixinArray].
type Input interface {
	shape() string
}

// SingleSchema is an object document with a "properties" mapping.
type SingleSchema struct {
	Properties gjson.Result
}

func (SingleSchema) shape() string { return "schema" }

// MixinArray is an array export of mixin fragments and descriptors.
type MixinArray struct {
	Fragments   []gjson.Result
	Descriptors []Descriptor
}

func (MixinArray) shape() string { return "mixins" }

// Descriptor is a metadata record from an array export.
type Descriptor struct {
	Type           string // "@type", e.g. "xdm:descriptorIdentity"
	SourceProperty string // "xdm:sourceProperty" as written
	SourceSchema   string
	Namespace      string
}

// IsIdentity reports whether the descriptor asserts an identity.
func (d Descriptor) IsIdentity() bool {
	return d.Type == descriptorIdentity && d.SourceProperty != ""
}

// Shape returns "schema" or "mixins" for a classified input.
func Shape(in Input) string { return in.shape() }

// Classify decides the shape of a parsed document.
// Returns [ErrUnrecognizedShape] when doc is neither an object with a
// "properties" mapping nor an array.
func Classify(doc gjson.Result) (Input, error) {
	switch {
	case doc.IsArray():
		var in MixinArray
		for _, el := range doc.Array() {
			if str(member(el, keyResourceType)) == resourceDescriptors {
				in.Descriptors = append(in.Descriptors, descriptorFrom(el))
				continue
			}
			in.Fragments = append(in.Fragments, el)
		}
		return in, nil
	case doc.IsObject():
		if props := member(doc, keyProperties); props.IsObject() {
			return SingleSchema{Properties: props}, nil
		}
	}
	return nil, ErrUnrecognizedShape
}

func descriptorFrom(el gjson.Result) Descriptor {
	return Descriptor{
		Type:           str(member(el, keyDescType)),
		SourceProperty: str(member(el, keySourceProp)),
		SourceSchema:   str(member(el, keySourceSchema)),
		Namespace:      str(member(el, keyNamespace)),
	}
}

// entry is one key/value pair of a JSON object.
type entry struct {
	key   string
	value gjson.Result
}

// entries returns the members of obj in document order. A repeated key keeps
// the position of its first occurrence and the value of its last.
func entries(obj gjson.Result) []entry {
	if !obj.IsObject() {
		return nil
	}
	var out []entry
	index := make(map[string]int)
	obj.ForEach(func(k, v gjson.Result) bool {
		key := k.String()
		if i, ok := index[key]; ok {
			out[i].value = v
			return true
		}
		index[key] = len(out)
		out = append(out, entry{key: key, value: v})
		return true
	})
	return out
}

// member returns the value stored under key, or an empty result.
// Lookups go through ForEach so keys such as "@type" need no path escaping.
func member(obj gjson.Result, key string) gjson.Result {
	var out gjson.Result
	if !obj.IsObject() {
		return out
	}
	obj.ForEach(func(k, v gjson.Result) bool {
		if k.String() == key {
			out = v
		}
		return true
	})
	return out
}

// memberPath follows a chain of keys through nested objects.
func memberPath(obj gjson.Result, keys ...string) gjson.Result {
	for _, k := range keys {
		obj = member(obj, k)
	}
	return obj
}

// str returns the string value of r, or "" when r is not a JSON string.
func str(r gjson.Result) string {
	if r.Type != gjson.String {
		return ""
	}
	return r.Str
}

// joinPath appends key to a dot-delimited prefix.
func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// normalizeSourceProperty converts JSON-pointer style source properties
// ("/_tenant/loyalty/id") into dot paths ("_tenant.loyalty.id").
func normalizeSourceProperty(sp string) string {
	if !strings.HasPrefix(sp, "/") {
		return sp
	}
	return strings.ReplaceAll(strings.TrimPrefix(sp, "/"), "/", ".")
}
