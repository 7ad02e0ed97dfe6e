package aep

import (
	"errors"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
	"github.com/tidwall/gjson"

	apperrors "github.com/matzehuels/aepplanner/pkg/errors"
	"github.com/matzehuels/aepplanner/pkg/model"
	"github.com/matzehuels/aepplanner/pkg/xdm"
)

// MaxFields caps the fields kept per imported schema.
const MaxFields = 50

// Fallbacks for missing attributes.
const (
	UnknownSchemaID  = "unknown"
	ClassExtended    = "XDM Extended"
	ClassDefault     = "XDM Class"
	unnamedSchema    = "Unknown Schema"
	unnamedDataset   = "Unknown Dataset"
	defaultFieldType = "string"
)

// ErrUnrecognized is returned for documents that are neither a Schema
// Registry schema nor a Catalog dataset.
var ErrUnrecognized = errors.New("neither a schema nor a dataset")

// Kind tells which entity a document mapped to.
type Kind string

const (
	KindSchema  Kind = "schema"
	KindDataset Kind = "dataset"
)

// Entity is the result of mapping one document. Exactly one of Schema and
// Dataset is set, matching Kind.
type Entity struct {
	Kind    Kind
	Schema  *model.Schema
	Dataset *model.Dataset
}

// ID returns the id of the mapped entity.
func (e Entity) ID() string {
	if e.Schema != nil {
		return e.Schema.ID
	}
	if e.Dataset != nil {
		return e.Dataset.ID
	}
	return ""
}

var (
	pathTitle         = jp.C("title")
	pathSchemaID      = jp.C("$id")
	pathID            = jp.C("id")
	pathMeta          = jp.C("meta")
	pathImmutableTags = jp.C("meta").C("immutableTags")
	pathExtends       = jp.C("meta:extends")
	pathName          = jp.C("name")
	pathSchemaRef     = jp.C("schemaRef")
	pathSchemaRefID   = jp.C("schemaRef").C("id")
	pathCreated       = jp.C("created")
)

// Mapper converts AEP API payloads into planner entities. The zero value
// generates ids with uuid and dates from the wall clock.
type Mapper struct {
	NewID func() string
	Now   func() time.Time
}

// Map classifies and converts a single document with the default [Mapper].
func Map(data []byte) (Entity, error) { return Mapper{}.Map(data) }

// Map classifies and converts a single document.
//
// A document with a title and either "$id" or "meta" is a schema. One with a
// name and a "schemaRef" is a dataset. Anything else fails with
// [ErrUnrecognized], wrapped as INVALID_INPUT.
func (m Mapper) Map(data []byte) (Entity, error) {
	doc, err := oj.Parse(data)
	if err != nil {
		return Entity{}, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "invalid JSON")
	}
	switch {
	case isSchema(doc):
		s := m.schema(doc, gjson.ParseBytes(data))
		return Entity{Kind: KindSchema, Schema: &s}, nil
	case isDataset(doc):
		d := m.dataset(doc, "")
		return Entity{Kind: KindDataset, Dataset: &d}, nil
	}
	return Entity{}, apperrors.Wrap(apperrors.ErrCodeInvalidInput, ErrUnrecognized, "could not determine type of import")
}

func isSchema(doc any) bool {
	return str(pathTitle.First(doc)) != "" &&
		(truthy(pathSchemaID.First(doc)) || truthy(pathMeta.First(doc)))
}

func isDataset(doc any) bool {
	return str(pathName.First(doc)) != "" && truthy(pathSchemaRef.First(doc))
}

func (m Mapper) schema(doc any, raw gjson.Result) model.Schema {
	title := str(pathTitle.First(doc))

	id := EntityID(str(pathSchemaID.First(doc)))
	if id == "" {
		id = EntityID(str(pathID.First(doc)))
	}
	if id == "" {
		id = "schema-" + m.newID()
	}

	class := ClassDefault
	if truthy(pathExtends.First(doc)) {
		class = ClassExtended
	}

	tags, _ := pathImmutableTags.First(doc).([]any)
	profile := slices.Contains(tags, any("union")) ||
		strings.Contains(strings.ToLower(title), "profile")

	if title == "" {
		title = unnamedSchema
	}
	return model.Schema{
		ID:               id,
		Name:             title,
		Class:            class,
		IsProfileEnabled: profile,
		Fields:           fields(raw),
	}
}

// fields flattens the document's properties in key order. Untyped leaves
// default to string.
func fields(raw gjson.Result) []model.Field {
	props := raw.Get("properties")
	if !props.IsObject() {
		return []model.Field{}
	}
	out := xdm.ModelFields(xdm.Extract(xdm.SingleSchema{Properties: props}))
	if len(out) > MaxFields {
		out = out[:MaxFields]
	}
	for i := range out {
		if out[i].Type == "" {
			out[i].Type = defaultFieldType
		}
	}
	return out
}

func (m Mapper) dataset(doc any, id string) model.Dataset {
	if id == "" {
		id = str(pathID.First(doc))
	}
	id = EntityID(id)
	if id == "" {
		id = "dataset-" + m.newID()
	}

	schemaID := UnknownSchemaID
	switch ref := pathSchemaRef.First(doc).(type) {
	case string:
		if ref := EntityID(ref); ref != "" {
			schemaID = ref
		}
	case map[string]any:
		if s := EntityID(str(pathSchemaRefID.First(doc))); s != "" {
			schemaID = s
		}
	}

	name := str(pathName.First(doc))
	if name == "" {
		name = unnamedDataset
	}
	return model.Dataset{
		ID:       id,
		Name:     name,
		SchemaID: schemaID,
		Created:  m.created(pathCreated.First(doc)),
	}
}

// created normalizes Catalog timestamps. Catalog reports epoch
// milliseconds; hand-written payloads use date strings, kept as is.
func (m Mapper) created(v any) string {
	switch t := v.(type) {
	case string:
		if t != "" {
			return t
		}
	case int64:
		return time.UnixMilli(t).UTC().Format(time.DateOnly)
	case float64:
		return time.UnixMilli(int64(t)).UTC().Format(time.DateOnly)
	}
	return m.now().UTC().Format(time.DateOnly)
}

var unsafeIDChars = regexp.MustCompile(`[^A-Za-z0-9_.:\-]+`)

// EntityID turns a Registry or Catalog reference into a planner id. The URI
// scheme is dropped and runs of characters outside [A-Za-z0-9_.:-] become
// a single underscore, so
// "https://ns.adobe.com/acme/schemas/loyalty" maps to
// "ns.adobe.com_acme_schemas_loyalty". Plain ids pass through unchanged.
func EntityID(ref string) string {
	if _, rest, ok := strings.Cut(ref, "://"); ok {
		ref = rest
	}
	return strings.Trim(unsafeIDChars.ReplaceAllString(ref, "_"), "_")
}

func (m Mapper) newID() string {
	if m.NewID != nil {
		return m.NewID()
	}
	return uuid.NewString()
}

func (m Mapper) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

// truthy follows JSON truthiness: null, false, 0 and "" are false.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case int64:
		return t != 0
	case float64:
		return t != 0
	}
	return true
}
