package aep

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/matzehuels/aepplanner/pkg/errors"
	"github.com/matzehuels/aepplanner/pkg/model"
	"github.com/matzehuels/aepplanner/pkg/project"
)

var fixed = Mapper{
	NewID: func() string { return "fixed" },
	Now:   func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) },
}

const registrySchema = `{
  "$id": "https://ns.adobe.com/acme/schemas/loyalty",
  "title": "Loyalty Members",
  "meta:extends": ["https://ns.adobe.com/xdm/context/profile"],
  "meta": {"immutableTags": ["union"]},
  "properties": {
    "_acme": {
      "type": "object",
      "properties": {
        "loyaltyId": {"title": "Loyalty ID", "type": "string"},
        "tier": {"enum": ["gold", "silver"]}
      }
    },
    "email": {"type": "string"}
  }
}`

func TestMapSchema(t *testing.T) {
	e, err := fixed.Map([]byte(registrySchema))
	require.NoError(t, err)
	require.Equal(t, KindSchema, e.Kind)
	require.NotNil(t, e.Schema)

	s := *e.Schema
	assert.Equal(t, "ns.adobe.com_acme_schemas_loyalty", s.ID)
	assert.Equal(t, "Loyalty Members", s.Name)
	assert.Equal(t, ClassExtended, s.Class)
	assert.True(t, s.IsProfileEnabled)
	assert.Equal(t, []model.Field{
		{Name: "Loyalty ID", Type: "string", Path: "_acme.loyaltyId"},
		{Name: "tier", Type: "string", Path: "_acme.tier"},
		{Name: "email", Type: "string", Path: "email"},
	}, s.Fields)
}

func TestMapSchemaDefaults(t *testing.T) {
	e, err := fixed.Map([]byte(`{"title": "Orders", "meta": {}}`))
	require.NoError(t, err)
	s := e.Schema
	assert.Equal(t, "schema-fixed", s.ID)
	assert.Equal(t, ClassDefault, s.Class)
	assert.False(t, s.IsProfileEnabled)
	assert.Empty(t, s.Fields)
}

func TestMapSchemaProfileByTitle(t *testing.T) {
	e, err := fixed.Map([]byte(`{"title": "CRM PROFILE data", "id": "s1", "meta": {"x": 1}}`))
	require.NoError(t, err)
	assert.Equal(t, "s1", e.Schema.ID)
	assert.True(t, e.Schema.IsProfileEnabled)
}

func TestMapSchemaFieldCap(t *testing.T) {
	doc := `{"title": "Wide", "$id": "w", "properties": {`
	for i := range MaxFields + 10 {
		if i > 0 {
			doc += ","
		}
		doc += `"f` + string(rune('A'+i/26)) + string(rune('a'+i%26)) + `": {"type": "integer"}`
	}
	doc += "}}"

	e, err := fixed.Map([]byte(doc))
	require.NoError(t, err)
	assert.Len(t, e.Schema.Fields, MaxFields)
	assert.Equal(t, "fAa", e.Schema.Fields[0].Path)
}

func TestMapDataset(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want model.Dataset
	}{
		{
			name: "catalog ref object",
			doc:  `{"id": "ds1", "name": "Web", "schemaRef": {"id": "s1", "contentType": "application/vnd.adobe.xed+json"}, "created": 1736467200000}`,
			want: model.Dataset{ID: "ds1", Name: "Web", SchemaID: "s1", Created: "2025-01-10"},
		},
		{
			name: "string ref",
			doc:  `{"id": "ds2", "name": "POS", "schemaRef": "s2", "created": "2025-01-15"}`,
			want: model.Dataset{ID: "ds2", Name: "POS", SchemaID: "s2", Created: "2025-01-15"},
		},
		{
			name: "ref without id",
			doc:  `{"name": "Orphan", "schemaRef": {"contentType": "x"}}`,
			want: model.Dataset{ID: "dataset-fixed", Name: "Orphan", SchemaID: UnknownSchemaID, Created: "2025-03-01"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := fixed.Map([]byte(tt.doc))
			require.NoError(t, err)
			require.Equal(t, KindDataset, e.Kind)
			assert.Equal(t, tt.want, *e.Dataset)
		})
	}
}

func TestEntityID(t *testing.T) {
	tests := []struct{ in, want string }{
		{"ds_web", "ds_web"},
		{"5f1a2b3c", "5f1a2b3c"},
		{"https://ns.adobe.com/acme/schemas/loyalty", "ns.adobe.com_acme_schemas_loyalty"},
		{"https://ns.adobe.com/acme/schemas/a1b2;version=1", "ns.adobe.com_acme_schemas_a1b2_version_1"},
		{"/", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EntityID(tt.in), tt.in)
	}
}

func TestMapDatasetSchemaRefMatchesSchemaID(t *testing.T) {
	s, err := fixed.Map([]byte(registrySchema))
	require.NoError(t, err)
	d, err := fixed.Map([]byte(`{"id": "ds", "name": "Loyalty", "schemaRef": {"id": "https://ns.adobe.com/acme/schemas/loyalty"}}`))
	require.NoError(t, err)
	assert.Equal(t, s.Schema.ID, d.Dataset.SchemaID)
}

func TestMapUnrecognized(t *testing.T) {
	for _, doc := range []string{
		`{"title": "no id or meta"}`,
		`{"name": "no schemaRef"}`,
		`[1, 2]`,
		`"text"`,
	} {
		_, err := fixed.Map([]byte(doc))
		assert.ErrorIs(t, err, ErrUnrecognized, doc)
		assert.True(t, apperrors.Is(err, apperrors.ErrCodeInvalidInput), doc)
	}

	_, err := fixed.Map([]byte(`{"title":`))
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeInvalidInput))
	assert.NotErrorIs(t, err, ErrUnrecognized)
}

func TestMapGeneratesUUID(t *testing.T) {
	e, err := Map([]byte(`{"title": "Orders", "meta": {}}`))
	require.NoError(t, err)
	assert.Len(t, e.Schema.ID, len("schema-")+36)
}

func TestMapBundle(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		schemas  int
		datasets int
		skipped  int
	}{
		{
			name:     "export bundle",
			doc:      `{"schemas": [` + registrySchema + `], "datasets": [{"id": "d", "name": "D", "schemaRef": "s"}, {"foo": 1}]}`,
			schemas:  1,
			datasets: 1,
			skipped:  1,
		},
		{
			name:     "array",
			doc:      `[{"title": "A", "$id": "a"}, {"id": "d", "name": "D", "schemaRef": "a"}]`,
			schemas:  1,
			datasets: 1,
		},
		{
			name:     "catalog listing",
			doc:      `{"5f1": {"name": "One", "schemaRef": {"id": "s"}}, "5f2": {"name": "Two", "schemaRef": {"id": "s"}}}`,
			datasets: 2,
		},
		{
			name:    "single schema",
			doc:     registrySchema,
			schemas: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := fixed.MapBundle([]byte(tt.doc))
			require.NoError(t, err)
			assert.Len(t, b.Schemas, tt.schemas)
			assert.Len(t, b.Datasets, tt.datasets)
			assert.Equal(t, tt.skipped, b.Skipped)
		})
	}
}

func TestMapBundleCatalogIDs(t *testing.T) {
	b, err := fixed.MapBundle([]byte(`{"5f1": {"name": "One", "schemaRef": {"id": "s"}}}`))
	require.NoError(t, err)
	require.Len(t, b.Datasets, 1)
	assert.Equal(t, "5f1", b.Datasets[0].ID)
}

func TestMapBundleEmpty(t *testing.T) {
	for _, doc := range []string{`[]`, `{"schemas": []}`, `{"a": {"b": 1}}`, `nope`} {
		_, err := fixed.MapBundle([]byte(doc))
		assert.True(t, apperrors.Is(err, apperrors.ErrCodeInvalidInput), doc)
	}
}

func TestApply(t *testing.T) {
	st := project.Sample()
	b := Bundle{
		Schemas: []model.Schema{
			{ID: "schema_offline_orders", Name: "Orders v2"},
			{ID: "schema_new", Name: "New"},
		},
		Datasets: []model.Dataset{{ID: "ds_new", Name: "New DS", SchemaID: "schema_new"}},
	}

	got := Apply(st, b)
	assert.Len(t, got.Schemas, len(st.Schemas)+1)
	assert.Len(t, got.Datasets, len(st.Datasets)+1)

	s, ok := model.FindSchema(got.Schemas, "schema_offline_orders")
	require.True(t, ok)
	assert.Equal(t, "Orders v2", s.Name)

	orig, _ := model.FindSchema(st.Schemas, "schema_offline_orders")
	assert.Equal(t, "Offline Orders", orig.Name)
}
