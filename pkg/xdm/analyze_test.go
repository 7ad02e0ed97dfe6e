package xdm

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/matzehuels/aepplanner/pkg/errors"
	"github.com/matzehuels/aepplanner/pkg/model"
)

const shapeA = `{"properties": {"a": {"type": "string"}, "b": {"type": "object", "properties": {"c": {"type": "integer"}}}}}`

const tenantMixin = `[{"definitions":{"customFields":{"properties":{"_tenant1":{"properties":{"group":{"properties":{"field1":{"type":"string"}}}}}}}}}]`

func paths(fields []Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Path
	}
	return out
}

func TestAnalyzeSingleSchema(t *testing.T) {
	res, err := Analyze(shapeA)
	require.NoError(t, err)

	assert.Equal(t, "schema", res.Shape)
	assert.Equal(t, []string{"a", "b.c"}, paths(res.Fields))

	a, ok := res.Root.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, "string", a.Type)

	c, ok := res.Root.Lookup("b", "c")
	require.True(t, ok)
	assert.Equal(t, "integer", c.Type)

	assert.Equal(t, RootTitle, res.Root.Title)
	assert.Equal(t, "object", res.Root.Type)
}

func TestAnalyzeMixinTenantPrefix(t *testing.T) {
	res, err := Analyze(tenantMixin)
	require.NoError(t, err)
	require.Len(t, res.Fields, 1)

	path := res.Fields[0].Path
	assert.True(t, strings.HasPrefix(path, "_tenant1."), path)
	assert.True(t, strings.HasSuffix(path, "group.field1"), path)
	assert.Equal(t, "mixins", res.Shape)
}

func TestAnalyzeIdentityDescriptor(t *testing.T) {
	doc := `[
		{"definitions":{"customFields":{"properties":{"_tenant1":{"properties":{
			"group":{"properties":{"field1":{"type":"string"},"field2":{"type":"string"}}}}}}}}},
		{"meta:resourceType":"descriptors","@type":"xdm:descriptorIdentity","xdm:sourceProperty":"_tenant1.group.field1"}
	]`
	res, err := Analyze(doc)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Identities)

	f1, ok := res.Root.Lookup("_tenant1", "group", "field1")
	require.True(t, ok)
	assert.True(t, f1.Identity)

	f2, ok := res.Root.Lookup("_tenant1", "group", "field2")
	require.True(t, ok)
	assert.False(t, f2.Identity)
}

func TestAnalyzeMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
		cause error
	}{
		{"broken json", "{not valid json", ErrParse},
		{"empty", "", ErrParse},
		{"object without properties", `{"title":"x"}`, ErrUnrecognizedShape},
		{"properties not an object", `{"properties":[1,2]}`, ErrUnrecognizedShape},
		{"scalar", `42`, ErrUnrecognizedShape},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Analyze(tt.input)
			require.Error(t, err)
			assert.Nil(t, res)
			assert.True(t, errors.Is(err, tt.cause))
			assert.True(t, apperrors.Is(err, apperrors.ErrCodeInvalidSchema))
			assert.Equal(t, InvalidSchemaMessage, apperrors.UserMessage(err))
		})
	}
}

func TestAnalyzeEmptyArray(t *testing.T) {
	res, err := Analyze("[]")
	require.NoError(t, err)
	require.NotNil(t, res.Root.Properties)
	assert.Equal(t, 0, res.Root.Properties.Len())
	assert.Empty(t, res.Fields)
}

func TestAnalyzeReader(t *testing.T) {
	res, err := AnalyzeReader(strings.NewReader(shapeA))
	require.NoError(t, err)
	assert.Len(t, res.Fields, 2)
}

func TestReconstructIsDeterministic(t *testing.T) {
	res, err := Analyze(`{"properties":{
		"z":{"type":"string","description":"last letter","enum":["a","b"]},
		"person":{"type":"object","properties":{"name":{"type":"object","properties":{"first":{"type":"string"}}},"age":{"type":"integer"}}},
		"tags":{"type":"array","items":{"type":"string"}}}}`)
	require.NoError(t, err)

	first, _ := Reconstruct(res.Fields)
	second, _ := Reconstruct(res.Fields)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestReconstructSiblingOrder(t *testing.T) {
	fields := []Field{
		{Field: model.Field{Name: "z", Type: "string", Path: "p.z"}},
		{Field: model.Field{Name: "a", Type: "string", Path: "q"}},
		{Field: model.Field{Name: "m", Type: "string", Path: "p.m"}},
	}
	root, conflicts := Reconstruct(fields)
	assert.Empty(t, conflicts)

	var keys []string
	for p := root.Properties.Oldest(); p != nil; p = p.Next() {
		keys = append(keys, p.Key)
	}
	assert.Equal(t, []string{"p", "q"}, keys)

	p, _ := root.Child("p")
	keys = nil
	for c := p.Properties.Oldest(); c != nil; c = c.Next() {
		keys = append(keys, c.Key)
	}
	assert.Equal(t, []string{"z", "m"}, keys)
}

func TestReconstructDoesNotModifyFields(t *testing.T) {
	res, err := Analyze(shapeA)
	require.NoError(t, err)
	before := paths(res.Fields)
	Reconstruct(res.Fields)
	assert.Equal(t, before, paths(res.Fields))
}

func TestReconstructReattachesMetadata(t *testing.T) {
	res, err := Analyze(`{"properties":{"gender":{"title":"Gender","type":"string","description":"declared gender","meta:enum":{"m":"Male","f":"Female"}}}}`)
	require.NoError(t, err)

	g, ok := res.Root.Child("gender")
	require.True(t, ok)
	assert.Equal(t, "Gender", g.Title)
	assert.Equal(t, "string", g.Type)

	desc, ok := g.Extra.Get("description")
	require.True(t, ok)
	assert.JSONEq(t, `"declared gender"`, string(desc))

	values, ok := Enum(g)
	require.True(t, ok)
	assert.Equal(t, []string{"m", "f"}, values)
}

func TestReconstructShapeConflicts(t *testing.T) {
	t.Run("leaf then prefix", func(t *testing.T) {
		root, conflicts := Reconstruct([]Field{
			{Field: model.Field{Name: "a", Type: "string", Path: "a"}},
			{Field: model.Field{Name: "b", Type: "integer", Path: "a.b"}},
		})
		assert.Equal(t, []Conflict{{Path: "a", Field: "a.b"}}, conflicts)

		a, _ := root.Child("a")
		assert.Equal(t, "object", a.Type)
		b, ok := a.Child("b")
		require.True(t, ok)
		assert.Equal(t, "integer", b.Type)
	})

	t.Run("prefix then leaf", func(t *testing.T) {
		root, conflicts := Reconstruct([]Field{
			{Field: model.Field{Name: "b", Type: "integer", Path: "a.b"}},
			{Field: model.Field{Name: "A", Type: "string", Path: "a"}},
		})
		assert.Equal(t, []Conflict{{Path: "a", Field: "a"}}, conflicts)

		a, _ := root.Child("a")
		assert.Equal(t, "string", a.Type)
		assert.Equal(t, "A", a.Title)
		assert.Equal(t, KindLeaf, KindOf(a))
		_, ok := a.Child("b")
		assert.True(t, ok, "earlier child is kept")
	})
}

func TestExtractDuplicateKeys(t *testing.T) {
	res, err := Analyze(`{"properties":{"a":{"type":"string"},"b":{"type":"integer"},"a":{"type":"number"}}}`)
	require.NoError(t, err)
	require.Len(t, res.Fields, 2)
	assert.Equal(t, "a", res.Fields[0].Path)
	assert.Equal(t, "number", res.Fields[0].Type)
	assert.Equal(t, "b", res.Fields[1].Path)
}

func TestExtractUsesTitleAsName(t *testing.T) {
	res, err := Analyze(`{"properties":{"email":{"title":"Email Address","type":"string"},"x":{}}}`)
	require.NoError(t, err)
	require.Len(t, res.Fields, 2)
	assert.Equal(t, "Email Address", res.Fields[0].Name)
	assert.Equal(t, "x", res.Fields[1].Name)
	assert.Equal(t, "", res.Fields[1].Type)
	assert.False(t, res.Fields[0].IsRequired)
}

func TestExtractContainerRule(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"typed object", `{"properties":{"u":{"type":"object","properties":{"x":{"type":"string"}}}}}`, []string{"u.x"}},
		{"untyped group", `{"properties":{"u":{"properties":{"x":{"type":"string"}}}}}`, []string{"u.x"}},
		{"typed leaf with properties", `{"properties":{"u":{"type":"array","properties":{"x":{"type":"string"}}}}}`, []string{"u"}},
		{"properties not an object", `{"properties":{"u":{"properties":["x"]}}}`, []string{"u"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Analyze(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, paths(res.Fields))
		})
	}
}

func TestExtractLeafKeepsNestedProperties(t *testing.T) {
	res, err := Analyze(`{"properties":{"u":{"type":"array","properties":{"x":{"type":"string"}}}}}`)
	require.NoError(t, err)
	require.Len(t, res.Fields, 1)
	assert.Equal(t, "array", res.Fields[0].Type)
	raw, ok := res.Fields[0].Original.Get("properties")
	require.True(t, ok)
	assert.JSONEq(t, `{"x":{"type":"string"}}`, string(raw))
}

func TestExtractSkipsFragmentsWithoutCustomFields(t *testing.T) {
	res, err := Analyze(`[{"title":"no fields"},{"definitions":{"customFields":{"properties":{"_t":{"type":"object"}}}}}]`)
	require.NoError(t, err)
	assert.Empty(t, res.Fields)
}

func TestMarshalNodeKeyOrder(t *testing.T) {
	root, _ := Reconstruct([]Field{
		{Field: model.Field{Name: "ID", Type: "string", Path: "id", IsIdentity: true}},
	})
	data, err := json.Marshal(root)
	require.NoError(t, err)
	assert.Equal(t,
		`{"title":"Schema Root","type":"object","properties":{"id":{"title":"ID","type":"string","isIdentity":true}}}`,
		string(data))

	var back Node
	require.NoError(t, json.Unmarshal(data, &back))
	id, ok := back.Child("id")
	require.True(t, ok)
	assert.True(t, id.Identity)
}
