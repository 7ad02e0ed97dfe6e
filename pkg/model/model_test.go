package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIngestTypeValid(t *testing.T) {
	for _, it := range IngestTypes {
		assert.True(t, it.Valid(), "%q should be valid", it)
	}
	assert.False(t, IngestType("Kafka").Valid())
	assert.False(t, IngestType("").Valid())
}

func TestFindSchema(t *testing.T) {
	schemas := []Schema{{ID: "a", Name: "A"}, {ID: "b", Name: "B", IsProfileEnabled: true}}

	s, ok := FindSchema(schemas, "b")
	assert.True(t, ok)
	assert.Equal(t, "B", s.Name)

	_, ok = FindSchema(schemas, "missing")
	assert.False(t, ok)

	_, ok = FindSchema(nil, "a")
	assert.False(t, ok)
}

func TestProfileEnabled(t *testing.T) {
	schemas := []Schema{
		{ID: "profile", IsProfileEnabled: true},
		{ID: "events"},
	}

	tests := []struct {
		name    string
		dataset Dataset
		want    bool
	}{
		{"enabled schema", Dataset{ID: "d1", SchemaID: "profile"}, true},
		{"disabled schema", Dataset{ID: "d2", SchemaID: "events"}, false},
		{"dangling schema", Dataset{ID: "d3", SchemaID: "gone"}, false},
		{"no schema", Dataset{ID: "d4"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProfileEnabled(schemas, tt.dataset))
		})
	}
}

func TestIngestNodeTargets(t *testing.T) {
	n := IngestNode{ID: "web", TargetDatasetIDs: []string{"ds1", "ds2"}}
	assert.True(t, n.Targets("ds2"))
	assert.False(t, n.Targets("ds3"))
	assert.False(t, IngestNode{}.Targets("ds1"))
}

func TestSchemaIdentities(t *testing.T) {
	s := Schema{Fields: []Field{
		{Name: "ecid", Path: "identityMap.ecid", IsIdentity: true},
		{Name: "eventType", Path: "eventType"},
		{Name: "email", Path: "personalEmail.address", IsIdentity: true},
	}}
	ids := s.Identities()
	if assert.Len(t, ids, 2) {
		assert.Equal(t, "ecid", ids[0].Name)
		assert.Equal(t, "email", ids[1].Name)
	}
}
