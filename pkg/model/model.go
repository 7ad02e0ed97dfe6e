package model

import "slices"

// UnifiedProfileID is the node id of the synthetic Unified Profile.
const UnifiedProfileID = "unified_profile"

// UnifiedProfileName is the display name of the synthetic Unified Profile.
const UnifiedProfileName = "Unified Profile"

// Field is a leaf attribute of a Schema.
type Field struct {
	Name       string `json:"name" toml:"name" yaml:"name"`
	Type       string `json:"type" toml:"type" yaml:"type"`
	Path       string `json:"path" toml:"path" yaml:"path"`
	IsIdentity bool   `json:"isIdentity,omitempty" toml:"isIdentity,omitempty" yaml:"isIdentity,omitempty"`
	IsRequired bool   `json:"isRequired,omitempty" toml:"isRequired,omitempty" yaml:"isRequired,omitempty"`
}

// Schema is a named, typed record definition.
type Schema struct {
	ID               string  `json:"id" toml:"id" yaml:"id"`
	Name             string  `json:"name" toml:"name" yaml:"name"`
	Class            string  `json:"class" toml:"class" yaml:"class"` // e.g. "XDM ExperienceEvent"
	IsProfileEnabled bool    `json:"isProfileEnabled" toml:"isProfileEnabled" yaml:"isProfileEnabled"`
	Fields           []Field `json:"fields" toml:"fields" yaml:"fields"`
}

// Identities returns the fields flagged as identities, in declaration order.
func (s Schema) Identities() []Field {
	var out []Field
	for _, f := range s.Fields {
		if f.IsIdentity {
			out = append(out, f)
		}
	}
	return out
}

// Dataset is a named storage target associated with at most one Schema.
// SchemaID may be empty or reference a Schema that does not exist.
type Dataset struct {
	ID       string `json:"id" toml:"id" yaml:"id"`
	Name     string `json:"name" toml:"name" yaml:"name"`
	SchemaID string `json:"schemaId" toml:"schemaId" yaml:"schemaId"`
	Created  string `json:"created" toml:"created" yaml:"created"`
}

// IngestType is the kind of an ingestion source.
type IngestType string

// Supported ingestion kinds.
const (
	IngestHTTPAPI    IngestType = "HTTP API"
	IngestDatastream IngestType = "Datastream"
	IngestStatic     IngestType = "Static"
	IngestOther      IngestType = "Other"
)

// IngestTypes lists every supported ingestion kind in display order.
var IngestTypes = []IngestType{IngestHTTPAPI, IngestDatastream, IngestStatic, IngestOther}

// Valid reports whether t is one of the supported ingestion kinds.
func (t IngestType) Valid() bool { return slices.Contains(IngestTypes, t) }

// IngestNode is a named data-entry source that writes into Datasets.
type IngestNode struct {
	ID               string     `json:"id" toml:"id" yaml:"id"`
	Name             string     `json:"name" toml:"name" yaml:"name"`
	SchemaID         string     `json:"schemaId,omitempty" toml:"schemaId,omitempty" yaml:"schemaId,omitempty"`
	TargetDatasetIDs []string   `json:"targetDatasetIds,omitempty" toml:"targetDatasetIds,omitempty" yaml:"targetDatasetIds,omitempty"`
	Type             IngestType `json:"type" toml:"type" yaml:"type"`
}

// Targets reports whether the node writes into the dataset with the given id.
func (n IngestNode) Targets(datasetID string) bool {
	return slices.Contains(n.TargetDatasetIDs, datasetID)
}

// ProfileStats holds display statistics for the Unified Profile.
type ProfileStats struct {
	TotalProfiles  int `json:"totalProfiles"`
	TotalFragments int `json:"totalFragments"`
}

// ProfileStore is the synthetic Unified Profile entity.
type ProfileStore struct {
	ID    string        `json:"id"`
	Name  string        `json:"name"`
	Stats *ProfileStats `json:"stats,omitempty"`
}

// UnifiedProfile returns the Unified Profile entity. Its stats are fixed
// display figures; no profile data is fetched.
func UnifiedProfile() ProfileStore {
	return ProfileStore{
		ID:    UnifiedProfileID,
		Name:  UnifiedProfileName,
		Stats: &ProfileStats{TotalProfiles: 1250000, TotalFragments: 5600000},
	}
}

// FindSchema returns the schema with the given id.
func FindSchema(schemas []Schema, id string) (Schema, bool) {
	i := slices.IndexFunc(schemas, func(s Schema) bool { return s.ID == id })
	if i < 0 {
		return Schema{}, false
	}
	return schemas[i], true
}

// FindDataset returns the dataset with the given id.
func FindDataset(datasets []Dataset, id string) (Dataset, bool) {
	i := slices.IndexFunc(datasets, func(d Dataset) bool { return d.ID == id })
	if i < 0 {
		return Dataset{}, false
	}
	return datasets[i], true
}

// ProfileEnabled reports whether the dataset resolves to a profile-enabled schema.
func ProfileEnabled(schemas []Schema, d Dataset) bool {
	s, ok := FindSchema(schemas, d.SchemaID)
	return ok && s.IsProfileEnabled
}
