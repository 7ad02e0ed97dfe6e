package aep

import (
	"github.com/ohler55/ojg/oj"
	"github.com/tidwall/gjson"

	apperrors "github.com/matzehuels/aepplanner/pkg/errors"
	"github.com/matzehuels/aepplanner/pkg/model"
	"github.com/matzehuels/aepplanner/pkg/project"
)

// Bundle is the set of entities found in one import document.
type Bundle struct {
	Schemas  []model.Schema
	Datasets []model.Dataset
	// Skipped counts documents that matched neither entity kind.
	Skipped int
}

// Len returns the number of mapped entities.
func (b Bundle) Len() int { return len(b.Schemas) + len(b.Datasets) }

func (b *Bundle) add(e Entity) {
	switch e.Kind {
	case KindSchema:
		b.Schemas = append(b.Schemas, *e.Schema)
	case KindDataset:
		b.Datasets = append(b.Datasets, *e.Dataset)
	}
}

// MapBundle maps a multi-entity document with the default [Mapper].
func MapBundle(data []byte) (Bundle, error) { return Mapper{}.MapBundle(data) }

// MapBundle maps a document that may hold several entities. Accepted forms:
//
//   - {"schemas": [...], "datasets": [...]}
//   - an array of schema and dataset documents
//   - a Catalog listing: an object keyed by dataset id
//   - a single schema or dataset document
//
// Elements that match neither kind are counted in Skipped. A document that
// yields no entity at all is an error.
func (m Mapper) MapBundle(data []byte) (Bundle, error) {
	if !gjson.ValidBytes(data) {
		return Bundle{}, apperrors.New(apperrors.ErrCodeInvalidInput, "invalid JSON")
	}
	root := gjson.ParseBytes(data)

	var b Bundle
	switch {
	case root.IsArray():
		m.mapEach(&b, root.Array())
	case root.Get("schemas").IsArray() || root.Get("datasets").IsArray():
		m.mapEach(&b, root.Get("schemas").Array())
		m.mapEach(&b, root.Get("datasets").Array())
	case root.IsObject():
		e, err := m.Map(data)
		if err == nil {
			b.add(e)
			break
		}
		if !m.mapCatalog(&b, root) {
			return Bundle{}, err
		}
	}

	if b.Len() == 0 {
		return b, apperrors.Wrap(apperrors.ErrCodeInvalidInput, ErrUnrecognized, "no schema or dataset found")
	}
	return b, nil
}

func (m Mapper) mapEach(b *Bundle, docs []gjson.Result) {
	for _, d := range docs {
		e, err := m.Map([]byte(d.Raw))
		if err != nil {
			b.Skipped++
			continue
		}
		b.add(e)
	}
}

// mapCatalog handles Catalog list responses, where each dataset is keyed by
// its id and carries no id of its own. It reports whether every member was
// a dataset.
func (m Mapper) mapCatalog(b *Bundle, root gjson.Result) bool {
	var found []model.Dataset
	ok := true
	root.ForEach(func(key, value gjson.Result) bool {
		doc, err := oj.ParseString(value.Raw)
		if err != nil || !value.IsObject() || !isDataset(doc) {
			ok = false
			return false
		}
		found = append(found, m.dataset(doc, key.String()))
		return true
	})
	if !ok || len(found) == 0 {
		return false
	}
	b.Datasets = append(b.Datasets, found...)
	return true
}

// Apply merges b into st. Entities whose id already exists replace the
// existing entry; new ones are appended.
func Apply(st project.State, b Bundle) project.State {
	for _, s := range b.Schemas {
		if _, ok := model.FindSchema(st.Schemas, s.ID); ok {
			st = st.UpdateSchema(s)
		} else {
			st = st.AddSchema(s)
		}
	}
	for _, d := range b.Datasets {
		if _, ok := model.FindDataset(st.Datasets, d.ID); ok {
			st = st.UpdateDataset(d)
		} else {
			st = st.AddDataset(d)
		}
	}
	return st
}
