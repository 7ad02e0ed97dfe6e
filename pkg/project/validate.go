package project

import (
	"fmt"

	apperrors "github.com/matzehuels/aepplanner/pkg/errors"
	"github.com/matzehuels/aepplanner/pkg/model"
)

// Validate checks entity ids, names and ingest types, and rejects ids used
// by more than one entity or taken by the Unified Profile node. Dangling
// references are not errors.
func Validate(s State) error {
	seen := make(map[string]string)
	check := func(kind, id, name string) error {
		if err := apperrors.ValidateEntityID(id); err != nil {
			return fmt.Errorf("%s %q: %w", kind, id, err)
		}
		if err := apperrors.ValidateEntityName(name); err != nil {
			return fmt.Errorf("%s %q: %w", kind, id, err)
		}
		if id == model.UnifiedProfileID {
			return apperrors.New(apperrors.ErrCodeInvalidProject, "%s %q: id is reserved for the %s", kind, id, model.UnifiedProfileName)
		}
		if prev, ok := seen[id]; ok {
			return apperrors.New(apperrors.ErrCodeInvalidProject, "duplicate id %q (%s and %s)", id, prev, kind)
		}
		seen[id] = kind
		return nil
	}
	for _, v := range s.Schemas {
		if err := check("schema", v.ID, v.Name); err != nil {
			return err
		}
	}
	for _, v := range s.Datasets {
		if err := check("dataset", v.ID, v.Name); err != nil {
			return err
		}
	}
	for _, v := range s.IngestNodes {
		if err := check("ingest node", v.ID, v.Name); err != nil {
			return err
		}
		if !v.Type.Valid() {
			return apperrors.New(apperrors.ErrCodeInvalidEntity, "ingest node %q: unknown type %q", v.ID, v.Type)
		}
	}
	return nil
}
