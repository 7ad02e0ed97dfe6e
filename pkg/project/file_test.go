package project

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/matzehuels/aepplanner/pkg/errors"
)

func TestFileFormats(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"plan.json", "plan.toml", "plan.yaml", "plan.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, WriteFile(Sample(), path))

			got, err := ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, Sample(), got)
		})
	}
}

func TestFormatFromPathUnsupported(t *testing.T) {
	_, err := FormatFromPath("plan.xml")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeInvalidFormat))
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "none.json"))
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeFileNotFound))
}

func TestReadInvalid(t *testing.T) {
	_, err := Read(strings.NewReader("{"), FormatJSON)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeInvalidProject))
}

func TestReadEmptyYAML(t *testing.T) {
	st, err := Read(strings.NewReader(""), FormatYAML)
	require.NoError(t, err)
	assert.True(t, st.Empty())
}

func TestReadJSONFromOriginalExport(t *testing.T) {
	const doc = `{
		"schemas": [{"id": "s1", "name": "S", "class": "XDM Individual Profile", "isProfileEnabled": true,
			"fields": [{"name": "email", "type": "string", "path": "personalEmail.address", "isIdentity": true}]}],
		"datasets": [{"id": "d1", "name": "D", "schemaId": "s1", "created": "2025-01-01"}],
		"ingestNodes": [{"id": "i1", "name": "I", "targetDatasetIds": ["d1"], "type": "HTTP API"}]
	}`
	st, err := Read(strings.NewReader(doc), FormatJSON)
	require.NoError(t, err)
	require.Len(t, st.Schemas, 1)
	assert.True(t, st.Schemas[0].Fields[0].IsIdentity)
	assert.Equal(t, "s1", st.Datasets[0].SchemaID)
	assert.True(t, st.IngestNodes[0].Targets("d1"))
}
