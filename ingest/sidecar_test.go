package ingest

import (
	"path/filepath"
	"testing"

	"dms-backend/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSidecarLoad(t *testing.T) {
	path := writeFixture(t, "ruling.json",
		`{"entities": [{"name": "Entity1", "label": "Label1", "url": "http://example.com"}]}`)
	loader := NewSidecarLoader(logger.NewNop())

	entities := loader.Load(path)
	require.Len(t, entities, 1)
	assert.Equal(t, "Entity1", entities[0].Name)
	assert.Equal(t, "Label1", entities[0].Label)
	assert.Equal(t, "http://example.com", entities[0].URL)
}

func TestSidecarLoad_MissingSubFields(t *testing.T) {
	path := writeFixture(t, "ruling.json", `{"entities": [{"name": "Lei 7/2009"}]}`)
	loader := NewSidecarLoader(logger.NewNop())

	entities := loader.Load(path)
	require.Len(t, entities, 1)
	assert.Equal(t, "Lei 7/2009", entities[0].Name)
	assert.Empty(t, entities[0].Label)
	assert.Empty(t, entities[0].URL)
}

func TestSidecarLoad_UnrecognizedLabelKeptVerbatim(t *testing.T) {
	path := writeFixture(t, "ruling.json",
		`{"entities": [{"name": "Entity1", "label": "STATUTE", "url": ""}, {"name": "Entity2", "label": "LAW", "url": ""}]}`)
	loader := NewSidecarLoader(logger.NewNop())

	entities := loader.Load(path)
	require.Len(t, entities, 2)
	assert.Equal(t, "STATUTE", entities[0].Label)
	assert.Equal(t, "LAW", entities[1].Label)
}

func TestSidecarLoad_MissingFile(t *testing.T) {
	loader := NewSidecarLoader(logger.NewNop())
	assert.Empty(t, loader.Load(filepath.Join(t.TempDir(), "missing.json")))
}

func TestSidecarLoad_MalformedJSON(t *testing.T) {
	path := writeFixture(t, "ruling.json", `{"entities": [`)
	loader := NewSidecarLoader(logger.NewNop())
	assert.Empty(t, loader.Load(path))
}
