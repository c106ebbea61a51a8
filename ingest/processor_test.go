package ingest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"dms-backend/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ruling.html"), []byte(fullRulingHTML), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ruling.json"),
		[]byte(`{"entities": [{"name": "Entity1", "label": "CASE", "url": "http://example.com"}]}`), 0644))

	p := NewProcessor(logger.NewNop())
	res := p.ProcessFile(dir, "ruling.html")

	require.Equal(t, OutcomeParsed, res.Outcome)
	require.NotNil(t, res.Document)
	assert.Equal(t, "123/45.6TBLSB", res.Document.ProcessNumber)
	require.NotNil(t, res.Document.Date)
	assert.Equal(t, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), *res.Document.Date)

	require.Len(t, res.Entities, 1)
	assert.Equal(t, "Entity1", res.Entities[0].Name)
	assert.Equal(t, "CASE", res.Entities[0].Label)
}

func TestProcessFile_NoSidecar(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ruling.html"), []byte(fullRulingHTML), 0644))

	p := NewProcessor(logger.NewNop())
	res := p.ProcessFile(dir, "ruling.html")

	require.Equal(t, OutcomeParsed, res.Outcome)
	assert.Empty(t, res.Entities)
}

func TestProcessFile_IneligibleFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not html"), 0644))

	p := NewProcessor(logger.NewNop())
	res := p.ProcessFile(dir, "notes.txt")

	assert.Equal(t, OutcomeSkipped, res.Outcome)
	assert.Nil(t, res.Document)
}

func TestProcessFile_ExtractionFailureIsolated(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "broken.html"), 0755))

	p := NewProcessor(logger.NewNop())
	res := p.ProcessFile(dir, "broken.html")

	assert.Equal(t, OutcomeFailed, res.Outcome)
	assert.Nil(t, res.Document)
	assert.Error(t, res.Err)
}

func TestProcessFile_BadDateKeepsRecord(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ruling.html"), []byte(`<table>
<tr><td>Processo:</td><td>77/66.5TAFAR</td></tr>
<tr><td>Data do Acordão:</td><td>not-a-date</td></tr>
</table>`), 0644))

	p := NewProcessor(logger.NewNop())
	res := p.ProcessFile(dir, "ruling.html")

	require.Equal(t, OutcomeParsed, res.Outcome)
	assert.Equal(t, "77/66.5TAFAR", res.Document.ProcessNumber)
	assert.Nil(t, res.Document.Date)
}
