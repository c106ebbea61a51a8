package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"dms-backend/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullRulingHTML = `<html><body><table>
<tr><td>Processo:</td><td>123/45.6TBLSB</td></tr>
<tr><td>Relator:</td><td>MARIA&nbsp;SANTOS</td></tr>
<tr><td>Descritores:</td><td>CONTRATO DE ARRENDAMENTO</td></tr>
<tr><td>Data do Acordão:</td><td>15-03-2024</td></tr>
<tr><td>Decisão:</td><td>PROCEDENTE</td></tr>
<tr><td>Sumário:</td><td>I - Primeira conclusão.<br>II - Segunda conclusão.</td></tr>
<tr><td>Decisão Texto Integral:</td><td><p>Acordam no Supremo Tribunal.</p><p>Primeiro parágrafo do texto.</p></td></tr>
</table></body></html>`

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestExtract_AllFields(t *testing.T) {
	path := writeFixture(t, "ruling.html", fullRulingHTML)
	extractor := NewExtractor(logger.NewNop())

	meta, mainText, err := extractor.Extract(path)
	require.NoError(t, err)

	assert.Equal(t, "123/45.6TBLSB", meta.ProcessNumber)
	assert.Equal(t, "MARIA SANTOS", meta.Tribunal)
	assert.Equal(t, "CONTRATO DE ARRENDAMENTO", meta.Descriptors)
	assert.Equal(t, "15-03-2024", meta.Date)
	assert.Equal(t, "PROCEDENTE", meta.Decision)
	assert.Equal(t, "I - Primeira conclusão. II - Segunda conclusão.", meta.Summary)
	assert.Equal(t, "Acordam no Supremo Tribunal.\nPrimeiro parágrafo do texto.", mainText)
}

func TestExtract_AccentVariantLabels(t *testing.T) {
	// Labels stored without diacritics still match after folding
	path := writeFixture(t, "ruling.html", `<table>
<tr><td>Data do Acordao:</td><td>01-02-2023</td></tr>
<tr><td>Sumario:</td><td>Texto do sumário.</td></tr>
</table>`)
	extractor := NewExtractor(logger.NewNop())

	meta, _, err := extractor.Extract(path)
	require.NoError(t, err)
	assert.Equal(t, "01-02-2023", meta.Date)
	assert.Equal(t, "Texto do sumário.", meta.Summary)
}

func TestExtract_PartialFields(t *testing.T) {
	path := writeFixture(t, "ruling.html", `<table>
<tr><td>Processo:</td><td>99/88.7TXPRT</td></tr>
</table>`)
	extractor := NewExtractor(logger.NewNop())

	meta, mainText, err := extractor.Extract(path)
	require.NoError(t, err)

	assert.Equal(t, "99/88.7TXPRT", meta.ProcessNumber)
	assert.Empty(t, meta.Tribunal)
	assert.Empty(t, meta.Descriptors)
	assert.Empty(t, meta.Date)
	assert.Empty(t, meta.Decision)
	assert.Empty(t, meta.Summary)
	assert.Empty(t, mainText)
}

func TestExtract_FileNotFound(t *testing.T) {
	extractor := NewExtractor(logger.NewNop())

	_, _, err := extractor.Extract(filepath.Join(t.TempDir(), "missing.html"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestExtract_UnreadableFile(t *testing.T) {
	// A directory with an .html name opens but cannot be read as a document
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.html")
	require.NoError(t, os.Mkdir(path, 0755))
	extractor := NewExtractor(logger.NewNop())

	_, _, err := extractor.Extract(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedHTML)
}
