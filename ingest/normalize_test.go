package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"accented ruling term", "Acordão", "Acordao"},
		{"accented label", "Sumário:", "Sumario:"},
		{"cedilla and tilde", "Decisãoação", "Decisaoacao"},
		{"plain ascii unchanged", "Processo: 123/45", "Processo: 123/45"},
		{"empty unchanged", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeText(tt.input))
		})
	}
}

func TestParseDecisionDate(t *testing.T) {
	date, err := ParseDecisionDate("15-03-2024")
	require.NoError(t, err)
	require.NotNil(t, date)
	assert.Equal(t, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), *date)
}

func TestParseDecisionDate_Empty(t *testing.T) {
	date, err := ParseDecisionDate("")
	require.NoError(t, err)
	assert.Nil(t, date)
}

func TestParseDecisionDate_Malformed(t *testing.T) {
	for _, input := range []string{"invalid-date", "2024-03-15", "32-13-2024"} {
		date, err := ParseDecisionDate(input)
		assert.Error(t, err, "input %q", input)
		assert.Nil(t, date)
	}
}
