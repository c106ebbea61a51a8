package ingest

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// dateLayout matches the "Data do Acordão" cell format, e.g. "15-03-2024"
const dateLayout = "02-01-2006"

// NormalizeText returns an ASCII-folded copy of s with diacritics removed
// ("Acordão" becomes "Acordao"). Empty input is returned unchanged. Label
// matching in the extractor runs both sides through this so lookups are
// accent and encoding insensitive.
func NormalizeText(s string) string {
	if s == "" {
		return s
	}
	// The chained transformer carries internal buffers, so a fresh one is
	// built per call rather than shared across worker goroutines.
	fold := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	decomposed, _, err := transform.String(fold, s)
	if err != nil {
		return s
	}
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if r <= unicode.MaxASCII {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ParseDecisionDate parses a day-month-year date string. An empty string
// yields (nil, nil): the record simply has no date. A malformed string yields
// (nil, error) so the caller can log it and keep going; a bad date must never
// abort ingestion of the surrounding record.
func ParseDecisionDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("invalid date format %q: %w", s, err)
	}
	return &t, nil
}
