package ingest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"dms-backend/logger"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var (
	// ErrFileNotFound means the HTML path does not exist. This is the only
	// extractor precondition allowed to surface to the coordinator as-is.
	ErrFileNotFound = errors.New("html file not found")

	// ErrMalformedHTML wraps any other failure while parsing a file
	ErrMalformedHTML = errors.New("malformed html")
)

// mainTextMarker precedes the cell holding the full ruling text
const mainTextMarker = "Decisão Texto Integral:"

// Metadata holds the six labeled fields of a case record. Fields the file
// does not carry are empty strings, never absent.
type Metadata struct {
	ProcessNumber string
	Tribunal      string
	Descriptors   string
	Date          string
	Decision      string
	Summary       string
}

// metadataLabels maps each metadata field to the Portuguese label cell that
// precedes its value cell in the source table.
var metadataLabels = []struct {
	field string
	label string
}{
	{"process_number", "Processo:"},
	{"tribunal", "Relator:"},
	{"descriptors", "Descritores:"},
	{"date", "Data do Acordão:"},
	{"decision", "Decisão:"},
	{"summary", "Sumário:"},
}

// Extractor parses the label/value table layout used by the court rulings
// corpus. It targets that one layout only.
type Extractor struct {
	log *logger.Logger
}

// NewExtractor creates an extractor that reports missing fields through log
func NewExtractor(log *logger.Logger) *Extractor {
	return &Extractor{log: log}
}

// Extract parses the HTML file at path and returns the six-field metadata
// mapping plus the main text body. Labels not present in the file yield
// empty fields and a warning; only a missing file or an unreadable document
// fails the extraction.
func (e *Extractor) Extract(path string) (Metadata, string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Metadata{}, "", fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return Metadata{}, "", fmt.Errorf("%w: %s: %v", ErrMalformedHTML, path, err)
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return Metadata{}, "", fmt.Errorf("%w: %s: %v", ErrMalformedHTML, path, err)
	}

	values := map[string]string{}
	var missing []string
	for _, ml := range metadataLabels {
		v := labelValue(doc, ml.label)
		values[ml.field] = v
		if v == "" {
			missing = append(missing, ml.field)
		}
	}
	if len(missing) > 0 {
		e.log.Warn("missing metadata fields", "file", path, "fields", strings.Join(missing, ", "))
	}

	meta := Metadata{
		ProcessNumber: values["process_number"],
		Tribunal:      values["tribunal"],
		Descriptors:   values["descriptors"],
		Date:          values["date"],
		Decision:      values["decision"],
		Summary:       values["summary"],
	}

	return meta, mainText(doc), nil
}

// labelValue finds the table cell whose text contains label (both sides
// accent-folded) and returns the text of its immediately following sibling
// cell. Absent labels yield "".
func labelValue(doc *goquery.Document, label string) string {
	normLabel := NormalizeText(label)
	var value string
	doc.Find("td").EachWithBreak(func(_ int, td *goquery.Selection) bool {
		if !strings.Contains(NormalizeText(cellText(td, " ")), normLabel) {
			return true
		}
		value = cellText(td.NextFiltered("td"), " ")
		return false
	})
	return value
}

// mainText returns the text of the cell following the "Decisão Texto
// Integral:" marker, multi-line content joined with newlines. "" when the
// marker is absent.
func mainText(doc *goquery.Document) string {
	normMarker := NormalizeText(mainTextMarker)
	var text string
	doc.Find("td").EachWithBreak(func(_ int, td *goquery.Selection) bool {
		if !strings.Contains(NormalizeText(cellText(td, " ")), normMarker) {
			return true
		}
		text = cellText(td.NextFiltered("td"), "\n")
		return false
	})
	return text
}

// cellText collects the text nodes under a selection, replaces non-breaking
// spaces, collapses whitespace within each node, and joins the non-empty
// pieces with sep.
func cellText(sel *goquery.Selection, sep string) string {
	var parts []string
	for _, node := range sel.Nodes {
		var walk func(*html.Node)
		walk = func(n *html.Node) {
			if n.Type == html.TextNode {
				t := strings.ReplaceAll(n.Data, " ", " ")
				t = strings.Join(strings.Fields(t), " ")
				if t != "" {
					parts = append(parts, t)
				}
			}
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c)
			}
		}
		walk(node)
	}
	return strings.Join(parts, sep)
}
