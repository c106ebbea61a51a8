package ingest

import (
	"path/filepath"
	"strings"

	"dms-backend/logger"
	"dms-backend/models"
)

const (
	htmlExt = ".html"
	jsonExt = ".json"
)

// FileOutcome tags why a file did or did not produce a record
type FileOutcome int

const (
	// OutcomeSkipped means the file was not eligible (not an HTML file)
	OutcomeSkipped FileOutcome = iota
	// OutcomeParsed means a document (and possibly entities) was produced
	OutcomeParsed
	// OutcomeFailed means extraction failed; the failure stays contained
	// in this result and never reaches the coordinator as an error
	OutcomeFailed
)

// FileResult is the per-file outcome of the processor. Callers can tell
// "no data, expected" (Skipped) apart from "no data, something went wrong"
// (Failed) without reading logs.
type FileResult struct {
	File     string
	Outcome  FileOutcome
	Document *models.Document
	Entities []*models.Entity
	Err      error
}

// Processor turns one HTML/JSON file pair into an in-memory document plus
// entity list. It never touches the persistence layer.
type Processor struct {
	log       *logger.Logger
	extractor *Extractor
	sidecars  *SidecarLoader
}

// NewProcessor creates a processor reporting through log
func NewProcessor(log *logger.Logger) *Processor {
	return &Processor{
		log:       log,
		extractor: NewExtractor(log),
		sidecars:  NewSidecarLoader(log),
	}
}

// ProcessFile builds the (document, entities) pair for one directory entry.
// Entities carry no owner reference yet; the coordinator re-resolves the
// owning document by process number once documents are durably committed.
func (p *Processor) ProcessFile(dataFolder, fileName string) FileResult {
	if !strings.HasSuffix(fileName, htmlExt) {
		p.log.Debug("skipping non-html file", "file", fileName)
		return FileResult{File: fileName, Outcome: OutcomeSkipped}
	}

	htmlPath := filepath.Join(dataFolder, fileName)
	meta, mainText, err := p.extractor.Extract(htmlPath)
	if err != nil {
		p.log.Error("cannot process file", "file", fileName, "error", err)
		return FileResult{File: fileName, Outcome: OutcomeFailed, Err: err}
	}

	date, err := ParseDecisionDate(meta.Date)
	if err != nil {
		p.log.Warn("cannot parse decision date", "file", fileName, "error", err)
	}

	doc := &models.Document{
		ProcessNumber: meta.ProcessNumber,
		Tribunal:      meta.Tribunal,
		Summary:       meta.Summary,
		Decision:      meta.Decision,
		Date:          date,
		Descriptors:   meta.Descriptors,
		MainText:      mainText,
	}

	sidecarPath := filepath.Join(dataFolder, strings.TrimSuffix(fileName, htmlExt)+jsonExt)
	var entities []*models.Entity
	for _, se := range p.sidecars.Load(sidecarPath) {
		entities = append(entities, &models.Entity{
			Name:  se.Name,
			Label: se.Label,
			URL:   se.URL,
		})
	}

	return FileResult{
		File:     fileName,
		Outcome:  OutcomeParsed,
		Document: doc,
		Entities: entities,
	}
}
