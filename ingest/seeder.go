package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"dms-backend/logger"
	"dms-backend/models"
	"dms-backend/repository"
	"dms-backend/storage"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is the degree of parallelism used when none is configured
const DefaultWorkers = 4

// DocumentStore is the slice of the persistence layer the seeder needs for
// phase 1 and for phase-2 owner resolution. Implemented by
// repository.DocumentRepository.
type DocumentStore interface {
	Create(ctx context.Context, doc *models.Document) error
	GetByProcessNumber(ctx context.Context, processNumber string) (*models.Document, error)
}

// EntityStore is the slice of the persistence layer the seeder needs for
// phase 2. Implemented by repository.EntityRepository.
type EntityStore interface {
	Create(ctx context.Context, entity *models.Entity) error
}

// Summary reports what a seeding run did. All per-record problems are
// already contained and logged by the time Run returns; the summary lets
// callers see them without reading logs.
type Summary struct {
	FilesParsed       int
	FilesSkipped      int
	FilesFailed       int
	DocumentsInserted int
	DocumentsSkipped  int
	EntitiesInserted  int
	EntitiesSkipped   int
}

// Seeder fans a directory of HTML/JSON file pairs out to a worker pool and
// bulk-inserts the extracted records in two strictly sequential phases:
// documents first, then entities resolved against the committed documents.
type Seeder struct {
	docs      DocumentStore
	entities  EntityStore
	processor *Processor
	archive   storage.Storage
	log       *logger.Logger
	workers   int
}

// SeederOption is a functional option for Seeder
type SeederOption func(*Seeder)

// WithWorkers sets the degree of parallelism for the extraction phase
func WithWorkers(n int) SeederOption {
	return func(s *Seeder) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithArchive makes the seeder copy each parsed HTML source into the given
// store and record the storage path on the document
func WithArchive(store storage.Storage) SeederOption {
	return func(s *Seeder) {
		s.archive = store
	}
}

// NewSeeder creates a seeder writing through the given stores
func NewSeeder(docs DocumentStore, entities EntityStore, log *logger.Logger, opts ...SeederOption) *Seeder {
	s := &Seeder{
		docs:      docs,
		entities:  entities,
		processor: NewProcessor(log),
		log:       log,
		workers:   DefaultWorkers,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run ingests every file pair in dataFolder. Individual file or record
// failures are logged and counted, never propagated; the only error Run
// returns is a failure to list the directory itself.
func (s *Seeder) Run(ctx context.Context, dataFolder string) (*Summary, error) {
	entries, err := os.ReadDir(dataFolder)
	if err != nil {
		return nil, fmt.Errorf("cannot list data folder %s: %w", dataFolder, err)
	}

	// Extraction phase: workers only read the filesystem and return value
	// results, so the collection mutex is the only shared state.
	var (
		mu      sync.Mutex
		results []FileResult
	)
	eg, _ := errgroup.WithContext(ctx)
	eg.SetLimit(s.workers)
	for _, entry := range entries {
		name := entry.Name()
		eg.Go(func() error {
			res := s.processor.ProcessFile(dataFolder, name)
			mu.Lock()
			results = append(results, res)
			mu.Unlock()
			return nil
		})
	}
	// Workers never return errors; failures are carried in their results.
	_ = eg.Wait()

	summary := &Summary{}
	var parsed []FileResult
	for _, res := range results {
		switch res.Outcome {
		case OutcomeParsed:
			parsed = append(parsed, res)
			summary.FilesParsed++
		case OutcomeSkipped:
			summary.FilesSkipped++
		case OutcomeFailed:
			summary.FilesFailed++
		}
	}

	if s.archive != nil {
		for _, res := range parsed {
			s.archiveSource(ctx, dataFolder, res)
		}
	}

	// Phase 1: documents, one insert per statement so a duplicate natural
	// key skips that record without touching its siblings.
	for _, res := range parsed {
		err := s.docs.Create(ctx, res.Document)
		switch {
		case err == nil:
			summary.DocumentsInserted++
		case errors.Is(err, repository.ErrDuplicate):
			s.log.Info("document already exists, skipping",
				"process_number", res.Document.ProcessNumber, "file", res.File)
			summary.DocumentsSkipped++
		default:
			s.log.Error("cannot insert document",
				"process_number", res.Document.ProcessNumber, "file", res.File, "error", err)
			summary.DocumentsSkipped++
		}
	}

	// Phase 2: entities. The owning document is re-resolved by process
	// number against the store, never taken from the in-memory document of
	// phase 1: that one may have been skipped as a duplicate, in which case
	// the entity must attach to whichever row holds the natural key now.
	for _, res := range parsed {
		for _, entity := range res.Entities {
			owner, err := s.docs.GetByProcessNumber(ctx, res.Document.ProcessNumber)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					s.log.Warn("document for entity not found, skipping",
						"entity", entity.Name, "process_number", res.Document.ProcessNumber)
				} else {
					s.log.Error("cannot resolve document for entity",
						"entity", entity.Name, "error", err)
				}
				summary.EntitiesSkipped++
				continue
			}

			entity.DocumentID = owner.ID
			err = s.entities.Create(ctx, entity)
			switch {
			case err == nil:
				summary.EntitiesInserted++
			case errors.Is(err, repository.ErrDuplicate):
				s.log.Info("entity already exists, skipping", "entity", entity.Name)
				summary.EntitiesSkipped++
			default:
				s.log.Error("cannot insert entity", "entity", entity.Name, "error", err)
				summary.EntitiesSkipped++
			}
		}
	}

	s.log.Info("database seeding completed",
		"parsed", summary.FilesParsed,
		"skipped", summary.FilesSkipped,
		"failed", summary.FilesFailed,
		"documents_inserted", summary.DocumentsInserted,
		"documents_skipped", summary.DocumentsSkipped,
		"entities_inserted", summary.EntitiesInserted,
		"entities_skipped", summary.EntitiesSkipped,
	)
	return summary, nil
}

// archiveSource copies the parsed HTML file into the archive store and
// records the storage path on the in-memory document before phase 1.
// Archival failure is logged and the record is kept without a source path.
func (s *Seeder) archiveSource(ctx context.Context, dataFolder string, res FileResult) {
	f, err := os.Open(filepath.Join(dataFolder, res.File))
	if err != nil {
		s.log.Warn("cannot open source for archival", "file", res.File, "error", err)
		return
	}
	defer f.Close()

	path, err := s.archive.Save(ctx, uuid.New(), res.File, f)
	if err != nil {
		s.log.Warn("cannot archive source", "file", res.File, "error", err)
		return
	}
	res.Document.SourcePath = &path
}
