package service

import (
	"context"
	"errors"
	"io"

	"dms-backend/logger"
	"dms-backend/models"
	"dms-backend/repository"
	"dms-backend/storage"

	"github.com/google/uuid"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrDuplicateProcess = errors.New("a document with this process number already exists")
	ErrNoArchivedSource = errors.New("document has no archived source")
)

// DocumentService handles business logic for documents and their entities
type DocumentService struct {
	documentRepo *repository.DocumentRepository
	entityRepo   *repository.EntityRepository
	sources      storage.Storage
	log          *logger.Logger
}

// DocumentServiceOption is a functional option for DocumentService
type DocumentServiceOption func(*DocumentService)

// WithDocumentRepository sets the document repository
func WithDocumentRepository(repo *repository.DocumentRepository) DocumentServiceOption {
	return func(s *DocumentService) {
		s.documentRepo = repo
	}
}

// WithEntityRepository sets the entity repository
func WithEntityRepository(repo *repository.EntityRepository) DocumentServiceOption {
	return func(s *DocumentService) {
		s.entityRepo = repo
	}
}

// WithSourceStorage sets the archive store used to serve raw sources
func WithSourceStorage(store storage.Storage) DocumentServiceOption {
	return func(s *DocumentService) {
		s.sources = store
	}
}

// WithLogger sets the logger
func WithLogger(log *logger.Logger) DocumentServiceOption {
	return func(s *DocumentService) {
		s.log = log
	}
}

// NewDocumentService creates a new document service
func NewDocumentService(opts ...DocumentServiceOption) *DocumentService {
	s := &DocumentService{log: logger.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateDocumentRequest represents a request to create a document
type CreateDocumentRequest struct {
	Document *models.Document
}

// CreateDocumentResult represents the result of creating a document
type CreateDocumentResult struct {
	Document *models.Document
}

// CreateDocument creates a new document
func (s *DocumentService) CreateDocument(ctx context.Context, req CreateDocumentRequest) (*CreateDocumentResult, error) {
	if s.documentRepo == nil {
		return nil, errors.New("document repository not set")
	}

	err := s.documentRepo.Create(ctx, req.Document)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateProcess
		}
		return nil, err
	}

	return &CreateDocumentResult{Document: req.Document}, nil
}

// GetDocumentRequest represents a request to get a document
type GetDocumentRequest struct {
	ID uuid.UUID
}

// GetDocumentResult represents the result of getting a document
type GetDocumentResult struct {
	Document *models.Document
}

// GetDocument retrieves a document by ID with its entities attached
func (s *DocumentService) GetDocument(ctx context.Context, req GetDocumentRequest) (*GetDocumentResult, error) {
	if s.documentRepo == nil || s.entityRepo == nil {
		return nil, errors.New("repositories not set")
	}

	doc, err := s.documentRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}

	entities, err := s.entityRepo.ListByDocumentID(ctx, doc.ID)
	if err != nil {
		return nil, err
	}
	doc.Entities = entities

	return &GetDocumentResult{Document: doc}, nil
}

// UpdateDocumentRequest represents a request to update a document
type UpdateDocumentRequest struct {
	Document *models.Document
}

// UpdateDocumentResult represents the result of updating a document
type UpdateDocumentResult struct {
	Document *models.Document
}

// UpdateDocument updates a document
func (s *DocumentService) UpdateDocument(ctx context.Context, req UpdateDocumentRequest) (*UpdateDocumentResult, error) {
	if s.documentRepo == nil {
		return nil, errors.New("document repository not set")
	}

	err := s.documentRepo.Update(ctx, req.Document)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrDocumentNotFound
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrDuplicateProcess
		}
		return nil, err
	}

	return &UpdateDocumentResult{Document: req.Document}, nil
}

// DeleteDocumentRequest represents a request to delete a document
type DeleteDocumentRequest struct {
	ID uuid.UUID
}

// DeleteDocumentResult represents the result of deleting a document
type DeleteDocumentResult struct{}

// DeleteDocument removes a document; its entities cascade at the DB level
func (s *DocumentService) DeleteDocument(ctx context.Context, req DeleteDocumentRequest) (*DeleteDocumentResult, error) {
	if s.documentRepo == nil {
		return nil, errors.New("document repository not set")
	}

	err := s.documentRepo.Delete(ctx, req.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}

	return &DeleteDocumentResult{}, nil
}

// ListDocumentsRequest represents a request to list documents
type ListDocumentsRequest struct {
	Search   string
	Ordering string
	Limit    int
	Offset   int
}

// ListDocumentsResult represents one page of documents plus the total count
type ListDocumentsResult struct {
	Documents []*models.Document
	Total     int
}

// ListDocuments lists a page of documents with entities attached
func (s *DocumentService) ListDocuments(ctx context.Context, req ListDocumentsRequest) (*ListDocumentsResult, error) {
	if s.documentRepo == nil || s.entityRepo == nil {
		return nil, errors.New("repositories not set")
	}

	docs, total, err := s.documentRepo.List(ctx, repository.ListParams{
		Search:   req.Search,
		Ordering: req.Ordering,
		Limit:    req.Limit,
		Offset:   req.Offset,
	})
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, doc.ID)
	}
	byDoc, err := s.entityRepo.ListByDocumentIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, doc := range docs {
		doc.Entities = byDoc[doc.ID]
	}

	return &ListDocumentsResult{Documents: docs, Total: total}, nil
}

// GetEntitiesRequest represents a request for one document's entities
type GetEntitiesRequest struct {
	DocumentID uuid.UUID
}

// GetEntitiesResult represents the result of listing a document's entities
type GetEntitiesResult struct {
	Entities []*models.Entity
}

// GetEntities lists the entities owned by one document
func (s *DocumentService) GetEntities(ctx context.Context, req GetEntitiesRequest) (*GetEntitiesResult, error) {
	if s.documentRepo == nil || s.entityRepo == nil {
		return nil, errors.New("repositories not set")
	}

	// 404 on a missing document rather than an empty list
	if _, err := s.documentRepo.GetByID(ctx, req.DocumentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}

	entities, err := s.entityRepo.ListByDocumentID(ctx, req.DocumentID)
	if err != nil {
		return nil, err
	}

	return &GetEntitiesResult{Entities: entities}, nil
}

// GetSourceRequest represents a request for a document's archived source
type GetSourceRequest struct {
	DocumentID uuid.UUID
}

// GetSourceResult carries the archived source stream
type GetSourceResult struct {
	Reader io.ReadCloser
}

// GetSource streams the archived HTML source of an ingested document
func (s *DocumentService) GetSource(ctx context.Context, req GetSourceRequest) (*GetSourceResult, error) {
	if s.documentRepo == nil {
		return nil, errors.New("document repository not set")
	}
	if s.sources == nil {
		return nil, ErrNoArchivedSource
	}

	doc, err := s.documentRepo.GetByID(ctx, req.DocumentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	if doc.SourcePath == nil || *doc.SourcePath == "" {
		return nil, ErrNoArchivedSource
	}

	reader, err := s.sources.Open(ctx, *doc.SourcePath)
	if err != nil {
		s.log.Warn("cannot open archived source", "document", doc.ID, "path", *doc.SourcePath, "error", err)
		return nil, ErrNoArchivedSource
	}

	return &GetSourceResult{Reader: reader}, nil
}
