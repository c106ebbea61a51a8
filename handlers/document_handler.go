package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"dms-backend/models"
	"dms-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	defaultPageSize = 5
	maxPageSize     = 100

	apiDateLayout = "2006-01-02"
)

// DocumentService is the document-facing service surface the handler consumes.
// *service.DocumentService satisfies it.
type DocumentService interface {
	CreateDocument(ctx context.Context, req service.CreateDocumentRequest) (*service.CreateDocumentResult, error)
	GetDocument(ctx context.Context, req service.GetDocumentRequest) (*service.GetDocumentResult, error)
	UpdateDocument(ctx context.Context, req service.UpdateDocumentRequest) (*service.UpdateDocumentResult, error)
	DeleteDocument(ctx context.Context, req service.DeleteDocumentRequest) (*service.DeleteDocumentResult, error)
	ListDocuments(ctx context.Context, req service.ListDocumentsRequest) (*service.ListDocumentsResult, error)
	GetEntities(ctx context.Context, req service.GetEntitiesRequest) (*service.GetEntitiesResult, error)
	GetSource(ctx context.Context, req service.GetSourceRequest) (*service.GetSourceResult, error)
}

// DocumentHandler handles HTTP requests for documents
type DocumentHandler struct {
	documentService DocumentService
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documentService DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// CreateDocumentRequest represents the request body for creating a document
type CreateDocumentRequest struct {
	ProcessNumber string `json:"process_number"`
	Tribunal      string `json:"tribunal"`
	Summary       string `json:"summary"`
	Decision      string `json:"decision"`
	Date          string `json:"date"` // YYYY-MM-DD
	Descriptors   string `json:"descriptors"`
	MainText      string `json:"main_text"`
}

// CreateDocument handles POST /api/documents
func (h *DocumentHandler) CreateDocument(c *gin.Context) {
	var req CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	var date *time.Time
	if req.Date != "" {
		parsed, err := time.Parse(apiDateLayout, req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_DATE",
					"message": "date must be formatted as YYYY-MM-DD",
				},
			})
			return
		}
		date = &parsed
	}

	serviceReq := service.CreateDocumentRequest{
		Document: &models.Document{
			ProcessNumber: req.ProcessNumber,
			Tribunal:      req.Tribunal,
			Summary:       req.Summary,
			Decision:      req.Decision,
			Date:          date,
			Descriptors:   req.Descriptors,
			MainText:      req.MainText,
		},
	}

	result, err := h.documentService.CreateDocument(c.Request.Context(), serviceReq)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateProcess) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DUPLICATE_PROCESS_NUMBER",
					"message": err.Error(),
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CREATE_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    result.Document,
	})
}

// GetDocument handles GET /api/documents/:id
func (h *DocumentHandler) GetDocument(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	result, err := h.documentService.GetDocument(c.Request.Context(), service.GetDocumentRequest{ID: id})
	if err != nil {
		h.respondGetError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Document,
	})
}

// ListDocuments handles GET /api/documents
func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	if err != nil || pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	serviceReq := service.ListDocumentsRequest{
		Search:   c.Query("search"),
		Ordering: c.Query("ordering"),
		Limit:    pageSize,
		Offset:   (page - 1) * pageSize,
	}

	result, err := h.documentService.ListDocuments(c.Request.Context(), serviceReq)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "LIST_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"count":     result.Total,
			"page":      page,
			"page_size": pageSize,
			"results":   result.Documents,
		},
	})
}

// UpdateDocumentRequest represents the request body for updating a document
type UpdateDocumentRequest struct {
	ProcessNumber *string `json:"process_number"`
	Tribunal      *string `json:"tribunal"`
	Summary       *string `json:"summary"`
	Decision      *string `json:"decision"`
	Date          *string `json:"date"` // YYYY-MM-DD, "" clears
	Descriptors   *string `json:"descriptors"`
	MainText      *string `json:"main_text"`
}

// UpdateDocument handles PUT /api/documents/:id
func (h *DocumentHandler) UpdateDocument(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	getResult, err := h.documentService.GetDocument(c.Request.Context(), service.GetDocumentRequest{ID: id})
	if err != nil {
		h.respondGetError(c, err)
		return
	}
	doc := getResult.Document

	var req UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	if req.ProcessNumber != nil {
		doc.ProcessNumber = *req.ProcessNumber
	}
	if req.Tribunal != nil {
		doc.Tribunal = *req.Tribunal
	}
	if req.Summary != nil {
		doc.Summary = *req.Summary
	}
	if req.Decision != nil {
		doc.Decision = *req.Decision
	}
	if req.Date != nil {
		if *req.Date == "" {
			doc.Date = nil
		} else {
			parsed, err := time.Parse(apiDateLayout, *req.Date)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "INVALID_DATE",
						"message": "date must be formatted as YYYY-MM-DD",
					},
				})
				return
			}
			doc.Date = &parsed
		}
	}
	if req.Descriptors != nil {
		doc.Descriptors = *req.Descriptors
	}
	if req.MainText != nil {
		doc.MainText = *req.MainText
	}

	result, err := h.documentService.UpdateDocument(c.Request.Context(), service.UpdateDocumentRequest{Document: doc})
	if err != nil {
		if errors.Is(err, service.ErrDuplicateProcess) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DUPLICATE_PROCESS_NUMBER",
					"message": err.Error(),
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPDATE_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Document,
	})
}

// DeleteDocument handles DELETE /api/documents/:id
func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	_, err := h.documentService.DeleteDocument(c.Request.Context(), service.DeleteDocumentRequest{ID: id})
	if err != nil {
		h.respondGetError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetEntities handles GET /api/documents/:id/entities
func (h *DocumentHandler) GetEntities(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	result, err := h.documentService.GetEntities(c.Request.Context(), service.GetEntitiesRequest{DocumentID: id})
	if err != nil {
		h.respondGetError(c, err)
		return
	}

	entities := result.Entities
	if entities == nil {
		entities = []*models.Entity{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    entities,
	})
}

// GetSource handles GET /api/documents/:id/source
func (h *DocumentHandler) GetSource(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	result, err := h.documentService.GetSource(c.Request.Context(), service.GetSourceRequest{DocumentID: id})
	if err != nil {
		if errors.Is(err, service.ErrNoArchivedSource) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "NO_ARCHIVED_SOURCE",
					"message": "Document has no archived source",
				},
			})
			return
		}
		h.respondGetError(c, err)
		return
	}
	defer result.Reader.Close()

	c.DataFromReader(http.StatusOK, -1, "text/html; charset=utf-8", result.Reader, nil)
}

// parseID extracts and validates the :id path parameter, writing the error
// response itself when the value is not a UUID.
func (h *DocumentHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid document ID format",
			},
		})
		return uuid.Nil, false
	}
	return id, true
}

// respondGetError maps service lookup errors onto HTTP responses
func (h *DocumentHandler) respondGetError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrDocumentNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Document with the given ID does not exist",
			},
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "INTERNAL_ERROR",
			"message": err.Error(),
		},
	})
}
