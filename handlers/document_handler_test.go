package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"dms-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// stubDocumentService implements only what a test exercises; any other call
// panics through the embedded nil interface.
type stubDocumentService struct {
	DocumentService
	deleteErr error
	deleted   []uuid.UUID
}

func (s *stubDocumentService) DeleteDocument(ctx context.Context, req service.DeleteDocumentRequest) (*service.DeleteDocumentResult, error) {
	s.deleted = append(s.deleted, req.ID)
	if s.deleteErr != nil {
		return nil, s.deleteErr
	}
	return &service.DeleteDocumentResult{}, nil
}

func newTestRouter(svc DocumentService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewDocumentHandler(svc)
	router := gin.New()
	router.DELETE("/api/documents/:id", handler.DeleteDocument)
	return router
}

func TestDeleteDocument_NoContent(t *testing.T) {
	svc := &stubDocumentService{}
	router := newTestRouter(svc)

	id := uuid.New()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/documents/"+id.String(), nil)
	router.ServeHTTP(rec, req)

	// 204 must carry no body; net/http rejects one.
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.Bytes())
	assert.Equal(t, []uuid.UUID{id}, svc.deleted)
}

func TestDeleteDocument_NotFound(t *testing.T) {
	svc := &stubDocumentService{deleteErr: service.ErrDocumentNotFound}
	router := newTestRouter(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/documents/"+uuid.NewString(), nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "NOT_FOUND")
}

func TestDeleteDocument_InvalidID(t *testing.T) {
	svc := &stubDocumentService{}
	router := newTestRouter(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/documents/not-a-uuid", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, svc.deleted)
}
