package repository

import (
	"context"

	"dms-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EntityRepository handles database operations for entities
type EntityRepository struct {
	db *pgxpool.Pool
}

// NewEntityRepository creates a new entity repository
func NewEntityRepository(db *pgxpool.Pool) *EntityRepository {
	return &EntityRepository{db: db}
}

// Create inserts an entity. Returns ErrDuplicate when the name is already
// taken by any entity in the store.
func (r *EntityRepository) Create(ctx context.Context, entity *models.Entity) error {
	query := `
		INSERT INTO entities (document_id, name, label, url)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRow(
		ctx, query,
		entity.DocumentID,
		entity.Name,
		entity.Label,
		entity.URL,
	).Scan(&entity.ID, &entity.CreatedAt)

	return classify(err)
}

// ListByDocumentID retrieves all entities owned by a document
func (r *EntityRepository) ListByDocumentID(ctx context.Context, documentID uuid.UUID) ([]*models.Entity, error) {
	query := `
		SELECT id, document_id, name, label, url, created_at
		FROM entities
		WHERE document_id = $1
		ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entities []*models.Entity
	for rows.Next() {
		entity := &models.Entity{}
		err := rows.Scan(
			&entity.ID,
			&entity.DocumentID,
			&entity.Name,
			&entity.Label,
			&entity.URL,
			&entity.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}

	return entities, rows.Err()
}

// ListByDocumentIDs retrieves the entities for a batch of documents in one
// query, keyed by owning document. Used to attach entities to list pages
// without a per-row query.
func (r *EntityRepository) ListByDocumentIDs(ctx context.Context, documentIDs []uuid.UUID) (map[uuid.UUID][]*models.Entity, error) {
	byDoc := make(map[uuid.UUID][]*models.Entity)
	if len(documentIDs) == 0 {
		return byDoc, nil
	}

	query := `
		SELECT id, document_id, name, label, url, created_at
		FROM entities
		WHERE document_id = ANY($1)
		ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, documentIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		entity := &models.Entity{}
		err := rows.Scan(
			&entity.ID,
			&entity.DocumentID,
			&entity.Name,
			&entity.Label,
			&entity.URL,
			&entity.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		byDoc[entity.DocumentID] = append(byDoc[entity.DocumentID], entity)
	}

	return byDoc, rows.Err()
}
