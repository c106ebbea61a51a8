package repository

import (
	"context"
	"fmt"
	"strings"

	"dms-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DocumentRepository handles database operations for documents
type DocumentRepository struct {
	db *pgxpool.Pool
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// orderableColumns whitelists the columns the list endpoint may sort by
var orderableColumns = map[string]bool{
	"process_number": true,
	"tribunal":       true,
	"date":           true,
	"created_at":     true,
	"updated_at":     true,
}

// Create inserts a document. Each insert is a single statement, so a
// uniqueness violation on one record never affects sibling inserts.
// Returns ErrDuplicate when process_number is already taken.
func (r *DocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	query := `
		INSERT INTO documents (
			process_number, tribunal, summary, decision, date, descriptors,
			main_text, source_path
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(
		ctx, query,
		doc.ProcessNumber,
		doc.Tribunal,
		doc.Summary,
		doc.Decision,
		doc.Date,
		doc.Descriptors,
		doc.MainText,
		doc.SourcePath,
	).Scan(&doc.ID, &doc.CreatedAt, &doc.UpdatedAt)

	return classify(err)
}

// GetByID retrieves a document by its surface identifier
func (r *DocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	doc := &models.Document{}
	query := `
		SELECT id, process_number, tribunal, summary, decision, date,
			descriptors, main_text, source_path, created_at, updated_at
		FROM documents
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&doc.ID,
		&doc.ProcessNumber,
		&doc.Tribunal,
		&doc.Summary,
		&doc.Decision,
		&doc.Date,
		&doc.Descriptors,
		&doc.MainText,
		&doc.SourcePath,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)
	if err != nil {
		return nil, classify(err)
	}

	return doc, nil
}

// GetByProcessNumber retrieves a document by its natural key.
// Returns ErrNotFound when no document holds that process number.
func (r *DocumentRepository) GetByProcessNumber(ctx context.Context, processNumber string) (*models.Document, error) {
	doc := &models.Document{}
	query := `
		SELECT id, process_number, tribunal, summary, decision, date,
			descriptors, main_text, source_path, created_at, updated_at
		FROM documents
		WHERE process_number = $1`

	err := r.db.QueryRow(ctx, query, processNumber).Scan(
		&doc.ID,
		&doc.ProcessNumber,
		&doc.Tribunal,
		&doc.Summary,
		&doc.Decision,
		&doc.Date,
		&doc.Descriptors,
		&doc.MainText,
		&doc.SourcePath,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)
	if err != nil {
		return nil, classify(err)
	}

	return doc, nil
}

// Update writes the mutable fields of a document.
// Returns ErrDuplicate when the new process_number is already taken.
func (r *DocumentRepository) Update(ctx context.Context, doc *models.Document) error {
	query := `
		UPDATE documents SET
			process_number = $2,
			tribunal = $3,
			summary = $4,
			decision = $5,
			date = $6,
			descriptors = $7,
			main_text = $8,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRow(
		ctx, query,
		doc.ID,
		doc.ProcessNumber,
		doc.Tribunal,
		doc.Summary,
		doc.Decision,
		doc.Date,
		doc.Descriptors,
		doc.MainText,
	).Scan(&doc.UpdatedAt)

	return classify(err)
}

// ListParams controls filtering, ordering and pagination for List
type ListParams struct {
	Search   string
	Ordering string // column name, "-" prefix for descending
	Limit    int
	Offset   int
}

// List retrieves a page of documents plus the total count matching the filter
func (r *DocumentRepository) List(ctx context.Context, params ListParams) ([]*models.Document, int, error) {
	where := ""
	args := []interface{}{}
	argIndex := 1

	if params.Search != "" {
		where = fmt.Sprintf(`
		WHERE process_number ILIKE $%d
			OR tribunal ILIKE $%d
			OR descriptors ILIKE $%d
			OR summary ILIKE $%d`, argIndex, argIndex, argIndex, argIndex)
		args = append(args, "%"+params.Search+"%")
		argIndex++
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM documents" + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	column := "created_at"
	direction := "DESC"
	if params.Ordering != "" {
		col := params.Ordering
		direction = "ASC"
		if strings.HasPrefix(col, "-") {
			col = col[1:]
			direction = "DESC"
		}
		if !orderableColumns[col] {
			return nil, 0, fmt.Errorf("cannot order by column %q", col)
		}
		column = col
	}

	query := fmt.Sprintf(`
		SELECT id, process_number, tribunal, summary, decision, date,
			descriptors, main_text, source_path, created_at, updated_at
		FROM documents
		%s
		ORDER BY %s %s`, where, column, direction)

	if params.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, params.Limit)
		argIndex++
		if params.Offset > 0 {
			query += fmt.Sprintf(" OFFSET $%d", argIndex)
			args = append(args, params.Offset)
		}
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var docs []*models.Document
	for rows.Next() {
		doc := &models.Document{}
		err := rows.Scan(
			&doc.ID,
			&doc.ProcessNumber,
			&doc.Tribunal,
			&doc.Summary,
			&doc.Decision,
			&doc.Date,
			&doc.Descriptors,
			&doc.MainText,
			&doc.SourcePath,
			&doc.CreatedAt,
			&doc.UpdatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		docs = append(docs, doc)
	}

	return docs, total, rows.Err()
}

// Delete removes a document. Owned entities cascade at the database level.
func (r *DocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
