// Package documents provides the PostgreSQL-backed document repository.
package documents

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/dealdocs/internal/common"
	"github.com/dmitrijs2005/dealdocs/internal/dbx"
	"github.com/dmitrijs2005/dealdocs/internal/server/models"
)

const documentColumns = `id, title, description, category, type, status, uploaded_by, created_at, metadata, file_ref`

// PostgresRepository implements document storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*models.Document, error) {
	var (
		doc      models.Document
		status   string
		metadata []byte
	)
	if err := row.Scan(&doc.ID, &doc.Title, &doc.Description, &doc.Category, &doc.Type,
		&status, &doc.UploadedBy, &doc.CreatedAt, &metadata, &doc.FileRef); err != nil {
		return nil, err
	}
	doc.Status = models.Status(status)
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &doc.Metadata); err != nil {
			return nil, fmt.Errorf("decode metadata: %w", err)
		}
	}
	return &doc, nil
}

func storeError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, common.ErrorStoreUnavailable, err)
}

// Create inserts doc and returns it with the server-assigned created_at.
func (r *PostgresRepository) Create(ctx context.Context, doc *models.Document) (*models.Document, error) {
	metadata, err := json.Marshal(doc.Metadata)
	if err != nil {
		return nil, fmt.Errorf("encode metadata: %w", err)
	}

	query := `
		INSERT INTO documents (id, title, description, category, type, status, uploaded_by, metadata, file_ref)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`
	err = r.db.QueryRowContext(ctx, query,
		doc.ID, doc.Title, doc.Description, doc.Category, doc.Type, string(doc.Status),
		doc.UploadedBy, metadata, doc.FileRef,
	).Scan(&doc.CreatedAt)
	if err != nil {
		return nil, storeError("insert document", err)
	}
	return doc, nil
}

// GetByID returns common.ErrorNotFound when no document has the id.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`

	doc, err := scanDocument(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, storeError("select document", err)
	}
	return doc, nil
}

// SelectForUser returns the documents uploaded by userID or shared with it
// through a grant, oldest first.
func (r *PostgresRepository) SelectForUser(ctx context.Context, userID string) ([]*models.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents
		WHERE uploaded_by = $1
		   OR id IN (SELECT document_id FROM document_access WHERE user_id = $1)
		ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, storeError("select documents", err)
	}
	defer rows.Close()

	var result []*models.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, storeError("scan document", err)
		}
		result = append(result, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("iterate documents", err)
	}
	return result, nil
}

// UpdateStatus moves the document from status from to status to in a single
// conditional update. If the row no longer has status from (or does not
// exist) common.ErrorNotFound is returned and nothing changes.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, from, to models.Status) (*models.Document, error) {
	query := `UPDATE documents SET status = $1
		WHERE id = $2 AND status = $3
		RETURNING ` + documentColumns

	doc, err := scanDocument(r.db.QueryRowContext(ctx, query, string(to), id, string(from)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, storeError("update status", err)
	}
	return doc, nil
}
