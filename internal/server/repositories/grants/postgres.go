// Package grants provides the PostgreSQL-backed access grant repository.
package grants

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/dealdocs/internal/common"
	"github.com/dmitrijs2005/dealdocs/internal/dbx"
	"github.com/dmitrijs2005/dealdocs/internal/server/models"
)

// PostgresRepository implements grant storage over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Set upserts the grant for (DocumentID, UserID).
func (r *PostgresRepository) Set(ctx context.Context, grant *models.AccessGrant) error {
	query := `
		INSERT INTO document_access (document_id, user_id, can_view, can_edit)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (document_id, user_id)
		DO UPDATE SET can_view = EXCLUDED.can_view, can_edit = EXCLUDED.can_edit
	`
	res, err := r.db.ExecContext(ctx, query, grant.DocumentID, grant.UserID, grant.CanView, grant.CanEdit)
	if err != nil {
		return fmt.Errorf("db error: %w: %w", common.ErrorStoreUnavailable, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w: %w", common.ErrorStoreUnavailable, err)
	}
	if n != 1 {
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
	return nil
}

// Get returns common.ErrorNotFound when no grant exists for the pair.
func (r *PostgresRepository) Get(ctx context.Context, documentID, userID string) (*models.AccessGrant, error) {
	query := `SELECT document_id, user_id, can_view, can_edit FROM document_access
		WHERE document_id = $1 AND user_id = $2
		LIMIT 1`

	g := &models.AccessGrant{}
	err := r.db.QueryRowContext(ctx, query, documentID, userID).Scan(&g.DocumentID, &g.UserID, &g.CanView, &g.CanEdit)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w: %w", common.ErrorStoreUnavailable, err)
	}
	return g, nil
}
