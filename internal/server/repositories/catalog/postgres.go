// Package catalog reads the externally curated document_rules table that
// defines which (category, subcategory) pairs are recognized.
package catalog

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/dealdocs/internal/common"
	"github.com/dmitrijs2005/dealdocs/internal/dbx"
)

// PostgresReader implements Reader over its own connection, independent of
// the documents store.
type PostgresReader struct {
	db dbx.DBTX
}

func NewPostgresReader(db dbx.DBTX) *PostgresReader {
	return &PostgresReader{db: db}
}

func (r *PostgresReader) ListCategories(ctx context.Context) ([]string, error) {
	return r.selectNames(ctx, `SELECT DISTINCT category FROM document_rules ORDER BY category`)
}

func (r *PostgresReader) ListSubcategories(ctx context.Context, category string) ([]string, error) {
	return r.selectNames(ctx,
		`SELECT DISTINCT subcategory FROM document_rules WHERE category = $1 ORDER BY subcategory`,
		category)
}

func (r *PostgresReader) selectNames(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog: %w: %w", common.ErrorCatalogUnavailable, err)
	}
	defer rows.Close()

	result := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan catalog: %w: %w", common.ErrorCatalogUnavailable, err)
		}
		result = append(result, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w: %w", common.ErrorCatalogUnavailable, err)
	}
	return result, nil
}
