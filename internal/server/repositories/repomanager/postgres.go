// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/dealdocs/internal/dbx"
	"github.com/dmitrijs2005/dealdocs/internal/server/migrations"
	"github.com/dmitrijs2005/dealdocs/internal/server/repositories/catalog"
	"github.com/dmitrijs2005/dealdocs/internal/server/repositories/documents"
	"github.com/dmitrijs2005/dealdocs/internal/server/repositories/grants"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Version tables, kept apart so both schemas can share one database.
const (
	documentsVersionTable = "goose_db_version"
	catalogVersionTable   = "catalog_goose_db_version"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

// Documents returns a documents.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Documents(db dbx.DBTX) documents.Repository {
	return documents.NewPostgresRepository(db)
}

// Grants returns a grants.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Grants(db dbx.DBTX) grants.Repository {
	return grants.NewPostgresRepository(db)
}

// Catalog returns a catalog.Reader bound to the provided DBTX.
func (m *PostgresRepositoryManager) Catalog(db dbx.DBTX) catalog.Reader {
	return catalog.NewPostgresReader(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded documents schema to documentsDB and the
// catalog schema to catalogDB. goose keeps its settings in package globals,
// so migrations must not run concurrently.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, documentsDB, catalogDB *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	defer goose.SetTableName(documentsVersionTable)

	goose.SetTableName(documentsVersionTable)
	if err := gooseUpContext(ctx, documentsDB, migrations.DocumentsDir); err != nil {
		return fmt.Errorf("documents migrations: %w", err)
	}

	goose.SetTableName(catalogVersionTable)
	if err := gooseUpContext(ctx, catalogDB, migrations.CatalogDir); err != nil {
		return fmt.Errorf("catalog migrations: %w", err)
	}
	return nil
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}
