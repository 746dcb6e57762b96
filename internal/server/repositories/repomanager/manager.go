package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/dealdocs/internal/dbx"
	"github.com/dmitrijs2005/dealdocs/internal/server/repositories/catalog"
	"github.com/dmitrijs2005/dealdocs/internal/server/repositories/documents"
	"github.com/dmitrijs2005/dealdocs/internal/server/repositories/grants"
)

// RepositoryManager vends repositories bound to a DBTX so callers can run
// them either directly on a pool or inside a transaction.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, documentsDB, catalogDB *sql.DB) error
	Documents(db dbx.DBTX) documents.Repository
	Grants(db dbx.DBTX) grants.Repository
	Catalog(db dbx.DBTX) catalog.Reader
}
