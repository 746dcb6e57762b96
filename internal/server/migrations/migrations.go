// Package migrations embeds the goose SQL migrations of both stores.
// The documents and catalog schemas live in separate directories because
// they may be deployed to different databases.
package migrations

import "embed"

// Directories inside FS.
const (
	DocumentsDir = "documents"
	CatalogDir   = "catalog"
)

//go:embed documents/*.sql catalog/*.sql
var FS embed.FS
