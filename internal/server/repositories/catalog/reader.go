package catalog

import "context"

// Reader is the read-only view of the rule catalog. Both methods return sets:
// distinct names in ascending order. An empty result is not an error.
type Reader interface {
	ListCategories(ctx context.Context) ([]string, error)
	ListSubcategories(ctx context.Context, category string) ([]string, error)
}
