package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/dealdocs/internal/common"
	"github.com/dmitrijs2005/dealdocs/internal/server/completeness"
	"github.com/dmitrijs2005/dealdocs/internal/server/models"
	"github.com/dmitrijs2005/dealdocs/internal/server/repositories/repomanager"
)

type CatalogService struct {
	catalogDB   *sql.DB
	repomanager repomanager.RepositoryManager
	aggregator  *completeness.Aggregator
}

func NewCatalogService(db, catalogDB *sql.DB, rm repomanager.RepositoryManager, concurrency int) *CatalogService {
	return &CatalogService{
		catalogDB:   catalogDB,
		repomanager: rm,
		aggregator:  completeness.NewAggregator(rm.Catalog(catalogDB), rm.Documents(db), concurrency),
	}
}

// ListCategories returns every category defined by the catalog.
func (s *CatalogService) ListCategories(ctx context.Context) ([]string, error) {
	categories, err := s.repomanager.Catalog(s.catalogDB).ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, fmt.Errorf("%w: no categories defined", common.ErrorCatalogNotFound)
	}
	return categories, nil
}

// ListSubcategories returns the document types required for category.
func (s *CatalogService) ListSubcategories(ctx context.Context, category string) ([]string, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, validationError("category is required")
	}

	subs, err := s.repomanager.Catalog(s.catalogDB).ListSubcategories(ctx, category)
	if err != nil {
		return nil, err
	}
	if len(subs) == 0 {
		return nil, fmt.Errorf("%w: category %q", common.ErrorCatalogNotFound, category)
	}
	return subs, nil
}

// StatusReport returns the user's per-category completeness report.
func (s *CatalogService) StatusReport(ctx context.Context, user models.User) ([]models.CategoryStatus, error) {
	if user.ID == "" {
		return nil, common.ErrorUnauthorized
	}
	return s.aggregator.Report(ctx, user.ID)
}
