// Package completeness reconciles a user's uploads against the rule catalog.
//
// The catalog and the documents live in separate stores with no shared
// transaction, so a report is a best-effort snapshot: a category added
// between the reads simply shows up with nothing uploaded, a category
// removed between the reads is left out, and a document whose
// (category, type) pair has left the catalog is silently ignored.
package completeness

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"github.com/dmitrijs2005/dealdocs/internal/common"
	"github.com/dmitrijs2005/dealdocs/internal/server/models"
	"github.com/dmitrijs2005/dealdocs/internal/server/repositories/catalog"
	"golang.org/x/sync/errgroup"
)

// DocumentLister returns the documents owned by or granted to a user.
type DocumentLister interface {
	SelectForUser(ctx context.Context, userID string) ([]*models.Document, error)
}

// DefaultConcurrency bounds the per-category subcategory reads.
const DefaultConcurrency = 4

type Aggregator struct {
	catalog     catalog.Reader
	docs        DocumentLister
	concurrency int
}

func NewAggregator(c catalog.Reader, docs DocumentLister, concurrency int) *Aggregator {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Aggregator{catalog: c, docs: docs, concurrency: concurrency}
}

// Report builds the completeness report for userID, ordered by category and
// then subcategory name. Only documents uploaded by userID count.
//
// An empty catalog, or a category without subcategories, yields
// common.ErrorCatalogNotFound: such a category can never be satisfied and
// must not read as complete.
func (a *Aggregator) Report(ctx context.Context, userID string) ([]models.CategoryStatus, error) {
	g, gctx := errgroup.WithContext(ctx)

	var owned []*models.Document
	g.Go(func() error {
		docs, err := a.docs.SelectForUser(gctx, userID)
		if err != nil {
			return err
		}
		for _, d := range docs {
			if d.UploadedBy == userID {
				owned = append(owned, d)
			}
		}
		return nil
	})

	var report []models.CategoryStatus
	g.Go(func() error {
		var err error
		report, err = a.readCatalog(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	uploaded := make(map[models.CategoryRule]struct{}, len(owned))
	for _, d := range owned {
		uploaded[models.CategoryRule{Category: d.Category, Subcategory: d.Type}] = struct{}{}
	}

	for i := range report {
		for j := range report[i].Subcategories {
			key := models.CategoryRule{Category: report[i].Category, Subcategory: report[i].Subcategories[j].Name}
			_, report[i].Subcategories[j].Uploaded = uploaded[key]
		}
	}
	return report, nil
}

// readCatalog fetches every category and its subcategories, the latter
// concurrently, and returns slots with Uploaded unset.
//
// A category that comes back without subcategories was either removed after
// the category list was read or is misconfigured. The list is read again:
// categories gone from it are dropped, the rest fail the report.
func (a *Aggregator) readCatalog(ctx context.Context) ([]models.CategoryStatus, error) {
	categories, err := a.catalog.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	categories = normalize(categories)
	if len(categories) == 0 {
		return nil, fmt.Errorf("%w: catalog has no categories", common.ErrorCatalogNotFound)
	}

	report := make([]models.CategoryStatus, len(categories))
	empty := make([]bool, len(categories))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)
	for i, category := range categories {
		g.Go(func() error {
			subs, err := a.catalog.ListSubcategories(gctx, category)
			if err != nil {
				return err
			}
			subs = normalize(subs)
			if len(subs) == 0 {
				empty[i] = true
				return nil
			}
			slots := make([]models.SubcategoryStatus, len(subs))
			for j, s := range subs {
				slots[j] = models.SubcategoryStatus{Name: s}
			}
			report[i] = models.CategoryStatus{Category: category, Subcategories: slots}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if !slices.Contains(empty, true) {
		return report, nil
	}

	current, err := a.catalog.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	current = normalize(current)

	kept := report[:0]
	for i, cs := range report {
		if !empty[i] {
			kept = append(kept, cs)
			continue
		}
		if _, found := slices.BinarySearch(current, categories[i]); found {
			return nil, fmt.Errorf("%w: category %q has no subcategories", common.ErrorCatalogNotFound, categories[i])
		}
	}
	if len(kept) == 0 {
		return nil, fmt.Errorf("%w: catalog has no categories", common.ErrorCatalogNotFound)
	}
	return kept, nil
}

// normalize turns a reader result into a sorted set, whatever order and
// duplicates the reader produced.
func normalize(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
