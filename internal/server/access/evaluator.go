// Package access decides whether a user may view or edit a document.
//
// Ownership grants full rights. Any other user needs an explicit grant; the
// grant's flags are used as stored. Roles are not consulted. Nothing is
// cached: every check reads the current grant.
package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/dealdocs/internal/common"
	"github.com/dmitrijs2005/dealdocs/internal/server/models"
)

// GrantFinder looks up the grant for a (document, user) pair and returns
// common.ErrorNotFound when there is none.
type GrantFinder interface {
	Get(ctx context.Context, documentID, userID string) (*models.AccessGrant, error)
}

type Evaluator struct {
	grants GrantFinder
}

func NewEvaluator(grants GrantFinder) *Evaluator {
	return &Evaluator{grants: grants}
}

// CanView reports whether user may read doc.
func (e *Evaluator) CanView(ctx context.Context, doc *models.Document, user models.User) (bool, error) {
	return e.check(ctx, doc, user, func(g *models.AccessGrant) bool { return g.CanView })
}

// CanEdit reports whether user may change doc.
func (e *Evaluator) CanEdit(ctx context.Context, doc *models.Document, user models.User) (bool, error) {
	return e.check(ctx, doc, user, func(g *models.AccessGrant) bool { return g.CanEdit })
}

func (e *Evaluator) check(ctx context.Context, doc *models.Document, user models.User, flag func(*models.AccessGrant) bool) (bool, error) {
	if user.ID != "" && user.ID == doc.UploadedBy {
		return true, nil
	}

	grant, err := e.grants.Get(ctx, doc.ID, user.ID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("grant lookup: %w", err)
	}
	return flag(grant), nil
}

// RequireView returns common.ErrorAccessDenied unless user may view doc.
func (e *Evaluator) RequireView(ctx context.Context, doc *models.Document, user models.User) error {
	ok, err := e.CanView(ctx, doc, user)
	return deny(ok, err)
}

// RequireEdit returns common.ErrorAccessDenied unless user may edit doc.
func (e *Evaluator) RequireEdit(ctx context.Context, doc *models.Document, user models.User) error {
	ok, err := e.CanEdit(ctx, doc, user)
	return deny(ok, err)
}

func deny(ok bool, err error) error {
	if err != nil {
		return err
	}
	if !ok {
		return common.ErrorAccessDenied
	}
	return nil
}
