package workflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/dealdocs/internal/common"
	"github.com/dmitrijs2005/dealdocs/internal/server/models"
)

// DocumentStore is the slice of the document repository the machine needs.
// UpdateStatus must be a single conditional update that only succeeds while
// the stored status still equals from, returning common.ErrorNotFound
// otherwise.
type DocumentStore interface {
	GetByID(ctx context.Context, id string) (*models.Document, error)
	UpdateStatus(ctx context.Context, id string, from, to models.Status) (*models.Document, error)
}

// EditChecker is satisfied by *access.Evaluator.
type EditChecker interface {
	RequireEdit(ctx context.Context, doc *models.Document, user models.User) error
}

type Machine struct {
	docs   DocumentStore
	access EditChecker
}

func NewMachine(docs DocumentStore, access EditChecker) *Machine {
	return &Machine{docs: docs, access: access}
}

// Transition moves document id to target on behalf of user.
//
// The document is always read fresh. Edit permission is checked before the
// edge, so a user without rights learns nothing about the workflow state.
// If the status changes between the read and the update, the call fails
// with common.ErrorInvalidTransition instead of overwriting it.
func (m *Machine) Transition(ctx context.Context, id string, target models.Status, user models.User) (*models.Document, error) {
	doc, err := m.docs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := m.access.RequireEdit(ctx, doc, user); err != nil {
		return nil, err
	}

	if err := Validate(doc.Status, target); err != nil {
		return nil, err
	}

	updated, err := m.docs.UpdateStatus(ctx, doc.ID, doc.Status, target)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("%w: document %s is no longer %s", common.ErrorInvalidTransition, doc.ID, doc.Status)
		}
		return nil, err
	}
	return updated, nil
}
