package documents

import (
	"context"

	"github.com/dmitrijs2005/dealdocs/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, doc *models.Document) (*models.Document, error)
	GetByID(ctx context.Context, id string) (*models.Document, error)
	SelectForUser(ctx context.Context, userID string) ([]*models.Document, error)
	UpdateStatus(ctx context.Context, id string, from, to models.Status) (*models.Document, error)
}
