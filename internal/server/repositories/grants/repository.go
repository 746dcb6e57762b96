package grants

import (
	"context"

	"github.com/dmitrijs2005/dealdocs/internal/server/models"
)

type Repository interface {
	Set(ctx context.Context, grant *models.AccessGrant) error
	Get(ctx context.Context, documentID, userID string) (*models.AccessGrant, error)
}
