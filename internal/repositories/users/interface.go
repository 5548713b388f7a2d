package users

import (
	"context"

	"github.com/dmitrijs2005/savelinks/internal/models"
)

type Repository interface {
	// Create stores a new user and returns its id.
	Create(ctx context.Context, userName string, salt, verifier []byte) (int64, error)

	// GetByUserName returns the credential record for userName.
	GetByUserName(ctx context.Context, userName string) (*models.User, error)
}
