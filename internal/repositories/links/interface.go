// Package links persists encrypted link records. Records are opaque tokens to
// this layer; every query is scoped by the owning user id.
package links

import (
	"context"

	"github.com/dmitrijs2005/savelinks/internal/models"
)

type Repository interface {
	// Insert stores data for userID and returns the new record id.
	Insert(ctx context.Context, userID int64, data []byte) (int64, error)

	// ListByUser returns every record owned by userID in ascending id order.
	ListByUser(ctx context.Context, userID int64) ([]models.Link, error)

	// Delete removes record id only if it belongs to userID and reports how
	// many rows went away (0 or 1).
	Delete(ctx context.Context, id, userID int64) (int64, error)
}
