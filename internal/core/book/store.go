package book

import (
	"context"

	"github.com/musicbookkr/server/internal/core/ranking"
)

type Repository interface {
	// List returns one page of live books under the given order, plus the
	// total live-book count for pagination metadata.
	List(ctx context.Context, order ranking.Order, limit, offset int) ([]*Book, int, error)
	GetByID(ctx context.Context, id string) (*Book, error)
	GetByOwner(ctx context.Context, ownerID string) (*Book, error)
	ExistsLive(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, b *Book) error
	Update(ctx context.Context, b *Book) error
	// SoftDeleteCascade soft-deletes the owner's book and all of its tracks
	// in one transaction.
	SoftDeleteCascade(ctx context.Context, ownerID string) error
}
