package track

import (
	"context"

	"github.com/musicbookkr/server/internal/core/ranking"
)

type Repository interface {
	// List returns one page of live tracks under the given order and filter,
	// plus the total matching count for pagination metadata.
	List(ctx context.Context, order ranking.Order, f Filter, limit, offset int) ([]*Track, int, error)
	GetByID(ctx context.Context, id string) (*Track, error)
	ExistsLive(ctx context.Context, id string) (bool, error)
	ListByBook(ctx context.Context, bookID string) ([]*Track, error)
	Create(ctx context.Context, t *Track) error
	Update(ctx context.Context, t *Track) error
	SoftDelete(ctx context.Context, ownerID, trackID string) error
}
