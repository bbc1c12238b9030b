package source

import "context"

type Repository interface {
	CreateOriginal(ctx context.Context, s *OriginalSource) error
	GetOriginal(ctx context.Context, id string) (*OriginalSource, error)
	// UpsertMelon inserts or refreshes the cached catalog entry and loads
	// the stored row back into s.
	UpsertMelon(ctx context.Context, s *MelonSource) error
	GetMelon(ctx context.Context, songID int) (*MelonSource, error)
}
