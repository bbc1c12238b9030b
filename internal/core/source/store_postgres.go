// Copyright (c) 2026 Musicbook. All rights reserved.
// Author: dev@musicbook.kr

package source

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/musicbookkr/server/internal/platform/database/schema"
	"github.com/musicbookkr/server/internal/platform/dberr"
)

type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) CreateOriginal(ctx context.Context, s *OriginalSource) error {
	table := schema.CoreSourceOriginal
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING %s, %s
	`,
		table.Table, table.ID, table.SongTitle, table.ArtistName,
		table.ArtistThumbnail, table.Category, table.AlbumTitle,
		table.AlbumThumbnail, table.Lyrics, table.CreatedAt, table.UpdatedAt,
		table.CreatedAt, table.UpdatedAt,
	)

	err := repository.pool.QueryRow(ctx, query,
		s.ID, s.SongTitle, s.ArtistName, s.ArtistThumbnail,
		s.Category, s.AlbumTitle, s.AlbumThumbnail, s.Lyrics,
	).Scan(&s.CreatedAt, &s.UpdatedAt)

	return dberr.Wrap(err, "create_source_original")
}

func (repository *PostgresRepository) GetOriginal(ctx context.Context, id string) (*OriginalSource, error) {
	table := schema.CoreSourceOriginal
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		table.ID, table.SongTitle, table.ArtistName, table.ArtistThumbnail,
		table.Category, table.AlbumTitle, table.AlbumThumbnail, table.Lyrics,
		table.CreatedAt, table.UpdatedAt,
		table.Table, table.ID,
	)

	s := &OriginalSource{}
	err := repository.pool.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.SongTitle, &s.ArtistName, &s.ArtistThumbnail,
		&s.Category, &s.AlbumTitle, &s.AlbumThumbnail, &s.Lyrics,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_source_original")
	}
	return s, nil
}

// UpsertMelon refreshes the cached catalog row on conflict, so registering
// the same song twice converges instead of erroring.
func (repository *PostgresRepository) UpsertMelon(ctx context.Context, s *MelonSource) error {
	table := schema.CoreSourceMelon
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		ON CONFLICT (%s) DO UPDATE SET
			%s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s,
			%s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s,
			%s = EXCLUDED.%s, %s = NOW()
		RETURNING %s, %s
	`,
		table.Table, table.SongID, table.SongTitle, table.ArtistName,
		table.ArtistThumbnail, table.Category, table.AlbumTitle,
		table.AlbumThumbnail, table.Lyrics, table.CreatedAt, table.UpdatedAt,
		table.SongID,
		table.SongTitle, table.SongTitle, table.ArtistName, table.ArtistName,
		table.ArtistThumbnail, table.ArtistThumbnail,
		table.Category, table.Category, table.AlbumTitle, table.AlbumTitle,
		table.AlbumThumbnail, table.AlbumThumbnail,
		table.Lyrics, table.Lyrics, table.UpdatedAt,
		table.CreatedAt, table.UpdatedAt,
	)

	err := repository.pool.QueryRow(ctx, query,
		s.SongID, s.SongTitle, s.ArtistName, s.ArtistThumbnail,
		s.Category, s.AlbumTitle, s.AlbumThumbnail, s.Lyrics,
	).Scan(&s.CreatedAt, &s.UpdatedAt)

	return dberr.Wrap(err, "upsert_source_melon")
}

func (repository *PostgresRepository) GetMelon(ctx context.Context, songID int) (*MelonSource, error) {
	table := schema.CoreSourceMelon
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		table.SongID, table.SongTitle, table.ArtistName, table.ArtistThumbnail,
		table.Category, table.AlbumTitle, table.AlbumThumbnail, table.Lyrics,
		table.CreatedAt, table.UpdatedAt,
		table.Table, table.SongID,
	)

	s := &MelonSource{}
	err := repository.pool.QueryRow(ctx, query, songID).Scan(
		&s.SongID, &s.SongTitle, &s.ArtistName, &s.ArtistThumbnail,
		&s.Category, &s.AlbumTitle, &s.AlbumThumbnail, &s.Lyrics,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_source_melon")
	}
	return s, nil
}
