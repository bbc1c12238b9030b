// Copyright (c) 2026 Musicbook. All rights reserved.
// Author: dev@musicbook.kr

package track

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/musicbookkr/server/internal/core/ranking"
	"github.com/musicbookkr/server/internal/platform/database/schema"
	"github.com/musicbookkr/server/internal/platform/dberr"
)

var rankColumns = ranking.Columns{
	ID:        schema.CoreTrack.ID,
	CreatedAt: schema.CoreTrack.CreatedAt,
	LikeCount: schema.CoreTrack.LikeCount,
}

type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func selectColumns() string {
	return strings.Join(schema.CoreTrack.Columns(), ", ")
}

// scanTrack reads one projection row and rebuilds the source variant from
// the discriminator column plus whichever reference column it selects.
func scanTrack(row interface{ Scan(dest ...any) error }) (*Track, error) {
	t := &Track{}
	var (
		sourceType       string
		originalSourceID *string
		melonSongID      *int
	)

	err := row.Scan(
		&t.ID, &t.BookID, &t.OwnerID, &t.Title, &t.Description,
		&t.PreviewURL, &t.PreviewKind, &t.MRURL, &t.MRKind,
		&sourceType, &originalSourceID, &melonSongID, &t.Category,
		&t.LikeCount, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	switch SourceType(sourceType) {
	case SourceOriginal:
		if originalSourceID != nil {
			t.Source = OriginalSourceRef{SourceID: *originalSourceID}
		}
	case SourceMelon:
		if melonSongID != nil {
			t.Source = MelonSourceRef{SongID: *melonSongID}
		}
	}

	return t, nil
}

// filterClause renders the optional listing filters as positional
// conditions appended after the deletedat guard.
func filterClause(f Filter, args []any) (string, []any) {
	var conditions []string

	if f.Category != "" {
		args = append(args, f.Category)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", schema.CoreTrack.Category, len(args)))
	}
	if f.UserID != "" {
		args = append(args, f.UserID)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", schema.CoreTrack.OwnerID, len(args)))
	}
	if f.BookID != "" {
		args = append(args, f.BookID)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", schema.CoreTrack.BookID, len(args)))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " AND " + strings.Join(conditions, " AND "), args
}

// List returns one page of live tracks matching the filter under the
// requested ranking order. Pages beyond the data come back empty.
func (repository *PostgresRepository) List(ctx context.Context, order ranking.Order, f Filter, limit, offset int) ([]*Track, int, error) {
	orderBy, err := ranking.Clause(order, rankColumns)
	if err != nil {
		return nil, 0, err
	}

	where, countArgs := filterClause(f, nil)

	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s IS NULL%s`,
		schema.CoreTrack.Table, schema.CoreTrack.DeletedAt, where,
	)

	var total int
	if err := repository.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_tracks")
	}

	where, args := filterClause(f, nil)
	args = append(args, limit, offset)

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s IS NULL%s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`,
		selectColumns(), schema.CoreTrack.Table, schema.CoreTrack.DeletedAt, where,
		orderBy, len(args)-1, len(args),
	)

	rows, err := repository.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_tracks")
	}
	defer rows.Close()

	var tracks []*Track
	for rows.Next() {
		t, err := scanTrack(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_track")
		}
		tracks = append(tracks, t)
	}

	return tracks, total, nil
}

func (repository *PostgresRepository) GetByID(ctx context.Context, id string) (*Track, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL`,
		selectColumns(), schema.CoreTrack.Table, schema.CoreTrack.ID, schema.CoreTrack.DeletedAt,
	)

	t, err := scanTrack(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_track")
	}
	return t, nil
}

func (repository *PostgresRepository) ExistsLive(ctx context.Context, id string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s IS NULL)`,
		schema.CoreTrack.Table, schema.CoreTrack.ID, schema.CoreTrack.DeletedAt,
	)

	var exists bool
	if err := repository.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "exists_track")
	}
	return exists, nil
}

// ListByBook returns every live track in one book, newest first.
func (repository *PostgresRepository) ListByBook(ctx context.Context, bookID string) ([]*Track, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1 AND %s IS NULL
		ORDER BY %s DESC, %s DESC
	`,
		selectColumns(), schema.CoreTrack.Table,
		schema.CoreTrack.BookID, schema.CoreTrack.DeletedAt,
		schema.CoreTrack.CreatedAt, schema.CoreTrack.ID,
	)

	rows, err := repository.pool.Query(ctx, query, bookID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_book_tracks")
	}
	defer rows.Close()

	var tracks []*Track
	for rows.Next() {
		t, err := scanTrack(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_track")
		}
		tracks = append(tracks, t)
	}

	return tracks, nil
}

func (repository *PostgresRepository) Create(ctx context.Context, t *Track) error {
	var (
		originalSourceID *string
		melonSongID      *int
	)
	switch source := t.Source.(type) {
	case OriginalSourceRef:
		originalSourceID = &source.SourceID
	case MelonSourceRef:
		melonSongID = &source.SongID
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
		RETURNING %s, %s, %s
	`,
		schema.CoreTrack.Table, schema.CoreTrack.ID, schema.CoreTrack.BookID,
		schema.CoreTrack.OwnerID, schema.CoreTrack.Title, schema.CoreTrack.Description,
		schema.CoreTrack.PreviewURL, schema.CoreTrack.PreviewKind,
		schema.CoreTrack.MRURL, schema.CoreTrack.MRKind,
		schema.CoreTrack.SourceType, schema.CoreTrack.OriginalSourceID,
		schema.CoreTrack.MelonSongID, schema.CoreTrack.Category,
		schema.CoreTrack.CreatedAt, schema.CoreTrack.UpdatedAt,
		schema.CoreTrack.LikeCount, schema.CoreTrack.CreatedAt, schema.CoreTrack.UpdatedAt,
	)

	err := repository.pool.QueryRow(ctx, query,
		t.ID, t.BookID, t.OwnerID, t.Title, t.Description,
		t.PreviewURL, t.PreviewKind, t.MRURL, t.MRKind,
		string(t.Source.Type()), originalSourceID, melonSongID, t.Category,
	).Scan(&t.LikeCount, &t.CreatedAt, &t.UpdatedAt)

	return dberr.Wrap(err, "create_track")
}

// Update writes the mutable fields only. The source columns are never
// touched after creation.
func (repository *PostgresRepository) Update(ctx context.Context, t *Track) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = NOW()
		WHERE %s = $1 AND %s IS NULL
		RETURNING %s
	`,
		schema.CoreTrack.Table,
		schema.CoreTrack.Title, schema.CoreTrack.Description,
		schema.CoreTrack.PreviewURL, schema.CoreTrack.PreviewKind,
		schema.CoreTrack.MRURL, schema.CoreTrack.MRKind,
		schema.CoreTrack.UpdatedAt,
		schema.CoreTrack.ID, schema.CoreTrack.DeletedAt,
		schema.CoreTrack.UpdatedAt,
	)

	err := repository.pool.QueryRow(ctx, query,
		t.ID, t.Title, t.Description, t.PreviewURL, t.PreviewKind, t.MRURL, t.MRKind,
	).Scan(&t.UpdatedAt)

	return dberr.Wrap(err, "update_track")
}

// SoftDelete marks the track deleted only when the actor owns it, so
// ownership and liveness are checked in the same statement.
func (repository *PostgresRepository) SoftDelete(ctx context.Context, ownerID, trackID string) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = NOW()
		WHERE %s = $1 AND %s = $2 AND %s IS NULL
		RETURNING %s
	`,
		schema.CoreTrack.Table, schema.CoreTrack.DeletedAt,
		schema.CoreTrack.ID, schema.CoreTrack.OwnerID, schema.CoreTrack.DeletedAt,
		schema.CoreTrack.ID,
	)

	var id string
	if err := repository.pool.QueryRow(ctx, query, trackID, ownerID).Scan(&id); err != nil {
		return dberr.Wrap(err, "soft_delete_track")
	}
	return nil
}
