// Copyright (c) 2026 Musicbook. All rights reserved.
// Author: dev@musicbook.kr

package book

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/musicbookkr/server/internal/core/ranking"
	"github.com/musicbookkr/server/internal/platform/database/schema"
	"github.com/musicbookkr/server/internal/platform/dberr"
)

// rankColumns feeds the ranking strategies the sortable book columns.
var rankColumns = ranking.Columns{
	ID:        schema.CoreBook.ID,
	CreatedAt: schema.CoreBook.CreatedAt,
	LikeCount: schema.CoreBook.LikeCount,
}

type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// selectColumns is the shared projection for book reads.
func selectColumns() string {
	return strings.Join(schema.CoreBook.Columns(), ", ")
}

func scanBook(row interface{ Scan(dest ...any) error }) (*Book, error) {
	b := &Book{}
	err := row.Scan(
		&b.ID, &b.OwnerID, &b.Title, &b.Description, &b.Slug,
		&b.ThumbnailURL, &b.BackgroundURL, &b.LikeCount, &b.CreatedAt, &b.UpdatedAt,
	)
	return b, err
}

// List returns one page of live books under the requested ranking order.
// Pages beyond the data simply come back empty.
func (repository *PostgresRepository) List(ctx context.Context, order ranking.Order, limit, offset int) ([]*Book, int, error) {
	orderBy, err := ranking.Clause(order, rankColumns)
	if err != nil {
		return nil, 0, err
	}

	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s IS NULL`,
		schema.CoreBook.Table, schema.CoreBook.DeletedAt,
	)

	var total int
	if err := repository.pool.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_books")
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s IS NULL
		ORDER BY %s
		LIMIT $1 OFFSET $2
	`,
		selectColumns(), schema.CoreBook.Table, schema.CoreBook.DeletedAt, orderBy,
	)

	rows, err := repository.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_books")
	}
	defer rows.Close()

	var books []*Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_book")
		}
		books = append(books, b)
	}

	return books, total, nil
}

func (repository *PostgresRepository) GetByID(ctx context.Context, id string) (*Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL`,
		selectColumns(), schema.CoreBook.Table, schema.CoreBook.ID, schema.CoreBook.DeletedAt,
	)

	b, err := scanBook(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_book")
	}
	return b, nil
}

func (repository *PostgresRepository) GetByOwner(ctx context.Context, ownerID string) (*Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL`,
		selectColumns(), schema.CoreBook.Table, schema.CoreBook.OwnerID, schema.CoreBook.DeletedAt,
	)

	b, err := scanBook(repository.pool.QueryRow(ctx, query, ownerID))
	if err != nil {
		return nil, dberr.Wrap(err, "get_book_by_owner")
	}
	return b, nil
}

func (repository *PostgresRepository) ExistsLive(ctx context.Context, id string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s IS NULL)`,
		schema.CoreBook.Table, schema.CoreBook.ID, schema.CoreBook.DeletedAt,
	)

	var exists bool
	if err := repository.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "exists_book")
	}
	return exists, nil
}

// Create inserts a book. The partial unique index on (ownerid) WHERE
// deletedat IS NULL turns a duplicate live book into a Conflict via dberr.
func (repository *PostgresRepository) Create(ctx context.Context, b *Book) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING %s, %s, %s
	`,
		schema.CoreBook.Table, schema.CoreBook.ID, schema.CoreBook.OwnerID,
		schema.CoreBook.Title, schema.CoreBook.Description, schema.CoreBook.Slug,
		schema.CoreBook.ThumbnailURL, schema.CoreBook.BackgroundURL,
		schema.CoreBook.CreatedAt, schema.CoreBook.UpdatedAt,
		schema.CoreBook.LikeCount, schema.CoreBook.CreatedAt, schema.CoreBook.UpdatedAt,
	)

	err := repository.pool.QueryRow(ctx, query,
		b.ID, b.OwnerID, b.Title, b.Description, b.Slug, b.ThumbnailURL, b.BackgroundURL,
	).Scan(&b.LikeCount, &b.CreatedAt, &b.UpdatedAt)

	return dberr.Wrap(err, "create_book")
}

func (repository *PostgresRepository) Update(ctx context.Context, b *Book) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = NOW()
		WHERE %s = $1 AND %s IS NULL
		RETURNING %s
	`,
		schema.CoreBook.Table,
		schema.CoreBook.Title, schema.CoreBook.Description, schema.CoreBook.Slug,
		schema.CoreBook.ThumbnailURL, schema.CoreBook.BackgroundURL, schema.CoreBook.UpdatedAt,
		schema.CoreBook.ID, schema.CoreBook.DeletedAt,
		schema.CoreBook.UpdatedAt,
	)

	err := repository.pool.QueryRow(ctx, query,
		b.ID, b.Title, b.Description, b.Slug, b.ThumbnailURL, b.BackgroundURL,
	).Scan(&b.UpdatedAt)

	return dberr.Wrap(err, "update_book")
}

/*
SoftDeleteCascade soft-deletes the owner's live book and every track in it.

Description: Both updates run inside one transaction so listings never
observe a deleted book with live tracks (or the reverse). Membership rows in
the like ledger are intentionally left behind; the entities disappear from
listings through the deletedat filter, so their counters simply stop being
displayed.

Parameters:
  - ctx: context.Context
  - ownerID: owning user's UUID

Returns:
  - error: dberr.ErrNotFound when the owner has no live book
*/
func (repository *PostgresRepository) SoftDeleteCascade(ctx context.Context, ownerID string) error {
	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("book: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(ctx)

	bookQuery := fmt.Sprintf(`
		UPDATE %s SET %s = NOW()
		WHERE %s = $1 AND %s IS NULL
		RETURNING %s
	`,
		schema.CoreBook.Table, schema.CoreBook.DeletedAt,
		schema.CoreBook.OwnerID, schema.CoreBook.DeletedAt,
		schema.CoreBook.ID,
	)

	var bookID string
	if err := transaction.QueryRow(ctx, bookQuery, ownerID).Scan(&bookID); err != nil {
		return dberr.Wrap(err, "soft_delete_book")
	}

	trackQuery := fmt.Sprintf(`
		UPDATE %s SET %s = NOW()
		WHERE %s = $1 AND %s IS NULL
	`,
		schema.CoreTrack.Table, schema.CoreTrack.DeletedAt,
		schema.CoreTrack.BookID, schema.CoreTrack.DeletedAt,
	)

	if _, err := transaction.Exec(ctx, trackQuery, bookID); err != nil {
		return dberr.Wrap(err, "soft_delete_book_tracks")
	}

	if err := transaction.Commit(ctx); err != nil {
		return fmt.Errorf("book: failed to commit delete transaction: %w", err)
	}
	return nil
}
