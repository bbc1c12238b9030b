// Copyright (c) 2026 Musicbook. All rights reserved.
// Author: dev@musicbook.kr

package like

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/musicbookkr/server/internal/platform/database/schema"
	"github.com/musicbookkr/server/internal/platform/dberr"
)

// PostgresLedger implements [Ledger] on PostgreSQL.
type PostgresLedger struct {
	pool *pgxpool.Pool
}

// NewPostgresLedger creates a new PostgreSQL-backed like ledger.
func NewPostgresLedger(pool *pgxpool.Pool) *PostgresLedger {
	return &PostgresLedger{pool: pool}
}

// counterTarget maps a target type onto the table carrying its likecount.
type counterTarget struct {
	table     string
	id        string
	likeCount string
	deletedAt string
}

// counterTargets is the closed map from target type to counter location.
var counterTargets = map[TargetType]counterTarget{
	TargetBook: {
		table:     schema.CoreBook.Table,
		id:        schema.CoreBook.ID,
		likeCount: schema.CoreBook.LikeCount,
		deletedAt: schema.CoreBook.DeletedAt,
	},
	TargetTrack: {
		table:     schema.CoreTrack.Table,
		id:        schema.CoreTrack.ID,
		likeCount: schema.CoreTrack.LikeCount,
		deletedAt: schema.CoreTrack.DeletedAt,
	},
}

/*
Create inserts a membership row and bumps the target's counter atomically.

Description: The INSERT uses ON CONFLICT DO NOTHING against the composite
primary key, so a repeated like is a clean no-op. The counter is incremented
only when a row was actually inserted, and both statements share one
transaction; concurrent toggles on the same (actor, target) pair serialize on
the membership row, so the counter can never drift.

Parameters:
  - ctx: context.Context
  - actorID: liking user's UUID
  - targetID: liked entity's UUID
  - target: TargetType (BOOK or TRACK)

Returns:
  - error: transaction or statement failures, classified via dberr
*/
func (ledger *PostgresLedger) Create(ctx context.Context, actorID, targetID string, target TargetType) error {
	location, ok := counterTargets[target]
	if !ok {
		return fmt.Errorf("like: unknown target type %q", target)
	}

	transaction, err := ledger.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("like: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(ctx)

	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (%s, %s, %s) DO NOTHING
	`,
		schema.SocialLike.Table, schema.SocialLike.UserID, schema.SocialLike.TargetID,
		schema.SocialLike.TargetType, schema.SocialLike.CreatedAt,
		schema.SocialLike.UserID, schema.SocialLike.TargetID, schema.SocialLike.TargetType,
	)

	inserted, err := transaction.Exec(ctx, insertQuery, actorID, targetID, string(target))
	if err != nil {
		return dberr.Wrap(err, "create_like")
	}

	// Already liked: nothing to count.
	if inserted.RowsAffected() == 0 {
		return transaction.Commit(ctx)
	}

	counterQuery := fmt.Sprintf(`UPDATE %s SET %s = %s + 1 WHERE %s = $1`,
		location.table, location.likeCount, location.likeCount, location.id,
	)
	if _, err := transaction.Exec(ctx, counterQuery, targetID); err != nil {
		return dberr.Wrap(err, "increment_like_count")
	}

	if err := transaction.Commit(ctx); err != nil {
		return fmt.Errorf("like: failed to commit create transaction: %w", err)
	}
	return nil
}

/*
Delete removes a membership row and decrements the target's counter atomically.

Description: Mirror image of [PostgresLedger.Create]. The counter is
decremented only when a row was actually deleted, inside the same
transaction, so repeated unlikes are no-ops and the counter never goes
negative.
*/
func (ledger *PostgresLedger) Delete(ctx context.Context, actorID, targetID string, target TargetType) error {
	location, ok := counterTargets[target]
	if !ok {
		return fmt.Errorf("like: unknown target type %q", target)
	}

	transaction, err := ledger.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("like: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(ctx)

	deleteQuery := fmt.Sprintf(`
		DELETE FROM %s WHERE %s = $1 AND %s = $2 AND %s = $3
	`,
		schema.SocialLike.Table, schema.SocialLike.UserID,
		schema.SocialLike.TargetID, schema.SocialLike.TargetType,
	)

	deleted, err := transaction.Exec(ctx, deleteQuery, actorID, targetID, string(target))
	if err != nil {
		return dberr.Wrap(err, "delete_like")
	}

	// Was never liked: nothing to discount.
	if deleted.RowsAffected() == 0 {
		return transaction.Commit(ctx)
	}

	counterQuery := fmt.Sprintf(`UPDATE %s SET %s = %s - 1 WHERE %s = $1`,
		location.table, location.likeCount, location.likeCount, location.id,
	)
	if _, err := transaction.Exec(ctx, counterQuery, targetID); err != nil {
		return dberr.Wrap(err, "decrement_like_count")
	}

	if err := transaction.Commit(ctx); err != nil {
		return fmt.Errorf("like: failed to commit delete transaction: %w", err)
	}
	return nil
}

// Exists reports whether the membership row is present.
func (ledger *PostgresLedger) Exists(ctx context.Context, actorID, targetID string, target TargetType) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM %s WHERE %s = $1 AND %s = $2 AND %s = $3
		)
	`,
		schema.SocialLike.Table, schema.SocialLike.UserID,
		schema.SocialLike.TargetID, schema.SocialLike.TargetType,
	)

	var exists bool
	err := ledger.pool.QueryRow(ctx, query, actorID, targetID, string(target)).Scan(&exists)
	if err != nil {
		return false, dberr.Wrap(err, "exists_like")
	}
	return exists, nil
}

// Count returns the denormalized like counter of a live target.
// It reads the counter column, never a live aggregate over memberships.
func (ledger *PostgresLedger) Count(ctx context.Context, targetID string, target TargetType) (int, error) {
	location, ok := counterTargets[target]
	if !ok {
		return 0, fmt.Errorf("like: unknown target type %q", target)
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL`,
		location.likeCount, location.table, location.id, location.deletedAt,
	)

	var count int
	err := ledger.pool.QueryRow(ctx, query, targetID).Scan(&count)
	if err != nil {
		return 0, dberr.Wrap(err, "count_like")
	}
	return count, nil
}
