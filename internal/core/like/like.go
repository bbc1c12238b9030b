// Copyright (c) 2026 Musicbook. All rights reserved.
// Author: dev@musicbook.kr

/*
Package like maintains the like ledger: membership facts plus the
denormalized like counters on books and tracks.

# Invariants

  - Membership is a fact, not a record: a (user, target, type) row either
    exists (liked) or doesn't. There are no updates, only insert and delete.
  - The target's likecount column always equals the number of membership
    rows for that target. Membership write and counter bump happen inside
    one database transaction; the counter is never read-modify-written by
    application code.
  - Create and Delete are idempotent. Repeating either call changes nothing.

Target existence and soft-delete checks are the caller's responsibility
(the book and track services validate before calling the ledger).
*/
package like

import "context"

// TargetType discriminates which catalog entity a membership row points at.
type TargetType string

const (
	// TargetBook marks a membership row against core.book.
	TargetBook TargetType = "BOOK"

	// TargetTrack marks a membership row against core.track.
	TargetTrack TargetType = "TRACK"
)

// Ledger is the storage contract for like membership and counters.
type Ledger interface {
	// Create records that actorID likes targetID and increments the
	// target's counter. No-op if the membership already exists.
	Create(ctx context.Context, actorID, targetID string, target TargetType) error

	// Delete removes the membership and decrements the counter.
	// No-op if the membership is absent.
	Delete(ctx context.Context, actorID, targetID string, target TargetType) error

	// Exists reports whether actorID currently likes targetID.
	Exists(ctx context.Context, actorID, targetID string, target TargetType) (bool, error)

	// Count returns the denormalized counter for a live (non-deleted) target.
	Count(ctx context.Context, targetID string, target TargetType) (int, error)
}
