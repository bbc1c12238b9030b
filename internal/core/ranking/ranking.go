// Copyright (c) 2026 Musicbook. All rights reserved.
// Author: dev@musicbook.kr

/*
Package ranking defines the pluggable listing orders shared by the book and
track catalogs.

# Architecture

Each order is an independent strategy: a pure function from a table's column
descriptor to a SQL ORDER BY clause. Strategies are selected through a closed
dispatch map, so adding a new order touches exactly one entry and never the
existing strategies. Stores append the produced clause to their listing
queries; strategies themselves perform no I/O.
*/
package ranking

import (
	"fmt"
	"strings"

	"github.com/musicbookkr/server/internal/platform/apperr"
)

// Order is a listing order from the closed set {NEWEST, SUGGEST, POPULAR}.
type Order string

const (
	// OrderNewest sorts by creation time, newest first.
	OrderNewest Order = "NEWEST"

	// OrderSuggest is the editorial "quality" order: a deterministic blend
	// of popularity and recency.
	OrderSuggest Order = "SUGGEST"

	// OrderPopular sorts by the denormalized like counter.
	OrderPopular Order = "POPULAR"
)

// Columns names the sortable columns of a listable table. The ID column must
// be unique so every strategy can finish with a deterministic tie-break.
type Columns struct {
	ID        string
	CreatedAt string
	LikeCount string
}

// Strategy produces the ORDER BY body (without the "ORDER BY" keyword) for
// one listing order.
type Strategy func(c Columns) string

// strategies is the closed dispatch map from order to strategy.
var strategies = map[Order]Strategy{
	OrderNewest:  newest,
	OrderSuggest: suggest,
	OrderPopular: popular,
}

// ParseOrder maps a raw query-string value onto the closed order set.
// An empty value defaults to NEWEST; anything else unknown is a validation error.
func ParseOrder(raw string) (Order, error) {
	if raw == "" {
		return OrderNewest, nil
	}

	order := Order(strings.ToUpper(raw))
	if _, ok := strategies[order]; !ok {
		return "", apperr.ValidationError("Unknown sort order", apperr.FieldError{
			Field:   "sort",
			Message: "Must be one of: NEWEST, SUGGEST, POPULAR",
		})
	}
	return order, nil
}

// Clause returns the ORDER BY body for the given order and columns.
func Clause(order Order, c Columns) (string, error) {
	strategy, ok := strategies[order]
	if !ok {
		return "", apperr.ValidationError("Unknown sort order")
	}
	return strategy(c), nil
}

// newest orders by creation timestamp descending, ties broken by
// identifier descending.
func newest(c Columns) string {
	return fmt.Sprintf("%s DESC, %s DESC", c.CreatedAt, c.ID)
}

// popular orders by the denormalized like counter descending, ties broken
// by creation timestamp descending.
func popular(c Columns) string {
	return fmt.Sprintf("%s DESC, %s DESC, %s DESC", c.LikeCount, c.CreatedAt, c.ID)
}

// suggest blends popularity into recency: each like is worth one day of
// freshness. For a fixed counter/timestamp snapshot the score is fully
// deterministic, and when every counter is zero the order collapses to
// NEWEST semantics.
func suggest(c Columns) string {
	return fmt.Sprintf("(%s * 86400 + EXTRACT(EPOCH FROM %s)) DESC, %s DESC", c.LikeCount, c.CreatedAt, c.ID)
}
