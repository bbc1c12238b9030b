// Copyright (c) 2026 Musicbook. All rights reserved.
// Author: dev@musicbook.kr

package ranking_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/musicbookkr/server/internal/core/ranking"
	"github.com/musicbookkr/server/internal/platform/apperr"
)

var testColumns = ranking.Columns{
	ID:        "id",
	CreatedAt: "createdat",
	LikeCount: "likecount",
}

func TestParseOrder(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    ranking.Order
		wantErr bool
	}{
		{"empty_defaults_to_newest", "", ranking.OrderNewest, false},
		{"newest", "NEWEST", ranking.OrderNewest, false},
		{"suggest", "SUGGEST", ranking.OrderSuggest, false},
		{"popular", "POPULAR", ranking.OrderPopular, false},
		{"lowercase_accepted", "popular", ranking.OrderPopular, false},
		{"unknown_rejected", "TRENDING", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order, err := ranking.ParseOrder(tt.raw)

			if tt.wantErr {
				require.Error(t, err)
				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, order)
		})
	}
}

func TestClause(t *testing.T) {
	tests := []struct {
		name  string
		order ranking.Order
		want  string
	}{
		{"newest", ranking.OrderNewest, "createdat DESC, id DESC"},
		{"popular", ranking.OrderPopular, "likecount DESC, createdat DESC, id DESC"},
		{"suggest", ranking.OrderSuggest, "(likecount * 86400 + EXTRACT(EPOCH FROM createdat)) DESC, id DESC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clause, err := ranking.Clause(tt.order, testColumns)
			require.NoError(t, err)
			assert.Equal(t, tt.want, clause)
		})
	}
}

// Every strategy must end on the unique ID column so pagination never
// shuffles rows between pages.
func TestClause_DeterministicTieBreak(t *testing.T) {
	for _, order := range []ranking.Order{ranking.OrderNewest, ranking.OrderSuggest, ranking.OrderPopular} {
		clause, err := ranking.Clause(order, testColumns)
		require.NoError(t, err)
		assert.Contains(t, clause, "id DESC")
	}
}

func TestClause_UnknownOrder(t *testing.T) {
	_, err := ranking.Clause("TRENDING", testColumns)
	assert.Error(t, err)
}
