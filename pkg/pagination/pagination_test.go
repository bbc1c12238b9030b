// Copyright (c) 2026 Musicbook. All rights reserved.
// Author: dev@musicbook.kr

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/musicbookkr/server/pkg/pagination"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "", 1, 20},
		{"explicit", "?page=3&limit=50", 3, 50},
		{"zero_page_clamped", "?page=0", 1, 20},
		{"negative_page_clamped", "?page=-5", 1, 20},
		{"excessive_limit_clamped", "?limit=5000", 1, 20},
		{"garbage_ignored", "?page=abc&limit=xyz", 1, 20},
		{"deep_page_allowed", "?page=1000&limit=10", 1000, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", "/books"+tt.query, nil)
			params := pagination.FromRequest(request)

			assert.Equal(t, tt.wantPage, params.Page)
			assert.Equal(t, tt.wantLimit, params.Limit)
		})
	}
}

func TestParams_Offset(t *testing.T) {
	assert.Equal(t, 0, pagination.Params{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 20, pagination.Params{Page: 2, Limit: 20}.Offset())
	assert.Equal(t, 9990, pagination.Params{Page: 1000, Limit: 10}.Offset())
}

func TestNewMeta(t *testing.T) {
	meta := pagination.NewMeta(2, 20, 45)

	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, 45, meta.Total)
	assert.Equal(t, 3, meta.TotalPages)

	// A page far past the data still reports honest totals; the items
	// slice is simply empty.
	deep := pagination.NewMeta(1000, 10, 10)
	assert.Equal(t, 1, deep.TotalPages)
}
