// Copyright (c) 2026 Musicbook. All rights reserved.
// Author: dev@musicbook.kr

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/musicbookkr/server/pkg/slug"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Late Night Ballads", "late-night-ballads"},
		{"accents_stripped", "Café Séoul", "cafe-seoul"},
		{"special_chars", "R&B / Soul!!", "r-b-soul"},
		{"collapsed_hyphens", "a   --   b", "a-b"},
		{"trimmed", "  edges  ", "edges"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}
