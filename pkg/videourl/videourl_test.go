// Copyright (c) 2026 Musicbook. All rights reserved.
// Author: dev@musicbook.kr

package videourl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/musicbookkr/server/pkg/videourl"
)

/*
TestNormalize_YouTube covers every accepted YouTube URL shape and the
rejected lookalikes.
*/
func TestNormalize_YouTube(t *testing.T) {
	tests := []struct {
		name    string
		rawURL  string
		wantID  string
		wantErr error
	}{
		{"short_link", "https://youtu.be/abc123xyz", "abc123xyz", nil},
		{"watch_link", "https://www.youtube.com/watch?v=abc123xyz", "abc123xyz", nil},
		{"embed_link", "https://www.youtube.com/embed/abc123xyz", "abc123xyz", nil},
		{"mobile_host", "https://m.youtube.com/watch?v=abc123xyz", "abc123xyz", nil},
		{"no_scheme", "youtu.be/abc123xyz", "abc123xyz", nil},
		{"http_scheme", "http://youtu.be/abc123xyz", "abc123xyz", nil},
		{"extra_query", "https://www.youtube.com/watch?v=abc123xyz&t=42s", "abc123xyz", nil},
		{"underscore_and_dash", "https://youtu.be/a_b-c12de", "a_b-c12de", nil},

		{"foreign_host", "https://example.com/watch?v=abc123xyz", "", videourl.ErrInvalidReference},
		{"empty_short_link", "https://youtu.be/", "", videourl.ErrInvalidReference},
		{"watch_without_v", "https://www.youtube.com/watch?t=42s", "", videourl.ErrInvalidReference},
		{"id_too_short", "https://youtu.be/abc", "", videourl.ErrInvalidReference},
		{"id_bad_chars", "https://youtu.be/abc$123xyz", "", videourl.ErrInvalidReference},
		{"channel_path", "https://www.youtube.com/channel/UCabc123", "", videourl.ErrInvalidReference},
		{"empty_string", "", "", videourl.ErrInvalidReference},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := videourl.Normalize(videourl.KindYouTube, tt.rawURL)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestNormalize_UnknownKind(t *testing.T) {
	_, err := videourl.Normalize("VIMEO", "https://vimeo.com/12345")
	assert.ErrorIs(t, err, videourl.ErrUnknownKind)
}

func TestValid(t *testing.T) {
	assert.True(t, videourl.Valid(videourl.KindYouTube))
	assert.False(t, videourl.Valid("SOUNDCLOUD"))
}
