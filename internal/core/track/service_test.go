// Copyright (c) 2026 Musicbook. All rights reserved.
// Author: dev@musicbook.kr

package track_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/musicbookkr/server/internal/core/book"
	"github.com/musicbookkr/server/internal/core/like"
	"github.com/musicbookkr/server/internal/core/ranking"
	"github.com/musicbookkr/server/internal/core/track"
	"github.com/musicbookkr/server/internal/core/upload"
	"github.com/musicbookkr/server/internal/platform/apperr"
	"github.com/musicbookkr/server/internal/platform/dberr"
	"github.com/musicbookkr/server/pkg/pointer"
)

type fakeRepo struct {
	byID map[string]*track.Track
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: map[string]*track.Track{}}
}

func (r *fakeRepo) List(_ context.Context, _ ranking.Order, _ track.Filter, _, _ int) ([]*track.Track, int, error) {
	var out []*track.Track
	for _, t := range r.byID {
		out = append(out, t)
	}
	return out, len(out), nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*track.Track, error) {
	t, ok := r.byID[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return t, nil
}

func (r *fakeRepo) ExistsLive(_ context.Context, id string) (bool, error) {
	_, ok := r.byID[id]
	return ok, nil
}

func (r *fakeRepo) ListByBook(_ context.Context, bookID string) ([]*track.Track, error) {
	var out []*track.Track
	for _, t := range r.byID {
		if t.BookID == bookID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeRepo) Create(_ context.Context, t *track.Track) error {
	r.byID[t.ID] = t
	return nil
}

func (r *fakeRepo) Update(_ context.Context, t *track.Track) error {
	r.byID[t.ID] = t
	return nil
}

func (r *fakeRepo) SoftDelete(_ context.Context, ownerID, trackID string) error {
	t, ok := r.byID[trackID]
	if !ok || t.OwnerID != ownerID {
		return dberr.ErrNotFound
	}
	delete(r.byID, trackID)
	return nil
}

// fakeBooks hands every owner in the map a live book.
type fakeBooks struct {
	books map[string]*book.Book
}

func (b *fakeBooks) GetMyBook(_ context.Context, ownerID string) (*book.Book, error) {
	bk, ok := b.books[ownerID]
	if !ok {
		return nil, book.ErrBookRequired
	}
	return bk, nil
}

// fakeResolver knows a fixed set of original sources and melon songs.
type fakeResolver struct {
	originals map[string]*string
	melons    map[int]*string
}

func (r *fakeResolver) ResolveOriginal(_ context.Context, sourceID string) (*string, error) {
	category, ok := r.originals[sourceID]
	if !ok {
		return nil, apperr.NotFound("Source")
	}
	return category, nil
}

func (r *fakeResolver) ResolveMelon(_ context.Context, songID int) (*string, error) {
	category, ok := r.melons[songID]
	if !ok {
		return nil, apperr.NotFound("Melon song")
	}
	return category, nil
}

type fakeLedger struct {
	members map[string]bool
}

func (l *fakeLedger) Create(_ context.Context, actorID, targetID string, target like.TargetType) error {
	l.members[actorID+"|"+targetID+"|"+string(target)] = true
	return nil
}

func (l *fakeLedger) Delete(_ context.Context, actorID, targetID string, target like.TargetType) error {
	delete(l.members, actorID+"|"+targetID+"|"+string(target))
	return nil
}

func (l *fakeLedger) Exists(_ context.Context, actorID, targetID string, target like.TargetType) (bool, error) {
	return l.members[actorID+"|"+targetID+"|"+string(target)], nil
}

func (l *fakeLedger) Count(context.Context, string, like.TargetType) (int, error) {
	return len(l.members), nil
}

type fakeUploads struct{}

func (fakeUploads) IssueSourceImages(context.Context, string, string) (*upload.SourceImageURLs, error) {
	return &upload.SourceImageURLs{}, nil
}

func fixture() (*track.Service, *fakeRepo) {
	repo := newFakeRepo()
	books := &fakeBooks{books: map[string]*book.Book{
		"user-1": {ID: "book-1", OwnerID: "user-1"},
	}}
	resolver := &fakeResolver{
		originals: map[string]*string{"src-1": pointer.To("BALLAD")},
		melons:    map[int]*string{12345: pointer.To("DANCE")},
	}
	ledger := &fakeLedger{members: map[string]bool{}}
	service := track.NewService(repo, books, resolver, ledger, fakeUploads{}, slog.Default())
	return service, repo
}

func TestCreateMyTrack_OriginalSource(t *testing.T) {
	service, _ := fixture()

	created, err := service.CreateMyTrack(context.Background(), "user-1", track.CreateInput{
		Title:            "First Song",
		SourceType:       track.SourceOriginal,
		SourceOriginalID: pointer.To("src-1"),
	})

	require.NoError(t, err)
	assert.Equal(t, "book-1", created.BookID)
	require.NotNil(t, created.Category)
	assert.Equal(t, "BALLAD", *created.Category)
	assert.Equal(t, track.OriginalSourceRef{SourceID: "src-1"}, created.Source)
}

func TestCreateMyTrack_MelonSource(t *testing.T) {
	service, _ := fixture()

	created, err := service.CreateMyTrack(context.Background(), "user-1", track.CreateInput{
		Title:         "Chart Song",
		SourceType:    track.SourceMelon,
		SourceMelonID: pointer.To(12345),
	})

	require.NoError(t, err)
	assert.Equal(t, track.MelonSourceRef{SongID: 12345}, created.Source)
	require.NotNil(t, created.Category)
	assert.Equal(t, "DANCE", *created.Category)
}

func TestCreateMyTrack_RequiresBook(t *testing.T) {
	service, _ := fixture()

	_, err := service.CreateMyTrack(context.Background(), "user-without-book", track.CreateInput{
		Title:            "Homeless Song",
		SourceType:       track.SourceOriginal,
		SourceOriginalID: pointer.To("src-1"),
	})

	assert.ErrorIs(t, err, book.ErrBookRequired)
}

func TestCreateMyTrack_SourceValidation(t *testing.T) {
	tests := []struct {
		name     string
		input    track.CreateInput
		wantCode string
	}{
		{
			"unknown_source_type",
			track.CreateInput{Title: "S", SourceType: "SPOTIFY"},
			"VALIDATION_ERROR",
		},
		{
			"missing_original_ref",
			track.CreateInput{Title: "S", SourceType: track.SourceOriginal},
			"VALIDATION_ERROR",
		},
		{
			"missing_melon_ref",
			track.CreateInput{Title: "S", SourceType: track.SourceMelon},
			"VALIDATION_ERROR",
		},
		{
			"unresolvable_original",
			track.CreateInput{Title: "S", SourceType: track.SourceOriginal, SourceOriginalID: pointer.To("ghost")},
			"NOT_FOUND",
		},
		{
			"unresolvable_melon",
			track.CreateInput{Title: "S", SourceType: track.SourceMelon, SourceMelonID: pointer.To(999)},
			"NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := fixture()

			_, err := service.CreateMyTrack(context.Background(), "user-1", tt.input)

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, apperr.As(err).Code)
			assert.Empty(t, repo.byID) // nothing was written
		})
	}
}

func TestCreateMyTrack_MediaNormalization(t *testing.T) {
	tests := []struct {
		name     string
		url      *string
		kind     *string
		wantID   *string
		wantCode string
	}{
		{"both_absent", nil, nil, nil, ""},
		{"short_link", pointer.To("https://youtu.be/abc123xyz"), pointer.To("YOUTUBE"), pointer.To("abc123xyz"), ""},
		{"watch_link", pointer.To("https://www.youtube.com/watch?v=abc123xyz"), pointer.To("YOUTUBE"), pointer.To("abc123xyz"), ""},
		{"url_without_kind", pointer.To("https://youtu.be/abc123xyz"), nil, nil, "VALIDATION_ERROR"},
		{"kind_without_url", nil, pointer.To("YOUTUBE"), nil, "VALIDATION_ERROR"},
		{"unknown_kind", pointer.To("https://vimeo.com/123"), pointer.To("VIMEO"), nil, "VALIDATION_ERROR"},
		{"foreign_host", pointer.To("https://example.com/watch?v=abc123xyz"), pointer.To("YOUTUBE"), nil, "INVALID_REFERENCE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _ := fixture()

			created, err := service.CreateMyTrack(context.Background(), "user-1", track.CreateInput{
				Title:            "Song",
				PreviewURL:       tt.url,
				PreviewKind:      tt.kind,
				SourceType:       track.SourceOriginal,
				SourceOriginalID: pointer.To("src-1"),
			})

			if tt.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, apperr.As(err).Code)
				return
			}
			require.NoError(t, err)
			if tt.wantID == nil {
				assert.Nil(t, created.PreviewURL)
			} else {
				require.NotNil(t, created.PreviewURL)
				assert.Equal(t, *tt.wantID, *created.PreviewURL) // canonical ID, not the raw URL
			}
		})
	}
}

func TestUpdateMyTrack_OwnershipEnforced(t *testing.T) {
	service, repo := fixture()
	repo.byID["t-1"] = &track.Track{ID: "t-1", OwnerID: "someone-else", Title: "Theirs"}

	err := service.UpdateMyTrack(context.Background(), "user-1", "t-1", track.UpdateInput{Title: "Mine now"})

	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
}

// The provenance source survives every update untouched.
func TestUpdateMyTrack_SourceImmutable(t *testing.T) {
	service, repo := fixture()

	created, err := service.CreateMyTrack(context.Background(), "user-1", track.CreateInput{
		Title:            "Song",
		SourceType:       track.SourceOriginal,
		SourceOriginalID: pointer.To("src-1"),
	})
	require.NoError(t, err)

	err = service.UpdateMyTrack(context.Background(), "user-1", created.ID, track.UpdateInput{
		Title: "Renamed Song",
	})
	require.NoError(t, err)

	updated := repo.byID[created.ID]
	assert.Equal(t, "Renamed Song", updated.Title)
	assert.Equal(t, track.OriginalSourceRef{SourceID: "src-1"}, updated.Source)
}

func TestDeleteMyTrack(t *testing.T) {
	service, repo := fixture()
	repo.byID["t-1"] = &track.Track{ID: "t-1", OwnerID: "user-1"}

	require.NoError(t, service.DeleteMyTrack(context.Background(), "user-1", "t-1"))
	assert.Empty(t, repo.byID)

	err := service.DeleteMyTrack(context.Background(), "user-1", "t-1")
	assert.Error(t, err)
}

func TestLikes_UnknownTrack(t *testing.T) {
	service, _ := fixture()

	err := service.CreateLike(context.Background(), "fan", "no-such-track")

	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}
