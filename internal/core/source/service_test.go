// Copyright (c) 2026 Musicbook. All rights reserved.
// Author: dev@musicbook.kr

package source_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/musicbookkr/server/internal/core/source"
	"github.com/musicbookkr/server/internal/platform/apperr"
	"github.com/musicbookkr/server/internal/platform/dberr"
	"github.com/musicbookkr/server/internal/platform/melon"
	"github.com/musicbookkr/server/pkg/pointer"
)

type fakeRepo struct {
	originals map[string]*source.OriginalSource
	melons    map[int]*source.MelonSource
	upserts   int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		originals: map[string]*source.OriginalSource{},
		melons:    map[int]*source.MelonSource{},
	}
}

func (r *fakeRepo) CreateOriginal(_ context.Context, s *source.OriginalSource) error {
	r.originals[s.ID] = s
	return nil
}

func (r *fakeRepo) GetOriginal(_ context.Context, id string) (*source.OriginalSource, error) {
	s, ok := r.originals[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return s, nil
}

func (r *fakeRepo) UpsertMelon(_ context.Context, s *source.MelonSource) error {
	r.upserts++
	r.melons[s.SongID] = s
	return nil
}

func (r *fakeRepo) GetMelon(_ context.Context, songID int) (*source.MelonSource, error) {
	s, ok := r.melons[songID]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return s, nil
}

// fakeCatalog serves a fixed song and 404s everything else.
type fakeCatalog struct {
	lookups int
}

func (c *fakeCatalog) SongInfo(_ context.Context, songID int) (*melon.Song, error) {
	c.lookups++
	if songID != 12345 {
		return nil, apperr.NotFound("Melon song")
	}
	return &melon.Song{
		SongID:     12345,
		SongTitle:  "Chart Song",
		ArtistName: "Some Artist",
		Category:   "DANCE",
	}, nil
}

type fakeUploads struct {
	draftIDs map[string]bool
}

func (u *fakeUploads) VerifyUploaded(_ context.Context, imageID string) error {
	if u.draftIDs[imageID] {
		return apperr.InvalidReference("Image upload was never completed")
	}
	return nil
}

func fixture() (*source.Service, *fakeRepo, *fakeCatalog) {
	repo := newFakeRepo()
	catalog := &fakeCatalog{}
	service := source.NewService(repo, catalog, &fakeUploads{}, "https://cdnimg.example", slog.Default())
	return service, repo, catalog
}

func TestCreateOriginal(t *testing.T) {
	service, repo, _ := fixture()

	created, err := service.CreateOriginal(context.Background(), source.CreateOriginalInput{
		SongTitle:         "My Song",
		ArtistName:        "Me",
		ArtistThumbnailID: pointer.To("img-3"),
	})

	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	require.NotNil(t, created.ArtistThumbnail)
	assert.Equal(t, "https://cdnimg.example/img-3/public", *created.ArtistThumbnail)
	assert.Len(t, repo.originals, 1)
}

func TestCreateOriginal_Validation(t *testing.T) {
	service, repo, _ := fixture()

	_, err := service.CreateOriginal(context.Background(), source.CreateOriginalInput{
		SongTitle: "Missing Artist",
	})

	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	assert.Empty(t, repo.originals)
}

func TestCreateOriginal_DraftImageRejected(t *testing.T) {
	repo := newFakeRepo()
	uploads := &fakeUploads{draftIDs: map[string]bool{"img-draft": true}}
	service := source.NewService(repo, &fakeCatalog{}, uploads, "https://cdnimg.example", slog.Default())

	_, err := service.CreateOriginal(context.Background(), source.CreateOriginalInput{
		SongTitle:        "My Song",
		ArtistName:       "Me",
		AlbumThumbnailID: pointer.To("img-draft"),
	})

	require.Error(t, err)
	assert.Equal(t, "INVALID_REFERENCE", apperr.As(err).Code)
	assert.Empty(t, repo.originals)
}

// Registering the same song twice converges on one cached row.
func TestCreateMelon_Idempotent(t *testing.T) {
	service, repo, catalog := fixture()
	ctx := context.Background()

	first, err := service.CreateMelon(ctx, 12345)
	require.NoError(t, err)

	second, err := service.CreateMelon(ctx, 12345)
	require.NoError(t, err)

	assert.Equal(t, first.SongID, second.SongID)
	assert.Len(t, repo.melons, 1)
	assert.Equal(t, 2, repo.upserts)
	assert.Equal(t, 2, catalog.lookups)
}

func TestCreateMelon_UnknownSong(t *testing.T) {
	service, repo, _ := fixture()

	_, err := service.CreateMelon(context.Background(), 999)

	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	assert.Empty(t, repo.melons)
}

// Track creation resolves categories through the locally cached source,
// never by calling the collaborator again.
func TestResolveMelon_RequiresCachedSource(t *testing.T) {
	service, _, catalog := fixture()
	ctx := context.Background()

	_, err := service.ResolveMelon(ctx, 12345)
	require.Error(t, err) // not registered yet

	_, err = service.CreateMelon(ctx, 12345)
	require.NoError(t, err)

	category, err := service.ResolveMelon(ctx, 12345)
	require.NoError(t, err)
	require.NotNil(t, category)
	assert.Equal(t, "DANCE", *category)

	assert.Equal(t, 1, catalog.lookups) // only the registration called out
}

func TestResolveOriginal(t *testing.T) {
	service, repo, _ := fixture()
	repo.originals["src-1"] = &source.OriginalSource{ID: "src-1", Category: pointer.To("BALLAD")}

	category, err := service.ResolveOriginal(context.Background(), "src-1")
	require.NoError(t, err)
	require.NotNil(t, category)
	assert.Equal(t, "BALLAD", *category)

	_, err = service.ResolveOriginal(context.Background(), "ghost")
	assert.Error(t, err)
}
