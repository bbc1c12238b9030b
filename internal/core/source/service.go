// Copyright (c) 2026 Musicbook. All rights reserved.
// Author: dev@musicbook.kr

/*
Package source manages track provenance records.

Two kinds exist. Original sources are owner-described entries with
optionally claimed artwork. Melon sources are cached copies of an external
catalog entry; creation is an idempotent upsert keyed by the collaborator's
song ID, so registering the same song twice converges on one row.

The package also resolves provenance references for track creation,
answering with the source's category so tracks can be filtered without
joining source tables.
*/
package source

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/musicbookkr/server/internal/platform/melon"
	"github.com/musicbookkr/server/internal/platform/validate"
	"github.com/musicbookkr/server/pkg/uuidv7"
)

// UploadVerifier is the slice of the upload service used by this feature.
type UploadVerifier interface {
	VerifyUploaded(ctx context.Context, imageID string) error
}

// Service orchestrates source registration and resolution.
type Service struct {
	repo         Repository
	catalog      melon.Client
	uploads      UploadVerifier
	deliveryBase string
	logger       *slog.Logger
}

// NewService creates the source service.
func NewService(repo Repository, catalog melon.Client, uploads UploadVerifier, deliveryBase string, logger *slog.Logger) *Service {
	return &Service{
		repo:         repo,
		catalog:      catalog,
		uploads:      uploads,
		deliveryBase: deliveryBase,
		logger:       logger,
	}
}

// CreateOriginalInput carries the caller-supplied fields for an original
// source. Thumbnail fields are claimed image IDs from a prior issuance.
type CreateOriginalInput struct {
	SongTitle         string  `json:"song_title"`
	ArtistName        string  `json:"artist_name"`
	ArtistThumbnailID *string `json:"artist_thumbnail_id"`
	Category          *string `json:"category"`
	AlbumTitle        *string `json:"album_title"`
	AlbumThumbnailID  *string `json:"album_thumbnail_id"`
	Lyrics            *string `json:"lyrics"`
}

// CreateOriginal registers an owner-described source. Claimed artwork is
// verified against the image host before any write; a draft image aborts
// the whole creation.
func (service *Service) CreateOriginal(ctx context.Context, input CreateOriginalInput) (*OriginalSource, error) {
	validator := &validate.Validator{}
	validator.Required(FieldSongTitle, input.SongTitle).MaxLen(FieldSongTitle, input.SongTitle, 200)
	validator.Required(FieldArtistName, input.ArtistName).MaxLen(FieldArtistName, input.ArtistName, 200)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	artistThumbnail, err := service.claimImage(ctx, input.ArtistThumbnailID)
	if err != nil {
		return nil, err
	}
	albumThumbnail, err := service.claimImage(ctx, input.AlbumThumbnailID)
	if err != nil {
		return nil, err
	}

	src := &OriginalSource{
		ID:              uuidv7.New(),
		SongTitle:       input.SongTitle,
		ArtistName:      input.ArtistName,
		ArtistThumbnail: artistThumbnail,
		Category:        input.Category,
		AlbumTitle:      input.AlbumTitle,
		AlbumThumbnail:  albumThumbnail,
		Lyrics:          input.Lyrics,
	}

	if err := service.repo.CreateOriginal(ctx, src); err != nil {
		return nil, err
	}

	service.logger.Info("source_original_created", slog.String("source_id", src.ID))
	return src, nil
}

// GetOriginal returns one original source by ID.
func (service *Service) GetOriginal(ctx context.Context, id string) (*OriginalSource, error) {
	return service.repo.GetOriginal(ctx, id)
}

// CreateMelon caches the catalog entry for a melon song ID.
//
// The catalog is authoritative: the lookup result is upserted, so repeated
// registrations refresh the cached row instead of conflicting.
func (service *Service) CreateMelon(ctx context.Context, songID int) (*MelonSource, error) {
	song, err := service.catalog.SongInfo(ctx, songID)
	if err != nil {
		return nil, err
	}

	src := &MelonSource{
		SongID:          song.SongID,
		SongTitle:       song.SongTitle,
		ArtistName:      song.ArtistName,
		ArtistThumbnail: optional(song.ArtistThumbnail),
		Category:        optional(song.Category),
		AlbumTitle:      optional(song.AlbumTitle),
		AlbumThumbnail:  optional(song.AlbumThumbnail),
		Lyrics:          optional(song.Lyrics),
	}

	if err := service.repo.UpsertMelon(ctx, src); err != nil {
		return nil, err
	}

	service.logger.Info("source_melon_cached", slog.Int("song_id", songID))
	return src, nil
}

// GetMelon returns one cached melon source by song ID.
func (service *Service) GetMelon(ctx context.Context, songID int) (*MelonSource, error) {
	return service.repo.GetMelon(ctx, songID)
}

// ResolveOriginal confirms an original source exists and yields its
// category for denormalization onto the referencing track.
func (service *Service) ResolveOriginal(ctx context.Context, sourceID string) (*string, error) {
	src, err := service.repo.GetOriginal(ctx, sourceID)
	if err != nil {
		return nil, err
	}
	return src.Category, nil
}

// ResolveMelon confirms a melon source is cached locally and yields its
// category. The track path never reaches out to the collaborator; the
// source must have been registered first.
func (service *Service) ResolveMelon(ctx context.Context, songID int) (*string, error) {
	src, err := service.repo.GetMelon(ctx, songID)
	if err != nil {
		return nil, err
	}
	return src.Category, nil
}

func (service *Service) claimImage(ctx context.Context, imageID *string) (*string, error) {
	if imageID == nil || *imageID == "" {
		return nil, nil
	}
	if err := service.uploads.VerifyUploaded(ctx, *imageID); err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/%s/public", service.deliveryBase, *imageID)
	return &url, nil
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
