// Copyright (c) 2026 Musicbook. All rights reserved.
// Author: dev@musicbook.kr

/*
Package upload issues short-lived direct-upload authorizations for cover art.

# Flow

Every issuance is gated by a per-actor cooldown counter in Redis, then the
external image host is asked for one single-use upload URL per sub-resource.
Issuance is all-or-nothing: if any sub-resource fails, the caller gets an
error and no URLs. The host time-boxes and single-uses the URLs itself;
redemption is not tracked here.

The package also verifies claimed image IDs before they are persisted
anywhere: an image still in draft state was never actually uploaded and is
rejected as an invalid reference.
*/
package upload

import (
	"context"
	"log/slog"
	"time"

	"github.com/musicbookkr/server/internal/platform/apperr"
	"github.com/musicbookkr/server/internal/platform/constants"
	"github.com/musicbookkr/server/internal/platform/images"
)

// CooldownGate abstracts the issuance cooldown for testing.
type CooldownGate interface {
	Check(ctx context.Context, resourceClass, actorID string, maxCount int, window time.Duration) error
}

// IssuedURL is one single-use upload authorization returned to the client.
type IssuedURL struct {
	ID        string `json:"id"`
	UploadURL string `json:"uploadURL"`
}

// BookImageURLs is the sub-resource pair for a book's cover art.
type BookImageURLs struct {
	Thumbnail  IssuedURL `json:"thumbnail"`
	Background IssuedURL `json:"background"`
}

// SourceImageURLs is the sub-resource pair for a track source's art.
type SourceImageURLs struct {
	ArtistThumbnail IssuedURL `json:"artistThumbnail"`
	AlbumThumbnail  IssuedURL `json:"albumThumbnail"`
}

// Service issues direct-upload URLs and verifies claimed images.
type Service struct {
	gate   CooldownGate
	images images.Client
	logger *slog.Logger
}

// NewService creates an upload issuance service.
func NewService(gate CooldownGate, imageHost images.Client, logger *slog.Logger) *Service {
	return &Service{
		gate:   gate,
		images: imageHost,
		logger: logger,
	}
}

// IssueBookImages issues the thumbnail + background upload pair for a book.
// Limited to 3 requests per actor per 10 minutes.
func (service *Service) IssueBookImages(ctx context.Context, actorID, ip string) (*BookImageURLs, error) {
	err := service.gate.Check(ctx, constants.ResourceClassBookImage, actorID,
		constants.BookImageUploadMax, constants.BookImageUploadWindow)
	if err != nil {
		return nil, err
	}

	thumbnail, err := service.issue(ctx, "book_thumbnail", actorID, ip)
	if err != nil {
		return nil, err
	}
	background, err := service.issue(ctx, "book_background", actorID, ip)
	if err != nil {
		return nil, err
	}

	service.logger.Info("book_upload_urls_issued", slog.String("actor_id", actorID))
	return &BookImageURLs{Thumbnail: thumbnail, Background: background}, nil
}

// IssueSourceImages issues the artist + album thumbnail upload pair for a
// track source. Limited to 3 requests per actor per 60 seconds.
func (service *Service) IssueSourceImages(ctx context.Context, actorID, ip string) (*SourceImageURLs, error) {
	err := service.gate.Check(ctx, constants.ResourceClassSourceImage, actorID,
		constants.SourceImageUploadMax, constants.SourceImageUploadWindow)
	if err != nil {
		return nil, err
	}

	artist, err := service.issue(ctx, "music_source_artistThumbnail", actorID, ip)
	if err != nil {
		return nil, err
	}
	album, err := service.issue(ctx, "music_source_albumThumbnail", actorID, ip)
	if err != nil {
		return nil, err
	}

	service.logger.Info("source_upload_urls_issued", slog.String("actor_id", actorID))
	return &SourceImageURLs{ArtistThumbnail: artist, AlbumThumbnail: album}, nil
}

// issue requests one upload URL from the host, tagged with audit metadata.
func (service *Service) issue(ctx context.Context, resourceType, actorID, ip string) (IssuedURL, error) {
	directUpload, err := service.images.CreateDirectUpload(ctx, images.UploadMeta{
		Type:      resourceType,
		Uploader:  actorID,
		IP:        ip,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return IssuedURL{}, err
	}

	return IssuedURL{ID: directUpload.ID, UploadURL: directUpload.UploadURL}, nil
}

// VerifyUploaded confirms a claimed image ID was actually uploaded.
// A draft image, or one the host cannot confirm, is an invalid reference —
// never silently accepted.
func (service *Service) VerifyUploaded(ctx context.Context, imageID string) error {
	info, err := service.images.GetImageInfo(ctx, imageID)
	if err != nil {
		return apperr.InvalidReference("Image was not uploaded")
	}
	if info.Draft {
		return apperr.InvalidReference("Image upload was never completed")
	}
	return nil
}
