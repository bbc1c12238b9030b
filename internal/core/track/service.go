// Copyright (c) 2026 Musicbook. All rights reserved.
// Author: dev@musicbook.kr

/*
Package track manages the catalog entries inside musicbooks.

# Orchestration

Track creation is the most constrained path in the service: the actor must
own a live book, every supplied media URL must normalize to a canonical
platform ID, and the provenance source must resolve — all before a single
write happens. Any failure aborts the whole creation.
*/
package track

import (
	"context"
	"errors"
	"log/slog"

	"github.com/musicbookkr/server/internal/core/book"
	"github.com/musicbookkr/server/internal/core/like"
	"github.com/musicbookkr/server/internal/core/ranking"
	"github.com/musicbookkr/server/internal/core/upload"
	"github.com/musicbookkr/server/internal/platform/apperr"
	"github.com/musicbookkr/server/internal/platform/validate"
	"github.com/musicbookkr/server/pkg/uuidv7"
	"github.com/musicbookkr/server/pkg/videourl"
)

// BookDirectory is the slice of the book service this feature depends on.
type BookDirectory interface {
	GetMyBook(ctx context.Context, ownerID string) (*book.Book, error)
}

// SourceResolver resolves a provenance reference to its catalog category.
// Implemented by the source service; a missing source is a NotFound error.
type SourceResolver interface {
	ResolveOriginal(ctx context.Context, sourceID string) (category *string, err error)
	ResolveMelon(ctx context.Context, songID int) (category *string, err error)
}

// UploadIssuer is the slice of the upload service used by this feature.
type UploadIssuer interface {
	IssueSourceImages(ctx context.Context, actorID, ip string) (*upload.SourceImageURLs, error)
}

// Service orchestrates track operations.
type Service struct {
	repo    Repository
	books   BookDirectory
	sources SourceResolver
	ledger  like.Ledger
	uploads UploadIssuer
	logger  *slog.Logger
}

// NewService creates the track service.
func NewService(repo Repository, books BookDirectory, sources SourceResolver, ledger like.Ledger, uploads UploadIssuer, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		books:   books,
		sources: sources,
		ledger:  ledger,
		uploads: uploads,
		logger:  logger,
	}
}

// CreateInput carries the caller-supplied fields for track creation.
// Exactly one source reference must match SourceType.
type CreateInput struct {
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	PreviewURL       *string    `json:"preview_url"`
	PreviewKind      *string    `json:"preview_kind"`
	MRURL            *string    `json:"mr_url"`
	MRKind           *string    `json:"mr_kind"`
	SourceType       SourceType `json:"source_type"`
	SourceOriginalID *string    `json:"source_original_id"`
	SourceMelonID    *int       `json:"source_melon_id"`
}

// UpdateInput carries the updatable fields. The provenance source is
// deliberately absent: it is immutable after creation.
type UpdateInput struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	PreviewURL  *string `json:"preview_url"`
	PreviewKind *string `json:"preview_kind"`
	MRURL       *string `json:"mr_url"`
	MRKind      *string `json:"mr_kind"`
}

// sourceHandler materializes one provenance kind from the creation input.
type sourceHandler func(service *Service, ctx context.Context, input CreateInput) (Source, *string, error)

// sourceHandlers is the closed dispatch map from source type to its
// creation handler. Adding a provenance kind means adding one entry here.
var sourceHandlers = map[SourceType]sourceHandler{
	SourceOriginal: func(service *Service, ctx context.Context, input CreateInput) (Source, *string, error) {
		if input.SourceOriginalID == nil {
			return nil, nil, apperr.ValidationError("Missing original source reference",
				apperr.FieldError{Field: "source_original_id", Message: "This field is required"})
		}
		category, err := service.sources.ResolveOriginal(ctx, *input.SourceOriginalID)
		if err != nil {
			return nil, nil, err
		}
		return OriginalSourceRef{SourceID: *input.SourceOriginalID}, category, nil
	},
	SourceMelon: func(service *Service, ctx context.Context, input CreateInput) (Source, *string, error) {
		if input.SourceMelonID == nil {
			return nil, nil, apperr.ValidationError("Missing melon source reference",
				apperr.FieldError{Field: "source_melon_id", Message: "This field is required"})
		}
		category, err := service.sources.ResolveMelon(ctx, *input.SourceMelonID)
		if err != nil {
			return nil, nil, err
		}
		return MelonSourceRef{SongID: *input.SourceMelonID}, category, nil
	},
}

// List returns one page of live tracks under the given order and filter.
func (service *Service) List(ctx context.Context, order ranking.Order, filter Filter, limit, offset int) ([]*Track, int, error) {
	return service.repo.List(ctx, order, filter, limit, offset)
}

// Get returns a live track by ID.
func (service *Service) Get(ctx context.Context, id string) (*Track, error) {
	return service.repo.GetByID(ctx, id)
}

// ListMyTracks returns every live track in the actor's own book.
func (service *Service) ListMyTracks(ctx context.Context, ownerID string) ([]*Track, error) {
	myBook, err := service.books.GetMyBook(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return service.repo.ListByBook(ctx, myBook.ID)
}

// CreateMyTrack creates a track inside the actor's book.
//
// All-or-nothing: the book precondition, media normalization, and source
// resolution all run before any write, and the first failure aborts the
// whole creation.
func (service *Service) CreateMyTrack(ctx context.Context, ownerID string, input CreateInput) (*Track, error) {
	myBook, err := service.books.GetMyBook(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).MaxLen(FieldTitle, input.Title, 100)
	validator.MaxLen(FieldDescription, input.Description, 2000)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	previewID, err := normalizeMedia(input.PreviewURL, input.PreviewKind, FieldPreviewURL, FieldPreviewKind)
	if err != nil {
		return nil, err
	}
	mrID, err := normalizeMedia(input.MRURL, input.MRKind, FieldMRURL, FieldMRKind)
	if err != nil {
		return nil, err
	}

	handler, ok := sourceHandlers[input.SourceType]
	if !ok {
		return nil, apperr.ValidationError("Unknown source type",
			apperr.FieldError{Field: FieldSourceType, Message: "Must be one of: ORIGINAL, MELON"})
	}
	source, category, err := handler(service, ctx, input)
	if err != nil {
		return nil, err
	}

	track := &Track{
		ID:          uuidv7.New(),
		BookID:      myBook.ID,
		OwnerID:     ownerID,
		Title:       input.Title,
		Description: input.Description,
		PreviewURL:  previewID,
		PreviewKind: input.PreviewKind,
		MRURL:       mrID,
		MRKind:      input.MRKind,
		Category:    category,
		Source:      source,
	}

	if err := service.repo.Create(ctx, track); err != nil {
		return nil, err
	}

	service.logger.Info("track_created",
		slog.String("track_id", track.ID),
		slog.String("book_id", track.BookID),
		slog.String("source_type", string(input.SourceType)),
	)
	return track, nil
}

// UpdateMyTrack updates the actor's own track. The provenance source cannot
// be changed; [UpdateInput] has no field for it.
func (service *Service) UpdateMyTrack(ctx context.Context, ownerID, trackID string, input UpdateInput) error {
	track, err := service.repo.GetByID(ctx, trackID)
	if err != nil {
		return err
	}
	if track.OwnerID != ownerID {
		return apperr.Forbidden("You do not own this track")
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).MaxLen(FieldTitle, input.Title, 100)
	validator.MaxLen(FieldDescription, input.Description, 2000)
	if err := validator.Err(); err != nil {
		return err
	}

	previewID, err := normalizeMedia(input.PreviewURL, input.PreviewKind, FieldPreviewURL, FieldPreviewKind)
	if err != nil {
		return err
	}
	mrID, err := normalizeMedia(input.MRURL, input.MRKind, FieldMRURL, FieldMRKind)
	if err != nil {
		return err
	}

	track.Title = input.Title
	track.Description = input.Description
	track.PreviewURL = previewID
	track.PreviewKind = input.PreviewKind
	track.MRURL = mrID
	track.MRKind = input.MRKind

	if err := service.repo.Update(ctx, track); err != nil {
		return err
	}

	service.logger.Info("track_updated", slog.String("track_id", trackID))
	return nil
}

// DeleteMyTrack soft-deletes the actor's own track.
func (service *Service) DeleteMyTrack(ctx context.Context, ownerID, trackID string) error {
	if err := service.repo.SoftDelete(ctx, ownerID, trackID); err != nil {
		return err
	}

	service.logger.Warn("track_deleted", slog.String("track_id", trackID))
	return nil
}

// IssueImageUploadURLs issues the cooldown-gated direct-upload URL pair for
// track source art.
func (service *Service) IssueImageUploadURLs(ctx context.Context, actorID, ip string) (*upload.SourceImageURLs, error) {
	return service.uploads.IssueSourceImages(ctx, actorID, ip)
}

// # Likes

// CreateLike records that the actor likes a live track. Idempotent.
func (service *Service) CreateLike(ctx context.Context, actorID, trackID string) error {
	if err := service.ensureLive(ctx, trackID); err != nil {
		return err
	}
	return service.ledger.Create(ctx, actorID, trackID, like.TargetTrack)
}

// DeleteLike removes the actor's like from a live track. Idempotent.
func (service *Service) DeleteLike(ctx context.Context, actorID, trackID string) error {
	if err := service.ensureLive(ctx, trackID); err != nil {
		return err
	}
	return service.ledger.Delete(ctx, actorID, trackID, like.TargetTrack)
}

// LikeStatus reports whether the actor currently likes the track.
func (service *Service) LikeStatus(ctx context.Context, actorID, trackID string) (bool, error) {
	if err := service.ensureLive(ctx, trackID); err != nil {
		return false, err
	}
	return service.ledger.Exists(ctx, actorID, trackID, like.TargetTrack)
}

// LikeCount returns the track's denormalized like counter.
func (service *Service) LikeCount(ctx context.Context, trackID string) (int, error) {
	if err := service.ensureLive(ctx, trackID); err != nil {
		return 0, err
	}
	return service.ledger.Count(ctx, trackID, like.TargetTrack)
}

// ensureLive rejects operations against absent or soft-deleted tracks
// before they ever reach the ledger.
func (service *Service) ensureLive(ctx context.Context, trackID string) error {
	exists, err := service.repo.ExistsLive(ctx, trackID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("Track")
	}
	return nil
}

// normalizeMedia enforces the URL/kind pairing contract and reduces the raw
// URL to its canonical platform ID.
//
// One half of the pair without the other is an InvalidRequest; an
// unrecognized URL shape is an InvalidReference.
func normalizeMedia(rawURL, kind *string, urlField, kindField string) (*string, error) {
	if rawURL == nil && kind == nil {
		return nil, nil
	}
	if rawURL != nil && kind == nil {
		return nil, apperr.ValidationError("Media URL requires its platform kind",
			apperr.FieldError{Field: kindField, Message: "Required when " + urlField + " is present"})
	}
	if rawURL == nil {
		return nil, apperr.ValidationError("Platform kind requires its media URL",
			apperr.FieldError{Field: urlField, Message: "Required when " + kindField + " is present"})
	}

	canonicalID, err := videourl.Normalize(videourl.Kind(*kind), *rawURL)
	if err != nil {
		if errors.Is(err, videourl.ErrUnknownKind) {
			return nil, apperr.ValidationError("Unknown media platform kind",
				apperr.FieldError{Field: kindField, Message: "Must be one of: YOUTUBE"})
		}
		return nil, apperr.InvalidReference("Media URL does not match a known platform shape")
	}
	return &canonicalID, nil
}
