// Copyright (c) 2026 Musicbook. All rights reserved.
// Author: dev@musicbook.kr

package book

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/musicbookkr/server/internal/core/like"
	"github.com/musicbookkr/server/internal/core/ranking"
	"github.com/musicbookkr/server/internal/core/upload"
	"github.com/musicbookkr/server/internal/platform/apperr"
	"github.com/musicbookkr/server/internal/platform/dberr"
	"github.com/musicbookkr/server/internal/platform/validate"
	"github.com/musicbookkr/server/pkg/slug"
	"github.com/musicbookkr/server/pkg/uuidv7"
)

// ErrBookRequired is returned when an operation requires the actor to own a
// live book and none exists.
var ErrBookRequired = apperr.ValidationError("No musicbook has been created")

// UploadIssuer is the slice of the upload service used by this feature.
type UploadIssuer interface {
	IssueBookImages(ctx context.Context, actorID, ip string) (*upload.BookImageURLs, error)
	VerifyUploaded(ctx context.Context, imageID string) error
}

// Service orchestrates book operations: ownership preconditions, image
// claims, slug derivation, and delegation to the like ledger.
type Service struct {
	repo         Repository
	ledger       like.Ledger
	uploads      UploadIssuer
	deliveryBase string
	logger       *slog.Logger
}

// NewService creates the book service.
func NewService(repo Repository, ledger like.Ledger, uploads UploadIssuer, deliveryBase string, logger *slog.Logger) *Service {
	return &Service{
		repo:         repo,
		ledger:       ledger,
		uploads:      uploads,
		deliveryBase: deliveryBase,
		logger:       logger,
	}
}

// CreateInput carries the caller-supplied fields for book creation.
// Thumbnail/Background are claimed image IDs from a prior issuance, not URLs.
type CreateInput struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	ThumbnailID  *string `json:"thumbnail_id"`
	BackgroundID *string `json:"background_id"`
}

// List returns one page of live books under the given order.
func (service *Service) List(ctx context.Context, order ranking.Order, limit, offset int) ([]*Book, int, error) {
	return service.repo.List(ctx, order, limit, offset)
}

// Get returns a live book by ID.
func (service *Service) Get(ctx context.Context, id string) (*Book, error) {
	return service.repo.GetByID(ctx, id)
}

// GetMyBook returns the actor's own book, or ErrBookRequired if none exists.
func (service *Service) GetMyBook(ctx context.Context, ownerID string) (*Book, error) {
	book, err := service.repo.GetByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, ErrBookRequired
		}
		return nil, err
	}
	return book, nil
}

// CreateMyBook creates the actor's singleton book.
//
// A second live book for the same owner fails with Conflict (unique partial
// index on ownerid). Claimed image IDs are verified against the image host
// before any write; a draft image aborts the whole creation.
func (service *Service) CreateMyBook(ctx context.Context, ownerID string, input CreateInput) (*Book, error) {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).MaxLen(FieldTitle, input.Title, 100)
	validator.MaxLen(FieldDescription, input.Description, 2000)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	thumbnailURL, err := service.claimImage(ctx, input.ThumbnailID)
	if err != nil {
		return nil, err
	}
	backgroundURL, err := service.claimImage(ctx, input.BackgroundID)
	if err != nil {
		return nil, err
	}

	book := &Book{
		ID:            uuidv7.New(),
		OwnerID:       ownerID,
		Title:         input.Title,
		Description:   input.Description,
		Slug:          slug.From(input.Title),
		ThumbnailURL:  thumbnailURL,
		BackgroundURL: backgroundURL,
	}

	if err := service.repo.Create(ctx, book); err != nil {
		return nil, err
	}

	service.logger.Info("book_created",
		slog.String("book_id", book.ID),
		slog.String("owner_id", ownerID),
	)
	return book, nil
}

// UpdateMyBook updates the actor's own book metadata.
func (service *Service) UpdateMyBook(ctx context.Context, ownerID string, input CreateInput) error {
	book, err := service.GetMyBook(ctx, ownerID)
	if err != nil {
		return err
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).MaxLen(FieldTitle, input.Title, 100)
	validator.MaxLen(FieldDescription, input.Description, 2000)
	if err := validator.Err(); err != nil {
		return err
	}

	if input.ThumbnailID != nil {
		thumbnailURL, err := service.claimImage(ctx, input.ThumbnailID)
		if err != nil {
			return err
		}
		book.ThumbnailURL = thumbnailURL
	}
	if input.BackgroundID != nil {
		backgroundURL, err := service.claimImage(ctx, input.BackgroundID)
		if err != nil {
			return err
		}
		book.BackgroundURL = backgroundURL
	}

	book.Title = input.Title
	book.Description = input.Description
	book.Slug = slug.From(input.Title)

	if err := service.repo.Update(ctx, book); err != nil {
		return err
	}

	service.logger.Info("book_updated", slog.String("book_id", book.ID))
	return nil
}

// DeleteMyBook soft-deletes the actor's book and cascades to its tracks.
// Like membership rows are not purged; the entities simply drop out of
// listings once filtered by their deletion timestamp.
func (service *Service) DeleteMyBook(ctx context.Context, ownerID string) error {
	if _, err := service.GetMyBook(ctx, ownerID); err != nil {
		return err
	}

	if err := service.repo.SoftDeleteCascade(ctx, ownerID); err != nil {
		return err
	}

	service.logger.Warn("book_deleted", slog.String("owner_id", ownerID))
	return nil
}

// IssueImageUploadURLs issues the cooldown-gated direct-upload URL pair for
// the actor's book cover art.
func (service *Service) IssueImageUploadURLs(ctx context.Context, actorID, ip string) (*upload.BookImageURLs, error) {
	return service.uploads.IssueBookImages(ctx, actorID, ip)
}

// # Likes

// CreateLike records that the actor likes a live book. Idempotent.
func (service *Service) CreateLike(ctx context.Context, actorID, bookID string) error {
	if err := service.ensureLive(ctx, bookID); err != nil {
		return err
	}
	return service.ledger.Create(ctx, actorID, bookID, like.TargetBook)
}

// DeleteLike removes the actor's like from a live book. Idempotent.
func (service *Service) DeleteLike(ctx context.Context, actorID, bookID string) error {
	if err := service.ensureLive(ctx, bookID); err != nil {
		return err
	}
	return service.ledger.Delete(ctx, actorID, bookID, like.TargetBook)
}

// LikeStatus reports whether the actor currently likes the book.
func (service *Service) LikeStatus(ctx context.Context, actorID, bookID string) (bool, error) {
	if err := service.ensureLive(ctx, bookID); err != nil {
		return false, err
	}
	return service.ledger.Exists(ctx, actorID, bookID, like.TargetBook)
}

// LikeCount returns the book's denormalized like counter.
func (service *Service) LikeCount(ctx context.Context, bookID string) (int, error) {
	if err := service.ensureLive(ctx, bookID); err != nil {
		return 0, err
	}
	return service.ledger.Count(ctx, bookID, like.TargetBook)
}

// MyBookLikeCount returns the like counter of the actor's own book.
func (service *Service) MyBookLikeCount(ctx context.Context, ownerID string) (int, error) {
	book, err := service.GetMyBook(ctx, ownerID)
	if err != nil {
		return 0, err
	}
	return service.ledger.Count(ctx, book.ID, like.TargetBook)
}

// ensureLive rejects operations against absent or soft-deleted books before
// they ever reach the ledger.
func (service *Service) ensureLive(ctx context.Context, bookID string) error {
	exists, err := service.repo.ExistsLive(ctx, bookID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("Musicbook")
	}
	return nil
}

// claimImage verifies a claimed image ID and converts it to a delivery URL.
// A nil ID passes through untouched.
func (service *Service) claimImage(ctx context.Context, imageID *string) (*string, error) {
	if imageID == nil {
		return nil, nil
	}
	if err := service.uploads.VerifyUploaded(ctx, *imageID); err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/%s/public", service.deliveryBase, *imageID)
	return &url, nil
}
