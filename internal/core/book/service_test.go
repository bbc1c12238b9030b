// Copyright (c) 2026 Musicbook. All rights reserved.
// Author: dev@musicbook.kr

package book_test

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/musicbookkr/server/internal/core/book"
	"github.com/musicbookkr/server/internal/core/like"
	"github.com/musicbookkr/server/internal/core/ranking"
	"github.com/musicbookkr/server/internal/core/upload"
	"github.com/musicbookkr/server/internal/platform/apperr"
	"github.com/musicbookkr/server/internal/platform/dberr"
	"github.com/musicbookkr/server/pkg/pointer"
)

// fakeRepo is an in-memory book.Repository keyed by owner.
type fakeRepo struct {
	byOwner map[string]*book.Book
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byOwner: map[string]*book.Book{}}
}

func (r *fakeRepo) List(_ context.Context, _ ranking.Order, _, _ int) ([]*book.Book, int, error) {
	var out []*book.Book
	for _, b := range r.byOwner {
		out = append(out, b)
	}
	return out, len(out), nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*book.Book, error) {
	for _, b := range r.byOwner {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (r *fakeRepo) GetByOwner(_ context.Context, ownerID string) (*book.Book, error) {
	b, ok := r.byOwner[ownerID]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return b, nil
}

func (r *fakeRepo) ExistsLive(_ context.Context, id string) (bool, error) {
	_, err := r.GetByID(context.Background(), id)
	return err == nil, nil
}

func (r *fakeRepo) Create(_ context.Context, b *book.Book) error {
	if _, exists := r.byOwner[b.OwnerID]; exists {
		return apperr.Conflict("Resource already exists")
	}
	r.byOwner[b.OwnerID] = b
	return nil
}

func (r *fakeRepo) Update(_ context.Context, b *book.Book) error {
	r.byOwner[b.OwnerID] = b
	return nil
}

func (r *fakeRepo) SoftDeleteCascade(_ context.Context, ownerID string) error {
	if _, ok := r.byOwner[ownerID]; !ok {
		return dberr.ErrNotFound
	}
	delete(r.byOwner, ownerID)
	return nil
}

// fakeLedger records membership pairs in memory with set semantics.
type fakeLedger struct {
	members map[string]bool
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{members: map[string]bool{}}
}

func key(actorID, targetID string, target like.TargetType) string {
	return actorID + "|" + targetID + "|" + string(target)
}

func (l *fakeLedger) Create(_ context.Context, actorID, targetID string, target like.TargetType) error {
	l.members[key(actorID, targetID, target)] = true
	return nil
}

func (l *fakeLedger) Delete(_ context.Context, actorID, targetID string, target like.TargetType) error {
	delete(l.members, key(actorID, targetID, target))
	return nil
}

func (l *fakeLedger) Exists(_ context.Context, actorID, targetID string, target like.TargetType) (bool, error) {
	return l.members[key(actorID, targetID, target)], nil
}

func (l *fakeLedger) Count(_ context.Context, targetID string, target like.TargetType) (int, error) {
	suffix := "|" + targetID + "|" + string(target)
	count := 0
	for k, present := range l.members {
		if present && strings.HasSuffix(k, suffix) {
			count++
		}
	}
	return count, nil
}

// fakeUploads accepts every image except IDs marked draft.
type fakeUploads struct {
	draftIDs map[string]bool
}

func (u *fakeUploads) IssueBookImages(context.Context, string, string) (*upload.BookImageURLs, error) {
	return &upload.BookImageURLs{}, nil
}

func (u *fakeUploads) VerifyUploaded(_ context.Context, imageID string) error {
	if u.draftIDs[imageID] {
		return apperr.InvalidReference("Image upload was never completed")
	}
	return nil
}

func newService(repo *fakeRepo, ledger *fakeLedger, uploads *fakeUploads) *book.Service {
	if uploads == nil {
		uploads = &fakeUploads{}
	}
	return book.NewService(repo, ledger, uploads, "https://cdnimg.example", slog.Default())
}

func TestGetMyBook_NoneCreated(t *testing.T) {
	service := newService(newFakeRepo(), newFakeLedger(), nil)

	_, err := service.GetMyBook(context.Background(), "user-1")

	require.Error(t, err)
	assert.ErrorIs(t, err, book.ErrBookRequired)
}

func TestCreateMyBook(t *testing.T) {
	service := newService(newFakeRepo(), newFakeLedger(), nil)

	created, err := service.CreateMyBook(context.Background(), "user-1", book.CreateInput{
		Title:       "Late Night Ballads",
		Description: "slow songs only",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "user-1", created.OwnerID)
	assert.Equal(t, "late-night-ballads", created.Slug)

	got, err := service.GetMyBook(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

// One live book per owner: the second creation conflicts.
func TestCreateMyBook_SingletonConflict(t *testing.T) {
	service := newService(newFakeRepo(), newFakeLedger(), nil)
	ctx := context.Background()

	_, err := service.CreateMyBook(ctx, "user-1", book.CreateInput{Title: "First"})
	require.NoError(t, err)

	_, err = service.CreateMyBook(ctx, "user-1", book.CreateInput{Title: "Second"})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

// Deleting the book frees the slot for a fresh one.
func TestCreateMyBook_AfterDelete(t *testing.T) {
	service := newService(newFakeRepo(), newFakeLedger(), nil)
	ctx := context.Background()

	_, err := service.CreateMyBook(ctx, "user-1", book.CreateInput{Title: "First"})
	require.NoError(t, err)
	require.NoError(t, service.DeleteMyBook(ctx, "user-1"))

	_, err = service.CreateMyBook(ctx, "user-1", book.CreateInput{Title: "Second"})
	assert.NoError(t, err)
}

func TestCreateMyBook_ValidatesTitle(t *testing.T) {
	service := newService(newFakeRepo(), newFakeLedger(), nil)

	_, err := service.CreateMyBook(context.Background(), "user-1", book.CreateInput{Title: ""})

	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

// A claimed image that never finished uploading aborts creation entirely.
func TestCreateMyBook_DraftImageRejected(t *testing.T) {
	repo := newFakeRepo()
	uploads := &fakeUploads{draftIDs: map[string]bool{"img-draft": true}}
	service := newService(repo, newFakeLedger(), uploads)

	_, err := service.CreateMyBook(context.Background(), "user-1", book.CreateInput{
		Title:       "Ballads",
		ThumbnailID: pointer.To("img-draft"),
	})

	require.Error(t, err)
	assert.Equal(t, "INVALID_REFERENCE", apperr.As(err).Code)
	assert.Empty(t, repo.byOwner)
}

func TestCreateMyBook_ClaimedImageBecomesDeliveryURL(t *testing.T) {
	service := newService(newFakeRepo(), newFakeLedger(), nil)

	created, err := service.CreateMyBook(context.Background(), "user-1", book.CreateInput{
		Title:       "Ballads",
		ThumbnailID: pointer.To("img-7"),
	})

	require.NoError(t, err)
	require.NotNil(t, created.ThumbnailURL)
	assert.Equal(t, "https://cdnimg.example/img-7/public", *created.ThumbnailURL)
}

func TestDeleteMyBook_RequiresBook(t *testing.T) {
	service := newService(newFakeRepo(), newFakeLedger(), nil)

	err := service.DeleteMyBook(context.Background(), "user-1")

	assert.ErrorIs(t, err, book.ErrBookRequired)
}

// Likes are idempotent in both directions and respect liveness.
func TestLikes(t *testing.T) {
	service := newService(newFakeRepo(), newFakeLedger(), nil)
	ctx := context.Background()

	created, err := service.CreateMyBook(ctx, "owner", book.CreateInput{Title: "Ballads"})
	require.NoError(t, err)

	require.NoError(t, service.CreateLike(ctx, "fan", created.ID))
	require.NoError(t, service.CreateLike(ctx, "fan", created.ID)) // repeat is a no-op

	liked, err := service.LikeStatus(ctx, "fan", created.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	count, err := service.LikeCount(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, service.DeleteLike(ctx, "fan", created.ID))
	require.NoError(t, service.DeleteLike(ctx, "fan", created.ID)) // repeat is a no-op

	liked, err = service.LikeStatus(ctx, "fan", created.ID)
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestLikes_UnknownBook(t *testing.T) {
	service := newService(newFakeRepo(), newFakeLedger(), nil)

	err := service.CreateLike(context.Background(), "fan", "no-such-book")

	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}
