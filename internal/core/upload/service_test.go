// Copyright (c) 2026 Musicbook. All rights reserved.
// Author: dev@musicbook.kr

package upload_test

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/musicbookkr/server/internal/core/upload"
	"github.com/musicbookkr/server/internal/platform/apperr"
	"github.com/musicbookkr/server/internal/platform/images"
)

// fakeGate counts attempts in memory and trips after the configured cap,
// mimicking the Redis counter semantics.
type fakeGate struct {
	counts map[string]int
	fail   error
}

func (g *fakeGate) Check(_ context.Context, resourceClass, actorID string, maxCount int, _ time.Duration) error {
	if g.fail != nil {
		return g.fail
	}
	if g.counts == nil {
		g.counts = map[string]int{}
	}
	key := resourceClass + ":" + actorID
	g.counts[key]++
	if g.counts[key] > maxCount {
		return apperr.RateLimited(60)
	}
	return nil
}

type fakeImages struct {
	issued  int
	failOn  int // 1-based call index to fail at; 0 = never
	draft   bool
	infoErr error
}

func (f *fakeImages) CreateDirectUpload(_ context.Context, _ images.UploadMeta) (*images.DirectUpload, error) {
	f.issued++
	if f.failOn != 0 && f.issued >= f.failOn {
		return nil, apperr.UpstreamUnavailable("Image host", errors.New("boom"))
	}
	id := fmt.Sprintf("img-%d", f.issued)
	return &images.DirectUpload{ID: id, UploadURL: "https://upload.example/" + id}, nil
}

func (f *fakeImages) GetImageInfo(_ context.Context, id string) (*images.Info, error) {
	if f.infoErr != nil {
		return nil, f.infoErr
	}
	return &images.Info{ID: id, Draft: f.draft}, nil
}

func newService(gate *fakeGate, host *fakeImages) *upload.Service {
	return upload.NewService(gate, host, slog.Default())
}

func TestIssueBookImages_ReturnsPair(t *testing.T) {
	host := &fakeImages{}
	service := newService(&fakeGate{}, host)

	urls, err := service.IssueBookImages(context.Background(), "user-1", "1.2.3.4")

	require.NoError(t, err)
	assert.NotEmpty(t, urls.Thumbnail.ID)
	assert.NotEmpty(t, urls.Background.ID)
	assert.NotEqual(t, urls.Thumbnail.ID, urls.Background.ID)
	assert.Equal(t, 2, host.issued)
}

// The fourth issuance inside one window must be rejected, and the gate
// consumes the attempt before the host is ever contacted.
func TestIssueSourceImages_RateLimited(t *testing.T) {
	host := &fakeImages{}
	service := newService(&fakeGate{}, host)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := service.IssueSourceImages(ctx, "user-1", "1.2.3.4")
		require.NoError(t, err)
	}

	_, err := service.IssueSourceImages(ctx, "user-1", "1.2.3.4")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "RATE_LIMITED", ae.Code)
	assert.Equal(t, 429, ae.HTTPStatus)
	assert.Equal(t, 6, host.issued) // nothing issued on the blocked call
}

// Separate actors do not share a cooldown budget.
func TestIssueSourceImages_PerActorBudget(t *testing.T) {
	service := newService(&fakeGate{}, &fakeImages{})

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := service.IssueSourceImages(ctx, "user-1", "1.2.3.4")
		require.NoError(t, err)
	}

	_, err := service.IssueSourceImages(ctx, "user-2", "5.6.7.8")
	assert.NoError(t, err)
}

// If the second sub-resource fails, the caller gets no URLs at all.
func TestIssueBookImages_AllOrNothing(t *testing.T) {
	host := &fakeImages{failOn: 2}
	service := newService(&fakeGate{}, host)

	urls, err := service.IssueBookImages(context.Background(), "user-1", "1.2.3.4")

	require.Error(t, err)
	assert.Nil(t, urls)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "UPSTREAM_UNAVAILABLE", ae.Code)
}

func TestVerifyUploaded(t *testing.T) {
	tests := []struct {
		name    string
		host    *fakeImages
		wantErr bool
	}{
		{"uploaded", &fakeImages{}, false},
		{"still_draft", &fakeImages{draft: true}, true},
		{"host_cannot_confirm", &fakeImages{infoErr: errors.New("timeout")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newService(&fakeGate{}, tt.host)
			err := service.VerifyUploaded(context.Background(), "img-1")

			if tt.wantErr {
				require.Error(t, err)
				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "INVALID_REFERENCE", ae.Code)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
