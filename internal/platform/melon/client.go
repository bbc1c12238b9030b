// Copyright (c) 2026 Musicbook. All rights reserved.
// Author: dev@musicbook.kr

/*
Package melon is the client for the external song-catalog collaborator.

Given a numeric melon song ID it returns canonical track metadata. The
collaborator is authoritative and idempotent: repeated lookups with the same
ID yield the same stable result, which is what makes melon-source creation
safely retryable.
*/
package melon

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/musicbookkr/server/internal/platform/apperr"
	"github.com/musicbookkr/server/internal/platform/constants"
)

// Song is the canonical metadata for one melon catalog entry.
type Song struct {
	SongID          int    `json:"songId"`
	SongTitle       string `json:"songTitle"`
	ArtistName      string `json:"artistName"`
	ArtistThumbnail string `json:"artistThumbnail"`
	Category        string `json:"category"`
	AlbumTitle      string `json:"albumTitle"`
	AlbumThumbnail  string `json:"albumThumbnail"`
	Lyrics          string `json:"lyrics"`
}

// Client is the catalog lookup contract consumed by the source service.
type Client interface {
	// SongInfo fetches canonical metadata for a melon song ID.
	// Returns apperr.NotFound for IDs unknown to the catalog.
	SongInfo(ctx context.Context, songID int) (*Song, error)
}

// HTTPClient implements [Client] against the catalog proxy's REST API.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPClient creates a catalog client with a bounded request timeout.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: constants.CollaboratorTimeout,
		},
	}
}

// SongInfo fetches canonical metadata for one melon song.
func (client *HTTPClient) SongInfo(ctx context.Context, songID int) (*Song, error) {
	url := fmt.Sprintf("%s/song/%d", client.baseURL, songID)

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("melon: failed to build request: %w", err)
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, apperr.UpstreamUnavailable("Song catalog", err)
	}
	defer response.Body.Close()

	if response.StatusCode == http.StatusNotFound {
		return nil, apperr.NotFound("Melon song")
	}
	if response.StatusCode != http.StatusOK {
		return nil, apperr.UpstreamUnavailable("Song catalog",
			fmt.Errorf("melon: song lookup returned status %d", response.StatusCode))
	}

	var song Song
	if err := json.NewDecoder(response.Body).Decode(&song); err != nil {
		return nil, apperr.UpstreamUnavailable("Song catalog",
			fmt.Errorf("melon: malformed song response: %w", err))
	}

	return &song, nil
}
