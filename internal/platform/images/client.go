// Copyright (c) 2026 Musicbook. All rights reserved.
// Author: dev@musicbook.kr

/*
Package images is the client for the external image-hosting collaborator.

The host issues single-use, time-boxed direct-upload URLs so user agents
upload cover art straight to the CDN without the image bytes ever crossing
this service. An uploaded image stays in "draft" state until the upload
actually completes; claiming a draft image into a persisted entity must be
rejected, which is why [Client.GetImageInfo] exposes the draft flag.

Every call is bounded by [constants.CollaboratorTimeout].
*/
package images

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/musicbookkr/server/internal/platform/apperr"
	"github.com/musicbookkr/server/internal/platform/constants"
)

// UploadMeta is the opaque audit metadata attached to every issuance.
// The host stores it verbatim; nothing here is enforced by this service.
type UploadMeta struct {
	Type      string `json:"type"`
	Uploader  string `json:"uploader"`
	IP        string `json:"ip"`
	Timestamp string `json:"timestamp"`
}

// DirectUpload is a freshly issued single-use upload authorization.
type DirectUpload struct {
	ID        string `json:"id"`
	UploadURL string `json:"uploadURL"`
}

// Info describes the current state of a hosted image.
type Info struct {
	ID    string `json:"id"`
	Draft bool   `json:"draft"`
}

// Client is the contract consumed by the upload issuer and source service.
type Client interface {
	// CreateDirectUpload requests one single-use upload URL tagged with meta.
	CreateDirectUpload(ctx context.Context, meta UploadMeta) (*DirectUpload, error)

	// GetImageInfo returns the hosted image's state, including its draft flag.
	// Returns apperr.NotFound if the host does not know the ID.
	GetImageInfo(ctx context.Context, imageID string) (*Info, error)
}

// HTTPClient implements [Client] against the host's REST API.
type HTTPClient struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client
}

// NewHTTPClient creates an image-host client with a bounded request timeout.
func NewHTTPClient(baseURL, apiToken string) *HTTPClient {
	return &HTTPClient{
		baseURL:  baseURL,
		apiToken: apiToken,
		httpClient: &http.Client{
			Timeout: constants.CollaboratorTimeout,
		},
	}
}

// resultEnvelope mirrors the host's response wrapper.
type resultEnvelope[T any] struct {
	Success bool `json:"success"`
	Result  T    `json:"result"`
}

// CreateDirectUpload requests a direct-upload URL from the host.
func (client *HTTPClient) CreateDirectUpload(ctx context.Context, meta UploadMeta) (*DirectUpload, error) {
	body, err := json.Marshal(map[string]any{"metadata": meta})
	if err != nil {
		return nil, fmt.Errorf("images: failed to encode metadata: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, client.baseURL+"/direct_upload", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("images: failed to build request: %w", err)
	}
	request.Header.Set("Authorization", "Bearer "+client.apiToken)
	request.Header.Set("Content-Type", "application/json")

	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, apperr.UpstreamUnavailable("Image host", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, apperr.UpstreamUnavailable("Image host",
			fmt.Errorf("images: direct_upload returned status %d", response.StatusCode))
	}

	var envelope resultEnvelope[DirectUpload]
	if err := json.NewDecoder(response.Body).Decode(&envelope); err != nil || !envelope.Success {
		return nil, apperr.UpstreamUnavailable("Image host",
			fmt.Errorf("images: malformed direct_upload response: %w", err))
	}

	return &envelope.Result, nil
}

// GetImageInfo fetches the state of a previously issued image.
func (client *HTTPClient) GetImageInfo(ctx context.Context, imageID string) (*Info, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, client.baseURL+"/"+imageID, nil)
	if err != nil {
		return nil, fmt.Errorf("images: failed to build request: %w", err)
	}
	request.Header.Set("Authorization", "Bearer "+client.apiToken)

	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, apperr.UpstreamUnavailable("Image host", err)
	}
	defer response.Body.Close()

	if response.StatusCode == http.StatusNotFound {
		return nil, apperr.NotFound("Image")
	}
	if response.StatusCode != http.StatusOK {
		return nil, apperr.UpstreamUnavailable("Image host",
			fmt.Errorf("images: info returned status %d", response.StatusCode))
	}

	var envelope resultEnvelope[Info]
	if err := json.NewDecoder(response.Body).Decode(&envelope); err != nil || !envelope.Success {
		return nil, apperr.UpstreamUnavailable("Image host",
			fmt.Errorf("images: malformed info response: %w", err))
	}

	return &envelope.Result, nil
}
