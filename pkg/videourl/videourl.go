// Copyright (c) 2026 Musicbook. All rights reserved.
// Author: dev@musicbook.kr

// Package videourl normalizes externally-supplied media URLs into canonical
// platform identifiers.
//
// # Usage
//
// Tracks reference their preview and MR (backing-track) media by a platform
// kind plus a canonical video ID (e.g., YOUTUBE + "dQw4w9WgXcQ"). Users paste
// whatever URL shape their browser gives them; this package reduces the known
// shapes of each platform to the one identifier worth persisting.
//
// The package is pure and total over its declared failure mode: malformed
// input never panics, it reports [ErrInvalidReference].
package videourl

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
)

// Kind identifies the external video platform a media URL belongs to.
type Kind string

const (
	// KindYouTube covers youtube.com and youtu.be URL shapes.
	KindYouTube Kind = "YOUTUBE"
)

var (
	// ErrInvalidReference is returned when a URL does not match any known
	// shape of the requested platform. A URL that merely contains an ID as
	// loose text is rejected, never guessed at.
	ErrInvalidReference = errors.New("videourl: url does not match a known platform shape")

	// ErrUnknownKind is returned for a platform kind outside the closed set.
	ErrUnknownKind = errors.New("videourl: unknown platform kind")
)

// videoIDPattern bounds the extracted identifier to the platform's alphabet.
var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{5,20}$`)

// normalizers is the closed dispatch table from platform kind to its
// shape-matching function. Adding a platform means adding one entry here.
var normalizers = map[Kind]func(raw string) (string, error){
	KindYouTube: normalizeYouTube,
}

// Valid reports whether k is a member of the closed kind set.
func Valid(k Kind) bool {
	_, ok := normalizers[k]
	return ok
}

// Kinds returns the members of the closed kind set as strings, for
// validation error messages.
func Kinds() []string {
	out := make([]string, 0, len(normalizers))
	for k := range normalizers {
		out = append(out, string(k))
	}
	return out
}

// Normalize extracts the canonical video identifier from rawURL.
//
// It returns [ErrUnknownKind] for a kind outside the closed set and
// [ErrInvalidReference] when the URL does not match any known shape of the
// platform.
func Normalize(kind Kind, rawURL string) (string, error) {
	normalize, ok := normalizers[kind]
	if !ok {
		return "", ErrUnknownKind
	}
	return normalize(rawURL)
}

// normalizeYouTube accepts the short-link (youtu.be/<id>), watch
// (youtube.com/watch?v=<id>) and embed (youtube.com/embed/<id>) shapes,
// anchored on the platform's hostnames.
func normalizeYouTube(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrInvalidReference
	}

	// Users routinely paste scheme-less URLs; tolerate that one omission.
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", ErrInvalidReference
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", ErrInvalidReference
	}

	host := strings.ToLower(parsed.Hostname())
	host = strings.TrimPrefix(host, "www.")
	host = strings.TrimPrefix(host, "m.")

	var id string
	switch host {
	case "youtu.be":
		// https://youtu.be/<id>
		id = firstPathSegment(parsed.Path)

	case "youtube.com":
		segments := splitPath(parsed.Path)
		if len(segments) == 0 {
			return "", ErrInvalidReference
		}
		switch segments[0] {
		case "watch":
			// https://www.youtube.com/watch?v=<id>
			id = parsed.Query().Get("v")
		case "embed":
			// https://youtube.com/embed/<id>
			if len(segments) > 1 {
				id = segments[1]
			}
		default:
			return "", ErrInvalidReference
		}

	default:
		return "", ErrInvalidReference
	}

	if !videoIDPattern.MatchString(id) {
		return "", ErrInvalidReference
	}
	return id, nil
}

// splitPath breaks a URL path into its non-empty segments.
func splitPath(path string) []string {
	var segments []string
	for _, segment := range strings.Split(path, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	return segments
}

// firstPathSegment returns the first non-empty path segment, or "".
func firstPathSegment(path string) string {
	segments := splitPath(path)
	if len(segments) == 0 {
		return ""
	}
	return segments[0]
}
