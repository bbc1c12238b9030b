// Copyright (c) 2026 Musicbook. All rights reserved.
// Author: dev@musicbook.kr

package source

import "time"

// OriginalSource is a self-described song entry an owner registered for
// their own media. Tracks reference it by ID.
type OriginalSource struct {
	ID              string    `json:"id"`
	SongTitle       string    `json:"song_title"`
	ArtistName      string    `json:"artist_name"`
	ArtistThumbnail *string   `json:"artist_thumbnail"`
	Category        *string   `json:"category"`
	AlbumTitle      *string   `json:"album_title"`
	AlbumThumbnail  *string   `json:"album_thumbnail"`
	Lyrics          *string   `json:"lyrics"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// MelonSource is a locally cached copy of an external catalog entry, keyed
// by the collaborator's numeric song ID rather than a UUID.
type MelonSource struct {
	SongID          int       `json:"song_id"`
	SongTitle       string    `json:"song_title"`
	ArtistName      string    `json:"artist_name"`
	ArtistThumbnail *string   `json:"artist_thumbnail"`
	Category        *string   `json:"category"`
	AlbumTitle      *string   `json:"album_title"`
	AlbumThumbnail  *string   `json:"album_thumbnail"`
	Lyrics          *string   `json:"lyrics"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

const (
	FieldSongTitle  = "song_title"
	FieldArtistName = "artist_name"
	FieldSongID     = "song_id"
)
