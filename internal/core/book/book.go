package book

import "time"

// Book is a user's singleton collection of tracks. At most one live
// (non-deleted) book exists per owner; the store enforces this with a
// partial unique index.
type Book struct {
	ID            string     `json:"id"`
	OwnerID       string     `json:"owner_id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Slug          string     `json:"slug"`
	ThumbnailURL  *string    `json:"thumbnail_url"`
	BackgroundURL *string    `json:"background_url"`
	LikeCount     int        `json:"like_count"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	DeletedAt     *time.Time `json:"-"` // soft-delete tracker
}

const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldThumbnail   = "thumbnail_id"
	FieldBackground  = "background_id"
)
