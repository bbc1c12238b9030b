package track

import (
	"encoding/json"
	"time"
)

// SourceType discriminates a track's provenance. It is set once at creation
// and no operation can change it afterwards.
type SourceType string

const (
	// SourceOriginal marks media the owner uploaded themselves.
	SourceOriginal SourceType = "ORIGINAL"

	// SourceMelon marks a reference into the external melon catalog.
	SourceMelon SourceType = "MELON"
)

// Source is the closed provenance variant. Each kind carries only the
// fields relevant to it; there is no shared record with optional fields
// for every kind.
type Source interface {
	Type() SourceType
}

// OriginalSourceRef points at a self-uploaded source entry (core.sourceoriginal).
type OriginalSourceRef struct {
	SourceID string `json:"source_id"`
}

func (OriginalSourceRef) Type() SourceType { return SourceOriginal }

// MelonSourceRef points at an external catalog entry by melon song ID.
type MelonSourceRef struct {
	SongID int `json:"song_id"`
}

func (MelonSourceRef) Type() SourceType { return SourceMelon }

// Track is a single catalog entry belonging to exactly one book.
//
// PreviewURL and MRURL hold canonical platform video IDs, not raw URLs:
// incoming URLs are normalized before any write, mirroring what is stored.
// Each is paired with its platform kind; one is never present without the
// other.
type Track struct {
	ID          string     `json:"id"`
	BookID      string     `json:"book_id"`
	OwnerID     string     `json:"owner_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	PreviewURL  *string    `json:"preview_url"`
	PreviewKind *string    `json:"preview_kind"`
	MRURL       *string    `json:"mr_url"`
	MRKind      *string    `json:"mr_kind"`
	Category    *string    `json:"category"`
	Source      Source     `json:"-"`
	LikeCount   int        `json:"like_count"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"-"` // soft-delete tracker
}

// MarshalJSON flattens the source variant into a tagged object so API
// clients see {"type": "...", ...fields} without a Go interface leaking out.
func (t Track) MarshalJSON() ([]byte, error) {
	type alias Track
	payload := struct {
		alias
		Source map[string]any `json:"source"`
	}{alias: alias(t)}

	if t.Source != nil {
		payload.Source = map[string]any{"type": t.Source.Type()}
		switch source := t.Source.(type) {
		case OriginalSourceRef:
			payload.Source["source_id"] = source.SourceID
		case MelonSourceRef:
			payload.Source["song_id"] = source.SongID
		}
	}

	return json.Marshal(payload)
}

// Filter narrows track listings. Zero values mean "no constraint".
type Filter struct {
	Category string
	UserID   string
	BookID   string
}

const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldPreviewURL  = "preview_url"
	FieldPreviewKind = "preview_kind"
	FieldMRURL       = "mr_url"
	FieldMRKind      = "mr_kind"
	FieldSourceType  = "source_type"
)
