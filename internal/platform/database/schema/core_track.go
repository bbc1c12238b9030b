package schema

// CoreTrackTable represents the 'core.track' table
type CoreTrackTable struct {
	Table            string
	ID               string
	BookID           string
	OwnerID          string
	Title            string
	Description      string
	PreviewURL       string
	PreviewKind      string
	MRURL            string
	MRKind           string
	SourceType       string
	OriginalSourceID string
	MelonSongID      string
	Category         string
	LikeCount        string
	CreatedAt        string
	UpdatedAt        string
	DeletedAt        string
}

// CoreTrack is the schema definition for core.track
var CoreTrack = CoreTrackTable{
	Table:            "core.track",
	ID:               "id",
	BookID:           "bookid",
	OwnerID:          "ownerid",
	Title:            "title",
	Description:      "description",
	PreviewURL:       "previewurl",
	PreviewKind:      "previewkind",
	MRURL:            "mrurl",
	MRKind:           "mrkind",
	SourceType:       "sourcetype",
	OriginalSourceID: "originalsourceid",
	MelonSongID:      "melonsongid",
	Category:         "category",
	LikeCount:        "likecount",
	CreatedAt:        "createdat",
	UpdatedAt:        "updatedat",
	DeletedAt:        "deletedat",
}

func (t CoreTrackTable) Columns() []string {
	return []string{
		t.ID, t.BookID, t.OwnerID, t.Title, t.Description, t.PreviewURL,
		t.PreviewKind, t.MRURL, t.MRKind, t.SourceType, t.OriginalSourceID,
		t.MelonSongID, t.Category, t.LikeCount, t.CreatedAt, t.UpdatedAt,
	}
}
