package schema

// CoreBookTable represents the 'core.book' table
type CoreBookTable struct {
	Table         string
	ID            string
	OwnerID       string
	Title         string
	Description   string
	Slug          string
	ThumbnailURL  string
	BackgroundURL string
	LikeCount     string
	CreatedAt     string
	UpdatedAt     string
	DeletedAt     string
}

// CoreBook is the schema definition for core.book
var CoreBook = CoreBookTable{
	Table:         "core.book",
	ID:            "id",
	OwnerID:       "ownerid",
	Title:         "title",
	Description:   "description",
	Slug:          "slug",
	ThumbnailURL:  "thumbnailurl",
	BackgroundURL: "backgroundurl",
	LikeCount:     "likecount",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
	DeletedAt:     "deletedat",
}

func (t CoreBookTable) Columns() []string {
	return []string{
		t.ID, t.OwnerID, t.Title, t.Description, t.Slug, t.ThumbnailURL,
		t.BackgroundURL, t.LikeCount, t.CreatedAt, t.UpdatedAt,
	}
}
