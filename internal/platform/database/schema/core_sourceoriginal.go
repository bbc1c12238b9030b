package schema

// CoreSourceOriginalTable represents the 'core.sourceoriginal' table
type CoreSourceOriginalTable struct {
	Table           string
	ID              string
	SongTitle       string
	ArtistName      string
	ArtistThumbnail string
	Category        string
	AlbumTitle      string
	AlbumThumbnail  string
	Lyrics          string
	CreatedAt       string
	UpdatedAt       string
}

// CoreSourceOriginal is the schema definition for core.sourceoriginal
var CoreSourceOriginal = CoreSourceOriginalTable{
	Table:           "core.sourceoriginal",
	ID:              "id",
	SongTitle:       "songtitle",
	ArtistName:      "artistname",
	ArtistThumbnail: "artistthumbnail",
	Category:        "category",
	AlbumTitle:      "albumtitle",
	AlbumThumbnail:  "albumthumbnail",
	Lyrics:          "lyrics",
	CreatedAt:       "createdat",
	UpdatedAt:       "updatedat",
}
