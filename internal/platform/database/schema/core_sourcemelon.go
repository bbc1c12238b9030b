package schema

// CoreSourceMelonTable represents the 'core.sourcemelon' table
type CoreSourceMelonTable struct {
	Table           string
	SongID          string
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

// CoreSourceMelon is the schema definition for core.sourcemelon
var CoreSourceMelon = CoreSourceMelonTable{
	Table:           "core.sourcemelon",
	SongID:          "songid",
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
