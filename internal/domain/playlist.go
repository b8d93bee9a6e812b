package domain

import "time"

// Playlist owns an ordered list of items. When parsed from the items
// endpoint the enclosing container's pagination is carried as well.
type Playlist struct {
	Kind Kind  `json:"kind"`
	ID   int64 `json:"id"`
	MediaContainer

	RatingKey    string `json:"ratingKey"`
	Key          string `json:"key"`
	GUID         string `json:"guid"`
	Type         string `json:"type"`
	Title        string `json:"title"`
	TitleSort    string `json:"titleSort"`
	Summary      string `json:"summary"`
	Composite    string `json:"composite"`
	PlaylistType string `json:"playlistType"`
	Smart        *bool  `json:"smart"`
	Duration     *int64 `json:"duration"`
	LeafCount    *int64 `json:"leafCount"`
	ViewCount    *int64 `json:"viewCount"`

	AddedAt      *time.Time `json:"addedAt"`
	UpdatedAt    *time.Time `json:"updatedAt"`
	LastViewedAt *time.Time `json:"lastViewedAt"`

	Items []*PlaylistItem `json:"items"`
}

// PlaylistItem wraps one Track at a position in a playlist.
// Items of smart playlists have no ID.
type PlaylistItem struct {
	Kind       Kind   `json:"kind"`
	ID         *int64 `json:"id"`
	PlaylistID int64  `json:"playlistId"`

	LibrarySectionID    *int64 `json:"librarySectionID"`
	LibrarySectionKey   string `json:"librarySectionKey"`
	LibrarySectionTitle string `json:"librarySectionTitle"`

	Track *Track `json:"track"`
}

// PlaylistContainer is the body of the playlist listing.
type PlaylistContainer struct {
	Kind Kind `json:"kind"`
	MediaContainer

	Playlists []*Playlist `json:"playlists"`
}
