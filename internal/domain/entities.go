package domain

import "time"

// Kind is the discriminant carried by every parsed entity and container.
// Normalization resolves its schema from this tag.
type Kind string

const (
	KindArtist            Kind = "artist"
	KindAlbum             Kind = "album"
	KindTrack             Kind = "track"
	KindPlaylist          Kind = "playlist"
	KindPlaylistItem      Kind = "playlistItem"
	KindPlayQueue         Kind = "playQueue"
	KindPlayQueueItem     Kind = "playQueueItem"
	KindSection           Kind = "section"
	KindHub               Kind = "hub"
	KindDevice            Kind = "device"
	KindConnection        Kind = "connection"
	KindArtistContainer   Kind = "artistContainer"
	KindAlbumContainer    Kind = "albumContainer"
	KindTrackContainer    Kind = "trackContainer"
	KindSectionContainer  Kind = "sectionContainer"
	KindPlaylistContainer Kind = "playlistContainer"
	KindHubContainer      Kind = "hubContainer"
	KindResourceContainer Kind = "resourceContainer"
	KindDeviceContainer   Kind = "deviceContainer"
	KindUser              Kind = "user"
	KindPin               Kind = "pin"
	KindSyncList          Kind = "syncList"
	KindSyncItem          Kind = "syncItem"
)

// MediaType is the numeric Plex metadata type used in query strings
// and to select a container parser.
type MediaType int

const (
	MediaTypeArtist   MediaType = 8
	MediaTypeAlbum    MediaType = 9
	MediaTypeTrack    MediaType = 10
	MediaTypePlaylist MediaType = 15
)

func (t MediaType) String() string {
	switch t {
	case MediaTypeArtist:
		return "artist"
	case MediaTypeAlbum:
		return "album"
	case MediaTypeTrack:
		return "track"
	case MediaTypePlaylist:
		return "playlist"
	default:
		return "unknown"
	}
}

// Tag is one entry of a genre, mood, style, country or director list.
type Tag struct {
	ID     *int64 `json:"id"`
	Filter string `json:"filter"`
	Tag    string `json:"tag"`
}

// Media is one rendition of a track.
type Media struct {
	ID            *int64 `json:"id"`
	Duration      *int64 `json:"duration"`
	Bitrate       *int64 `json:"bitrate"`
	AudioChannels *int64 `json:"audioChannels"`
	AudioCodec    string `json:"audioCodec"`
	Container     string `json:"container"`
	Parts         []Part `json:"parts"`
}

// Part is one file backing a Media rendition.
type Part struct {
	ID           *int64   `json:"id"`
	Key          string   `json:"key"`
	Duration     *int64   `json:"duration"`
	File         string   `json:"file"`
	Size         *int64   `json:"size"`
	Container    string   `json:"container"`
	HasThumbnail *bool    `json:"hasThumbnail"`
	Streams      []Stream `json:"streams"`
}

// Stream is an elementary stream inside a Part (audio, lyrics).
type Stream struct {
	ID                 *int64 `json:"id"`
	StreamType         *int64 `json:"streamType"`
	Index              *int64 `json:"index"`
	Codec              string `json:"codec"`
	Bitrate            *int64 `json:"bitrate"`
	Channels           *int64 `json:"channels"`
	SamplingRate       *int64 `json:"samplingRate"`
	AudioChannelLayout string `json:"audioChannelLayout"`
	Format             string `json:"format"`
	Key                string `json:"key"`
	Provider           string `json:"provider"`
	Selected           *bool  `json:"selected"`
	Timed              *bool  `json:"timed"`
}

// Artist is a top-level music entity. ID is the parsed rating key.
type Artist struct {
	Kind Kind  `json:"kind"`
	ID   int64 `json:"id"`

	RatingKey string `json:"ratingKey"`
	Key       string `json:"key"`
	GUID      string `json:"guid"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	TitleSort string `json:"titleSort"`
	Summary   string `json:"summary"`
	Art       string `json:"art"`
	Thumb     string `json:"thumb"`
	Index     *int64 `json:"index"`
	ViewCount *int64 `json:"viewCount"`

	AddedAt      *time.Time `json:"addedAt"`
	UpdatedAt    *time.Time `json:"updatedAt"`
	DeletedAt    *time.Time `json:"deletedAt"`
	LastViewedAt *time.Time `json:"lastViewedAt"`

	Genre         []Tag    `json:"genre"`
	Country       []Tag    `json:"country"`
	PopularTracks []*Track `json:"popularTracks"`
}

// Album belongs to an Artist through ParentID.
type Album struct {
	Kind     Kind  `json:"kind"`
	ID       int64 `json:"id"`
	ParentID int64 `json:"parentId"`

	RatingKey               string   `json:"ratingKey"`
	ParentRatingKey         string   `json:"parentRatingKey"`
	Key                     string   `json:"key"`
	ParentKey               string   `json:"parentKey"`
	GUID                    string   `json:"guid"`
	ParentGUID              string   `json:"parentGuid"`
	Type                    string   `json:"type"`
	Title                   string   `json:"title"`
	ParentTitle             string   `json:"parentTitle"`
	Studio                  string   `json:"studio"`
	Summary                 string   `json:"summary"`
	Art                     string   `json:"art"`
	Thumb                   string   `json:"thumb"`
	ParentThumb             string   `json:"parentThumb"`
	LibrarySectionID        string   `json:"librarySectionID"`
	LibrarySectionKey       string   `json:"librarySectionKey"`
	LibrarySectionTitle     string   `json:"librarySectionTitle"`
	LoudnessAnalysisVersion string   `json:"loudnessAnalysisVersion"`
	Index                   *int64   `json:"index"`
	LeafCount               *int64   `json:"leafCount"`
	ViewedLeafCount         *int64   `json:"viewedLeafCount"`
	ViewCount               *int64   `json:"viewCount"`
	Year                    *int64   `json:"year"`
	UserRating              *float64 `json:"userRating"`

	AddedAt               *time.Time `json:"addedAt"`
	UpdatedAt             *time.Time `json:"updatedAt"`
	DeletedAt             *time.Time `json:"deletedAt"`
	LastViewedAt          *time.Time `json:"lastViewedAt"`
	LastRatedAt           *time.Time `json:"lastRatedAt"`
	OriginallyAvailableAt *time.Time `json:"originallyAvailableAt"`

	Genre    []Tag `json:"genre"`
	Mood     []Tag `json:"mood"`
	Style    []Tag `json:"style"`
	Director []Tag `json:"director"`
}

// Track belongs to an Album (ParentID) and an Artist (GrandparentID).
type Track struct {
	Kind          Kind  `json:"kind"`
	ID            int64 `json:"id"`
	ParentID      int64 `json:"parentId"`
	GrandparentID int64 `json:"grandparentId"`

	RatingKey            string   `json:"ratingKey"`
	ParentRatingKey      string   `json:"parentRatingKey"`
	GrandparentRatingKey string   `json:"grandparentRatingKey"`
	Key                  string   `json:"key"`
	ParentKey            string   `json:"parentKey"`
	GrandparentKey       string   `json:"grandparentKey"`
	GUID                 string   `json:"guid"`
	ParentGUID           string   `json:"parentGuid"`
	GrandparentGUID      string   `json:"grandparentGuid"`
	Type                 string   `json:"type"`
	Title                string   `json:"title"`
	TitleSort            string   `json:"titleSort"`
	OriginalTitle        string   `json:"originalTitle"`
	ParentTitle          string   `json:"parentTitle"`
	GrandparentTitle     string   `json:"grandparentTitle"`
	Summary              string   `json:"summary"`
	Thumb                string   `json:"thumb"`
	ParentThumb          string   `json:"parentThumb"`
	GrandparentThumb     string   `json:"grandparentThumb"`
	Duration             *int64   `json:"duration"` // milliseconds
	Index                *int64   `json:"index"`
	ParentIndex          *int64   `json:"parentIndex"`
	ViewCount            *int64   `json:"viewCount"`
	RatingCount          *int64   `json:"ratingCount"`
	UserRating           *float64 `json:"userRating"`

	AddedAt      *time.Time `json:"addedAt"`
	UpdatedAt    *time.Time `json:"updatedAt"`
	LastViewedAt *time.Time `json:"lastViewedAt"`
	LastRatedAt  *time.Time `json:"lastRatedAt"`

	// PlexMix is the raw related-mix directory, passed through untouched.
	PlexMix any `json:"plexMix,omitempty"`

	Media []Media `json:"media"`
}

// MediaContainer carries the pagination envelope shared by every container.
type MediaContainer struct {
	Size            *int64 `json:"size"`
	TotalSize       *int64 `json:"totalSize"`
	Offset          *int64 `json:"offset"`
	Identifier      string `json:"identifier"`
	MediaTagPrefix  string `json:"mediaTagPrefix"`
	MediaTagVersion string `json:"mediaTagVersion"`
}

// Total returns TotalSize, or 0 when the container reported no size at all.
func (c MediaContainer) Total() int {
	if c.TotalSize == nil {
		return 0
	}
	return int(*c.TotalSize)
}

// ArtistContainer is the body of an artist listing.
type ArtistContainer struct {
	Kind Kind `json:"kind"`
	MediaContainer

	AllowSync           *bool  `json:"allowSync"`
	Art                 string `json:"art"`
	LibrarySectionID    string `json:"librarySectionID"`
	LibrarySectionTitle string `json:"librarySectionTitle"`
	LibrarySectionUUID  string `json:"librarySectionUUID"`
	NoCache             *bool  `json:"nocache"`
	Thumb               string `json:"thumb"`
	Title1              string `json:"title1"`
	Title2              string `json:"title2"`
	ViewGroup           string `json:"viewGroup"`
	ViewMode            *int64 `json:"viewMode"`

	Artists []*Artist `json:"artists"`
}

// AlbumContainer is the body of an album listing.
type AlbumContainer struct {
	Kind Kind `json:"kind"`
	MediaContainer

	AllowSync    *bool  `json:"allowSync"`
	Art          string `json:"art"`
	MixedParents *bool  `json:"mixedParents"`
	NoCache      *bool  `json:"nocache"`
	Thumb        string `json:"thumb"`
	Title1       string `json:"title1"`
	Title2       string `json:"title2"`
	ViewGroup    string `json:"viewGroup"`
	ViewMode     *int64 `json:"viewMode"`

	Albums []*Album `json:"albums"`
}

// TrackContainer is the body of a track listing.
type TrackContainer struct {
	Kind Kind `json:"kind"`
	MediaContainer

	AllowSync            *bool  `json:"allowSync"`
	Art                  string `json:"art"`
	GrandparentRatingKey string `json:"grandparentRatingKey"`
	GrandparentThumb     string `json:"grandparentThumb"`
	GrandparentTitle     string `json:"grandparentTitle"`
	Key                  string `json:"key"`
	LibrarySectionID     string `json:"librarySectionID"`
	LibrarySectionTitle  string `json:"librarySectionTitle"`
	LibrarySectionUUID   string `json:"librarySectionUUID"`
	NoCache              *bool  `json:"nocache"`
	ParentIndex          *int64 `json:"parentIndex"`
	ParentTitle          string `json:"parentTitle"`
	ParentYear           *int64 `json:"parentYear"`
	Thumb                string `json:"thumb"`
	Title1               string `json:"title1"`
	Title2               string `json:"title2"`
	ViewGroup            string `json:"viewGroup"`
	ViewMode             *int64 `json:"viewMode"`

	Tracks []*Track `json:"tracks"`
}
