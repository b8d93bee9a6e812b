package plex

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/plexkit/internal/adapter"
	"github.com/mmcdole/plexkit/internal/domain"
)

func newTestParser() *Parser {
	return NewParser(adapter.NullLogger())
}

// trackFixture returns a track body with every required field present.
func trackFixture(ratingKey, title string) map[string]any {
	return map[string]any{
		"ratingKey":            ratingKey,
		"parentRatingKey":      "40811",
		"grandparentRatingKey": "40810",
		"key":                  "/library/metadata/" + ratingKey,
		"parentKey":            "/library/metadata/40811",
		"grandparentKey":       "/library/metadata/40810",
		"type":                 "track",
		"title":                title,
		"parentTitle":          "Abbey Road",
		"grandparentTitle":     "The Beatles",
		"index":                float64(1),
		"duration":             float64(259000),
		"addedAt":              float64(1500000000),
		"updatedAt":            float64(1500000100),
		"Media":                []any{},
	}
}

func albumFixture(ratingKey, title string) map[string]any {
	return map[string]any{
		"ratingKey":       ratingKey,
		"parentRatingKey": "40810",
		"key":             "/library/metadata/" + ratingKey + "/children",
		"parentKey":       "/library/metadata/40810",
		"guid":            "plex://album/1",
		"type":            "album",
		"title":           title,
		"parentTitle":     "The Beatles",
		"index":           float64(1),
		"addedAt":         float64(1500000000),
	}
}

func artistFixture(ratingKey, title string) map[string]any {
	return map[string]any{
		"ratingKey": ratingKey,
		"key":       "/library/metadata/" + ratingKey + "/children",
		"type":      "artist",
		"title":     title,
		"index":     float64(1),
		"addedAt":   float64(1500000000),
		"updatedAt": float64(1500000100),
	}
}

func TestTrack_IDsFromRatingKeys(t *testing.T) {
	track, warnings := newTestParser().Track(trackFixture("40812", "Come Together"))

	assert.Empty(t, warnings)
	assert.Equal(t, domain.KindTrack, track.Kind)
	assert.Equal(t, int64(40812), track.ID)
	assert.Equal(t, int64(40811), track.ParentID)
	assert.Equal(t, int64(40810), track.GrandparentID)
	assert.Equal(t, "40812", track.RatingKey)
	require.NotNil(t, track.Duration)
	assert.Equal(t, int64(259000), *track.Duration)
	require.NotNil(t, track.AddedAt)
	assert.Equal(t, time.Date(2017, time.July, 14, 2, 40, 0, 0, time.UTC), *track.AddedAt)
}

func TestTrack_MissingDurationWarnsWithoutFailing(t *testing.T) {
	raw := trackFixture("40812", "Come Together")
	delete(raw, "duration")

	track, warnings := newTestParser().Track(raw)

	require.NotNil(t, track)
	assert.Nil(t, track.Duration)
	assert.Equal(t, "Come Together", track.Title)
	require.Len(t, warnings, 1)
	assert.Equal(t, "duration", warnings[0].Path)
}

func TestTrack_MediaBareObjects(t *testing.T) {
	raw := trackFixture("40812", "Come Together")
	raw["Media"] = map[string]any{
		"id":   "1",
		"Part": map[string]any{"id": "9"},
	}

	track, _ := newTestParser().Track(raw)

	require.Len(t, track.Media, 1)
	require.Len(t, track.Media[0].Parts, 1)
	require.NotNil(t, track.Media[0].Parts[0].ID)
	assert.Equal(t, int64(9), *track.Media[0].Parts[0].ID)
	assert.NotNil(t, track.Media[0].Parts[0].Streams)
	assert.Empty(t, track.Media[0].Parts[0].Streams)
}

func TestTrack_MediaPartStreamHierarchy(t *testing.T) {
	raw := trackFixture("40812", "Come Together")
	raw["Media"] = []any{map[string]any{
		"id":            float64(100),
		"duration":      float64(259000),
		"bitrate":       float64(1411),
		"audioChannels": float64(2),
		"audioCodec":    "flac",
		"container":     "flac",
		"Part": []any{map[string]any{
			"id":        float64(200),
			"key":       "/library/parts/200/file.flac",
			"duration":  float64(259000),
			"file":      "/music/01.flac",
			"size":      "45678901",
			"container": "flac",
			"Stream": []any{
				map[string]any{"id": float64(300), "streamType": float64(2), "codec": "flac", "selected": true},
				map[string]any{"id": float64(301), "streamType": float64(4), "codec": "lrc", "timed": "1"},
			},
		}},
	}}

	track, warnings := newTestParser().Track(raw)

	assert.Empty(t, warnings)
	require.Len(t, track.Media, 1)
	media := track.Media[0]
	assert.Equal(t, "flac", media.AudioCodec)
	require.Len(t, media.Parts, 1)
	assert.Equal(t, int64(45678901), *media.Parts[0].Size)
	require.Len(t, media.Parts[0].Streams, 2)
	assert.True(t, *media.Parts[0].Streams[0].Selected)
	assert.True(t, *media.Parts[0].Streams[1].Timed)
}

func TestTrack_MissingMediaIsEmptyList(t *testing.T) {
	raw := trackFixture("40812", "Come Together")
	delete(raw, "Media")

	track, warnings := newTestParser().Track(raw)

	assert.NotNil(t, track.Media)
	assert.Empty(t, track.Media)
	require.Len(t, warnings, 1)
	assert.Equal(t, "Media", warnings[0].Path)
}

func TestAlbum_AbsentTagListsAreEmpty(t *testing.T) {
	album, warnings := newTestParser().Album(albumFixture("500", "Abbey Road"))

	assert.Empty(t, warnings)
	assert.Equal(t, []domain.Tag{}, album.Genre)
	assert.Equal(t, []domain.Tag{}, album.Mood)
	assert.Equal(t, []domain.Tag{}, album.Style)
	assert.Equal(t, []domain.Tag{}, album.Director)
	assert.Equal(t, int64(40810), album.ParentID)
}

func TestAlbum_TagLists(t *testing.T) {
	raw := albumFixture("500", "Abbey Road")
	raw["Genre"] = map[string]any{"id": float64(5), "filter": "genre=5", "tag": "Rock"}
	raw["Mood"] = []any{
		map[string]any{"tag": "Warm"},
		map[string]any{"tag": "Playful"},
	}
	raw["originallyAvailableAt"] = "1969-09-26"

	album, _ := newTestParser().Album(raw)

	require.Len(t, album.Genre, 1)
	assert.Equal(t, "Rock", album.Genre[0].Tag)
	assert.Equal(t, "genre=5", album.Genre[0].Filter)
	assert.Equal(t, int64(5), *album.Genre[0].ID)
	require.Len(t, album.Mood, 2)
	assert.Nil(t, album.Mood[0].ID)
	require.NotNil(t, album.OriginallyAvailableAt)
	assert.Equal(t, 1969, album.OriginallyAvailableAt.Year())
}

func TestArtist_PopularTracks(t *testing.T) {
	raw := artistFixture("40810", "The Beatles")
	raw["PopularLeaves"] = map[string]any{
		"Metadata": []any{
			trackFixture("40812", "Come Together"),
			trackFixture("40813", "Something"),
		},
	}

	artist, warnings := newTestParser().Artist(raw)

	assert.Empty(t, warnings)
	assert.Equal(t, int64(40810), artist.ID)
	require.Len(t, artist.PopularTracks, 2)
	assert.Equal(t, int64(40813), artist.PopularTracks[1].ID)
	assert.Equal(t, []domain.Tag{}, artist.Country)
}

func TestArtist_NoPopularLeaves(t *testing.T) {
	artist, _ := newTestParser().Artist(artistFixture("40810", "The Beatles"))

	assert.NotNil(t, artist.PopularTracks)
	assert.Empty(t, artist.PopularTracks)
}

func TestContainers_TotalSize(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
		want int64
	}{
		{
			name: "defaults to size",
			body: map[string]any{"size": float64(7)},
			want: 7,
		},
		{
			name: "explicit total size",
			body: map[string]any{"size": float64(7), "totalSize": "120"},
			want: 120,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.body["Metadata"] = []any{}
			container, _ := newTestParser().TrackContainer(map[string]any{"MediaContainer": tt.body})

			require.NotNil(t, container.TotalSize)
			assert.Equal(t, tt.want, *container.TotalSize)
			assert.Equal(t, int(tt.want), container.Total())
		})
	}
}

func TestTrackContainer_UnwrapsEnvelope(t *testing.T) {
	body := map[string]any{
		"MediaContainer": map[string]any{
			"size":                float64(2),
			"offset":              float64(0),
			"allowSync":           "1",
			"librarySectionID":    float64(3),
			"librarySectionTitle": "Music",
			"librarySectionUUID":  "abc",
			"Metadata": []any{
				trackFixture("1", "One"),
				trackFixture("2", "Two"),
			},
		},
	}

	container, warnings := newTestParser().TrackContainer(body)

	assert.Empty(t, warnings)
	assert.Equal(t, domain.KindTrackContainer, container.Kind)
	assert.Equal(t, "3", container.LibrarySectionID)
	assert.True(t, *container.AllowSync)
	require.Len(t, container.Tracks, 2)
	assert.Equal(t, int64(2), container.Tracks[1].ID)
}

func TestContainer_WithoutEnvelope(t *testing.T) {
	body := map[string]any{
		"size":      float64(1),
		"allowSync": true,
		"Metadata":  albumFixture("500", "Abbey Road"),
	}

	container, warnings := newTestParser().AlbumContainer(body)

	assert.Empty(t, warnings)
	require.Len(t, container.Albums, 1)
	assert.Equal(t, int64(500), container.Albums[0].ID)
}

func TestSectionContainer(t *testing.T) {
	body := map[string]any{
		"MediaContainer": map[string]any{
			"size":   float64(1),
			"title1": "Plex Library",
			"Directory": map[string]any{
				"key":        "3",
				"uuid":       "abc",
				"type":       "artist",
				"title":      "Music",
				"agent":      "tv.plex.agents.music",
				"scanner":    "Plex Music",
				"language":   "en",
				"updatedAt":  float64(1500000000),
				"refreshing": false,
				"Location": map[string]any{
					"id":   float64(4),
					"path": "/music",
				},
			},
		},
	}

	container, warnings := newTestParser().SectionContainer(body)

	assert.Empty(t, warnings)
	assert.Equal(t, "Plex Library", container.Title)
	require.Len(t, container.Sections, 1)
	section := container.Sections[0]
	assert.Equal(t, int64(3), section.ID)
	assert.False(t, *section.Refreshing)
	require.Len(t, section.Locations, 1)
	assert.Equal(t, "/music", section.Locations[0].Path)
}

func TestGenreRecord(t *testing.T) {
	body := map[string]any{
		"MediaContainer": map[string]any{
			"Directory": []any{
				map[string]any{"key": "12", "title": "Rock"},
				map[string]any{"key": "13", "title": "Jazz"},
			},
		},
	}

	genres, warnings := newTestParser().GenreRecord(body)

	assert.Empty(t, warnings)
	assert.Equal(t, domain.GenreRecord{"Rock": 12, "Jazz": 13}, genres)
}

func TestCountryRecord_Empty(t *testing.T) {
	countries, warnings := newTestParser().CountryRecord(map[string]any{
		"MediaContainer": map[string]any{"Directory": []any{}},
	})

	assert.Empty(t, warnings)
	assert.Empty(t, countries)
	assert.NotNil(t, countries)
}
