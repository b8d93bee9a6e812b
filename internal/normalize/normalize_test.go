package normalize

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/plexkit/internal/domain"
)

func int64Ptr(n int64) *int64 { return &n }

func testTrack(id int64, title string) *domain.Track {
	return &domain.Track{
		Kind:     domain.KindTrack,
		ID:       id,
		Title:    title,
		Duration: int64Ptr(1000),
		Media:    []domain.Media{{ID: int64Ptr(id * 10), Parts: []domain.Part{}}},
	}
}

func testArtist(id int64, title string, popular ...*domain.Track) *domain.Artist {
	if popular == nil {
		popular = []*domain.Track{}
	}
	return &domain.Artist{
		Kind:          domain.KindArtist,
		ID:            id,
		Title:         title,
		Genre:         []domain.Tag{},
		Country:       []domain.Tag{},
		PopularTracks: popular,
	}
}

func TestNormalize_ArtistContainerReferencesByID(t *testing.T) {
	container := &domain.ArtistContainer{
		Kind:           domain.KindArtistContainer,
		MediaContainer: domain.MediaContainer{Size: int64Ptr(1)},
		Artists:        []*domain.Artist{testArtist(1, "The Beatles")},
	}

	n, err := Normalize(container)

	require.NoError(t, err)
	assert.Equal(t, string(domain.KindArtistContainer), n.Result.Schema)

	result, ok := n.Result.ID.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []any{int64(1)}, result["artists"])
	assert.Equal(t, int64(1), result["size"])

	artist, ok := n.Entity(TableArtists, "1")
	require.True(t, ok)
	assert.Equal(t, int64(1), artist["id"])
	assert.Equal(t, "The Beatles", artist["title"])
	assert.Equal(t, []any{}, artist["genre"])
}

func TestNormalize_StoredEntityDecodesToParsedEntity(t *testing.T) {
	want := testArtist(1, "The Beatles")

	n, err := Normalize(&domain.ArtistContainer{
		Kind:    domain.KindArtistContainer,
		Artists: []*domain.Artist{want},
	})
	require.NoError(t, err)

	stored, ok := n.Entity(TableArtists, "1")
	require.True(t, ok)
	data, err := json.Marshal(stored)
	require.NoError(t, err)

	var got domain.Artist
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, *want, got)
}

func TestNormalize_NestedEntitiesAreFlattened(t *testing.T) {
	artist := testArtist(1, "The Beatles", testTrack(10, "Come Together"), testTrack(11, "Something"))

	n, err := Normalize(artist)

	require.NoError(t, err)
	assert.Equal(t, int64(1), n.Result.ID)

	stored, ok := n.Entity(TableArtists, "1")
	require.True(t, ok)
	assert.Equal(t, []any{int64(10), int64(11)}, stored["popularTracks"])

	track, ok := n.Entity(TableTracks, "11")
	require.True(t, ok)
	assert.Equal(t, "Something", track["title"])

	media := track["media"].([]any)
	require.Len(t, media, 1)
	assert.Equal(t, int64(110), media[0].(map[string]any)["id"])
}

func TestNormalize_SharedEntityCollapses(t *testing.T) {
	container := &domain.TrackContainer{
		Kind: domain.KindTrackContainer,
		Tracks: []*domain.Track{
			testTrack(1, "Provisional"),
			testTrack(2, "Other"),
			testTrack(1, "Final"),
		},
	}

	n, err := Normalize(container)

	require.NoError(t, err)
	assert.Len(t, n.Entities[TableTracks], 2)
	track, _ := n.Entity(TableTracks, "1")
	assert.Equal(t, "Final", track["title"])
	assert.Equal(t, []any{int64(1), int64(2), int64(1)}, n.Result.ID.(map[string]any)["tracks"])
}

func TestNormalize_PlaylistItems(t *testing.T) {
	playlist := &domain.Playlist{
		Kind:  domain.KindPlaylist,
		ID:    900,
		Title: "Road Trip",
		Items: []*domain.PlaylistItem{
			{Kind: domain.KindPlaylistItem, ID: int64Ptr(11), PlaylistID: 900, Track: testTrack(1, "One")},
			{Kind: domain.KindPlaylistItem, PlaylistID: 900, Track: testTrack(2, "Two")},
		},
	}

	n, err := Normalize(playlist)

	require.NoError(t, err)
	assert.Equal(t, int64(900), n.Result.ID)

	stored, ok := n.Entity(TablePlaylists, "900")
	require.True(t, ok)
	items := stored["items"].([]any)
	require.Len(t, items, 2)

	first := items[0].(map[string]any)
	assert.Equal(t, int64(11), first["id"])
	assert.Equal(t, int64(1), first["track"])

	second := items[1].(map[string]any)
	assert.Nil(t, second["id"])
	assert.Equal(t, int64(2), second["track"])

	assert.Len(t, n.Entities[TableTracks], 2)
}

func TestNormalize_HubsUnionByKind(t *testing.T) {
	container := &domain.HubContainer{
		Kind: domain.KindHubContainer,
		Hubs: []*domain.Hub{
			{
				Kind:  domain.KindHub,
				Type:  "track",
				Items: []domain.HubItem{testTrack(1, "One")},
			},
			{
				Kind:  domain.KindHub,
				Type:  "episode",
				Items: []domain.HubItem{domain.RawItem{Value: map[string]any{"ratingKey": "5", "title": "Pilot"}}},
			},
		},
	}

	n, err := Normalize(container)

	require.NoError(t, err)
	assert.Equal(t, []any{"track", "episode"}, n.Result.ID.(map[string]any)["hubs"])

	trackHub, ok := n.Entity(TableHubs, "track")
	require.True(t, ok)
	assert.Equal(t, []any{int64(1)}, trackHub["items"])

	episodeHub, ok := n.Entity(TableHubs, "episode")
	require.True(t, ok)
	raw := episodeHub["items"].([]any)[0].(map[string]any)
	assert.Equal(t, "Pilot", raw["title"])

	_, ok = n.Entity(TableTracks, "1")
	assert.True(t, ok)
}

func TestNormalize_DevicesAndConnections(t *testing.T) {
	container := &domain.ResourceContainer{
		Kind: domain.KindResourceContainer,
		Devices: []*domain.Device{{
			Kind:     domain.KindDevice,
			ID:       "abc",
			Provides: []string{"server"},
			Connections: []*domain.Connection{
				{Kind: domain.KindConnection, URI: "https://a:32400"},
				{Kind: domain.KindConnection, URI: "http://b:32400"},
			},
		}},
	}

	n, err := Normalize(container)

	require.NoError(t, err)
	device, ok := n.Entity(TableDevices, "abc")
	require.True(t, ok)
	assert.Equal(t, []any{"https://a:32400", "http://b:32400"}, device["connections"])
	assert.Len(t, n.Entities[TableConnections], 2)
}

func TestNormalize_IsDeterministic(t *testing.T) {
	build := func() any {
		return &domain.HubContainer{
			Kind: domain.KindHubContainer,
			Hubs: []*domain.Hub{
				{Kind: domain.KindHub, Type: "artist", Items: []domain.HubItem{
					testArtist(1, "A", testTrack(10, "x")),
					testArtist(2, "B", testTrack(10, "y")),
				}},
				{Kind: domain.KindHub, Type: "track", Items: []domain.HubItem{testTrack(10, "z")}},
			},
		}
	}

	first, err := Normalize(build())
	require.NoError(t, err)
	second, err := Normalize(build())
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))

	track, _ := first.Entity(TableTracks, "10")
	assert.Equal(t, "z", track["title"])
}

func TestNormalize_UnknownKindPassesThrough(t *testing.T) {
	user := &domain.User{Kind: domain.KindUser, ID: int64Ptr(7), Username: "listener"}

	n, err := Normalize(user)

	require.NoError(t, err)
	assert.Empty(t, n.Entities)
	assert.Equal(t, "user", n.Result.Schema)
	result := n.Result.ID.(map[string]any)
	assert.Equal(t, "listener", result["username"])
	assert.Equal(t, int64(7), result["id"])
}

func TestNormalize_MissingKind(t *testing.T) {
	tests := []struct {
		name  string
		input any
	}{
		{"nil", nil},
		{"object without kind", map[string]any{"id": 1}},
		{"scalar", 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.input)
			assert.ErrorIs(t, err, domain.ErrMissingKind)
		})
	}
}

func TestNormalize_EntityWithoutIdentityStaysInline(t *testing.T) {
	n, err := Normalize(&domain.HubContainer{
		Kind: domain.KindHubContainer,
		Hubs: []*domain.Hub{{Kind: domain.KindHub, Items: []domain.HubItem{}}},
	})

	require.NoError(t, err)
	assert.Empty(t, n.Entities)
	hubs := n.Result.ID.(map[string]any)["hubs"].([]any)
	require.Len(t, hubs, 1)
	assert.IsType(t, map[string]any{}, hubs[0])
}

func TestNormalize_ZeroIDsStayInline(t *testing.T) {
	n, err := Normalize(&domain.TrackContainer{
		Kind:   domain.KindTrackContainer,
		Tracks: []*domain.Track{testTrack(0, "a"), testTrack(0, "b"), testTrack(5, "c")},
	})

	require.NoError(t, err)
	require.Len(t, n.Entities[TableTracks], 1)
	_, ok := n.Entity(TableTracks, "0")
	assert.False(t, ok)

	tracks := n.Result.ID.(map[string]any)["tracks"].([]any)
	require.Len(t, tracks, 3)
	assert.Equal(t, "a", tracks[0].(map[string]any)["title"])
	assert.Equal(t, "b", tracks[1].(map[string]any)["title"])
	assert.Equal(t, int64(5), tracks[2])
}

func TestEntityKey(t *testing.T) {
	tests := []struct {
		id  any
		key string
		ok  bool
	}{
		{nil, "", false},
		{"", "", false},
		{"abc", "abc", true},
		{int64(0), "0", false},
		{int64(42), "42", true},
		{float64(0), "0", false},
		{float64(1.5), "1.5", true},
	}

	for _, tt := range tests {
		key, ok := entityKey(tt.id)
		assert.Equal(t, tt.ok, ok, "id %v", tt.id)
		if ok {
			assert.Equal(t, tt.key, key)
		}
	}
}

func TestNormalize_SyncListReferencesDevice(t *testing.T) {
	n, err := Normalize(&domain.SyncList{
		Kind:   domain.KindSyncList,
		Device: &domain.Device{Kind: domain.KindDevice, ID: "phone1", Name: "Phone", Connections: []*domain.Connection{}},
		SyncItems: []*domain.SyncItem{
			{Kind: domain.KindSyncItem, ID: int64Ptr(3), Title: "Help!"},
		},
	})

	require.NoError(t, err)
	device, ok := n.Entity(TableDevices, "phone1")
	require.True(t, ok)
	assert.Equal(t, "Phone", device["name"])

	result := n.Result.ID.(map[string]any)
	assert.Equal(t, "phone1", result["device"])
	items := result["syncItems"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "Help!", items[0].(map[string]any)["title"])
}
