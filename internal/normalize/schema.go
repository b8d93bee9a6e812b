package normalize

import (
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/mmcdole/plexkit/internal/domain"
)

// Table names of the normalized store.
const (
	TableArtists     = "artists"
	TableAlbums      = "albums"
	TableTracks      = "tracks"
	TablePlaylists   = "playlists"
	TableSections    = "sections"
	TableDevices     = "devices"
	TableConnections = "connections"
	TableHubs        = "hubs"
)

// schema flattens one node of a decoded graph. visit returns the value that
// replaces the node in its parent: an id for entities, the node itself
// otherwise. Nodes that do not have the expected shape pass through.
type schema interface {
	visit(w *walker, v any) any
}

type fields map[string]schema

// entity is a schema whose nodes are stored in a table and replaced by
// their identity.
type entity struct {
	table  string
	idAttr string
	fields fields
}

// object is an inline shape whose relations are flattened in place.
type object struct {
	fields fields
}

// array applies its element schema to every element of a list.
type array struct {
	of schema
}

// union picks a schema by the node's kind tag.
type union map[domain.Kind]schema

func (e *entity) visit(w *walker, v any) any {
	obj, ok := v.(map[string]any)
	if !ok {
		return v
	}
	w.flatten(obj, e.fields)

	attr := e.idAttr
	if attr == "" {
		attr = "id"
	}
	id := obj[attr]
	key, ok := entityKey(id)
	if !ok {
		return obj
	}
	w.put(e.table, key, obj)
	return id
}

func (o object) visit(w *walker, v any) any {
	obj, ok := v.(map[string]any)
	if !ok {
		return v
	}
	w.flatten(obj, o.fields)
	return obj
}

func (a array) visit(w *walker, v any) any {
	list, ok := v.([]any)
	if !ok {
		return v
	}
	for i, item := range list {
		list[i] = a.of.visit(w, item)
	}
	return list
}

func (u union) visit(w *walker, v any) any {
	s, ok := u.resolve(v)
	if !ok {
		return v
	}
	return s.visit(w, v)
}

func (u union) resolve(v any) (schema, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	kind, _ := obj["kind"].(string)
	s, ok := u[domain.Kind(kind)]
	return s, ok
}

// entityKey returns the table key of an identity. Absent identities,
// empty strings and zero ids leave the node inline. Rating keys are
// positive, so a zero id means the payload carried none.
func entityKey(id any) (string, bool) {
	switch id := id.(type) {
	case nil:
		return "", false
	case string:
		return id, id != ""
	case int64:
		return strconv.FormatInt(id, 10), id != 0
	case float64:
		return fmt.Sprint(id), id != 0
	default:
		return fmt.Sprint(id), true
	}
}

// walker accumulates entity tables for one Normalize call.
type walker struct {
	entities map[string]map[string]any
}

// flatten visits the relations of obj in key order so that the last write
// to a shared entity is stable across runs.
func (w *walker) flatten(obj map[string]any, rel fields) {
	for _, name := range slices.Sorted(maps.Keys(rel)) {
		if child, ok := obj[name]; ok {
			obj[name] = rel[name].visit(w, child)
		}
	}
}

func (w *walker) put(table, key string, obj map[string]any) {
	t, ok := w.entities[table]
	if !ok {
		t = make(map[string]any)
		w.entities[table] = t
	}
	t[key] = obj
}

var (
	trackSchema      = &entity{table: TableTracks}
	albumSchema      = &entity{table: TableAlbums}
	sectionSchema    = &entity{table: TableSections}
	connectionSchema = &entity{table: TableConnections, idAttr: "uri"}

	artistSchema = &entity{
		table:  TableArtists,
		fields: fields{"popularTracks": array{trackSchema}},
	}

	playlistItemSchema = object{fields{"track": trackSchema}}

	playlistSchema = &entity{
		table:  TablePlaylists,
		fields: fields{"items": array{playlistItemSchema}},
	}

	deviceSchema = &entity{
		table:  TableDevices,
		fields: fields{"connections": array{connectionSchema}},
	}

	hubItemSchema = union{
		domain.KindArtist:   artistSchema,
		domain.KindAlbum:    albumSchema,
		domain.KindTrack:    trackSchema,
		domain.KindPlaylist: playlistSchema,
	}

	hubSchema = &entity{
		table:  TableHubs,
		idAttr: "type",
		fields: fields{"items": array{hubItemSchema}},
	}

	playQueueItemSchema = object{fields{"track": trackSchema}}
	playQueueSchema     = object{fields{"items": array{playQueueItemSchema}}}

	rootSchema = union{
		domain.KindArtist:        artistSchema,
		domain.KindAlbum:         albumSchema,
		domain.KindTrack:         trackSchema,
		domain.KindPlaylist:      playlistSchema,
		domain.KindPlaylistItem:  playlistItemSchema,
		domain.KindPlayQueue:     playQueueSchema,
		domain.KindPlayQueueItem: playQueueItemSchema,
		domain.KindSection:       sectionSchema,
		domain.KindHub:           hubSchema,
		domain.KindDevice:        deviceSchema,
		domain.KindConnection:    connectionSchema,

		domain.KindArtistContainer:   object{fields{"artists": array{artistSchema}}},
		domain.KindAlbumContainer:    object{fields{"albums": array{albumSchema}}},
		domain.KindTrackContainer:    object{fields{"tracks": array{trackSchema}}},
		domain.KindPlaylistContainer: object{fields{"playlists": array{playlistSchema}}},
		domain.KindSectionContainer:  object{fields{"sections": array{sectionSchema}}},
		domain.KindHubContainer:      object{fields{"hubs": array{hubSchema}}},
		domain.KindResourceContainer: object{fields{"devices": array{deviceSchema}}},
		domain.KindDeviceContainer:   object{fields{"devices": array{deviceSchema}}},
		domain.KindSyncList:          object{fields{"device": deviceSchema}},
	}
)
