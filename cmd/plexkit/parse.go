package main

import (
	"fmt"
	"maps"
	"slices"

	"github.com/mmcdole/plexkit/internal/accessor"
	"github.com/mmcdole/plexkit/internal/mediaserver/plex"
)

type parseFunc func(raw any) (any, []accessor.Warning)

func entry[T any](fn func(any) (T, []accessor.Warning)) parseFunc {
	return func(raw any) (any, []accessor.Warning) {
		return fn(raw)
	}
}

// parsers maps a -kind value to its parser entry point.
func parsers(p *plex.Parser) map[string]parseFunc {
	return map[string]parseFunc{
		"artist":            entry(p.Artist),
		"album":             entry(p.Album),
		"track":             entry(p.Track),
		"artistContainer":   entry(p.ArtistContainer),
		"albumContainer":    entry(p.AlbumContainer),
		"trackContainer":    entry(p.TrackContainer),
		"section":           entry(p.Section),
		"sectionContainer":  entry(p.SectionContainer),
		"genres":            entry(p.GenreRecord),
		"countries":         entry(p.CountryRecord),
		"playlist":          entry(p.Playlist),
		"playlistContainer": entry(p.PlaylistContainer),
		"playQueue":         entry(p.PlayQueue),
		"hub":               entry(p.Hub),
		"hubContainer":      entry(p.HubContainer),
		"device":            entry(p.Device),
		"connection":        entry(p.Connection),
		"deviceContainer":   entry(p.DeviceContainer),
		"resourceContainer": entry(p.ResourceContainer),
		"user":              entry(p.User),
		"pin":               entry(p.Pin),
		"syncList":          entry(p.SyncList),
	}
}

func lookupParser(p *plex.Parser, kind string) (parseFunc, error) {
	all := parsers(p)
	fn, ok := all[kind]
	if !ok {
		return nil, fmt.Errorf("unknown kind %q (one of %v)", kind, slices.Sorted(maps.Keys(all)))
	}
	return fn, nil
}
