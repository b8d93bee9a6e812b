package plex

import (
	"fmt"
	"strconv"

	"github.com/mmcdole/plexkit/internal/accessor"
	"github.com/mmcdole/plexkit/internal/coerce"
	"github.com/mmcdole/plexkit/internal/domain"
)

type hubItemTransform func(accessor.Value) domain.HubItem

// hubItemTransformFor resolves the item transform from the hub type.
// Types without a transform keep their items as raw payloads.
func hubItemTransformFor(hubType string) hubItemTransform {
	switch hubType {
	case "artist":
		return func(v accessor.Value) domain.HubItem { return toArtist(v) }
	case "album":
		return func(v accessor.Value) domain.HubItem { return toAlbum(v) }
	case "track":
		return func(v accessor.Value) domain.HubItem { return toTrack(v) }
	case "playlist":
		return func(v accessor.Value) domain.HubItem { return toPlaylist(v) }
	default:
		return func(v accessor.Value) domain.HubItem { return domain.RawItem{Value: v.Raw()} }
	}
}

// hubItemKey returns the dedup identity of an item. Items without an
// identity are never deduplicated.
func hubItemKey(item domain.HubItem) (string, bool) {
	switch it := item.(type) {
	case *domain.Artist:
		return idKey(it.ID)
	case *domain.Album:
		return idKey(it.ID)
	case *domain.Track:
		return idKey(it.ID)
	case *domain.Playlist:
		return idKey(it.ID)
	case domain.RawItem:
		return rawItemKey(it.Value)
	default:
		return "", false
	}
}

func idKey(id int64) (string, bool) {
	if id == 0 {
		return "", false
	}
	return strconv.FormatInt(id, 10), true
}

// rawItemKey uses the raw id, then the rating key. Numbers and numeric
// strings with the same digits share an identity.
func rawItemKey(raw any) (string, bool) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return "", false
	}
	for _, field := range []string{"id", "ratingKey"} {
		value, ok := obj[field]
		if !ok || value == nil {
			continue
		}
		return fmt.Sprint(value), true
	}
	return "", false
}

// dedupeKeepLast drops item i when a later item shares its identity.
// Surviving items keep their relative order.
func dedupeKeepLast(items []domain.HubItem) []domain.HubItem {
	last := make(map[string]int, len(items))
	for i, item := range items {
		if key, ok := hubItemKey(item); ok {
			last[key] = i
		}
	}

	out := make([]domain.HubItem, 0, len(items))
	for i, item := range items {
		if key, ok := hubItemKey(item); ok && last[key] != i {
			continue
		}
		out = append(out, item)
	}
	return out
}

func toHub(v accessor.Value) *domain.Hub {
	hubType := v.Get("type")
	transform := hubItemTransformFor(coerce.String(hubType))

	return &domain.Hub{
		Kind:          domain.KindHub,
		Type:          coerce.String(hubType),
		HubIdentifier: coerce.String(v.Get("hubIdentifier")),
		Title:         coerce.String(v.Get("title")),
		Size:          coerce.Number(v.Get("size")),
		More:          coerce.Boolean(v.Get("more")),

		Items: dedupeKeepLast(mapArray(v.Optional("Metadata"), transform)),
	}
}

func toHubContainer(v accessor.Value) *domain.HubContainer {
	v = unwrap(v)

	return &domain.HubContainer{
		Kind: domain.KindHubContainer,
		Hubs: mapArray(v.Get("Hub"), toHub),
	}
}
