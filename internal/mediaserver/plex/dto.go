package plex

import (
	"github.com/mmcdole/plexkit/internal/accessor"
	"github.com/mmcdole/plexkit/internal/coerce"
	"github.com/mmcdole/plexkit/internal/domain"
)

// Plex wraps every server response in a MediaContainer envelope.
// XML responses translated to JSON carry attributes under "$".
const (
	envelopeKey   = "MediaContainer"
	attributesKey = "$"
)

// unwrap descends into the MediaContainer envelope when present.
func unwrap(v accessor.Value) accessor.Value {
	if v.Has(envelopeKey) {
		return v.Get(envelopeKey)
	}
	return v
}

// attributes returns the XML attribute node of v, or v itself for
// payloads that were served as JSON.
func attributes(v accessor.Value) accessor.Value {
	if v.Has(attributesKey) {
		return v.Get(attributesKey)
	}
	return v
}

// mapArray reads v as a child list and applies fn to every element.
// The result is never nil.
func mapArray[T any](v accessor.Value, fn func(accessor.Value) T) []T {
	items := v.Array()
	out := make([]T, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}

// firstOf reads the first of keys present on v. When none is present the
// first key is read as required so the warning names it.
func firstOf(v accessor.Value, keys ...string) accessor.Value {
	for _, key := range keys {
		if v.Has(key) {
			return v.Get(key)
		}
	}
	return v.Get(keys[0])
}

// optionalOf is firstOf without the warning.
func optionalOf(v accessor.Value, keys ...string) accessor.Value {
	for _, key := range keys {
		if v.Has(key) {
			return v.Get(key)
		}
	}
	return v.Optional(keys[0])
}

func toMediaContainer(v accessor.Value) domain.MediaContainer {
	return domain.MediaContainer{
		Size:            coerce.Number(v.Get("size")),
		TotalSize:       toTotalSize(v),
		Offset:          coerce.Number(v.Optional("offset")),
		Identifier:      coerce.String(v.Optional("identifier")),
		MediaTagPrefix:  coerce.String(v.Optional("mediaTagPrefix")),
		MediaTagVersion: coerce.String(v.Optional("mediaTagVersion")),
	}
}

// toOptionalMediaContainer reads the envelope fields without warnings, for
// entities that are sometimes served as a container and sometimes listed
// inside one.
func toOptionalMediaContainer(v accessor.Value) domain.MediaContainer {
	return domain.MediaContainer{
		Size:            coerce.Number(v.Optional("size")),
		TotalSize:       toTotalSize(v),
		Offset:          coerce.Number(v.Optional("offset")),
		Identifier:      coerce.String(v.Optional("identifier")),
		MediaTagPrefix:  coerce.String(v.Optional("mediaTagPrefix")),
		MediaTagVersion: coerce.String(v.Optional("mediaTagVersion")),
	}
}

// toTotalSize falls back to size when the server omits totalSize.
func toTotalSize(v accessor.Value) *int64 {
	if v.Has("totalSize") {
		return coerce.Number(v.Get("totalSize"))
	}
	return coerce.Number(v.Optional("size"))
}

func toTag(v accessor.Value) domain.Tag {
	return domain.Tag{
		ID:     coerce.Number(v.Optional("id")),
		Filter: coerce.String(v.Optional("filter")),
		Tag:    coerce.String(v.Get("tag")),
	}
}

// toTagList maps an optional tag field. Absent yields an empty list.
func toTagList(v accessor.Value) []domain.Tag {
	return mapArray(v, toTag)
}
