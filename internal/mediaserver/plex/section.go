package plex

import (
	"github.com/mmcdole/plexkit/internal/accessor"
	"github.com/mmcdole/plexkit/internal/coerce"
	"github.com/mmcdole/plexkit/internal/domain"
)

func toLocation(v accessor.Value) domain.Location {
	return domain.Location{
		ID:   coerce.Number(v.Optional("id")),
		Path: coerce.String(v.Get("path")),
	}
}

func toSection(v accessor.Value) *domain.Section {
	key := v.Get("key")

	return &domain.Section{
		Kind: domain.KindSection,
		ID:   coerce.ID(key),

		Key:        coerce.String(key),
		UUID:       coerce.String(v.Get("uuid")),
		Type:       coerce.String(v.Get("type")),
		Title:      coerce.String(v.Get("title")),
		Agent:      coerce.String(v.Get("agent")),
		Scanner:    coerce.String(v.Get("scanner")),
		Language:   coerce.String(v.Get("language")),
		Art:        coerce.String(v.Optional("art")),
		Thumb:      coerce.String(v.Optional("thumb")),
		Composite:  coerce.String(v.Optional("composite")),
		AllowSync:  coerce.Boolean(v.Optional("allowSync")),
		Filters:    coerce.Boolean(v.Optional("filters")),
		Refreshing: coerce.Boolean(v.Optional("refreshing")),

		CreatedAt: coerce.DateFromSeconds(v.Optional("createdAt")),
		UpdatedAt: coerce.DateFromSeconds(v.Get("updatedAt")),
		ScannedAt: coerce.DateFromSeconds(v.Optional("scannedAt")),

		Locations: mapArray(v.Get("Location"), toLocation),
	}
}

func toSectionContainer(v accessor.Value) *domain.SectionContainer {
	v = unwrap(v)

	return &domain.SectionContainer{
		Kind:           domain.KindSectionContainer,
		MediaContainer: toMediaContainer(v),

		Title:     coerce.String(v.Get("title1")),
		AllowSync: coerce.Boolean(v.Optional("allowSync")),

		Sections: mapArray(v.Get("Directory"), toSection),
	}
}

// filterEntry is one row of a section filter listing (genre, country).
type filterEntry struct {
	id    int64
	title string
}

func toFilterEntry(v accessor.Value) filterEntry {
	return filterEntry{
		id:    coerce.ID(v.Get("key")),
		title: coerce.String(v.Get("title")),
	}
}

// toFilterRecord folds a Directory listing into title -> id.
// Duplicate titles keep the last id.
func toFilterRecord(v accessor.Value) map[string]int64 {
	v = unwrap(v)

	entries := mapArray(v.Get("Directory"), toFilterEntry)
	record := make(map[string]int64, len(entries))
	for _, e := range entries {
		record[e.title] = e.id
	}
	return record
}

func toGenreRecord(v accessor.Value) domain.GenreRecord {
	return toFilterRecord(v)
}

func toCountryRecord(v accessor.Value) domain.CountryRecord {
	return toFilterRecord(v)
}
