package plex

import (
	"github.com/mmcdole/plexkit/internal/accessor"
	"github.com/mmcdole/plexkit/internal/coerce"
	"github.com/mmcdole/plexkit/internal/domain"
)

// toPlaylistItem reads one playlist entry. The entry is the track itself
// with position fields mixed in.
func toPlaylistItem(playlistID int64) func(accessor.Value) *domain.PlaylistItem {
	return func(v accessor.Value) *domain.PlaylistItem {
		return &domain.PlaylistItem{
			Kind: domain.KindPlaylistItem,
			// smart playlists have no playlistItemID
			ID:         coerce.Number(v.Optional("playlistItemID")),
			PlaylistID: playlistID,

			LibrarySectionID:    coerce.Number(v.Get("librarySectionID")),
			LibrarySectionKey:   coerce.String(v.Get("librarySectionKey")),
			LibrarySectionTitle: coerce.String(v.Get("librarySectionTitle")),

			Track: toTrack(v),
		}
	}
}

// toPlaylist reads a playlist either from a listing entry or from the
// items endpoint, where the playlist fields sit on the envelope itself.
func toPlaylist(v accessor.Value) *domain.Playlist {
	container := toOptionalMediaContainer(v)
	if v.Has(envelopeKey) {
		v = v.Get(envelopeKey)
		container = toMediaContainer(v)
	}

	ratingKey := v.Get("ratingKey")
	id := coerce.ID(ratingKey)

	return &domain.Playlist{
		Kind:           domain.KindPlaylist,
		ID:             id,
		MediaContainer: container,

		RatingKey:    coerce.String(ratingKey),
		Key:          coerce.String(v.Optional("key")),
		GUID:         coerce.String(v.Optional("guid")),
		Type:         coerce.String(v.Optional("type")),
		Title:        coerce.String(v.Get("title")),
		TitleSort:    coerce.String(v.Optional("titleSort")),
		Summary:      coerce.String(v.Optional("summary")),
		Composite:    coerce.String(v.Get("composite")),
		PlaylistType: coerce.String(v.Get("playlistType")),
		Smart:        coerce.Boolean(v.Get("smart")),
		Duration:     coerce.Number(v.Get("duration")),
		LeafCount:    coerce.Number(v.Get("leafCount")),
		ViewCount:    coerce.Number(v.Optional("viewCount")),

		AddedAt:      coerce.DateFromSeconds(v.Optional("addedAt")),
		UpdatedAt:    coerce.DateFromSeconds(v.Optional("updatedAt")),
		LastViewedAt: coerce.DateFromSeconds(v.Optional("lastViewedAt")),

		Items: mapArray(v.Optional("Metadata"), toPlaylistItem(id)),
	}
}

func toPlaylistContainer(v accessor.Value) *domain.PlaylistContainer {
	v = unwrap(v)

	return &domain.PlaylistContainer{
		Kind:           domain.KindPlaylistContainer,
		MediaContainer: toMediaContainer(v),

		Playlists: mapArray(v.Get("Metadata"), toPlaylist),
	}
}

func toPlayQueueItem(v accessor.Value) *domain.PlayQueueItem {
	return &domain.PlayQueueItem{
		Kind:             domain.KindPlayQueueItem,
		ID:               coerce.Number(v.Get("playQueueItemID")),
		GUID:             coerce.String(v.Get("guid")),
		LibrarySectionID: coerce.Number(v.Get("librarySectionID")),

		Track: toTrack(v),
	}
}

func toPlayQueue(v accessor.Value) *domain.PlayQueue {
	v = unwrap(v)

	return &domain.PlayQueue{
		Kind:           domain.KindPlayQueue,
		MediaContainer: toMediaContainer(v),

		ID:                     coerce.Number(v.Get("playQueueID")),
		SelectedItemID:         coerce.Number(v.Get("playQueueSelectedItemID")),
		SelectedItemOffset:     coerce.Number(v.Get("playQueueSelectedItemOffset")),
		SelectedMetadataItemID: coerce.Number(v.Get("playQueueSelectedMetadataItemID")),
		Shuffled:               coerce.Boolean(v.Get("playQueueShuffled")),
		SourceURI:              coerce.String(v.Get("playQueueSourceURI")),
		TotalCount:             coerce.Number(v.Get("playQueueTotalCount")),
		Version:                coerce.Number(v.Get("playQueueVersion")),

		Items: mapArray(v.Get("Metadata"), toPlayQueueItem),
	}
}
