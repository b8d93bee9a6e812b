package plex

import (
	"github.com/mmcdole/plexkit/internal/accessor"
	"github.com/mmcdole/plexkit/internal/coerce"
	"github.com/mmcdole/plexkit/internal/domain"
)

func toStream(v accessor.Value) domain.Stream {
	return domain.Stream{
		ID:                 coerce.Number(v.Get("id")),
		StreamType:         coerce.Number(v.Get("streamType")),
		Index:              coerce.Number(v.Optional("index")),
		Codec:              coerce.String(v.Get("codec")),
		Bitrate:            coerce.Number(v.Optional("bitrate")),
		Channels:           coerce.Number(v.Optional("channels")),
		SamplingRate:       coerce.Number(v.Optional("samplingRate")),
		AudioChannelLayout: coerce.String(v.Optional("audioChannelLayout")),
		Format:             coerce.String(v.Optional("format")),
		Key:                coerce.String(v.Optional("key")),
		Provider:           coerce.String(v.Optional("provider")),
		Selected:           coerce.Boolean(v.Optional("selected")),
		Timed:              coerce.Boolean(v.Optional("timed")),
	}
}

func toPart(v accessor.Value) domain.Part {
	return domain.Part{
		ID:           coerce.Number(v.Get("id")),
		Key:          coerce.String(v.Get("key")),
		Duration:     coerce.Number(v.Get("duration")),
		File:         coerce.String(v.Get("file")),
		Size:         coerce.Number(v.Get("size")),
		Container:    coerce.String(v.Get("container")),
		HasThumbnail: coerce.Boolean(v.Optional("hasThumbnail")),
		Streams:      mapArray(v.Optional("Stream"), toStream),
	}
}

func toMedia(v accessor.Value) domain.Media {
	return domain.Media{
		ID:            coerce.Number(v.Get("id")),
		Duration:      coerce.Number(v.Get("duration")),
		Bitrate:       coerce.Number(v.Get("bitrate")),
		AudioChannels: coerce.Number(v.Get("audioChannels")),
		AudioCodec:    coerce.String(v.Get("audioCodec")),
		Container:     coerce.String(v.Get("container")),
		Parts:         mapArray(v.Get("Part"), toPart),
	}
}

func toTrack(v accessor.Value) *domain.Track {
	ratingKey := v.Get("ratingKey")
	parentRatingKey := v.Get("parentRatingKey")
	grandparentRatingKey := v.Get("grandparentRatingKey")

	return &domain.Track{
		Kind:          domain.KindTrack,
		ID:            coerce.ID(ratingKey),
		ParentID:      coerce.ID(parentRatingKey),
		GrandparentID: coerce.ID(grandparentRatingKey),

		RatingKey:            coerce.String(ratingKey),
		ParentRatingKey:      coerce.String(parentRatingKey),
		GrandparentRatingKey: coerce.String(grandparentRatingKey),
		Key:                  coerce.String(v.Get("key")),
		ParentKey:            coerce.String(v.Get("parentKey")),
		GrandparentKey:       coerce.String(v.Get("grandparentKey")),
		GUID:                 coerce.String(v.Optional("guid")),
		ParentGUID:           coerce.String(v.Optional("parentGuid")),
		GrandparentGUID:      coerce.String(v.Optional("grandparentGuid")),
		Type:                 coerce.String(v.Get("type")),
		Title:                coerce.String(v.Get("title")),
		TitleSort:            coerce.String(v.Optional("titleSort")),
		OriginalTitle:        coerce.String(v.Optional("originalTitle")),
		ParentTitle:          coerce.String(v.Get("parentTitle")),
		GrandparentTitle:     coerce.String(v.Get("grandparentTitle")),
		Summary:              coerce.String(v.Optional("summary")),
		Thumb:                coerce.String(v.Optional("thumb")),
		ParentThumb:          coerce.String(v.Optional("parentThumb")),
		GrandparentThumb:     coerce.String(v.Optional("grandparentThumb")),
		Duration:             coerce.Number(v.Get("duration")),
		Index:                coerce.Number(v.Get("index")),
		ParentIndex:          coerce.Number(v.Optional("parentIndex")),
		ViewCount:            coerce.Number(v.Optional("viewCount")),
		RatingCount:          coerce.Number(v.Optional("ratingCount")),
		UserRating:           coerce.Float(v.Optional("userRating")),

		AddedAt:      coerce.DateFromSeconds(v.Get("addedAt")),
		UpdatedAt:    coerce.DateFromSeconds(v.Get("updatedAt")),
		LastViewedAt: coerce.DateFromSeconds(v.Optional("lastViewedAt")),
		LastRatedAt:  coerce.DateFromSeconds(v.Optional("lastRatedAt")),

		PlexMix: v.Optional("Related").Optional("Directory").Raw(),

		Media: mapArray(v.Get("Media"), toMedia),
	}
}

func toAlbum(v accessor.Value) *domain.Album {
	ratingKey := v.Get("ratingKey")
	parentRatingKey := v.Get("parentRatingKey")

	return &domain.Album{
		Kind:     domain.KindAlbum,
		ID:       coerce.ID(ratingKey),
		ParentID: coerce.ID(parentRatingKey),

		RatingKey:               coerce.String(ratingKey),
		ParentRatingKey:         coerce.String(parentRatingKey),
		Key:                     coerce.String(v.Get("key")),
		ParentKey:               coerce.String(v.Get("parentKey")),
		GUID:                    coerce.String(v.Get("guid")),
		ParentGUID:              coerce.String(v.Optional("parentGuid")),
		Type:                    coerce.String(v.Get("type")),
		Title:                   coerce.String(v.Get("title")),
		ParentTitle:             coerce.String(v.Get("parentTitle")),
		Studio:                  coerce.String(v.Optional("studio")),
		Summary:                 coerce.String(v.Optional("summary")),
		Art:                     coerce.String(v.Optional("art")),
		Thumb:                   coerce.String(v.Optional("thumb")),
		ParentThumb:             coerce.String(v.Optional("parentThumb")),
		LibrarySectionID:        coerce.String(v.Optional("librarySectionID")),
		LibrarySectionKey:       coerce.String(v.Optional("librarySectionKey")),
		LibrarySectionTitle:     coerce.String(v.Optional("librarySectionTitle")),
		LoudnessAnalysisVersion: coerce.String(v.Optional("loudnessAnalysisVersion")),
		Index:                   coerce.Number(v.Get("index")),
		LeafCount:               coerce.Number(v.Optional("leafCount")),
		ViewedLeafCount:         coerce.Number(v.Optional("viewedLeafCount")),
		ViewCount:               coerce.Number(v.Optional("viewCount")),
		Year:                    coerce.Number(v.Optional("year")),
		UserRating:              coerce.Float(v.Optional("userRating")),

		AddedAt:               coerce.DateFromSeconds(v.Get("addedAt")),
		UpdatedAt:             coerce.DateFromSeconds(v.Optional("updatedAt")),
		DeletedAt:             coerce.DateFromSeconds(v.Optional("deletedAt")),
		LastViewedAt:          coerce.DateFromSeconds(v.Optional("lastViewedAt")),
		LastRatedAt:           coerce.DateFromSeconds(v.Optional("lastRatedAt")),
		OriginallyAvailableAt: coerce.Date(v.Optional("originallyAvailableAt")),

		Genre:    toTagList(v.Optional("Genre")),
		Mood:     toTagList(v.Optional("Mood")),
		Style:    toTagList(v.Optional("Style")),
		Director: toTagList(v.Optional("Director")),
	}
}

// toPopularTracks reads the PopularLeaves hub included with
// includePopularLeaves=1.
func toPopularTracks(v accessor.Value) []*domain.Track {
	if !v.Has("PopularLeaves") {
		return []*domain.Track{}
	}
	return mapArray(v.Get("PopularLeaves").Get("Metadata"), toTrack)
}

func toArtist(v accessor.Value) *domain.Artist {
	ratingKey := v.Get("ratingKey")

	return &domain.Artist{
		Kind: domain.KindArtist,
		ID:   coerce.ID(ratingKey),

		RatingKey: coerce.String(ratingKey),
		Key:       coerce.String(v.Get("key")),
		GUID:      coerce.String(v.Optional("guid")),
		Type:      coerce.String(v.Get("type")),
		Title:     coerce.String(v.Get("title")),
		TitleSort: coerce.String(v.Optional("titleSort")),
		Summary:   coerce.String(v.Optional("summary")),
		Art:       coerce.String(v.Optional("art")),
		Thumb:     coerce.String(v.Optional("thumb")),
		Index:     coerce.Number(v.Get("index")),
		ViewCount: coerce.Number(v.Optional("viewCount")),

		AddedAt:      coerce.DateFromSeconds(v.Get("addedAt")),
		UpdatedAt:    coerce.DateFromSeconds(v.Get("updatedAt")),
		DeletedAt:    coerce.DateFromSeconds(v.Optional("deletedAt")),
		LastViewedAt: coerce.DateFromSeconds(v.Optional("lastViewedAt")),

		Genre:         toTagList(v.Optional("Genre")),
		Country:       toTagList(v.Optional("Country")),
		PopularTracks: toPopularTracks(v),
	}
}

func toArtistContainer(v accessor.Value) *domain.ArtistContainer {
	v = unwrap(v)

	return &domain.ArtistContainer{
		Kind:           domain.KindArtistContainer,
		MediaContainer: toMediaContainer(v),

		AllowSync:           coerce.Boolean(v.Get("allowSync")),
		Art:                 coerce.String(v.Optional("art")),
		LibrarySectionID:    coerce.String(v.Get("librarySectionID")),
		LibrarySectionTitle: coerce.String(v.Get("librarySectionTitle")),
		LibrarySectionUUID:  coerce.String(v.Get("librarySectionUUID")),
		NoCache:             coerce.Boolean(v.Optional("nocache")),
		Thumb:               coerce.String(v.Optional("thumb")),
		Title1:              coerce.String(v.Optional("title1")),
		Title2:              coerce.String(v.Optional("title2")),
		ViewGroup:           coerce.String(v.Optional("viewGroup")),
		ViewMode:            coerce.Number(v.Optional("viewMode")),

		Artists: mapArray(v.Get("Metadata"), toArtist),
	}
}

func toAlbumContainer(v accessor.Value) *domain.AlbumContainer {
	v = unwrap(v)

	return &domain.AlbumContainer{
		Kind:           domain.KindAlbumContainer,
		MediaContainer: toMediaContainer(v),

		AllowSync:    coerce.Boolean(v.Get("allowSync")),
		Art:          coerce.String(v.Optional("art")),
		MixedParents: coerce.Boolean(v.Optional("mixedParents")),
		NoCache:      coerce.Boolean(v.Optional("nocache")),
		Thumb:        coerce.String(v.Optional("thumb")),
		Title1:       coerce.String(v.Optional("title1")),
		Title2:       coerce.String(v.Optional("title2")),
		ViewGroup:    coerce.String(v.Optional("viewGroup")),
		ViewMode:     coerce.Number(v.Optional("viewMode")),

		Albums: mapArray(v.Get("Metadata"), toAlbum),
	}
}

func toTrackContainer(v accessor.Value) *domain.TrackContainer {
	v = unwrap(v)

	return &domain.TrackContainer{
		Kind:           domain.KindTrackContainer,
		MediaContainer: toMediaContainer(v),

		AllowSync:            coerce.Boolean(v.Get("allowSync")),
		Art:                  coerce.String(v.Optional("art")),
		GrandparentRatingKey: coerce.String(v.Optional("grandparentRatingKey")),
		GrandparentThumb:     coerce.String(v.Optional("grandparentThumb")),
		GrandparentTitle:     coerce.String(v.Optional("grandparentTitle")),
		Key:                  coerce.String(v.Optional("key")),
		LibrarySectionID:     coerce.String(v.Get("librarySectionID")),
		LibrarySectionTitle:  coerce.String(v.Get("librarySectionTitle")),
		LibrarySectionUUID:   coerce.String(v.Get("librarySectionUUID")),
		NoCache:              coerce.Boolean(v.Optional("nocache")),
		ParentIndex:          coerce.Number(v.Optional("parentIndex")),
		ParentTitle:          coerce.String(v.Optional("parentTitle")),
		ParentYear:           coerce.Number(v.Optional("parentYear")),
		Thumb:                coerce.String(v.Optional("thumb")),
		Title1:               coerce.String(v.Optional("title1")),
		Title2:               coerce.String(v.Optional("title2")),
		ViewGroup:            coerce.String(v.Optional("viewGroup")),
		ViewMode:             coerce.Number(v.Optional("viewMode")),

		Tracks: mapArray(v.Get("Metadata"), toTrack),
	}
}
