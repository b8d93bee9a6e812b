package plex

import (
	"github.com/mmcdole/plexkit/internal/accessor"
	"github.com/mmcdole/plexkit/internal/coerce"
	"github.com/mmcdole/plexkit/internal/domain"
)

const syncListKey = "SyncList"

// child returns the first element of a child list. XML translation wraps
// every child element in an array, or collapses a single one to an object.
func child(v accessor.Value, key string) accessor.Value {
	list := v.Get(key).Array()
	if len(list) == 0 {
		return v.Optional(key)
	}
	return list[0]
}

func toSyncServer(v accessor.Value) domain.SyncServer {
	return domain.SyncServer{
		MachineIdentifier: coerce.String(v.Get("machineIdentifier")),
	}
}

func toSyncStatus(v accessor.Value) domain.SyncStatus {
	return domain.SyncStatus{
		FailureCode:          coerce.Number(v.Optional("failureCode")),
		Failure:              coerce.String(v.Optional("failure")),
		State:                coerce.String(v.Get("state")),
		ItemsCount:           coerce.Number(v.Get("itemsCount")),
		ItemsCompleteCount:   coerce.Number(v.Get("itemsCompleteCount")),
		TotalSize:            coerce.Number(v.Get("totalSize")),
		ItemsDownloadedCount: coerce.Number(v.Optional("itemsDownloadedCount")),
		ItemsReadyCount:      coerce.Number(v.Optional("itemsReadyCount")),
		ItemsSuccessfulCount: coerce.Number(v.Optional("itemsSuccessfulCount")),
	}
}

func toSyncMediaSettings(v accessor.Value) domain.SyncMediaSettings {
	return domain.SyncMediaSettings{
		AudioBoost:      coerce.Number(v.Optional("audioBoost")),
		MaxVideoBitrate: coerce.Number(v.Optional("maxVideoBitrate")),
		MusicBitrate:    coerce.Number(v.Optional("musicBitrate")),
		PhotoQuality:    coerce.Number(v.Optional("photoQuality")),
		PhotoResolution: coerce.String(v.Optional("photoResolution")),
		SubtitleSize:    coerce.Number(v.Optional("subtitleSize")),
		VideoQuality:    coerce.Number(v.Optional("videoQuality")),
		VideoResolution: coerce.String(v.Optional("videoResolution")),
	}
}

func toSyncPolicy(v accessor.Value) domain.SyncPolicy {
	return domain.SyncPolicy{
		Scope:     coerce.String(v.Get("scope")),
		Unwatched: coerce.Boolean(v.Optional("unwatched")),
	}
}

func toSyncLocation(v accessor.Value) domain.SyncLocation {
	return domain.SyncLocation{
		URI: coerce.String(v.Get("uri")),
	}
}

func toSyncItem(v accessor.Value) *domain.SyncItem {
	attrs := attributes(v)

	return &domain.SyncItem{
		Kind: domain.KindSyncItem,
		ID:   coerce.Number(attrs.Get("id")),

		Version:      coerce.Number(attrs.Optional("version")),
		RootTitle:    coerce.String(attrs.Optional("rootTitle")),
		Title:        coerce.String(attrs.Get("title")),
		MetadataType: coerce.String(attrs.Optional("metadataType")),
		ContentType:  coerce.String(attrs.Optional("contentType")),

		Server:        toSyncServer(attributes(child(v, "Server"))),
		Status:        toSyncStatus(attributes(child(v, "Status"))),
		MediaSettings: toSyncMediaSettings(attributes(child(v, "MediaSettings"))),
		Policy:        toSyncPolicy(attributes(child(v, "Policy"))),
		Location:      toSyncLocation(attributes(child(v, "Location"))),
	}
}

func toSyncList(v accessor.Value) *domain.SyncList {
	if v.Has(syncListKey) {
		v = v.Get(syncListKey)
	}

	var device *domain.Device
	if d := child(v, "Device"); d.Exists() {
		device = toDevice(d)
	}

	var items []accessor.Value
	if list := child(v, "SyncItems"); list.Exists() {
		items = list.Optional("SyncItem").Array()
	}
	syncItems := make([]*domain.SyncItem, 0, len(items))
	for _, item := range items {
		syncItems = append(syncItems, toSyncItem(item))
	}

	return &domain.SyncList{
		Kind:           domain.KindSyncList,
		MediaContainer: toOptionalMediaContainer(attributes(v)),

		Device:    device,
		SyncItems: syncItems,
	}
}
