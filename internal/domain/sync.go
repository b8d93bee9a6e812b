package domain

// SyncList is the body of a device's sync item listing.
type SyncList struct {
	Kind Kind `json:"kind"`
	MediaContainer

	Device    *Device     `json:"device"`
	SyncItems []*SyncItem `json:"syncItems"`
}

// SyncItem is one library item queued for offline sync to a device.
type SyncItem struct {
	Kind Kind   `json:"kind"`
	ID   *int64 `json:"id"`

	Version      *int64 `json:"version"`
	RootTitle    string `json:"rootTitle"`
	Title        string `json:"title"`
	MetadataType string `json:"metadataType"`
	ContentType  string `json:"contentType"`

	Server        SyncServer        `json:"server"`
	Status        SyncStatus        `json:"status"`
	MediaSettings SyncMediaSettings `json:"mediaSettings"`
	Policy        SyncPolicy        `json:"policy"`
	Location      SyncLocation      `json:"location"`
}

// SyncServer names the server a SyncItem is pulled from.
type SyncServer struct {
	MachineIdentifier string `json:"machineIdentifier"`
}

// SyncStatus is the transfer state of a SyncItem.
type SyncStatus struct {
	FailureCode          *int64 `json:"failureCode"`
	Failure              string `json:"failure"`
	State                string `json:"state"`
	ItemsCount           *int64 `json:"itemsCount"`
	ItemsCompleteCount   *int64 `json:"itemsCompleteCount"`
	TotalSize            *int64 `json:"totalSize"`
	ItemsDownloadedCount *int64 `json:"itemsDownloadedCount"`
	ItemsReadyCount      *int64 `json:"itemsReadyCount"`
	ItemsSuccessfulCount *int64 `json:"itemsSuccessfulCount"`
}

// SyncMediaSettings holds the transcode settings of a SyncItem.
type SyncMediaSettings struct {
	AudioBoost      *int64 `json:"audioBoost"`
	MaxVideoBitrate *int64 `json:"maxVideoBitrate"`
	MusicBitrate    *int64 `json:"musicBitrate"`
	PhotoQuality    *int64 `json:"photoQuality"`
	PhotoResolution string `json:"photoResolution"`
	SubtitleSize    *int64 `json:"subtitleSize"`
	VideoQuality    *int64 `json:"videoQuality"`
	VideoResolution string `json:"videoResolution"`
}

// SyncPolicy limits which children of a SyncItem are synced.
type SyncPolicy struct {
	Scope     string `json:"scope"`
	Unwatched *bool  `json:"unwatched"`
}

// SyncLocation is the library URI a SyncItem was created from.
type SyncLocation struct {
	URI string `json:"uri"`
}
