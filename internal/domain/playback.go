package domain

// PlayQueue mirrors a server-owned play queue. Version is the server's
// optimistic update counter.
type PlayQueue struct {
	Kind Kind `json:"kind"`
	MediaContainer

	ID                     *int64 `json:"id"`
	SelectedItemID         *int64 `json:"selectedItemId"`
	SelectedItemOffset     *int64 `json:"selectedItemOffset"`
	SelectedMetadataItemID *int64 `json:"selectedMetadataItemId"`
	Shuffled               *bool  `json:"shuffled"`
	SourceURI              string `json:"sourceURI"`
	TotalCount             *int64 `json:"totalCount"`
	Version                *int64 `json:"version"`

	Items []*PlayQueueItem `json:"items"`
}

// PlayQueueItem wraps one Track at a position in a queue.
type PlayQueueItem struct {
	Kind             Kind   `json:"kind"`
	ID               *int64 `json:"id"`
	GUID             string `json:"guid"`
	LibrarySectionID *int64 `json:"librarySectionId"`

	Track *Track `json:"track"`
}
