package domain

import "encoding/json"

// Hub is a size-capped bucket of search results of one content kind.
type Hub struct {
	Kind          Kind   `json:"kind"`
	Type          string `json:"type"`
	HubIdentifier string `json:"hubIdentifier"`
	Title         string `json:"title"`
	Size          *int64 `json:"size"`
	More          *bool  `json:"more"`

	Items []HubItem `json:"items"`
}

// HubContainer is the body of a unified search.
type HubContainer struct {
	Kind Kind `json:"kind"`

	Hubs []*Hub `json:"hubs"`
}

// HubItem is one search result. The set of implementations is closed:
// *Artist, *Album, *Track, *Playlist and RawItem.
type HubItem interface {
	hubItem()
}

func (*Artist) hubItem()   {}
func (*Album) hubItem()    {}
func (*Track) hubItem()    {}
func (*Playlist) hubItem() {}
func (RawItem) hubItem()   {}

// RawItem is a hub result of a kind with no transform. It holds the
// decoded payload unchanged.
type RawItem struct {
	Value any
}

// MarshalJSON emits the wrapped payload as is.
func (r RawItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Value)
}
