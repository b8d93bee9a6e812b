package domain

import "time"

// Section is a library section. ID is the parsed section key.
type Section struct {
	Kind Kind  `json:"kind"`
	ID   int64 `json:"id"`

	Key        string `json:"key"`
	UUID       string `json:"uuid"`
	Type       string `json:"type"`
	Title      string `json:"title"`
	Agent      string `json:"agent"`
	Scanner    string `json:"scanner"`
	Language   string `json:"language"`
	Art        string `json:"art"`
	Thumb      string `json:"thumb"`
	Composite  string `json:"composite"`
	AllowSync  *bool  `json:"allowSync"`
	Filters    *bool  `json:"filters"`
	Refreshing *bool  `json:"refreshing"`

	CreatedAt *time.Time `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt"`
	ScannedAt *time.Time `json:"scannedAt"`

	Locations []Location `json:"locations"`
}

// Location is a storage path scanned into a Section.
type Location struct {
	ID   *int64 `json:"id"`
	Path string `json:"path"`
}

// SectionContainer is the body of the section listing.
type SectionContainer struct {
	Kind Kind `json:"kind"`
	MediaContainer

	Title     string `json:"title"`
	AllowSync *bool  `json:"allowSync"`

	Sections []*Section `json:"sections"`
}

// GenreRecord maps a genre title to its filter id within one section.
type GenreRecord map[string]int64

// CountryRecord maps a country title to its filter id within one section.
type CountryRecord map[string]int64
