package plex

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/mmcdole/plexkit/internal/domain"
)

// Fetcher performs one GET against a Plex endpoint and returns the decoded
// body. XML bodies are expected in the "$" attribute convention.
// Transport, authentication and retries are the implementation's concern.
type Fetcher interface {
	Fetch(ctx context.Context, path string, query url.Values) (any, error)
}

// Library issues media server requests through a Fetcher and parses each
// body with the matching parser. Warnings are logged by the parser.
type Library struct {
	fetcher Fetcher
	parser  *Parser
	logger  *slog.Logger
}

// NewLibrary creates a library reader over fetcher.
func NewLibrary(fetcher Fetcher, logger *slog.Logger) *Library {
	if logger == nil {
		logger = slog.Default()
	}
	return &Library{
		fetcher: fetcher,
		parser:  NewParser(logger),
		logger:  logger,
	}
}

// fetch performs a request and wraps failures with the path
func fetch(ctx context.Context, f Fetcher, logger *slog.Logger, path string, query url.Values) (any, error) {
	logger.Debug("plex request", "path", path, "query", query.Encode())

	body, err := f.Fetch(ctx, path, query)
	if err != nil {
		logger.Error("plex request failed", "path", path, "error", err)
		return nil, fmt.Errorf("fetch %s: %w", path, err)
	}
	return body, nil
}

func (l *Library) fetch(ctx context.Context, path string, query url.Values) (any, error) {
	return fetch(ctx, l.fetcher, l.logger, path, query)
}

func typeQuery(mediaType domain.MediaType, extra url.Values) url.Values {
	query := url.Values{}
	for k, v := range extra {
		query[k] = v
	}
	query.Set("type", strconv.Itoa(int(mediaType)))
	return query
}

// Sections returns all library sections
func (l *Library) Sections(ctx context.Context) (*domain.SectionContainer, error) {
	body, err := l.fetch(ctx, "/library/sections", nil)
	if err != nil {
		return nil, err
	}
	sections, _ := l.parser.SectionContainer(body)
	return sections, nil
}

// SectionItems lists a section filtered to one media type. The result type
// follows ParseType.
func (l *Library) SectionItems(ctx context.Context, sectionID int64, mediaType domain.MediaType, query url.Values) (any, error) {
	path := fmt.Sprintf("/library/sections/%d/all", sectionID)
	body, err := l.fetch(ctx, path, typeQuery(mediaType, query))
	if err != nil {
		return nil, err
	}
	result, _, err := l.parser.ParseType(mediaType, body)
	return result, err
}

// Metadata returns one item wrapped in the container for its media type.
func (l *Library) Metadata(ctx context.Context, id int64, mediaType domain.MediaType, query url.Values) (any, error) {
	path := fmt.Sprintf("/library/metadata/%d", id)
	body, err := l.fetch(ctx, path, query)
	if err != nil {
		return nil, err
	}
	result, _, err := l.parser.ParseType(mediaType, body)
	return result, err
}

// MetadataChildren returns the children of an item (albums of an artist,
// tracks of an album). mediaType is the type of the children.
func (l *Library) MetadataChildren(ctx context.Context, id int64, mediaType domain.MediaType, query url.Values) (any, error) {
	path := fmt.Sprintf("/library/metadata/%d/children", id)
	body, err := l.fetch(ctx, path, query)
	if err != nil {
		return nil, err
	}
	result, _, err := l.parser.ParseType(mediaType, body)
	return result, err
}

// Artist returns one artist, including its popular tracks.
func (l *Library) Artist(ctx context.Context, id int64) (*domain.Artist, error) {
	query := url.Values{}
	query.Set("includePopularLeaves", "1")

	result, err := l.Metadata(ctx, id, domain.MediaTypeArtist, query)
	if err != nil {
		return nil, err
	}
	artists := result.(*domain.ArtistContainer).Artists
	if len(artists) == 0 {
		return nil, fmt.Errorf("artist %d: %w", id, domain.ErrNotFound)
	}
	return artists[0], nil
}

// Tracks returns one page of the tracks in a section.
// Returns (items, totalSize, error).
func (l *Library) Tracks(ctx context.Context, sectionID int64, offset, limit int) ([]*domain.Track, int, error) {
	query := url.Values{}
	query.Set("X-Plex-Container-Start", strconv.Itoa(offset))
	if limit > 0 {
		query.Set("X-Plex-Container-Size", strconv.Itoa(limit))
	}

	result, err := l.SectionItems(ctx, sectionID, domain.MediaTypeTrack, query)
	if err != nil {
		return nil, 0, err
	}
	container := result.(*domain.TrackContainer)
	return container.Tracks, container.Total(), nil
}

// FetchAllTracks pages through every track of a section.
func (l *Library) FetchAllTracks(ctx context.Context, sectionID int64, chunkSize int, onProgress domain.ProgressFunc) ([]*domain.Track, error) {
	fetchPage := func(ctx context.Context, offset, limit int) ([]*domain.Track, int, error) {
		return l.Tracks(ctx, sectionID, offset, limit)
	}
	return fetchAll(ctx, fetchPage, chunkSize, onProgress)
}

// Genres returns the genre filter values of a section
func (l *Library) Genres(ctx context.Context, sectionID int64) (domain.GenreRecord, error) {
	body, err := l.fetch(ctx, fmt.Sprintf("/library/sections/%d/genre", sectionID), nil)
	if err != nil {
		return nil, err
	}
	genres, _ := l.parser.GenreRecord(body)
	return genres, nil
}

// Countries returns the country filter values of a section
func (l *Library) Countries(ctx context.Context, sectionID int64) (domain.CountryRecord, error) {
	body, err := l.fetch(ctx, fmt.Sprintf("/library/sections/%d/country", sectionID), nil)
	if err != nil {
		return nil, err
	}
	countries, _ := l.parser.CountryRecord(body)
	return countries, nil
}

// SearchHubs runs a unified search. limit caps each hub.
func (l *Library) SearchHubs(ctx context.Context, query string, limit int) (*domain.HubContainer, error) {
	q := url.Values{}
	q.Set("query", query)
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	body, err := l.fetch(ctx, "/hubs/search", q)
	if err != nil {
		return nil, err
	}
	hubs, _ := l.parser.HubContainer(body)
	return hubs, nil
}

// Playlists returns all audio playlists
func (l *Library) Playlists(ctx context.Context) (*domain.PlaylistContainer, error) {
	body, err := l.fetch(ctx, "/playlists/all", typeQuery(domain.MediaTypePlaylist, nil))
	if err != nil {
		return nil, err
	}
	playlists, _ := l.parser.PlaylistContainer(body)
	return playlists, nil
}

// Playlist returns the metadata of one playlist.
func (l *Library) Playlist(ctx context.Context, id int64) (*domain.PlaylistContainer, error) {
	body, err := l.fetch(ctx, fmt.Sprintf("/playlists/%d", id), nil)
	if err != nil {
		return nil, err
	}
	playlists, _ := l.parser.PlaylistContainer(body)
	return playlists, nil
}

// PlaylistItems returns one playlist with its items.
func (l *Library) PlaylistItems(ctx context.Context, id int64) (*domain.Playlist, error) {
	body, err := l.fetch(ctx, fmt.Sprintf("/playlists/%d/items", id), nil)
	if err != nil {
		return nil, err
	}
	playlist, _ := l.parser.Playlist(body)
	return playlist, nil
}

// PlayQueue returns the current state of a play queue.
func (l *Library) PlayQueue(ctx context.Context, id int64) (*domain.PlayQueue, error) {
	body, err := l.fetch(ctx, fmt.Sprintf("/playQueues/%d", id), nil)
	if err != nil {
		return nil, err
	}
	queue, _ := l.parser.PlayQueue(body)
	return queue, nil
}
