package plex

import (
	"fmt"
	"log/slog"

	"github.com/mmcdole/plexkit/internal/accessor"
	"github.com/mmcdole/plexkit/internal/domain"
)

// Parser turns decoded Plex response bodies into domain entities.
// Every entry point runs one transform over its own accessor, logs the
// collected warnings and returns them. Parser is safe for concurrent use.
type Parser struct {
	logger *slog.Logger
}

// NewParser creates a parser that logs warnings to logger.
func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger}
}

func parse[T any](p *Parser, name string, raw any, transform func(accessor.Value) T) (T, []accessor.Warning) {
	root := accessor.New(raw)
	result := transform(root)

	warnings := root.Warnings()
	for _, w := range warnings {
		p.logger.Warn("missing field", "parser", name, "path", w.Path, "message", w.Message)
	}
	return result, warnings
}

func (p *Parser) Artist(raw any) (*domain.Artist, []accessor.Warning) {
	return parse(p, "artist", raw, toArtist)
}

func (p *Parser) Album(raw any) (*domain.Album, []accessor.Warning) {
	return parse(p, "album", raw, toAlbum)
}

func (p *Parser) Track(raw any) (*domain.Track, []accessor.Warning) {
	return parse(p, "track", raw, toTrack)
}

func (p *Parser) ArtistContainer(raw any) (*domain.ArtistContainer, []accessor.Warning) {
	return parse(p, "artistContainer", raw, toArtistContainer)
}

func (p *Parser) AlbumContainer(raw any) (*domain.AlbumContainer, []accessor.Warning) {
	return parse(p, "albumContainer", raw, toAlbumContainer)
}

func (p *Parser) TrackContainer(raw any) (*domain.TrackContainer, []accessor.Warning) {
	return parse(p, "trackContainer", raw, toTrackContainer)
}

func (p *Parser) Section(raw any) (*domain.Section, []accessor.Warning) {
	return parse(p, "section", raw, toSection)
}

func (p *Parser) SectionContainer(raw any) (*domain.SectionContainer, []accessor.Warning) {
	return parse(p, "sectionContainer", raw, toSectionContainer)
}

func (p *Parser) GenreRecord(raw any) (domain.GenreRecord, []accessor.Warning) {
	return parse(p, "genreContainer", raw, toGenreRecord)
}

func (p *Parser) CountryRecord(raw any) (domain.CountryRecord, []accessor.Warning) {
	return parse(p, "countryContainer", raw, toCountryRecord)
}

// Playlist parses the items endpoint of one playlist.
func (p *Parser) Playlist(raw any) (*domain.Playlist, []accessor.Warning) {
	return parse(p, "playlist", raw, toPlaylist)
}

func (p *Parser) PlaylistContainer(raw any) (*domain.PlaylistContainer, []accessor.Warning) {
	return parse(p, "playlistContainer", raw, toPlaylistContainer)
}

func (p *Parser) PlayQueue(raw any) (*domain.PlayQueue, []accessor.Warning) {
	return parse(p, "playQueue", raw, toPlayQueue)
}

func (p *Parser) Hub(raw any) (*domain.Hub, []accessor.Warning) {
	return parse(p, "hub", raw, toHub)
}

func (p *Parser) HubContainer(raw any) (*domain.HubContainer, []accessor.Warning) {
	return parse(p, "hubContainer", raw, toHubContainer)
}

func (p *Parser) Device(raw any) (*domain.Device, []accessor.Warning) {
	return parse(p, "device", raw, toDevice)
}

func (p *Parser) Connection(raw any) (*domain.Connection, []accessor.Warning) {
	return parse(p, "connection", raw, toConnection)
}

func (p *Parser) DeviceContainer(raw any) (*domain.DeviceContainer, []accessor.Warning) {
	return parse(p, "deviceContainer", raw, toDeviceContainer)
}

func (p *Parser) ResourceContainer(raw any) (*domain.ResourceContainer, []accessor.Warning) {
	return parse(p, "resourceContainer", raw, toResourceContainer)
}

func (p *Parser) User(raw any) (*domain.User, []accessor.Warning) {
	return parse(p, "user", raw, toUser)
}

func (p *Parser) Pin(raw any) (*domain.Pin, []accessor.Warning) {
	return parse(p, "pin", raw, toPin)
}

// SyncList parses the sync item listing of one device.
func (p *Parser) SyncList(raw any) (*domain.SyncList, []accessor.Warning) {
	return parse(p, "syncList", raw, toSyncList)
}

// ParseType parses a metadata listing by media type code. The result is a
// *domain.ArtistContainer, *domain.AlbumContainer, *domain.TrackContainer
// or *domain.PlaylistContainer. Any other code is an error.
func (p *Parser) ParseType(mediaType domain.MediaType, raw any) (any, []accessor.Warning, error) {
	switch mediaType {
	case domain.MediaTypeArtist:
		c, w := p.ArtistContainer(raw)
		return c, w, nil
	case domain.MediaTypeAlbum:
		c, w := p.AlbumContainer(raw)
		return c, w, nil
	case domain.MediaTypeTrack:
		c, w := p.TrackContainer(raw)
		return c, w, nil
	case domain.MediaTypePlaylist:
		c, w := p.PlaylistContainer(raw)
		return c, w, nil
	default:
		return nil, nil, fmt.Errorf("parse media type %d: %w", int(mediaType), domain.ErrUnknownMediaType)
	}
}
