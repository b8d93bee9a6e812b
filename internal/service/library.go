package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/mmcdole/plexkit/internal/domain"
	"github.com/mmcdole/plexkit/internal/mediaserver/plex"
	"github.com/mmcdole/plexkit/internal/normalize"
	"github.com/mmcdole/plexkit/internal/search"
)

// syncChunkSize is the page size used while paging through tracks.
const syncChunkSize = 200

// freshnessKey names the store freshness mark of one section.
func freshnessKey(sectionID int64) string {
	return "section:" + strconv.FormatInt(sectionID, 10)
}

// LibraryService syncs music sections into the entity store and keeps the
// search index in step with it. Invalidation is based on the section's
// server timestamp, not a TTL.
type LibraryService struct {
	library *plex.Library
	store   domain.EntityStore
	index   *search.Index
	logger  *slog.Logger
}

// NewLibraryService creates a new library service
func NewLibraryService(library *plex.Library, store domain.EntityStore, index *search.Index, logger *slog.Logger) *LibraryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LibraryService{
		library: library,
		store:   store,
		index:   index,
		logger:  logger,
	}
}

// save normalizes a parsed graph and writes its entities to the store.
func (s *LibraryService) save(parsed any) (*normalize.Normalized, error) {
	n, err := normalize.Normalize(parsed)
	if err != nil {
		return nil, err
	}
	if err := s.store.SaveTables(n.Entities); err != nil {
		return nil, fmt.Errorf("save %s: %w", n.Result.Schema, err)
	}
	return n, nil
}

// Sections fetches every library section and stores them.
func (s *LibraryService) Sections(ctx context.Context) ([]*domain.Section, error) {
	sections, err := s.library.Sections(ctx)
	if err != nil {
		s.logger.Error("failed to get sections", "error", err)
		return nil, err
	}
	if _, err := s.save(sections); err != nil {
		return nil, err
	}

	s.logger.Info("loaded sections", "count", len(sections.Sections))
	return sections.Sections, nil
}

// SmartSync loads the artists, albums and tracks of a music section.
// When the store already holds the section at its current server timestamp
// nothing is fetched, unless force is set.
func (s *LibraryService) SmartSync(ctx context.Context, section *domain.Section, force bool, observer domain.SyncObserver) error {
	if observer == nil {
		observer = domain.NoOpObserver{}
	}

	var serverTS int64
	if section.UpdatedAt != nil {
		serverTS = section.UpdatedAt.Unix()
	}
	key := freshnessKey(section.ID)

	if !force && section.UpdatedAt != nil && s.store.IsValid(key, serverTS) {
		s.logger.Debug("store valid", "section", section.ID, "serverTS", serverTS)
		observer.OnProgress(domain.SyncProgress{
			SectionID:   section.ID,
			SectionType: section.Type,
			Done:        true,
			FromCache:   true,
		})
		return s.reindex()
	}

	report := func(table string, err error) error {
		s.logger.Error("sync failed", "section", section.ID, "table", table, "error", err)
		observer.OnProgress(domain.SyncProgress{SectionID: section.ID, SectionType: section.Type, Table: table, Error: err})
		return err
	}

	for _, mediaType := range []domain.MediaType{domain.MediaTypeArtist, domain.MediaTypeAlbum} {
		items, err := s.library.SectionItems(ctx, section.ID, mediaType, nil)
		if err != nil {
			return report(mediaType.String(), err)
		}
		if _, err := s.save(items); err != nil {
			return report(mediaType.String(), err)
		}
	}

	tracks, err := s.library.FetchAllTracks(ctx, section.ID, syncChunkSize, func(loaded, total int) {
		observer.OnProgress(domain.SyncProgress{
			SectionID:   section.ID,
			SectionType: section.Type,
			Table:       normalize.TableTracks,
			Loaded:      loaded,
			Total:       total,
		})
	})
	if err != nil {
		return report(normalize.TableTracks, err)
	}

	_, err = s.save(&domain.TrackContainer{Kind: domain.KindTrackContainer, Tracks: tracks})
	if err != nil {
		return report(normalize.TableTracks, err)
	}

	if section.UpdatedAt != nil {
		if err := s.store.MarkFresh(key, serverTS); err != nil {
			return report(normalize.TableTracks, err)
		}
	}

	observer.OnProgress(domain.SyncProgress{
		SectionID:   section.ID,
		SectionType: section.Type,
		Loaded:      len(tracks),
		Total:       len(tracks),
		Done:        true,
	})
	s.logger.Info("synced section", "section", section.ID, "tracks", len(tracks))

	return s.reindex()
}

// SyncPlaylists stores every playlist with its items.
func (s *LibraryService) SyncPlaylists(ctx context.Context) error {
	playlists, err := s.library.Playlists(ctx)
	if err != nil {
		return err
	}

	for _, p := range playlists.Playlists {
		full, err := s.library.PlaylistItems(ctx, p.ID)
		if err != nil {
			return err
		}
		if _, err := s.save(full); err != nil {
			return err
		}
	}

	s.logger.Info("synced playlists", "count", len(playlists.Playlists))
	return s.reindex()
}

// reindex rebuilds the search index from the store.
func (s *LibraryService) reindex() error {
	if s.index == nil {
		return nil
	}
	return s.index.Reload(s.store,
		normalize.TableArtists,
		normalize.TableAlbums,
		normalize.TableTracks,
		normalize.TablePlaylists,
	)
}

// Search finds stored entities by title.
func (s *LibraryService) Search(query string) []search.Result {
	if s.index == nil {
		return nil
	}
	return s.index.Find(query)
}

// Refresh drops a section's freshness mark so the next SmartSync refetches.
func (s *LibraryService) Refresh(sectionID int64) {
	s.store.InvalidateTable(freshnessKey(sectionID))
}
