package search

import (
	"cmp"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/plexkit/internal/domain"
)

// Entry is one searchable stored entity.
type Entry struct {
	Table    string
	ID       string
	Title    string
	Subtitle string // artist or album title, when the entity has one
}

// Result is a matched entry with match metadata for highlighting.
type Result struct {
	Entry
	MatchedIndexes []int // Positions in the lowercase title
	Score          int   // Lower is better
}

// subtitleFields names the parent title shown next to an entity.
var subtitleFields = map[string]string{
	"albums": "parentTitle",
	"tracks": "grandparentTitle",
}

// Index implements sahilm/fuzzy.Source over stored entity titles.
// Index is safe for concurrent use.
type Index struct {
	mu          sync.RWMutex
	entries     []Entry
	lowerTitles []string        // Pre-computed lowercase titles
	indexed     map[string]int  // table:id -> position in entries
	logger      *slog.Logger
}

// NewIndex creates an empty index.
func NewIndex(logger *slog.Logger) *Index {
	if logger == nil {
		logger = slog.Default()
	}
	return &Index{
		indexed: make(map[string]int),
		logger:  logger,
	}
}

// String returns the lowercase title at index i (implements fuzzy.Source).
// Callers must hold the read lock.
func (idx *Index) String(i int) string { return idx.lowerTitles[i] }

// Len returns the number of entries (implements fuzzy.Source).
// Callers must hold the read lock.
func (idx *Index) Len() int { return len(idx.entries) }

// Count returns the number of indexed entries.
func (idx *Index) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.entries)
}

// Add indexes entries. An entry whose table and id is already present
// replaces the indexed one.
func (idx *Index) Add(entries []Entry) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	added, replaced := idx.add(entries)
	idx.logger.Debug("indexed entries", "added", added, "replaced", replaced, "total", len(idx.entries))
}

// add requires the write lock.
func (idx *Index) add(entries []Entry) (added, replaced int) {
	for _, e := range entries {
		if e.Title == "" {
			continue
		}
		key := e.Table + ":" + e.ID
		if pos, ok := idx.indexed[key]; ok {
			idx.entries[pos] = e
			idx.lowerTitles[pos] = strings.ToLower(e.Title)
			replaced++
			continue
		}
		idx.indexed[key] = len(idx.entries)
		idx.entries = append(idx.entries, e)
		idx.lowerTitles = append(idx.lowerTitles, strings.ToLower(e.Title))
		added++
	}
	return added, replaced
}

// Load indexes every titled entity of the given tables in a store.
func (idx *Index) Load(store domain.EntityStore, tables ...string) error {
	for _, table := range tables {
		entities, err := store.Entities(table)
		if err != nil {
			return err
		}
		idx.Add(entriesOf(table, entities))
	}
	return nil
}

// Reload replaces the whole index with the titled entities of the given
// tables. Entities no longer in the store drop out. The index keeps its
// previous contents when the store cannot be read.
func (idx *Index) Reload(store domain.EntityStore, tables ...string) error {
	var entries []Entry
	for _, table := range tables {
		entities, err := store.Entities(table)
		if err != nil {
			return err
		}
		entries = append(entries, entriesOf(table, entities)...)
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.entries = nil
	idx.lowerTitles = nil
	idx.indexed = make(map[string]int, len(entries))
	idx.add(entries)
	idx.logger.Debug("reloaded search index", "total", len(idx.entries))
	return nil
}

// entriesOf builds entries in id order so the index layout is stable.
func entriesOf(table string, entities map[string]map[string]any) []Entry {
	ids := make([]string, 0, len(entities))
	for id := range entities {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	entries := make([]Entry, 0, len(ids))
	for _, id := range ids {
		e := entities[id]
		title, _ := e["title"].(string)
		subtitle, _ := e[subtitleFields[table]].(string)
		entries = append(entries, Entry{Table: table, ID: id, Title: title, Subtitle: subtitle})
	}
	return entries
}

// Clear removes every entry.
func (idx *Index) Clear() {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.entries = nil
	idx.lowerTitles = nil
	idx.indexed = make(map[string]int)
	idx.logger.Debug("cleared search index")
}

// Find matches query against every title. Subsequence matches come from
// sahilm/fuzzy; titles it misses are retried word by word with typo
// tolerance. Results are sorted by score, then title length.
func (idx *Index) Find(query string) []Result {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if len(idx.entries) == 0 {
		return nil
	}

	matched := make(map[int]bool)
	var results []Result

	for _, m := range fuzzy.FindFrom(query, idx) {
		matched[m.Index] = true
		results = append(results, Result{
			Entry:          idx.entries[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          calculateMatchScore(idx.lowerTitles[m.Index], query),
		})
	}

	queryTokens := tokenize(query)
	for i, title := range idx.lowerTitles {
		if matched[i] {
			continue
		}
		if score, indexes, ok := matchTokens(queryTokens, title); ok {
			results = append(results, Result{
				Entry:          idx.entries[i],
				MatchedIndexes: indexes,
				Score:          score,
			})
		}
	}

	slices.SortStableFunc(results, func(a, b Result) int {
		return cmp.Or(
			cmp.Compare(a.Score, b.Score),
			cmp.Compare(len(a.Title), len(b.Title)),
			cmp.Compare(a.Table, b.Table),
			cmp.Compare(a.ID, b.ID),
		)
	})

	idx.logger.Debug("search complete", "query", query, "results", len(results))
	return results
}

// FilterByTable keeps the results of one table.
func FilterByTable(results []Result, table string) []Result {
	filtered := make([]Result, 0)
	for _, r := range results {
		if r.Table == table {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
