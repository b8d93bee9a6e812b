package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/plexkit/internal/adapter"
	"github.com/mmcdole/plexkit/internal/store"
)

func newTestIndex() *Index {
	idx := NewIndex(adapter.NullLogger())
	idx.Add([]Entry{
		{Table: "artists", ID: "1", Title: "The Beatles"},
		{Table: "albums", ID: "2", Title: "Abbey Road", Subtitle: "The Beatles"},
		{Table: "tracks", ID: "3", Title: "Come Together", Subtitle: "The Beatles"},
		{Table: "tracks", ID: "4", Title: "Something", Subtitle: "The Beatles"},
	})
	return idx
}

func TestFind_PrefixRanksFirst(t *testing.T) {
	results := newTestIndex().Find("Come")

	require.NotEmpty(t, results)
	assert.Equal(t, "3", results[0].ID)
	assert.Equal(t, 10, results[0].Score)
	assert.NotEmpty(t, results[0].MatchedIndexes)
}

func TestFind_ExactMatch(t *testing.T) {
	results := newTestIndex().Find("  something ")

	require.NotEmpty(t, results)
	assert.Equal(t, "4", results[0].ID)
	assert.Equal(t, 0, results[0].Score)
}

func TestFind_TypoTolerance(t *testing.T) {
	results := newTestIndex().Find("beatels")

	require.Len(t, results, 1)
	assert.Equal(t, "artists", results[0].Table)
	assert.Equal(t, []int{4, 5, 6, 7, 8, 9, 10}, results[0].MatchedIndexes)
}

func TestFind_WordOrderIgnored(t *testing.T) {
	results := newTestIndex().Find("road abbey")

	require.Len(t, results, 1)
	assert.Equal(t, "2", results[0].ID)
	assert.Equal(t, "The Beatles", results[0].Subtitle)
}

func TestFind_NoMatch(t *testing.T) {
	assert.Empty(t, newTestIndex().Find("zzz"))
	assert.Nil(t, newTestIndex().Find(""))
	assert.Nil(t, NewIndex(nil).Find("come"))
}

func TestAdd_ReplacesExistingAndSkipsUntitled(t *testing.T) {
	idx := newTestIndex()

	idx.Add([]Entry{
		{Table: "artists", ID: "1", Title: "The Beatles (again)"},
		{Table: "tracks", ID: "9", Title: ""},
		{Table: "albums", ID: "1", Title: "Let It Be"},
	})

	assert.Equal(t, 5, idx.Count())
	results := idx.Find("again")
	require.NotEmpty(t, results)
	assert.Equal(t, "artists", results[0].Table)
	assert.Equal(t, "The Beatles (again)", results[0].Title)

	idx.Clear()
	assert.Equal(t, 0, idx.Count())
}

func TestFilterByTable(t *testing.T) {
	results := newTestIndex().Find("o")

	tracks := FilterByTable(results, "tracks")
	for _, r := range tracks {
		assert.Equal(t, "tracks", r.Table)
	}
	assert.NotEmpty(t, tracks)
	assert.NotNil(t, FilterByTable(nil, "tracks"))
}

func TestSuggest(t *testing.T) {
	idx := newTestIndex()

	assert.Equal(t, []string{"The Beatles"}, idx.Suggest("btls", 0))
	assert.Len(t, idx.Suggest("e", 2), 2)
	assert.Nil(t, idx.Suggest(" ", 5))
}

func TestLoad_FromStore(t *testing.T) {
	s, err := store.NewEntityStore("", "", nil)
	require.NoError(t, err)
	require.NoError(t, s.SaveTables(map[string]map[string]any{
		"tracks": {
			"3": map[string]any{"title": "Come Together", "grandparentTitle": "The Beatles"},
			"4": map[string]any{"title": "Something", "grandparentTitle": "The Beatles"},
		},
		"albums": {
			"2": map[string]any{"title": "Abbey Road", "parentTitle": "The Beatles"},
		},
	}))

	idx := NewIndex(adapter.NullLogger())
	require.NoError(t, idx.Load(s, "tracks", "albums", "artists"))

	assert.Equal(t, 3, idx.Count())
	results := idx.Find("together")
	require.NotEmpty(t, results)
	assert.Equal(t, "3", results[0].ID)
	assert.Equal(t, "The Beatles", results[0].Subtitle)
}

func TestMatchTokens(t *testing.T) {
	tests := []struct {
		name  string
		query string
		title string
		ok    bool
	}{
		{"prefix words", "come tog", "come together", true},
		{"one typo", "somthing", "something", true},
		{"short words need exact prefix", "cme", "come together", false},
		{"all words must match", "come home", "come together", false},
		{"each title word used once", "come come", "come together", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, ok := matchTokens(tokenize(tt.query), tt.title)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestReload_TracksStoreChanges(t *testing.T) {
	s, err := store.NewEntityStore("", "", nil)
	require.NoError(t, err)
	idx := NewIndex(adapter.NullLogger())

	require.NoError(t, s.SaveTables(map[string]map[string]any{
		"artists": {"1": map[string]any{"title": "Oldname"}},
	}))
	require.NoError(t, idx.Reload(s, "artists"))
	require.Len(t, idx.Find("oldname"), 1)

	require.NoError(t, s.SaveTables(map[string]map[string]any{
		"artists": {"1": map[string]any{"title": "Renamed"}},
	}))
	require.NoError(t, idx.Reload(s, "artists"))
	assert.Len(t, idx.Find("renamed"), 1)
	assert.Empty(t, idx.Find("oldname"))

	s.InvalidateAll()
	require.NoError(t, idx.Reload(s, "artists"))
	assert.Empty(t, idx.Find("renamed"))
	assert.Equal(t, 0, idx.Count())
}
