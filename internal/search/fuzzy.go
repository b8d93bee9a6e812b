package search

import (
	"slices"
	"sort"
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Token represents a word and its position in the original string
type Token struct {
	Text  string // Lowercase text
	Start int    // Start rune position in original string
	End   int    // End rune position (exclusive)
}

// tokenize splits text into word tokens, tracking positions
func tokenize(text string) []Token {
	var tokens []Token
	runes := []rune(strings.ToLower(text))

	inWord := false
	wordStart := 0

	for i, r := range runes {
		isWordChar := unicode.IsLetter(r) || unicode.IsDigit(r)

		if isWordChar && !inWord {
			wordStart = i
			inWord = true
		} else if !isWordChar && inWord {
			tokens = append(tokens, Token{Text: string(runes[wordStart:i]), Start: wordStart, End: i})
			inWord = false
		}
	}

	if inWord {
		tokens = append(tokens, Token{Text: string(runes[wordStart:]), Start: wordStart, End: len(runes)})
	}

	return tokens
}

// allowedTypos returns the number of typos allowed based on word length:
// 1-3 chars = 0, 4-6 chars = 1, 7+ chars = 2
func allowedTypos(length int) int {
	switch {
	case length <= 3:
		return 0
	case length <= 6:
		return 1
	default:
		return 2
	}
}

// matchTokens matches every query token against a distinct title word,
// allowing typos. Word order does not matter ("road abbey" matches
// "Abbey Road"). Returns the score (lower = better) and the matched rune
// positions.
func matchTokens(queryTokens []Token, title string) (int, []int, bool) {
	if len(queryTokens) == 0 {
		return 0, nil, false
	}

	titleTokens := tokenize(title)
	used := make([]bool, len(titleTokens))

	score := 0
	var indexes []int

	for _, q := range queryTokens {
		best, bestDist := -1, 0
		for i, t := range titleTokens {
			if used[i] {
				continue
			}
			dist := tokenDistance(q.Text, t.Text)
			if dist < 0 {
				continue
			}
			if best < 0 || dist < bestDist {
				best, bestDist = i, dist
			}
		}
		if best < 0 {
			return 0, nil, false
		}

		used[best] = true
		score += 100 + bestDist*20
		indexes = append(indexes, makeIndexRange(titleTokens[best].Start, titleTokens[best].End)...)
	}

	// Penalize titles with many extra words
	if extra := len(titleTokens) - len(queryTokens); extra > 0 {
		score += extra * 5
	}

	slices.Sort(indexes)
	return score, slices.Compact(indexes), true
}

// tokenDistance returns the edit distance between a query word and a title
// word, or -1 when it exceeds the typo budget. A query word that prefixes
// the title word counts as exact.
func tokenDistance(query, word string) int {
	if strings.HasPrefix(word, query) {
		return 0
	}
	maxTypos := allowedTypos(len([]rune(query)))
	if maxTypos == 0 {
		return -1
	}
	if dist := fuzzy.LevenshteinDistance(query, word); dist <= maxTypos {
		return dist
	}
	return -1
}

// calculateMatchScore calculates a match score for ranking
// Lower score = better match
func calculateMatchScore(title, query string) int {
	// Exact match is best
	if title == query {
		return 0
	}

	// Prefix match is very good
	if strings.HasPrefix(title, query) {
		return 10
	}

	// Contains match is good
	if strings.Contains(title, query) {
		return 50
	}

	// Fuzzy distance
	return 100 + fuzzy.LevenshteinDistance(query, title)
}

// makeIndexRange creates a slice of consecutive integers [start, end)
func makeIndexRange(start, end int) []int {
	indexes := make([]int, end-start)
	for i := range indexes {
		indexes[i] = start + i
	}
	return indexes
}

// Suggest returns up to limit distinct titles containing the letters of
// query in order, closest first. A limit <= 0 returns every match.
func (idx *Index) Suggest(query string, limit int) []string {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	idx.mu.RLock()
	titles := make([]string, 0, len(idx.entries))
	seen := make(map[string]bool)
	for _, e := range idx.entries {
		if !seen[e.Title] {
			seen[e.Title] = true
			titles = append(titles, e.Title)
		}
	}
	idx.mu.RUnlock()

	ranks := fuzzy.RankFindFold(query, titles)
	sort.Stable(ranks)

	out := make([]string, 0, len(ranks))
	for _, r := range ranks {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, r.Target)
	}
	return out
}
