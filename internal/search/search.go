package search

import (
	"github.com/ansetechnoapp/syncmark-helper/internal/model"
	"github.com/sahilm/fuzzy"
)

// SearchResult represents a fuzzy search match.
type SearchResult struct {
	Bookmark *model.Bookmark
	URL      string
	// MatchedIndexes index into Key.
	MatchedIndexes []int
	Key            string
	Score          int
}

type candidate struct {
	bookmark *model.Bookmark
	url      string
	key      string
}

// candidates implements fuzzy.Source over records that have a url.
type candidates []candidate

func (c candidates) String(i int) string {
	return c[i].key
}

func (c candidates) Len() int {
	return len(c)
}

// Key is the text a record is matched against: its title, then its url.
// When the record has no title the url is used once.
func Key(b model.Bookmark) string {
	url, _ := b.URL()
	title := b.StringField("title")
	if title == "" {
		return url
	}
	return title + " " + url
}

// FuzzySearchBookmarks searches the set by title and url using fuzzy matching.
// Returns results sorted by match score (best first).
func FuzzySearchBookmarks(set model.Set, query string) []SearchResult {
	if query == "" {
		return nil
	}

	source := make(candidates, 0, len(set))
	for i := range set {
		url, ok := set[i].URL()
		if !ok {
			continue
		}
		source = append(source, candidate{bookmark: &set[i], url: url, key: Key(set[i])})
	}

	matches := fuzzy.FindFrom(query, source)

	results := make([]SearchResult, len(matches))
	for i, m := range matches {
		c := source[m.Index]
		results[i] = SearchResult{
			Bookmark:       c.bookmark,
			URL:            c.url,
			MatchedIndexes: m.MatchedIndexes,
			Key:            c.key,
			Score:          m.Score,
		}
	}

	return results
}
