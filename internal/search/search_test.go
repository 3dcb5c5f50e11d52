package search

import (
	"testing"

	"github.com/ansetechnoapp/syncmark-helper/internal/model"
)

func testSet() model.Set {
	return model.MustParseSet(`[
		{"url":"https://github.com","title":"GitHub"},
		{"url":"https://gitlab.com","title":"GitLab"},
		{"url":"https://gitea.io","title":"Gitea"},
		{"url":"https://tanstack.com/router","title":"TanStack Router"},
		{"url":"https://pkg.go.dev"},
		{"title":"Git without a url"}
	]`)
}

func TestFuzzySearchBookmarks_EmptyQuery(t *testing.T) {
	results := FuzzySearchBookmarks(testSet(), "")

	if len(results) != 0 {
		t.Errorf("expected 0 results for empty query, got %d", len(results))
	}
}

func TestFuzzySearchBookmarks_ExactMatch(t *testing.T) {
	results := FuzzySearchBookmarks(testSet(), "GitHub")

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Bookmark.Title() != "GitHub" {
		t.Errorf("expected GitHub, got %s", results[0].Bookmark.Title())
	}
	if results[0].URL != "https://github.com" {
		t.Errorf("expected github url, got %s", results[0].URL)
	}
}

func TestFuzzySearchBookmarks_FuzzyMatch(t *testing.T) {
	// "tanrou" should fuzzy match "TanStack Router"
	results := FuzzySearchBookmarks(testSet(), "tanrou")

	if len(results) < 1 {
		t.Fatalf("expected at least 1 result for 'tanrou', got %d", len(results))
	}
	if results[0].Bookmark.Title() != "TanStack Router" {
		t.Errorf("expected TanStack Router as first result, got %s", results[0].Bookmark.Title())
	}
}

func TestFuzzySearchBookmarks_MultipleMatches(t *testing.T) {
	results := FuzzySearchBookmarks(testSet(), "git")

	if len(results) != 3 {
		t.Errorf("expected 3 results for 'git', got %d", len(results))
	}
	for _, r := range results {
		if !r.Bookmark.HasURL() {
			t.Errorf("records without a url must not be searched, got %s", r.Bookmark)
		}
	}
}

func TestFuzzySearchBookmarks_MatchesURL(t *testing.T) {
	results := FuzzySearchBookmarks(testSet(), "pkg.go")

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].URL != "https://pkg.go.dev" {
		t.Errorf("expected pkg.go.dev, got %s", results[0].URL)
	}
	if results[0].Key != "https://pkg.go.dev" {
		t.Errorf("untitled record should be keyed by url only, got %q", results[0].Key)
	}
}

func TestFuzzySearchBookmarks_NoMatch(t *testing.T) {
	results := FuzzySearchBookmarks(testSet(), "xyz123")

	if len(results) != 0 {
		t.Errorf("expected 0 results for 'xyz123', got %d", len(results))
	}
}

func TestFuzzySearchBookmarks_CaseInsensitive(t *testing.T) {
	results := FuzzySearchBookmarks(testSet(), "github")

	if len(results) != 1 {
		t.Fatalf("expected 1 result for case-insensitive match, got %d", len(results))
	}
}

func TestFuzzySearchBookmarks_PointsIntoSet(t *testing.T) {
	set := testSet()
	results := FuzzySearchBookmarks(set, "Gitea")

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Bookmark != &set[2] {
		t.Error("expected result to reference the record in the set")
	}
}
