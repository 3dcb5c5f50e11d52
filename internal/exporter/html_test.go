package exporter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ansetechnoapp/syncmark-helper/internal/importer"
	"github.com/ansetechnoapp/syncmark-helper/internal/model"
	"gotest.tools/v3/golden"
)

func TestExportHTML_EmptySet(t *testing.T) {
	html := ExportHTML(model.NewSet())

	// Should have basic structure even when empty
	if !strings.Contains(html, "<!DOCTYPE NETSCAPE-Bookmark-file-1>") {
		t.Error("expected DOCTYPE declaration")
	}
	if !strings.Contains(html, "<TITLE>Bookmarks</TITLE>") {
		t.Error("expected TITLE element")
	}
	if !strings.Contains(html, "<H1>Bookmarks</H1>") {
		t.Error("expected H1 element")
	}
	if strings.Contains(html, "<A ") {
		t.Error("expected no bookmarks")
	}
}

func TestExportHTML_SingleBookmark(t *testing.T) {
	set := model.MustParseSet(`[{"url":"https://github.com","title":"GitHub","dateAdded":1700000000123}]`)

	html := ExportHTML(set)

	if !strings.Contains(html, `<A HREF="https://github.com"`) {
		t.Error("expected bookmark URL")
	}
	if !strings.Contains(html, "GitHub</A>") {
		t.Error("expected bookmark title")
	}
	if !strings.Contains(html, `ADD_DATE="1700000000"`) {
		t.Error("expected ADD_DATE timestamp in seconds")
	}
}

func TestExportHTML_SkipsRecordsWithoutURL(t *testing.T) {
	set := model.MustParseSet(`[{"title":"orphan"},{"url":42,"title":"numeric"},{"url":"https://kept.com"}]`)

	html := ExportHTML(set)

	if strings.Contains(html, "orphan") || strings.Contains(html, "numeric") {
		t.Error("records without a url should be skipped")
	}
	if !strings.Contains(html, "https://kept.com</A>") {
		t.Error("expected url as title fallback")
	}
}

func TestExportHTML_NestedFolders(t *testing.T) {
	set := model.MustParseSet(`[
		{"url":"https://tanstack.com/router","title":"TanStack Router","folder":"Development/React"},
		{"url":"https://github.com","title":"GitHub","folder":"Development"}
	]`)

	html := ExportHTML(set)

	devIdx := strings.Index(html, "Development</H3>")
	reactIdx := strings.Index(html, "React</H3>")
	tanstackIdx := strings.Index(html, "TanStack Router</A>")

	if devIdx == -1 || reactIdx == -1 || tanstackIdx == -1 {
		t.Fatal("missing elements in output")
	}
	if devIdx >= reactIdx || reactIdx >= tanstackIdx {
		t.Error("expected proper nesting order: Development > React > TanStack Router")
	}
	if strings.Count(html, "Development</H3>") != 1 {
		t.Error("expected folder to be written once")
	}
}

func TestExportHTML_EscapesSpecialCharacters(t *testing.T) {
	set := model.MustParseSet(`[{"url":"https://example.com?foo=bar&baz=qux","title":"Test <script>alert('xss')</script>"}]`)

	html := ExportHTML(set)

	if strings.Contains(html, "<script>") {
		t.Error("script tag should be escaped")
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Error("expected escaped script tag")
	}
	if strings.Contains(html, "foo=bar&baz") {
		t.Error("ampersand should be escaped in URL")
	}
	if !strings.Contains(html, "foo=bar&amp;baz") {
		t.Error("expected escaped ampersand in URL")
	}
}

func TestExportHTML_Golden(t *testing.T) {
	set := model.MustParseSet(`[
		{"url":"https://example.com","title":"Root Bookmark","dateAdded":1700000000000},
		{"url":"https://react.dev","title":"React Docs","folder":"Development/React","dateAdded":1700000000000},
		{"url":"https://github.com","title":"GitHub","folder":"Development"},
		{"url":"https://news.ycombinator.com","title":"HN","folder":"Reading"}
	]`)

	golden.Assert(t, ExportHTML(set), "golden/nested_export.golden")
}

func TestExportHTML_ImportRoundTrip(t *testing.T) {
	set := model.MustParseSet(`[
		{"url":"https://react.dev","title":"React Docs","folder":"Development/React","dateAdded":1700000000000},
		{"url":"https://github.com","title":"GitHub","folder":"Development","dateAdded":1700000000000},
		{"url":"https://example.com","title":"Example","dateAdded":1700000000000}
	]`)

	reimported, err := importer.ParseHTMLBookmarks(strings.NewReader(ExportHTML(set)))
	if err != nil {
		t.Fatalf("failed to parse exported HTML: %v", err)
	}

	if len(reimported) != len(set) {
		t.Fatalf("expected %d bookmarks, got %d", len(set), len(reimported))
	}
	for _, b := range set {
		url, _ := b.URL()
		got := reimported.GetByURL(url)
		if got == nil {
			t.Errorf("missing %s after round trip", url)
			continue
		}
		if got.StringField("folder") != b.StringField("folder") {
			t.Errorf("%s: folder %q, want %q", url, got.StringField("folder"), b.StringField("folder"))
		}
		if !got.Equal(b) {
			t.Errorf("%s: record %s, want %s", url, got, b)
		}
	}
}

func TestWriteFile_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "export.html")

	if err := WriteFile(path, model.MustParseSet(`[{"url":"https://a.com"}]`)); err != nil {
		t.Fatalf("failed to write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `HREF="https://a.com"`) {
		t.Error("expected bookmark in exported file")
	}
}
