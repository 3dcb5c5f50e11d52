package exporter

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ansetechnoapp/syncmark-helper/internal/importer"
	"github.com/ansetechnoapp/syncmark-helper/internal/model"
)

// DefaultExportPath returns the default export file path.
// Format: ~/Downloads/syncmark-export-YYYY-MM-DD.html
func DefaultExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("syncmark-export-%s.html", time.Now().Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}

// folder is a node of the tree rebuilt from "folder" paths.
type folder struct {
	name      string
	children  []*folder
	byName    map[string]*folder
	bookmarks []model.Bookmark
}

func newFolder(name string) *folder {
	return &folder{name: name, byName: map[string]*folder{}}
}

func (f *folder) child(name string) *folder {
	if c, ok := f.byName[name]; ok {
		return c
	}
	c := newFolder(name)
	f.byName[name] = c
	f.children = append(f.children, c)
	return c
}

// ExportHTML exports the set to Netscape bookmark HTML format.
// Folders come from each record's "folder" path and keep first-seen order.
// Records without a url are skipped.
func ExportHTML(set model.Set) string {
	root := newFolder("")
	for _, bm := range set {
		if !bm.HasURL() {
			continue
		}
		node := root
		if path := bm.StringField("folder"); path != "" {
			for _, name := range strings.Split(path, importer.FolderSeparator) {
				if name != "" {
					node = node.child(name)
				}
			}
		}
		node.bookmarks = append(node.bookmarks, bm)
	}

	var b strings.Builder

	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>Bookmarks</TITLE>\n")
	b.WriteString("<H1>Bookmarks</H1>\n")
	b.WriteString("<DL><p>\n")

	writeItems(&b, root, 1)

	b.WriteString("</DL><p>\n")

	return b.String()
}

// writeItems recursively writes subfolders then bookmarks of a folder.
func writeItems(b *strings.Builder, f *folder, indent int) {
	prefix := strings.Repeat("    ", indent)

	for _, sub := range f.children {
		fmt.Fprintf(b, "%s<DT><H3>%s</H3>\n", prefix, html.EscapeString(sub.name))
		fmt.Fprintf(b, "%s<DL><p>\n", prefix)
		writeItems(b, sub, indent+1)
		fmt.Fprintf(b, "%s</DL><p>\n", prefix)
	}

	for _, bm := range f.bookmarks {
		url, _ := bm.URL()
		addDate := ""
		if added, ok := bm.DateAdded(); ok {
			addDate = fmt.Sprintf(" ADD_DATE=\"%d\"", added.Unix())
		}
		fmt.Fprintf(b,
			"%s<DT><A HREF=\"%s\"%s>%s</A>\n",
			prefix,
			html.EscapeString(url),
			addDate,
			html.EscapeString(bm.Title()),
		)
	}
}

// WriteFile exports the set to path, creating parent directories.
func WriteFile(path string, set model.Set) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(ExportHTML(set)), 0644)
}
