package importer

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/ansetechnoapp/syncmark-helper/internal/model"
	"golang.org/x/net/html"
)

// FolderSeparator joins nested folder names in a record's "folder" member.
const FolderSeparator = "/"

// ParseHTMLBookmarks parses Netscape bookmark HTML into records.
// Each record carries url, title, the enclosing folder path (if any) and
// dateAdded in milliseconds when ADD_DATE is present.
func ParseHTMLBookmarks(r io.Reader) (model.Set, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	set := model.NewSet()

	// Track current folder stack for hierarchy
	var folderStack []string
	pendingFolder := "" // folder waiting to be pushed on next DL

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "h3":
				// Pushed when we see the next DL
				pendingFolder = getTextContent(n)
				return

			case "a":
				href := getAttr(n, "href")
				if href == "" {
					return
				}

				title := getTextContent(n)
				if title == "" {
					title = href
				}

				var added time.Time
				if addDate := getAttr(n, "add_date"); addDate != "" {
					if ts, err := strconv.ParseInt(addDate, 10, 64); err == nil {
						added = time.Unix(ts, 0)
					}
				}

				set = append(set, model.NewBookmark(model.NewBookmarkParams{
					URL:       href,
					Title:     title,
					Folder:    strings.Join(folderStack, FolderSeparator),
					DateAdded: added,
				}))
				return

			case "dl":
				pushedFolder := false
				if pendingFolder != "" {
					folderStack = append(folderStack, pendingFolder)
					pendingFolder = ""
					pushedFolder = true
				}

				for c := n.FirstChild; c != nil; c = c.NextSibling {
					parse(c)
				}

				if pushedFolder {
					folderStack = folderStack[:len(folderStack)-1]
				}
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)
	return set, nil
}

// getTextContent returns the text content of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	key = strings.ToLower(key)
	for _, attr := range n.Attr {
		if strings.ToLower(attr.Key) == key {
			return attr.Val
		}
	}
	return ""
}
