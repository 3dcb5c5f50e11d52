package model

import (
	"bytes"
	"encoding/json"
	"time"
)

// Bookmark is a single bookmark record as exchanged with the browser.
// The record is opaque: its JSON is kept verbatim and only the "url"
// member is interpreted, since the url is the record's identity.
type Bookmark struct {
	raw    json.RawMessage
	url    string
	hasURL bool
}

// NewBookmarkParams holds parameters for creating a new Bookmark.
type NewBookmarkParams struct {
	URL       string
	Title     string
	Folder    string
	DateAdded time.Time
}

// NewBookmark creates a record with the fields the browser extension uses.
// Zero-valued optional fields are omitted.
func NewBookmark(params NewBookmarkParams) Bookmark {
	record := struct {
		URL       string `json:"url"`
		Title     string `json:"title"`
		Folder    string `json:"folder,omitempty"`
		DateAdded int64  `json:"dateAdded,omitempty"`
	}{
		URL:    params.URL,
		Title:  params.Title,
		Folder: params.Folder,
	}
	if !params.DateAdded.IsZero() {
		record.DateAdded = params.DateAdded.UnixMilli()
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(record)
	return Bookmark{raw: bytes.TrimSuffix(buf.Bytes(), []byte("\n")), url: params.URL, hasURL: true}
}

// ParseBookmark decodes a single JSON value into a Bookmark.
func ParseBookmark(data []byte) (Bookmark, error) {
	var b Bookmark
	if err := json.Unmarshal(data, &b); err != nil {
		return Bookmark{}, err
	}
	return b, nil
}

// MustParseBookmark is ParseBookmark for literals known to be valid.
func MustParseBookmark(data string) Bookmark {
	b, err := ParseBookmark([]byte(data))
	if err != nil {
		panic(err)
	}
	return b
}

// URL returns the record's url and whether it has one.
// Only a JSON string under "url" counts.
func (b Bookmark) URL() (string, bool) {
	return b.url, b.hasURL
}

// HasURL reports whether the record can take part in merging.
func (b Bookmark) HasURL() bool {
	return b.hasURL
}

// Raw returns the record's JSON bytes as received.
func (b Bookmark) Raw() json.RawMessage {
	return b.raw
}

// Field returns the raw value of a top-level member.
func (b Bookmark) Field(name string) (json.RawMessage, bool) {
	members, ok := b.members()
	if !ok {
		return nil, false
	}
	v, ok := members[name]
	return v, ok
}

// StringField returns a top-level string member, or "" if absent or not a string.
func (b Bookmark) StringField(name string) string {
	v, ok := b.Field(name)
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return ""
	}
	return s
}

// Title returns the "title" member, falling back to the url.
func (b Bookmark) Title() string {
	if title := b.StringField("title"); title != "" {
		return title
	}
	return b.url
}

// DateAdded returns the "dateAdded" member (milliseconds since epoch).
func (b Bookmark) DateAdded() (time.Time, bool) {
	v, ok := b.Field("dateAdded")
	if !ok {
		return time.Time{}, false
	}
	var ms float64
	if err := json.Unmarshal(v, &ms); err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(int64(ms)), true
}

// Equal reports whether two records carry the same JSON bytes.
func (b Bookmark) Equal(other Bookmark) bool {
	return bytes.Equal(b.raw, other.raw)
}

// String returns the record's JSON.
func (b Bookmark) String() string {
	return string(b.raw)
}

// MarshalJSON implements json.Marshaler.
func (b Bookmark) MarshalJSON() ([]byte, error) {
	if len(b.raw) == 0 {
		return []byte("null"), nil
	}
	return b.raw, nil
}

// UnmarshalJSON implements json.Unmarshaler. Any JSON value is accepted;
// values that are not objects with a string url are kept but have no url.
func (b *Bookmark) UnmarshalJSON(data []byte) error {
	raw := make(json.RawMessage, len(data))
	copy(raw, data)
	*b = Bookmark{raw: raw}

	members, ok := b.members()
	if !ok {
		return nil
	}
	v, ok := members["url"]
	if !ok {
		return nil
	}
	var url string
	if err := json.Unmarshal(v, &url); err != nil {
		return nil
	}
	b.url = url
	b.hasURL = true
	return nil
}

func (b Bookmark) members() (map[string]json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(b.raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false
	}
	var members map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &members); err != nil {
		return nil, false
	}
	return members, true
}
