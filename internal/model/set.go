package model

import (
	"bytes"
	"encoding/json"
)

// Set is an ordered list of bookmark records, as found in a JSON array.
type Set []Bookmark

// NewSet creates an empty, non-nil Set.
func NewSet() Set {
	return Set{}
}

// ParseSet decodes a JSON array of records.
func ParseSet(data []byte) (Set, error) {
	var s Set
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if s == nil {
		s = Set{}
	}
	return s, nil
}

// MustParseSet is ParseSet for literals known to be valid.
func MustParseSet(data string) Set {
	s, err := ParseSet([]byte(data))
	if err != nil {
		panic(err)
	}
	return s
}

// MarshalJSON encodes the set as an array; a nil set encodes as [].
// Records are written as-is, without re-escaping.
func (s Set) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, b := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		raw, err := b.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(raw)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// URLs returns the url of every record that has one, in order.
func (s Set) URLs() []string {
	urls := make([]string, 0, len(s))
	for _, b := range s {
		if url, ok := b.URL(); ok {
			urls = append(urls, url)
		}
	}
	return urls
}

// HasURL reports whether any record carries the given url.
func (s Set) HasURL(url string) bool {
	for _, b := range s {
		if u, ok := b.URL(); ok && u == url {
			return true
		}
	}
	return false
}

// GetByURL finds the last record with the given url, returns nil if not found.
// The last one is what a merge would keep.
func (s Set) GetByURL(url string) *Bookmark {
	for i := len(s) - 1; i >= 0; i-- {
		if u, ok := s[i].URL(); ok && u == url {
			return &s[i]
		}
	}
	return nil
}

// Equal reports whether both sets hold the same records in the same order.
func (s Set) Equal(other Set) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if !s[i].Equal(other[i]) {
			return false
		}
	}
	return true
}
