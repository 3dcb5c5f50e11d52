// Package nativemsg implements the browser native messaging wire format:
// each message is a 4-byte unsigned length in native byte order followed by
// that many bytes of UTF-8 JSON.
package nativemsg

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// PrefixLen is the size of the length prefix.
const PrefixLen = 4

var (
	ErrTruncated       = errors.New("nativemsg: truncated payload")
	ErrPayloadTooLarge = errors.New("nativemsg: payload too large")
	ErrInvalidUTF8     = errors.New("nativemsg: payload is not valid UTF-8")
	ErrMalformedJSON   = errors.New("nativemsg: malformed JSON payload")
)

// Limits constrains message sizes in each direction.
type Limits struct {
	MaxRead  uint32
	MaxWrite uint32
}

// DefaultLimits caps inbound messages at 256 MiB and outbound messages at
// 1 MiB, the largest message a browser accepts from a host.
func DefaultLimits() Limits {
	return Limits{
		MaxRead:  256 * 1024 * 1024,
		MaxWrite: 1024 * 1024,
	}
}

// IsFatal reports whether err leaves the stream unusable. Encoding errors in
// a fully read payload are not fatal: the next frame boundary is known.
// A clean close (io.EOF) is not an error at all.
func IsFatal(err error) bool {
	if err == nil || errors.Is(err, io.EOF) {
		return false
	}
	return !errors.Is(err, ErrInvalidUTF8) && !errors.Is(err, ErrMalformedJSON)
}

// Reader reads framed messages.
type Reader struct {
	r      io.Reader
	limits Limits
}

// NewReader returns a Reader over r.
func NewReader(r io.Reader, limits Limits) *Reader {
	return &Reader{r: r, limits: limits}
}

// ReadMessage reads one frame and returns its payload. It returns io.EOF
// when the peer closed the stream before a full length prefix arrived.
func (r *Reader) ReadMessage() (json.RawMessage, error) {
	var prefix [PrefixLen]byte
	if _, err := io.ReadFull(r.r, prefix[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("nativemsg: reading length prefix: %w", err)
	}

	n := binary.NativeEndian.Uint32(prefix[:])
	if n > r.limits.MaxRead {
		return nil, fmt.Errorf("%w: %d bytes announced, limit %d", ErrPayloadTooLarge, n, r.limits.MaxRead)
	}

	payload := make([]byte, n)
	if read, err := io.ReadFull(r.r, payload); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: got %d of %d bytes", ErrTruncated, read, n)
		}
		return nil, fmt.Errorf("nativemsg: reading payload: %w", err)
	}

	if !utf8.Valid(payload) {
		return nil, ErrInvalidUTF8
	}
	if !json.Valid(payload) {
		return nil, ErrMalformedJSON
	}
	return payload, nil
}

// Receive reads one frame and decodes it into v.
func (r *Reader) Receive(v any) error {
	payload, err := r.ReadMessage()
	if err != nil {
		return err
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	return nil
}

// Writer writes framed messages. Every Send is flushed before it returns.
type Writer struct {
	w      *bufio.Writer
	limits Limits
}

// NewWriter returns a Writer over w.
func NewWriter(w io.Writer, limits Limits) *Writer {
	return &Writer{w: bufio.NewWriter(w), limits: limits}
}

// Send encodes v as compact JSON and writes it as one frame.
// Payloads above the write limit are rejected without writing anything.
func (w *Writer) Send(v any) error {
	payload, err := Marshal(v)
	if err != nil {
		return err
	}
	return w.WriteMessage(payload)
}

// WriteMessage writes an already encoded payload as one frame.
func (w *Writer) WriteMessage(payload []byte) error {
	if uint64(len(payload)) > uint64(w.limits.MaxWrite) {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrPayloadTooLarge, len(payload), w.limits.MaxWrite)
	}

	var prefix [PrefixLen]byte
	binary.NativeEndian.PutUint32(prefix[:], uint32(len(payload)))
	if _, err := w.w.Write(prefix[:]); err != nil {
		return err
	}
	if _, err := w.w.Write(payload); err != nil {
		return err
	}
	return w.w.Flush()
}

// Marshal encodes v as compact JSON without escaping HTML characters.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
