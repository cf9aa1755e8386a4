package http

import (
	"bytes"
	"encoding/base64"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// ErrPayloadReleased is returned when reading a payload after Release.
var ErrPayloadReleased = errors.New("payload already released")

// ContentMetadata describes the content carried by a Payload.
type ContentMetadata struct {
	ContentType        string
	ContentLength      *int64
	ContentMD5         []byte
	ContentDisposition string
	ContentEncoding    string
	ContentLanguage    string
	Expires            *time.Time
}

// Headers returns the metadata as content headers, in a fixed order.
func (m *ContentMetadata) Headers() Header {
	var h Header
	if m == nil {
		return h
	}
	if m.ContentType != "" {
		h.Add("Content-Type", m.ContentType)
	}
	if m.ContentLength != nil {
		h.Add("Content-Length", strconv.FormatInt(*m.ContentLength, 10))
	}
	if len(m.ContentMD5) > 0 {
		h.Add("Content-MD5", base64.StdEncoding.EncodeToString(m.ContentMD5))
	}
	if m.ContentDisposition != "" {
		h.Add("Content-Disposition", m.ContentDisposition)
	}
	if m.ContentEncoding != "" {
		h.Add("Content-Encoding", m.ContentEncoding)
	}
	if m.ContentLanguage != "" {
		h.Add("Content-Language", m.ContentLanguage)
	}
	if m.Expires != nil {
		h.Add("Expires", m.Expires.UTC().Format(http.TimeFormat))
	}
	return h
}

// Payload is the body of a request or response.
//
// Reader returns the content stream. Repeatable payloads hand out a fresh
// reader on every call; the others return the same stream, so it can be
// drained only once. Release frees the underlying resource and is safe to
// call more than once.
type Payload interface {
	Reader() (io.Reader, error)
	ContentMetadata() *ContentMetadata
	Repeatable() bool
	Release() error
}

type bytesPayload struct {
	data     []byte
	metadata ContentMetadata
}

// NewBytesPayload returns a repeatable payload over data. The content length
// is set from data.
func NewBytesPayload(data []byte) Payload {
	n := int64(len(data))
	return &bytesPayload{data: data, metadata: ContentMetadata{ContentLength: &n}}
}

// NewStringPayload returns a repeatable payload over s.
func NewStringPayload(s string) Payload {
	return NewBytesPayload([]byte(s))
}

func (p *bytesPayload) Reader() (io.Reader, error)         { return bytes.NewReader(p.data), nil }
func (p *bytesPayload) ContentMetadata() *ContentMetadata { return &p.metadata }
func (p *bytesPayload) Repeatable() bool                  { return true }
func (p *bytesPayload) Release() error                    { return nil }

type streamPayload struct {
	mu       sync.Mutex
	open     func() (io.ReadCloser, error)
	stream   io.ReadCloser
	released bool
	metadata ContentMetadata
}

// NewStreamPayload returns a single-use payload over rc. Release closes rc.
func NewStreamPayload(rc io.ReadCloser) Payload {
	return &streamPayload{stream: rc}
}

// NewFilePayload returns a single-use payload over the named file of fsys.
// The file is opened on the first call to Reader.
func NewFilePayload(fsys fs.FS, name string) Payload {
	return &streamPayload{
		open: func() (io.ReadCloser, error) { return fsys.Open(name) },
	}
}

func (p *streamPayload) Reader() (io.Reader, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.released {
		return nil, ErrPayloadReleased
	}
	if p.stream == nil {
		rc, err := p.open()
		if err != nil {
			return nil, err
		}
		p.stream = rc
	}
	return p.stream, nil
}

func (p *streamPayload) ContentMetadata() *ContentMetadata { return &p.metadata }
func (p *streamPayload) Repeatable() bool                  { return false }

func (p *streamPayload) Release() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.released {
		return nil
	}
	p.released = true
	if p.stream == nil {
		return nil
	}
	return p.stream.Close()
}

// ReadAll drains the payload into a string.
func ReadAll(p Payload) (string, error) {
	r, err := p.Reader()
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	if _, err := io.Copy(&sb, r); err != nil {
		return "", err
	}
	return sb.String(), nil
}
