package http

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytesPayload_IsRepeatable(t *testing.T) {
	p := NewStringPayload("hello")

	first, err := ReadAll(p)
	require.NoError(t, err)
	second, err := ReadAll(p)
	require.NoError(t, err)

	assert.True(t, p.Repeatable())
	assert.Equal(t, "hello", first)
	assert.Equal(t, first, second)
	require.NotNil(t, p.ContentMetadata().ContentLength)
	assert.Equal(t, int64(5), *p.ContentMetadata().ContentLength)
	assert.NoError(t, p.Release())
}

func TestStreamPayload_SingleUse(t *testing.T) {
	body := &countingReadCloser{Reader: strings.NewReader("hello")}
	p := NewStreamPayload(body)

	first, err := ReadAll(p)
	require.NoError(t, err)
	second, err := ReadAll(p)
	require.NoError(t, err)

	assert.False(t, p.Repeatable())
	assert.Equal(t, "hello", first)
	assert.Empty(t, second)
	assert.Nil(t, p.ContentMetadata().ContentLength)
}

func TestStreamPayload_ReleaseOnce(t *testing.T) {
	body := &countingReadCloser{Reader: strings.NewReader("hello")}
	p := NewStreamPayload(body)

	require.NoError(t, p.Release())
	require.NoError(t, p.Release())

	assert.Equal(t, 1, body.closes)
	_, err := p.Reader()
	assert.True(t, errors.Is(err, ErrPayloadReleased))
}

func TestFilePayload(t *testing.T) {
	fsys := fstest.MapFS{"data/servers.json": {Data: []byte(`{"servers":[]}`)}}

	p := NewFilePayload(fsys, "data/servers.json")
	got, err := ReadAll(p)
	require.NoError(t, err)
	assert.Equal(t, `{"servers":[]}`, got)
	assert.NoError(t, p.Release())

	missing := NewFilePayload(fsys, "nope.json")
	_, err = missing.Reader()
	assert.Error(t, err)
	assert.NoError(t, missing.Release())
}

func TestContentMetadata_HeadersOrder(t *testing.T) {
	n := int64(3)
	expires := time.Date(2024, 1, 2, 3, 4, 5, 0, time.FixedZone("X", 3600))
	md := &ContentMetadata{
		ContentType:        "text/plain",
		ContentLength:      &n,
		ContentMD5:         []byte{1, 2, 3},
		ContentDisposition: "attachment",
		ContentEncoding:    "gzip",
		ContentLanguage:    "en",
		Expires:            &expires,
	}

	assert.Equal(t, []HeaderEntry{
		{Name: "Content-Type", Value: "text/plain"},
		{Name: "Content-Length", Value: "3"},
		{Name: "Content-MD5", Value: "AQID"},
		{Name: "Content-Disposition", Value: "attachment"},
		{Name: "Content-Encoding", Value: "gzip"},
		{Name: "Content-Language", Value: "en"},
		{Name: "Expires", Value: "Tue, 02 Jan 2024 02:04:05 GMT"},
	}, md.Headers().Entries())
}

func TestContentMetadata_NilIsEmpty(t *testing.T) {
	var md *ContentMetadata
	assert.Equal(t, 0, md.Headers().Len())
}

func TestReadAll_PropagatesError(t *testing.T) {
	p := NewStreamPayload(io.NopCloser(iotestErrReader{}))

	_, err := ReadAll(p)
	assert.EqualError(t, err, "read failed")
}

type iotestErrReader struct{}

func (iotestErrReader) Read([]byte) (int, error) { return 0, errors.New("read failed") }
