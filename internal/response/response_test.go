package response

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"httpcore/internal/httperr"
	"httpcore/internal/httpwire"
	"httpcore/internal/request"
)

func TestSerialize_StatusLineHeadersBody(t *testing.T) {
	r := New(httpwire.StatusCode(200))
	r.Headers.Add("Content-Length", "5")
	r.Headers.Add("Content-Type", "text/plain")
	r.Body = []byte("hello")

	var buf bytes.Buffer
	require.NoError(t, r.Serialize(&buf))

	want := "HTTP/1.1 200 OK\r\n" +
		"Content-Length: 5\r\n" +
		"Content-Type: text/plain\r\n" +
		"\r\n" +
		"hello"
	assert.Equal(t, want, buf.String())
}

func TestSerialize_DefaultsReasonPhrase(t *testing.T) {
	r := New(httpwire.StatusCode(404))

	var buf bytes.Buffer
	require.NoError(t, r.Serialize(&buf))
	assert.Equal(t, "HTTP/1.1 404 Not Found\r\n\r\n", buf.String())
}

func TestSerialize_CustomReasonPhrase(t *testing.T) {
	r := New(httpwire.StatusCode(200))
	r.Reason = "Coffee's Ready"

	var buf bytes.Buffer
	require.NoError(t, r.Serialize(&buf))
	assert.Equal(t, "HTTP/1.1 200 Coffee's Ready\r\n\r\n", buf.String())
}

func TestSerialize_UnknownVersion_Fails(t *testing.T) {
	r := New(httpwire.StatusCode(200))
	r.Version = httpwire.VersionUnknown

	var buf bytes.Buffer
	err := r.Serialize(&buf)
	require.Error(t, err)
	kind, ok := httperr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, httperr.BadVersion, kind)
}

func TestSerialize_UnknownStatus_Fails(t *testing.T) {
	r := New(httpwire.StatusCode(0))

	var buf bytes.Buffer
	err := r.Serialize(&buf)
	require.Error(t, err)
	kind, ok := httperr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, httperr.BadStatus, kind)
}

func TestSerialize_HeaderOrderPreserved(t *testing.T) {
	r := New(httpwire.StatusCode(200))
	r.Headers.Add("Z-First", "1")
	r.Headers.Add("A-Second", "2")

	var buf bytes.Buffer
	require.NoError(t, r.Serialize(&buf))
	assert.Equal(t, "HTTP/1.1 200 OK\r\nZ-First: 1\r\nA-Second: 2\r\n\r\n", buf.String())
}

func TestWriteChunkedBody_SplitsAt1024(t *testing.T) {
	var buf bytes.Buffer
	body := bytes.Repeat([]byte("a"), 1500)
	n, err := WriteChunkedBody(&buf, body)
	require.NoError(t, err)
	assert.Equal(t, 1500, n)
	assert.Contains(t, buf.String(), "400\r\n")
	assert.Contains(t, buf.String(), "1dc\r\n")
}

func TestWriteChunkedTrailer_WithFields(t *testing.T) {
	var buf bytes.Buffer
	trailers := request.NewHeaders()
	trailers.Add("X-Checksum", "abc")
	require.NoError(t, WriteChunkedTrailer(&buf, trailers))
	assert.Equal(t, "0\r\nX-Checksum: abc\r\n\r\n", buf.String())
}

func TestWriteChunkedTrailer_NoFields(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteChunkedTrailer(&buf, nil))
	assert.Equal(t, "0\r\n\r\n", buf.String())
}
