package server

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"httpcore/internal/httperr"
	"httpcore/internal/request"
)

func TestRecvRequest_FullMessage(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()
	defer serverConn.Close()

	go func() {
		_, _ = clientConn.Write([]byte("GET /x HTTP/1.1\r\nHost: a\r\n\r\n"))
	}()

	req, err := recvRequest(context.Background(), serverConn, request.Limits{}, time.Second, time.Second)
	require.NoError(t, err)
	assert.Equal(t, "/x", req.Path)
}

func TestRecvRequest_SplitAcrossWrites(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()
	defer serverConn.Close()

	go func() {
		_, _ = clientConn.Write([]byte("GET /x HTTP/1.1\r\n"))
		time.Sleep(10 * time.Millisecond)
		_, _ = clientConn.Write([]byte("Host: a\r\n\r\n"))
	}()

	req, err := recvRequest(context.Background(), serverConn, request.Limits{}, time.Second, time.Second)
	require.NoError(t, err)
	assert.Equal(t, "/x", req.Path)
}

func TestRecvRequest_KeepaliveTimeoutWithNothing(t *testing.T) {
	_, serverConn := net.Pipe()
	defer serverConn.Close()

	_, err := recvRequest(context.Background(), serverConn, request.Limits{}, 10*time.Millisecond, time.Second)
	require.Error(t, err)
	kind, ok := httperr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, httperr.RecvRequestTimeoutWithNothing, kind)
}

// A reused connection's wait for its next request's first byte must be
// bounded by the short keep-alive timeout, not the (much longer) total
// timeout, per spec.md §4.F — previously only the connection's very
// first request got the keep-alive bound.
func TestRecvRequest_KeepaliveTimeoutAppliesToReusedConnection(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()
	defer serverConn.Close()

	go func() {
		_, _ = clientConn.Write([]byte("GET /first HTTP/1.1\r\nHost: a\r\n\r\n"))
	}()

	first, err := recvRequest(context.Background(), serverConn, request.Limits{}, 10*time.Millisecond, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, "/first", first.Path)

	start := time.Now()
	_, err = recvRequest(context.Background(), serverConn, request.Limits{}, 10*time.Millisecond, time.Hour)
	elapsed := time.Since(start)

	require.Error(t, err)
	kind, ok := httperr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, httperr.RecvRequestTimeoutWithNothing, kind)
	assert.Less(t, elapsed, time.Second, "idle wait for the next request must use the short keep-alive timeout, not the hour-long total timeout")
}

func TestRecvRequest_EndOfStream(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	defer serverConn.Close()
	clientConn.Close()

	_, err := recvRequest(context.Background(), serverConn, request.Limits{}, time.Second, time.Second)
	require.Error(t, err)
	kind, ok := httperr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, httperr.EndOfStream, kind)
}
