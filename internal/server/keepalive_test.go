package server

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"httpcore/internal/httpwire"
	"httpcore/internal/request"
	"httpcore/internal/response"
)

func reqWithVersion(v httpwire.Version, connHeader string) *request.Request {
	r := request.NewParser(request.Limits{})
	full := "GET / HTTP/1.1\r\n"
	if v == httpwire.Version10 {
		full = "GET / HTTP/1.0\r\n"
	}
	if connHeader != "" {
		full += "Connection: " + connHeader + "\r\n"
	}
	full += "Host: a\r\n\r\n"
	r.Parse([]byte(full))
	return r
}

func TestKeepAlive_HTTP11DefaultsToKeepAlive(t *testing.T) {
	req := reqWithVersion(httpwire.Version11, "")
	resp := response.New(httpwire.StatusCode(200))
	sess := &Session{ReuseCount: 0}

	assert.True(t, keepAlive(req, resp, sess, 100, false))
}

func TestKeepAlive_HTTP11ConnectionClose(t *testing.T) {
	req := reqWithVersion(httpwire.Version11, "close")
	resp := response.New(httpwire.StatusCode(200))
	sess := &Session{ReuseCount: 0}

	assert.False(t, keepAlive(req, resp, sess, 100, false))
}

func TestKeepAlive_HTTP10RequiresExplicitKeepAlive(t *testing.T) {
	req := reqWithVersion(httpwire.Version10, "")
	resp := response.New(httpwire.StatusCode(200))
	sess := &Session{ReuseCount: 0}

	assert.False(t, keepAlive(req, resp, sess, 100, false))

	req2 := reqWithVersion(httpwire.Version10, "keep-alive")
	assert.True(t, keepAlive(req2, resp, sess, 100, false))
}

func TestKeepAlive_ResponseConnectionClose(t *testing.T) {
	req := reqWithVersion(httpwire.Version11, "")
	resp := response.New(httpwire.StatusCode(200))
	resp.Headers.Add(httpwire.HeaderConnection, "close")
	sess := &Session{ReuseCount: 0}

	assert.False(t, keepAlive(req, resp, sess, 100, false))
}

func TestKeepAlive_MaxReuseEnforced(t *testing.T) {
	req := reqWithVersion(httpwire.Version11, "")
	resp := response.New(httpwire.StatusCode(200))
	sess := &Session{ReuseCount: 2}

	assert.False(t, keepAlive(req, resp, sess, 2, false))
}

func TestKeepAlive_TransportErrorForcesClose(t *testing.T) {
	req := reqWithVersion(httpwire.Version11, "")
	resp := response.New(httpwire.StatusCode(200))
	sess := &Session{ReuseCount: 0}

	assert.False(t, keepAlive(req, resp, sess, 100, true))
}
