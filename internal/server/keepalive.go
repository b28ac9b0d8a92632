package server

import (
	"strings"

	"httpcore/internal/httpwire"
	"httpcore/internal/request"
	"httpcore/internal/response"
)

func hasConnectionToken(h *request.Headers, token string) bool {
	for _, v := range h.Values(httpwire.HeaderConnection) {
		for _, tok := range strings.Split(v, ",") {
			if strings.EqualFold(strings.TrimSpace(tok), token) {
				return true
			}
		}
	}
	return false
}

// keepAlive implements spec.md §4.H's four conditions exactly.
func keepAlive(req *request.Request, resp *response.Response, sess *Session, maxReuse int, transportErr bool) bool {
	reqOK := false
	switch {
	case req.Version.AtLeast11() && !hasConnectionToken(req.Headers, "close"):
		reqOK = true
	case req.Version == httpwire.Version10 && hasConnectionToken(req.Headers, "keep-alive"):
		reqOK = true
	}
	if !reqOK {
		return false
	}

	if resp != nil && resp.Headers != nil && hasConnectionToken(resp.Headers, "close") {
		return false
	}

	if sess.ReuseCount >= maxReuse {
		return false
	}

	if transportErr {
		return false
	}

	return true
}
