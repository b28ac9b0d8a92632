package server

import (
	"context"
	"errors"
	"io"
	"net"
	"time"

	"httpcore/internal/httperr"
	"httpcore/internal/request"
)

const recvBufChunk = 8 * 1024

// timeoutKindFor implements spec.md §4.F step 2b: which error kind a
// read timeout maps to depends on what the parser was doing when it
// fired.
func timeoutKindFor(phase request.Phase) httperr.Kind {
	switch phase {
	case request.PhaseNothing:
		return httperr.RecvRequestTimeoutWithNothing
	case request.PhaseLine:
		return httperr.RecvRequestLineTimeout
	case request.PhaseHeaders:
		return httperr.RecvRequestHeadersTimeout
	case request.PhaseBody:
		return httperr.RecvRequestBodyTimeout
	default:
		return httperr.RecvRequestTimeoutWithNothing
	}
}

// recvRequest runs the receive loop (component F) to completion,
// producing exactly one request. Per spec.md §4.F, the wait for a
// request's first byte — whether this is the connection's first
// request or a reused connection's next one — is bounded by
// keepaliveTimeout; every read after that first byte arrives uses
// totalTimeout.
func recvRequest(ctx context.Context, conn net.Conn, limits request.Limits, keepaliveTimeout, totalTimeout time.Duration) (*request.Request, error) {
	req := request.NewParser(limits)

	remaining := keepaliveTimeout

	var buf []byte
	scratch := make([]byte, recvBufChunk)
	var metric request.Metric
	firstByteSeen := false

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// A zero duration means "unlimited" per spec.md §6; pass the
		// zero time.Time, which net.Conn treats as no deadline at all.
		deadline := time.Time{}
		if remaining > 0 {
			deadline = time.Now().Add(remaining)
		}
		if err := conn.SetReadDeadline(deadline); err != nil {
			return nil, err
		}

		readStart := time.Now()
		n, err := conn.Read(scratch)
		elapsed := time.Since(readStart)

		if n == 0 {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				return nil, httperr.New(timeoutKindFor(req.State().Phase()), "read deadline exceeded")
			}
			if err == io.EOF || errors.Is(err, net.ErrClosed) {
				return nil, httperr.Sentinel(httperr.EndOfStream)
			}
			if err != nil {
				return nil, err
			}
			return nil, httperr.Sentinel(httperr.EndOfStream)
		}

		if !firstByteSeen {
			metric.FirstByteAt = time.Now()
			firstByteSeen = true
			remaining = totalTimeout
		} else if totalTimeout > 0 {
			remaining -= elapsed
			if remaining <= 0 {
				return nil, httperr.Sentinel(httperr.RecvTimeout)
			}
		}

		buf = append(buf, scratch[:n]...)
		metric.BytesConsumed += int64(n)

		consumed, status := req.Parse(buf)
		if consumed > 0 {
			rest := make([]byte, len(buf)-consumed)
			copy(rest, buf[consumed:])
			buf = rest
		}

		switch status {
		case request.NeedMore:
			continue
		case request.OK:
			metric.LastByteAt = time.Now()
			metric.Elapsed = metric.LastByteAt.Sub(metric.FirstByteAt)
			req.Metric = metric
			return req, nil
		default: // request.Err
			return nil, req.Err()
		}
	}
}
