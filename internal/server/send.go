package server

import (
	"bytes"
	"context"
	"net"
	"time"

	"httpcore/internal/response"
)

// sendResponse runs the send loop (component G): serialize, then write
// under a single send_total_timeout, with cancellation closing the
// connection (the caller does the closing; we just surface the error).
func sendResponse(ctx context.Context, conn net.Conn, resp *response.Response, totalTimeout time.Duration) (partialWrites int, err error) {
	var buf bytes.Buffer
	if err := resp.Serialize(&buf); err != nil {
		return 0, err
	}

	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := conn.SetWriteDeadline(time.Now().Add(totalTimeout)); err != nil {
		return 0, err
	}

	payload := buf.Bytes()
	for len(payload) > 0 {
		n, werr := conn.Write(payload)
		if n > 0 && n < len(payload) {
			partialWrites++
		}
		payload = payload[n:]
		if werr != nil {
			return partialWrites, werr
		}
	}
	return partialWrites, nil
}
