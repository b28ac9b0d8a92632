// Package response implements the deterministic response serializer
// (component E): a fixed byte layout written from a Response value,
// adapted from the teacher's response.Writer but generalized to the
// full Version/StatusCode vocabulary and chunked trailers.
package response

import (
	"fmt"
	"io"

	"httpcore/internal/httperr"
	"httpcore/internal/httpwire"
	"httpcore/internal/request"
)

// Response is the value the serializer turns into bytes. Handlers build
// one of these and hand it to Serialize; the server never inspects it
// beyond what keep_alive needs (httpwire.HeaderConnection).
type Response struct {
	Version httpwire.Version
	Status  httpwire.StatusCode
	Reason  string
	Headers *request.Headers
	Body    []byte
}

// New returns a Response with an empty header set and version 1.1,
// ready for the caller to fill in.
func New(status httpwire.StatusCode) *Response {
	return &Response{
		Version: httpwire.Version11,
		Status:  status,
		Headers: request.NewHeaders(),
	}
}

// Serialize writes the status-line, headers (in insertion order), the
// blank line, and the body to w. version == UNKNOWN fails with a
// bad-version error and status_code == UNKNOWN (zero value / out of
// 100-599 range) with a bad-status error; both messages start with
// "invalid-response".
func (r *Response) Serialize(w io.Writer) error {
	if r.Version == httpwire.VersionUnknown {
		return httperr.New(httperr.BadVersion, "invalid-response: unknown version")
	}
	if !r.Status.Valid() {
		return httperr.New(httperr.BadStatus, "invalid-response: unknown status code")
	}

	reason := r.Reason
	if reason == "" {
		reason = httpwire.ReasonPhrase(r.Status)
	}

	if _, err := fmt.Fprintf(w, "%s %d %s\r\n", r.Version.String(), int(r.Status), reason); err != nil {
		return err
	}

	var werr error
	if r.Headers != nil {
		r.Headers.Range(func(name, value string) bool {
			assertNoCRLFInjection(value)
			_, werr = fmt.Fprintf(w, "%s: %s\r\n", name, value)
			return werr == nil
		})
		if werr != nil {
			return werr
		}
	}

	if _, err := io.WriteString(w, "\r\n"); err != nil {
		return err
	}

	if len(r.Body) > 0 {
		if _, err := w.Write(r.Body); err != nil {
			return err
		}
	}
	return nil
}

// chunkSize is the maximum number of body bytes written per
// chunked-transfer chunk, matching the teacher's WriteChunkedBody.
const chunkSize = 1024

// WriteChunkedBody writes p as one or more chunked-transfer chunks
// (hex size, CRLF, data, CRLF), for callers streaming a body the
// caller didn't buffer up front. It does not write the terminating
// 0-chunk; call WriteChunkedTrailer for that.
func WriteChunkedBody(w io.Writer, p []byte) (int, error) {
	total := 0
	for len(p) > 0 {
		n := len(p)
		if n > chunkSize {
			n = chunkSize
		}
		chunk := p[:n]
		p = p[n:]

		if _, err := fmt.Fprintf(w, "%x\r\n", len(chunk)); err != nil {
			return total, err
		}
		written, err := w.Write(chunk)
		total += written
		if err != nil {
			return total, err
		}
		if _, err := io.WriteString(w, "\r\n"); err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteChunkedTrailer writes the terminating 0-chunk, optional trailer
// fields (in insertion order), and the final blank line.
func WriteChunkedTrailer(w io.Writer, trailers *request.Headers) error {
	if _, err := io.WriteString(w, "0\r\n"); err != nil {
		return err
	}
	var werr error
	if trailers != nil {
		trailers.Range(func(name, value string) bool {
			assertNoCRLFInjection(value)
			_, werr = fmt.Fprintf(w, "%s: %s\r\n", name, value)
			return werr == nil
		})
		if werr != nil {
			return werr
		}
	}
	_, err := io.WriteString(w, "\r\n")
	return err
}
