// Package request implements the resumable, pull-free HTTP/1.x request
// parser (component D) and the Request value it produces. It keeps the
// teacher's shape (a state enum living on the value it parses, fed by
// repeated calls over a caller-owned buffer) and generalizes it to the
// full request-target/header/chunked-body grammar.
package request

import (
	"bytes"
	"strconv"
	"strings"
	"time"

	"httpcore/internal/cursor"
	"httpcore/internal/httperr"
	"httpcore/internal/httpwire"
)

// Metric carries timing and size information about one parsed message.
// The parser itself never calls into the clock (it is pure CPU work);
// the receive loop stamps FirstByteAt/LastByteAt/Elapsed around its
// reads and assigns the final value here once parsing completes.
type Metric struct {
	FirstByteAt   time.Time
	LastByteAt    time.Time
	Elapsed       time.Duration
	BytesConsumed int64
}

// Request is the resumable parser AND the data it incrementally
// populates. Mutated only by Parse; frozen once Parse reports OK.
type Request struct {
	Method    httpwire.Method
	MethodRaw string
	Version   httpwire.Version
	Scheme    httpwire.Scheme
	Host      string
	Port      uint16
	Path      string
	URI       string
	Headers   *Headers
	Params    map[string]string
	Body      []byte

	ContentLength int64
	Metric        Metric

	state  State
	err    error
	limits Limits

	chunked        bool
	chunkRemaining int64
	haveBodyBytes  int64

	headerBytesSeen int
	headerCount     int

	trailerNames []string
}

// NewParser returns a fresh Request in state NothingYet, ready to be
// fed bytes via Parse. A zero Limits uses the spec defaults.
func NewParser(limits Limits) *Request {
	return &Request{
		Headers: NewHeaders(),
		Params:  map[string]string{},
		state:   NothingYet,
		limits:  limits.orDefault(),
	}
}

// State returns the parser's current state, for the receive loop's
// timeout-kind mapping.
func (r *Request) State() State { return r.state }

// Err returns the terminal error, if any.
func (r *Request) Err() error { return r.err }

// HasTrailers reports whether the client promised trailer fields via a
// Trailer header (irrespective of whether any were actually sent).
func (r *Request) HasTrailers() bool {
	_, ok := r.Headers.Get(httpwire.HeaderTrailer)
	return ok
}

// TrailerNames returns the names of trailer fields actually received
// (their values are discarded per spec; only the promise is kept).
func (r *Request) TrailerNames() []string { return r.trailerNames }

// fail marks the parser stale, returning (0, Err) for the caller to
// propagate directly from Parse. The error is wrapped with the byte
// offset (within the current Parse call's buffer) where it was
// detected, so callers can log where in the stream parsing broke
// without losing errors.Is-identity against the underlying *httperr.Error.
func (r *Request) fail(err error, offset int) (int, Status) {
	r.err = httperr.Wrap(err, offset)
	r.state = Stale
	return 0, Err
}

// Parse consumes a prefix of data and advances the parser's state.
// consumed is always relative to data[0]; on NeedMore the caller must
// shift data[consumed:] to the front of its buffer, append more bytes,
// and call Parse again with the result.
func (r *Request) Parse(data []byte) (consumed int, status Status) {
	if r.state == Stale {
		r.err = httperr.Sentinel(httperr.StaleParser)
		return 0, Err
	}
	if r.state == Completed {
		return 0, OK
	}

	c := cursor.New(data)

outer:
	for {
		cur := c.Remaining()
		switch r.state {
		case NothingYet:
			if len(cur) == 0 {
				return c.Pos(), NeedMore
			}
			r.state = StartLine
			continue outer

		case StartLine, ExpectingNewline:
			lineLen, total, ok, bad := findLine(cur)
			if bad {
				return r.fail(httperr.New(httperr.BadLineEnding, "bare LF in request-line"), c.Pos())
			}
			if !ok {
				if len(cur) > r.limits.MaxRequestLine {
					return r.fail(httperr.New(httperr.RequestURITooLarge, "request-line exceeds limit"), c.Pos())
				}
				if endsWithLoneCR(cur) {
					r.state = ExpectingNewline
				} else {
					r.state = StartLine
				}
				return c.Pos(), NeedMore
			}
			if total > r.limits.MaxRequestLine {
				return r.fail(httperr.New(httperr.RequestURITooLarge, "request-line exceeds limit"), c.Pos())
			}
			if err := r.parseRequestLine(cur[:lineLen]); err != nil {
				return r.fail(err, c.Pos())
			}
			c.Advance(total)
			r.state = HeaderName
			continue outer

		case HeaderName, HeaderValue:
			lineLen, total, ok, bad := findLine(cur)
			if bad {
				return r.fail(httperr.New(httperr.BadLineEnding, "bare LF in header block"), c.Pos())
			}
			if !ok {
				if len(cur) > r.limits.MaxHeaderLine {
					return r.fail(httperr.New(httperr.HeaderLimit, "header line exceeds limit"), c.Pos())
				}
				if r.headerBytesSeen+len(cur) > r.limits.MaxHeaderBytes {
					return r.fail(httperr.New(httperr.HeaderLimit, "header block exceeds limit"), c.Pos())
				}
				if bytes.IndexByte(cur, ':') >= 0 {
					r.state = HeaderValue
				} else {
					r.state = HeaderName
				}
				return c.Pos(), NeedMore
			}
			if lineLen > r.limits.MaxHeaderLine {
				return r.fail(httperr.New(httperr.HeaderLimit, "header line exceeds limit"), c.Pos())
			}
			r.headerBytesSeen += total
			if r.headerBytesSeen > r.limits.MaxHeaderBytes {
				return r.fail(httperr.New(httperr.HeaderLimit, "header block exceeds limit"), c.Pos())
			}
			line := cur[:lineLen]
			if lineLen == 0 {
				// Blank line: end of header block.
				c.Advance(total)
				next, err := r.decideFraming()
				if err != nil {
					return r.fail(err, c.Pos())
				}
				r.state = next
				if next == Completed {
					break outer
				}
				continue outer
			}
			name, value, err := parseHeaderField(line)
			if err != nil {
				return r.fail(err, c.Pos())
			}
			r.Headers.Add(name, value)
			r.headerCount++
			if r.headerCount > r.limits.MaxHeaderCount {
				return r.fail(httperr.New(httperr.HeaderLimit, "too many headers"), c.Pos())
			}
			c.Advance(total)
			r.state = HeaderName
			continue outer

		case BodyFixed:
			need := r.ContentLength - int64(len(r.Body))
			if need <= 0 {
				r.state = Completed
				break outer
			}
			avail := int64(len(cur))
			if avail == 0 {
				return c.Pos(), NeedMore
			}
			take := need
			if take > avail {
				take = avail
			}
			r.Body = append(r.Body, cur[:take]...)
			c.Advance(int(take))
			if int64(len(r.Body)) == r.ContentLength {
				r.state = Completed
				break outer
			}
			return c.Pos(), NeedMore

		case BodyChunkedSize:
			lineLen, total, ok, bad := findLine(cur)
			if bad {
				return r.fail(httperr.New(httperr.BadChunk, "bare LF in chunk-size line"), c.Pos())
			}
			if !ok {
				if len(cur) > maxChunkSizeLine {
					return r.fail(httperr.New(httperr.BadChunk, "chunk-size line too long"), c.Pos())
				}
				return c.Pos(), NeedMore
			}
			size, err := parseChunkSize(cur[:lineLen])
			if err != nil {
				return r.fail(err, c.Pos())
			}
			c.Advance(total)
			if size == 0 {
				r.state = BodyChunkedTrailer
			} else {
				if r.haveBodyBytes+int64(size) > r.limits.MaxBodyBytes {
					return r.fail(httperr.New(httperr.BodyLimit, "chunked body exceeds limit"), c.Pos())
				}
				r.chunkRemaining = int64(size)
				r.state = BodyChunkedData
			}
			continue outer

		case BodyChunkedData:
			if r.chunkRemaining > 0 {
				avail := int64(len(cur))
				if avail == 0 {
					return c.Pos(), NeedMore
				}
				take := r.chunkRemaining
				if take > avail {
					take = avail
				}
				r.Body = append(r.Body, cur[:take]...)
				c.Advance(int(take))
				r.haveBodyBytes += take
				r.chunkRemaining -= take
				if r.chunkRemaining > 0 {
					return c.Pos(), NeedMore
				}
				cur = c.Remaining()
			}
			if len(cur) < 2 {
				return c.Pos(), NeedMore
			}
			if cur[0] != '\r' || cur[1] != '\n' {
				return r.fail(httperr.New(httperr.BadChunk, "missing chunk-data terminator"), c.Pos())
			}
			c.Advance(2)
			r.state = BodyChunkedSize
			continue outer

		case BodyChunkedTrailer:
			lineLen, total, ok, bad := findLine(cur)
			if bad {
				return r.fail(httperr.New(httperr.BadLineEnding, "bare LF in trailer block"), c.Pos())
			}
			if !ok {
				if len(cur) > r.limits.MaxHeaderLine {
					return r.fail(httperr.New(httperr.HeaderLimit, "trailer line exceeds limit"), c.Pos())
				}
				return c.Pos(), NeedMore
			}
			line := cur[:lineLen]
			if lineLen == 0 {
				c.Advance(total)
				r.ContentLength = r.haveBodyBytes
				r.state = Completed
				break outer
			}
			name, _, err := parseHeaderField(line)
			if err != nil {
				return r.fail(err, c.Pos())
			}
			r.trailerNames = append(r.trailerNames, name)
			c.Advance(total)
			continue outer

		case Completed:
			break outer

		default:
			return r.fail(httperr.New(httperr.BufferOverflow, "unknown parser state"), c.Pos())
		}
	}

	if r.state == Completed {
		return c.Pos(), OK
	}
	return c.Pos(), NeedMore
}

const maxChunkSizeLine = 256

func endsWithLoneCR(b []byte) bool {
	return len(b) > 0 && b[len(b)-1] == '\r'
}

// findLine locates the next CRLF-terminated line in b. lineLen is the
// content length excluding the CRLF; total includes it. bad is true iff
// a bare LF (not preceded by CR) was found, which is a terminal
// bad-line-ending error. ok is false when no full line is available
// yet (need more bytes), which is never simultaneously true with bad.
func findLine(b []byte) (lineLen, total int, ok, bad bool) {
	idx := bytes.IndexByte(b, '\n')
	if idx < 0 {
		return 0, 0, false, false
	}
	if idx == 0 || b[idx-1] != '\r' {
		return 0, 0, false, true
	}
	return idx - 1, idx + 1, true, false
}

func (r *Request) parseRequestLine(line []byte) error {
	sp1 := bytes.IndexByte(line, ' ')
	if sp1 < 0 {
		return httperr.New(httperr.BadMethod, "missing method/target separator")
	}
	methodTok := line[:sp1]
	if len(methodTok) == 0 {
		return httperr.New(httperr.EmptyMethod, "empty method token")
	}
	rest := line[sp1+1:]
	sp2 := bytes.IndexByte(rest, ' ')
	if sp2 < 0 {
		return httperr.New(httperr.BadURI, "missing target/version separator")
	}
	targetTok := rest[:sp2]
	versionTok := rest[sp2+1:]
	if len(targetTok) == 0 {
		return httperr.New(httperr.BadURI, "empty request-target")
	}
	if bytes.IndexByte(versionTok, ' ') >= 0 {
		return httperr.New(httperr.BadVersion, "malformed version token")
	}

	method, ok := httpwire.ParseMethod(string(methodTok))
	if !ok {
		return httperr.New(httperr.BadMethod, "unrecognized method token")
	}
	version, ok := httpwire.ParseVersion(string(versionTok))
	if !ok {
		return httperr.New(httperr.BadVersion, "unsupported or malformed HTTP version")
	}

	tgt, err := decomposeTarget(string(targetTok))
	if err != nil {
		return err
	}

	r.Method = method
	r.MethodRaw = string(methodTok)
	r.Version = version
	r.URI = tgt.uri
	r.Path = tgt.path
	r.Scheme = tgt.scheme
	r.Host = tgt.host
	r.Port = tgt.port
	r.Params = tgt.params
	return nil
}

// allowedTokenByte matches the RFC 7230 token character class.
var allowedTokenByte [256]bool

func init() {
	for c := byte('0'); c <= '9'; c++ {
		allowedTokenByte[c] = true
	}
	for c := byte('A'); c <= 'Z'; c++ {
		allowedTokenByte[c] = true
	}
	for c := byte('a'); c <= 'z'; c++ {
		allowedTokenByte[c] = true
	}
	for _, c := range []byte("!#$%&'*+-.^_`|~") {
		allowedTokenByte[c] = true
	}
}

func isToken(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	for _, c := range b {
		if !allowedTokenByte[c] {
			return false
		}
	}
	return true
}

func isOWS(r rune) bool { return r == ' ' || r == '\t' }

// parseHeaderField parses one non-blank header line (without its
// trailing CRLF) into a (name, value) pair, rejecting obs-fold and
// malformed field-names per spec §4.D.
func parseHeaderField(line []byte) (name, value string, err error) {
	if line[0] == ' ' || line[0] == '\t' {
		return "", "", httperr.New(httperr.BadObsFold, "obsolete line folding is not supported")
	}
	colon := bytes.IndexByte(line, ':')
	if colon < 0 {
		return "", "", httperr.New(httperr.BadHeader, "header line missing colon")
	}
	if colon == 0 {
		return "", "", httperr.New(httperr.EmptyHeaderName, "empty header field-name")
	}
	nameRaw := line[:colon]
	if bytes.ContainsAny(nameRaw, " \t") {
		return "", "", httperr.New(httperr.BadHeaderName, "whitespace inside header field-name")
	}
	if !isToken(nameRaw) {
		return "", "", httperr.New(httperr.BadHeaderName, "header field-name is not a valid token")
	}
	valueRaw := bytes.TrimFunc(line[colon+1:], isOWS)
	return string(nameRaw), string(valueRaw), nil
}

// decideFraming is called once the blank line ending the header block
// has been consumed, and determines how (or whether) a body follows.
func (r *Request) decideFraming() (State, error) {
	teValues := r.Headers.Values(httpwire.HeaderTransferEncoding)
	clValues := r.Headers.Values(httpwire.HeaderContentLength)

	isChunked := false
	if len(teValues) > 0 {
		joined := strings.Join(teValues, ",")
		toks := strings.Split(joined, ",")
		last := strings.ToLower(strings.TrimSpace(toks[len(toks)-1]))
		isChunked = last == "chunked"
	}

	if isChunked && len(clValues) > 0 {
		// RFC 7230 §3.3.3 request-smuggling defense: a message framed
		// both ways is rejected outright rather than resolved.
		return Stale, httperr.New(httperr.BadTransferEncoding, "both Content-Length and Transfer-Encoding: chunked present")
	}

	if isChunked {
		r.chunked = true
		return BodyChunkedSize, nil
	}

	if len(clValues) > 0 {
		distinct := map[string]struct{}{}
		for _, v := range clValues {
			distinct[strings.TrimSpace(v)] = struct{}{}
		}
		if len(distinct) > 1 {
			return Stale, httperr.New(httperr.MultipleContentLength, "conflicting Content-Length values")
		}
		var only string
		for v := range distinct {
			only = v
		}
		n, perr := strconv.ParseInt(only, 10, 64)
		if perr != nil || n < 0 {
			return Stale, httperr.New(httperr.BadContentLength, "malformed Content-Length value")
		}
		if n > r.limits.MaxBodyBytes {
			return Stale, httperr.New(httperr.BodyLimit, "declared Content-Length exceeds limit")
		}
		r.ContentLength = n
		if n == 0 {
			return Completed, nil
		}
		return BodyFixed, nil
	}

	r.ContentLength = 0
	return Completed, nil
}

func parseChunkSize(line []byte) (uint64, error) {
	sizePart := line
	if idx := bytes.IndexByte(line, ';'); idx >= 0 {
		sizePart = line[:idx]
	}
	sizePart = bytes.TrimSpace(sizePart)
	if len(sizePart) == 0 || len(sizePart) > 16 {
		return 0, httperr.New(httperr.BadChunk, "invalid chunk-size")
	}
	size, err := strconv.ParseUint(string(sizePart), 16, 64)
	if err != nil {
		return 0, httperr.New(httperr.BadChunk, "invalid or overflowing chunk-size")
	}
	return size, nil
}
