// Package httperr defines the closed set of parse, transport, and
// timing error kinds produced by this module, per the error taxonomy in
// the spec. "need-more" is intentionally absent here: it is a parser
// return value, never an error (see internal/request.Status).
package httperr

import (
	"github.com/pkg/errors"
)

// Family groups a Kind into one of the three error families the
// propagation policy treats uniformly.
type Family int

const (
	FamilyParse Family = iota
	FamilyTransport
	FamilyTiming
)

func (f Family) String() string {
	switch f {
	case FamilyParse:
		return "parse"
	case FamilyTransport:
		return "transport"
	case FamilyTiming:
		return "timing"
	default:
		return "unknown"
	}
}

// Kind is one member of the closed error-kind set from the spec.
type Kind string

// Parse error kinds (terminal for the connection; the parser goes stale).
const (
	BadLineEnding          Kind = "bad-line-ending"
	EmptyMethod            Kind = "empty-method"
	BadMethod              Kind = "bad-method"
	BadURI                 Kind = "bad-uri"
	BadScheme              Kind = "bad-scheme"
	BadHost                Kind = "bad-host"
	BadPort                Kind = "bad-port"
	BadPath                Kind = "bad-path"
	BadParams              Kind = "bad-params"
	BadVersion             Kind = "bad-version"
	BadStatus              Kind = "bad-status"
	BadReason              Kind = "bad-reason"
	BadHeader              Kind = "bad-header"
	EmptyHeaderName        Kind = "empty-header-name"
	BadHeaderName          Kind = "bad-header-name"
	EmptyHeaderValue       Kind = "empty-header-value"
	BadHeaderValue         Kind = "bad-header-value"
	BadContentLength       Kind = "bad-content-length"
	BadTransferEncoding    Kind = "bad-transfer-encoding"
	MultipleContentLength  Kind = "multiple-content-length"
	BadChunk               Kind = "bad-chunk"
	BadChunkExtension      Kind = "bad-chunk-extension"
	BadObsFold             Kind = "bad-obs-fold"
	HeaderLimit            Kind = "header-limit"
	BodyLimit              Kind = "body-limit"
	BufferOverflow         Kind = "buffer-overflow"
	StaleParser            Kind = "stale-parser"
	RequestURITooLarge     Kind = "request-uri-too-large"
)

// Transport error kinds (terminal).
const (
	EndOfStream Kind = "end-of-stream"
	ShortRead   Kind = "short-read"
	NeedBuffer  Kind = "need-buffer"
	BadAlloc    Kind = "bad-alloc"
)

// Timing error kinds (terminal).
const (
	RecvTimeout                  Kind = "recv-timeout"
	RecvRequestTimeoutWithNothing Kind = "recv-request-timeout-with-nothing"
	RecvRequestLineTimeout        Kind = "recv-request-line-timeout"
	RecvRequestHeadersTimeout     Kind = "recv-request-headers-timeout"
	RecvRequestBodyTimeout        Kind = "recv-request-body-timeout"
	SendTimeout                   Kind = "send-timeout"
)

var kindFamily = map[Kind]Family{
	BadLineEnding:         FamilyParse,
	EmptyMethod:           FamilyParse,
	BadMethod:             FamilyParse,
	BadURI:                FamilyParse,
	BadScheme:             FamilyParse,
	BadHost:               FamilyParse,
	BadPort:               FamilyParse,
	BadPath:               FamilyParse,
	BadParams:             FamilyParse,
	BadVersion:            FamilyParse,
	BadStatus:             FamilyParse,
	BadReason:             FamilyParse,
	BadHeader:             FamilyParse,
	EmptyHeaderName:       FamilyParse,
	BadHeaderName:         FamilyParse,
	EmptyHeaderValue:      FamilyParse,
	BadHeaderValue:        FamilyParse,
	BadContentLength:      FamilyParse,
	BadTransferEncoding:   FamilyParse,
	MultipleContentLength: FamilyParse,
	BadChunk:              FamilyParse,
	BadChunkExtension:     FamilyParse,
	BadObsFold:            FamilyParse,
	HeaderLimit:           FamilyParse,
	BodyLimit:             FamilyParse,
	BufferOverflow:        FamilyParse,
	StaleParser:           FamilyParse,
	RequestURITooLarge:    FamilyParse,

	EndOfStream: FamilyTransport,
	ShortRead:   FamilyTransport,
	NeedBuffer:  FamilyTransport,
	BadAlloc:    FamilyTransport,

	RecvTimeout:                   FamilyTiming,
	RecvRequestTimeoutWithNothing: FamilyTiming,
	RecvRequestLineTimeout:        FamilyTiming,
	RecvRequestHeadersTimeout:     FamilyTiming,
	RecvRequestBodyTimeout:        FamilyTiming,
	SendTimeout:                   FamilyTiming,
}

// Family returns the family k belongs to.
func (k Kind) Family() Family {
	return kindFamily[k]
}

// Error is a stable, comparable error value carrying a Kind. Two Errors
// with the same Kind satisfy errors.Is against each other regardless of
// any wrapped positional context.
type Error struct {
	Kind    Kind
	message string
}

func (e *Error) Error() string { return e.message }

// Is makes errors.Is(err, New(kind, "")) match any Error of that Kind,
// so call sites can test for a kind without caring about message text.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// New constructs a sentinel Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, message: message}
}

// sentinels usable directly with errors.Is.
var sentinels = func() map[Kind]*Error {
	m := make(map[Kind]*Error, len(kindFamily))
	for k := range kindFamily {
		m[k] = New(k, string(k))
	}
	return m
}()

// Sentinel returns the package-wide sentinel Error for kind.
func Sentinel(kind Kind) error {
	return sentinels[kind]
}

// Wrap attaches a byte offset (where the error was detected in the
// current buffer) to err without disturbing errors.Is-identity for any
// *Error beneath it.
func Wrap(err error, offset int) error {
	if err == nil {
		return nil
	}
	return errors.WithMessagef(err, "at byte offset %d", offset)
}

// KindOf extracts the Kind from err if it (or something it wraps) is an
// *Error, and ok=false otherwise.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}
