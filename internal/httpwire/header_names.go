package httpwire

// Well-known header names the core itself inspects. Handlers are free
// to use any header name; these constants just avoid typos at the call
// sites that make framing/keep-alive decisions.
const (
	HeaderHost             = "Host"
	HeaderContentLength    = "Content-Length"
	HeaderTransferEncoding = "Transfer-Encoding"
	HeaderConnection       = "Connection"
	HeaderTrailer          = "Trailer"
)
