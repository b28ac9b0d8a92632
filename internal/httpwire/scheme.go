package httpwire

import "strings"

// Scheme is set only when a request-target was given in absolute-form.
type Scheme int

const (
	SchemeUnknown Scheme = iota
	SchemeHTTP
	SchemeHTTPS
)

func (s Scheme) String() string {
	switch s {
	case SchemeHTTP:
		return "http"
	case SchemeHTTPS:
		return "https"
	default:
		return "unknown"
	}
}

// ParseScheme recognizes "http" and "https", case-insensitively.
func ParseScheme(tok string) (Scheme, bool) {
	switch strings.ToLower(tok) {
	case "http":
		return SchemeHTTP, true
	case "https":
		return SchemeHTTPS, true
	default:
		return SchemeUnknown, false
	}
}
