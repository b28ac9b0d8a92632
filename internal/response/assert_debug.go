//go:build httpdebug

package response

import "strings"

// assertNoCRLFInjection panics if value contains a bare CR or LF, which
// would let a careless handler smuggle extra header fields or split
// the response. Only compiled into builds tagged httpdebug; production
// builds trust the caller per spec.md §4.E.
func assertNoCRLFInjection(value string) {
	if strings.ContainsAny(value, "\r\n") {
		panic("response: header value contains CR or LF")
	}
}
