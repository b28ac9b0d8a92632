package request

import "strings"

// parseQuery parses a query string of "key=value" pairs separated by
// "&". A bare key stores an empty value; a bare "=" (no key) is
// ignored; ";" is not treated as a separator. Duplicate keys: last
// write wins. Values are stored verbatim — no percent-decoding.
func parseQuery(q string) map[string]string {
	if q == "" {
		return map[string]string{}
	}
	out := map[string]string{}
	for _, pair := range strings.Split(q, "&") {
		if pair == "" {
			continue
		}
		eq := strings.IndexByte(pair, '=')
		if eq < 0 {
			out[pair] = ""
			continue
		}
		key := pair[:eq]
		if key == "" {
			// bare "=value" with no key: ignored.
			continue
		}
		out[key] = pair[eq+1:]
	}
	return out
}
