package request

import (
	"strconv"
	"strings"

	"httpcore/internal/httperr"
	"httpcore/internal/httpwire"
)

// target holds everything the request-target decomposes into, for
// whichever of the three legal shapes (asterisk/absolute/origin) it is.
type target struct {
	uri    string
	path   string
	scheme httpwire.Scheme
	host   string
	port   uint16
	params map[string]string
}

// decomposeTarget classifies and parses a request-target per spec §4.D.
func decomposeTarget(raw string) (target, error) {
	t := target{uri: raw}

	if raw == "*" {
		t.path = ""
		t.params = map[string]string{}
		return t, nil
	}

	if strings.HasPrefix(raw, "/") {
		path, query, _ := strings.Cut(raw, "?")
		if err := validatePath(path); err != nil {
			return target{}, err
		}
		t.path = path
		t.params = parseQuery(query)
		return t, nil
	}

	// Only remaining legal shape is absolute-form.
	schemeEnd := strings.Index(raw, "://")
	if schemeEnd <= 0 {
		return target{}, httperr.New(httperr.BadURI, "request-target is neither asterisk-form, origin-form, nor absolute-form")
	}
	scheme, ok := httpwire.ParseScheme(raw[:schemeEnd])
	if !ok {
		return target{}, httperr.New(httperr.BadScheme, "unrecognized scheme in absolute-form request-target")
	}
	t.scheme = scheme

	rest := raw[schemeEnd+len("://"):]
	authEnd := len(rest)
	if idx := strings.IndexAny(rest, "/?"); idx >= 0 {
		authEnd = idx
	}
	authority := rest[:authEnd]
	if authority == "" {
		return target{}, httperr.New(httperr.BadHost, "empty host in absolute-form request-target")
	}

	host, portStr, hasPort := strings.Cut(authority, ":")
	if host == "" {
		return target{}, httperr.New(httperr.BadHost, "empty host in absolute-form request-target")
	}
	t.host = host
	if hasPort {
		if portStr == "" {
			return target{}, httperr.New(httperr.BadPort, "empty port in absolute-form request-target")
		}
		p, err := strconv.ParseUint(portStr, 10, 16)
		if err != nil {
			return target{}, httperr.New(httperr.BadPort, "non-numeric or out-of-range port")
		}
		t.port = uint16(p)
	}

	remainder := rest[authEnd:]
	var path, query string
	switch {
	case remainder == "":
		path = ""
	case strings.HasPrefix(remainder, "?"):
		path = ""
		query = remainder[1:]
	case strings.HasPrefix(remainder, "/"):
		path, query, _ = strings.Cut(remainder, "?")
	default:
		return target{}, httperr.New(httperr.BadPath, "malformed path in absolute-form request-target")
	}
	if err := validatePath(path); err != nil {
		return target{}, err
	}
	t.path = path
	t.params = parseQuery(query)
	return t, nil
}

func validatePath(path string) error {
	for i := 0; i < len(path); i++ {
		c := path[i]
		if c < 0x20 || c == 0x7f {
			return httperr.New(httperr.BadPath, "control character in path")
		}
	}
	return nil
}
