package httpwire

// StatusCode is a numeric HTTP status code. The zero value is not a
// valid status; response.Serialize treats it as UNKNOWN per spec.
type StatusCode int

// reasonPhrases is the canonical phrase table from the GLOSSARY. It is
// deliberately partial (the set the spec names); codes outside it still
// serialize fine but fall back to a generic phrase.
var reasonPhrases = map[StatusCode]string{
	100: "Continue",
	200: "OK",
	201: "Created",
	204: "No Content",
	301: "Moved Permanently",
	302: "Found",
	304: "Not Modified",
	400: "Bad Request",
	401: "Authorization Required",
	403: "Forbidden",
	404: "Not Found",
	408: "Request Time-out",
	411: "Length Required",
	413: "Request Entity Too Large",
	414: "Request-URI Too Large",
	500: "Internal Error",
	501: "Method Not Implemented",
	503: "Service Temporarily Unavailable",
	504: "Gateway Time-out",
	505: "HTTP Version Not Supported",
}

// ReasonPhrase returns the canonical reason phrase for code, or a
// generic fallback if code is not in the known table.
func ReasonPhrase(code StatusCode) string {
	if p, ok := reasonPhrases[code]; ok {
		return p
	}
	if code <= 0 {
		return "Unknown Status"
	}
	return "Unknown"
}

// Valid reports whether code looks like a real three-digit status code.
func (c StatusCode) Valid() bool {
	return c >= 100 && c <= 599
}
