// Package httpwire holds the wire-level vocabulary shared by the parser,
// the serializer, and the connection driver: methods, versions, schemes,
// status codes, and the header names the core itself looks at.
package httpwire

// Method is one of the request methods recognized by the parser.
type Method int

const (
	MethodUnknown Method = iota
	MethodGET
	MethodHEAD
	MethodPOST
	MethodPUT
	MethodDELETE
	MethodTRACE
	MethodCONTROL
	MethodPURGE
	MethodOPTIONS
	MethodCONNECT
)

var methodNames = map[Method]string{
	MethodGET:     "GET",
	MethodHEAD:    "HEAD",
	MethodPOST:    "POST",
	MethodPUT:     "PUT",
	MethodDELETE:  "DELETE",
	MethodTRACE:   "TRACE",
	MethodCONTROL: "CONTROL",
	MethodPURGE:   "PURGE",
	MethodOPTIONS: "OPTIONS",
	MethodCONNECT: "CONNECT",
}

var methodValues = func() map[string]Method {
	m := make(map[string]Method, len(methodNames))
	for k, v := range methodNames {
		m[v] = k
	}
	return m
}()

// String returns the canonical wire token for m, or "UNKNOWN".
func (m Method) String() string {
	if s, ok := methodNames[m]; ok {
		return s
	}
	return "UNKNOWN"
}

// ParseMethod maps a wire token to a Method. The returned bool is false
// for any token not in the known set, in which case the caller should
// treat the request line as bad-method.
func ParseMethod(tok string) (Method, bool) {
	m, ok := methodValues[tok]
	return m, ok
}
