package request

// State is one of the parser's states, per the FSM in the spec:
//
//	NothingYet -> StartLine -> ExpectingNewline -> HeaderName -> HeaderValue
//	  -> (loop) -> BodyFixed | BodyChunkedSize -> BodyChunkedData
//	  -> BodyChunkedTrailer -> Completed
//
// Any error transitions the parser to Stale.
type State int

const (
	NothingYet State = iota
	StartLine
	ExpectingNewline
	HeaderName
	HeaderValue
	BodyFixed
	BodyChunkedSize
	BodyChunkedData
	BodyChunkedTrailer
	Completed
	Stale
)

var stateNames = map[State]string{
	NothingYet:          "NothingYet",
	StartLine:           "StartLine",
	ExpectingNewline:    "ExpectingNewline",
	HeaderName:          "HeaderName",
	HeaderValue:         "HeaderValue",
	BodyFixed:           "BodyFixed",
	BodyChunkedSize:     "BodyChunkedSize",
	BodyChunkedData:     "BodyChunkedData",
	BodyChunkedTrailer:  "BodyChunkedTrailer",
	Completed:           "Completed",
	Stale:               "Stale",
}

func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return "Unknown"
}

// Phase buckets the fine-grained State into the four groups the receive
// loop's timeout-kind mapping (spec §4.F step 2b) cares about.
type Phase int

const (
	PhaseNothing Phase = iota
	PhaseLine
	PhaseHeaders
	PhaseBody
)

// Phase reports which receive-loop timeout bucket s falls into.
func (s State) Phase() Phase {
	switch s {
	case NothingYet:
		return PhaseNothing
	case StartLine, ExpectingNewline:
		return PhaseLine
	case HeaderName, HeaderValue:
		return PhaseHeaders
	case BodyFixed, BodyChunkedSize, BodyChunkedData, BodyChunkedTrailer:
		return PhaseBody
	default:
		return PhaseNothing
	}
}

// Status is the result of one Parse call.
type Status int

const (
	// NeedMore means the buffer ran out mid-token; the caller must
	// append more bytes after the consumed prefix and call Parse again.
	NeedMore Status = iota
	// OK means the message is fully parsed.
	OK
	// Err means an unrecoverable parse error occurred; see Request.Err().
	Err
)

// Limits bounds the parser's resource consumption. Zero values fall
// back to the defaults in DefaultLimits().
type Limits struct {
	MaxRequestLine int
	MaxHeaderLine  int
	MaxHeaderBytes int
	MaxHeaderCount int
	MaxBodyBytes   int64
}

// DefaultLimits returns the spec's default limits.
func DefaultLimits() Limits {
	return Limits{
		MaxRequestLine: 8 * 1024,
		MaxHeaderLine:  8 * 1024,
		MaxHeaderBytes: 64 * 1024,
		MaxHeaderCount: 128,
		MaxBodyBytes:   64 * 1024 * 1024,
	}
}

func (l Limits) orDefault() Limits {
	d := DefaultLimits()
	if l.MaxRequestLine <= 0 {
		l.MaxRequestLine = d.MaxRequestLine
	}
	if l.MaxHeaderLine <= 0 {
		l.MaxHeaderLine = d.MaxHeaderLine
	}
	if l.MaxHeaderBytes <= 0 {
		l.MaxHeaderBytes = d.MaxHeaderBytes
	}
	if l.MaxHeaderCount <= 0 {
		l.MaxHeaderCount = d.MaxHeaderCount
	}
	if l.MaxBodyBytes <= 0 {
		l.MaxBodyBytes = d.MaxBodyBytes
	}
	return l
}
