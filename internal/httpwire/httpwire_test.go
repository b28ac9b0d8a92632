package httpwire

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMethod(t *testing.T) {
	m, ok := ParseMethod("GET")
	assert.True(t, ok)
	assert.Equal(t, MethodGET, m)

	_, ok = ParseMethod("frobnicate")
	assert.False(t, ok)
}

func TestParseVersion_OnlyExact11And10(t *testing.T) {
	v, ok := ParseVersion("HTTP/1.1")
	assert.True(t, ok)
	assert.Equal(t, Version11, v)

	_, ok = ParseVersion("HTTP/2.0")
	assert.False(t, ok)
}

func TestVersion_AtLeast11(t *testing.T) {
	assert.True(t, Version11.AtLeast11())
	assert.False(t, Version10.AtLeast11())
}

func TestParseScheme(t *testing.T) {
	s, ok := ParseScheme("https")
	assert.True(t, ok)
	assert.Equal(t, SchemeHTTPS, s)
}

func TestReasonPhrase_KnownAndUnknown(t *testing.T) {
	assert.Equal(t, "OK", ReasonPhrase(StatusCode(200)))
	assert.Equal(t, "Unknown", ReasonPhrase(StatusCode(209)))
}

func TestStatusCode_Valid(t *testing.T) {
	assert.True(t, StatusCode(200).Valid())
	assert.False(t, StatusCode(0).Valid())
	assert.False(t, StatusCode(700).Valid())
}
