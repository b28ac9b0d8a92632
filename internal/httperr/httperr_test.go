package httperr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorIs_MatchesByKind(t *testing.T) {
	err := New(BadMethod, "unrecognized method token")
	assert.True(t, errors.Is(err, Sentinel(BadMethod)))
	assert.False(t, errors.Is(err, Sentinel(BadVersion)))
}

func TestKindOf_ExtractsThroughWrap(t *testing.T) {
	err := Wrap(New(HeaderLimit, "too many headers"), 128)
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, HeaderLimit, kind)
}

func TestKindOf_FalseForPlainError(t *testing.T) {
	_, ok := KindOf(errors.New("boom"))
	assert.False(t, ok)
}

func TestFamily_Grouping(t *testing.T) {
	assert.Equal(t, FamilyParse, BadChunk.Family())
	assert.Equal(t, FamilyTransport, EndOfStream.Family())
	assert.Equal(t, FamilyTiming, RecvTimeout.Family())
}

func TestWrap_NilIsNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, 0))
}
