package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"httpcore/internal/request"
)

func TestDefault_MatchesRequestDefaultLimits(t *testing.T) {
	want := request.DefaultLimits()
	limits := Default().Limits()

	assert.Equal(t, want.MaxRequestLine, limits.MaxRequestLine)
	assert.Equal(t, want.MaxHeaderBytes, limits.MaxHeaderBytes)
	assert.Equal(t, want.MaxHeaderCount, limits.MaxHeaderCount)
	assert.Equal(t, want.MaxBodyBytes, limits.MaxBodyBytes)
}

func TestDefault_ListenAddr(t *testing.T) {
	assert.Equal(t, ":42069", Default().ListenAddr)
}
