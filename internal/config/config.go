// Package config holds the server's externally-tunable settings. Values
// are filled in by cmd/httpserver's cobra/pflag flags; the defaults
// here match spec.md §6 and internal/request.DefaultLimits so a
// zero-value Config is never handed to the server.
package config

import (
	"time"

	"httpcore/internal/request"
)

// Config is the full configuration surface named in SPEC_FULL.md §6.
type Config struct {
	ListenAddr string

	RecvTotalTimeout     time.Duration
	RecvKeepaliveTimeout time.Duration
	SendTotalTimeout     time.Duration

	LimitRequestLine int
	LimitHeaderBytes int
	LimitHeaderCount int
	LimitBodyBytes   int64

	KeepAliveMaxReuse int

	LogLevel    string
	MetricsAddr string
}

// Default returns the configuration spec.md §6 describes out of the box.
func Default() Config {
	d := request.DefaultLimits()
	return Config{
		ListenAddr:           ":42069",
		RecvTotalTimeout:     30 * time.Second,
		RecvKeepaliveTimeout: 5 * time.Second,
		SendTotalTimeout:     30 * time.Second,
		LimitRequestLine:     d.MaxRequestLine,
		LimitHeaderBytes:     d.MaxHeaderBytes,
		LimitHeaderCount:     d.MaxHeaderCount,
		LimitBodyBytes:       d.MaxBodyBytes,
		KeepAliveMaxReuse:    100,
		LogLevel:             "info",
		MetricsAddr:          ":9091",
	}
}

// Limits projects the parser-relevant fields into a request.Limits.
func (c Config) Limits() request.Limits {
	return request.Limits{
		MaxRequestLine: c.LimitRequestLine,
		MaxHeaderLine:  c.LimitRequestLine,
		MaxHeaderBytes: c.LimitHeaderBytes,
		MaxHeaderCount: c.LimitHeaderCount,
		MaxBodyBytes:   c.LimitBodyBytes,
	}
}
