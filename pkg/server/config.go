package server

import (
	"net/http"
	"net/url"
	"time"
)

// Config configures the stream server.
type Config struct {
	// Address is the listen address (default: "localhost:7400").
	Address string

	// Path is the WebSocket route (default: "/stream").
	Path string

	// ReadBufferSize and WriteBufferSize size the WebSocket buffers.
	ReadBufferSize  int
	WriteBufferSize int

	// MaxMessageSize caps an incoming frame (default: 64KB).
	MaxMessageSize int64

	// WriteTimeout bounds each frame write (default: 10s).
	WriteTimeout time.Duration

	// StepInterval advances the fixture on a timer when positive.
	StepInterval time.Duration

	// ShutdownTimeout bounds graceful shutdown (default: 10s).
	ShutdownTimeout time.Duration

	// CheckOrigin validates the Origin header (default: SameOriginCheck).
	CheckOrigin func(r *http.Request) bool
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Address:         "localhost:7400",
		Path:            "/stream",
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		MaxMessageSize:  64 * 1024,
		WriteTimeout:    10 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		CheckOrigin:     SameOriginCheck,
	}
}

// withDefaults fills unset fields from DefaultConfig.
func (c *Config) withDefaults() *Config {
	d := DefaultConfig()
	if c == nil {
		return d
	}
	out := *c
	if out.Address == "" {
		out.Address = d.Address
	}
	if out.Path == "" {
		out.Path = d.Path
	}
	if out.ReadBufferSize == 0 {
		out.ReadBufferSize = d.ReadBufferSize
	}
	if out.WriteBufferSize == 0 {
		out.WriteBufferSize = d.WriteBufferSize
	}
	if out.MaxMessageSize == 0 {
		out.MaxMessageSize = d.MaxMessageSize
	}
	if out.WriteTimeout == 0 {
		out.WriteTimeout = d.WriteTimeout
	}
	if out.ShutdownTimeout == 0 {
		out.ShutdownTimeout = d.ShutdownTimeout
	}
	if out.CheckOrigin == nil {
		out.CheckOrigin = d.CheckOrigin
	}
	return &out
}

// SameOriginCheck accepts requests without an Origin header and requests
// whose Origin host matches the request host.
func SameOriginCheck(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return r.Host != "" && originURL.Host == r.Host
}
