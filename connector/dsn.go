package connector

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
)

// ErrMissingHost is returned when a network config or DSN has no host.
var ErrMissingHost = errors.New("host is required")

// DSNBuilder assembles URL-style connection strings (postgres://, mysql://).
// Empty parts are left out of the result.
type DSNBuilder struct {
	u      url.URL
	port   int
	params url.Values
}

func NewDSNBuilder(scheme string) *DSNBuilder {
	return &DSNBuilder{
		u:      url.URL{Scheme: scheme},
		params: url.Values{},
	}
}

// Auth sets the user info. A password without a username is dropped.
func (b *DSNBuilder) Auth(username, password string) *DSNBuilder {
	switch {
	case username == "":
		b.u.User = nil
	case password == "":
		b.u.User = url.User(username)
	default:
		b.u.User = url.UserPassword(username, password)
	}
	return b
}

// Host sets the host and, when port > 0, the port. IPv6 literals are
// bracketed.
func (b *DSNBuilder) Host(host string, port int) *DSNBuilder {
	b.port = port
	b.u.Host = host
	if port > 0 {
		b.u.Host = net.JoinHostPort(host, strconv.Itoa(port))
	}
	return b
}

func (b *DSNBuilder) Database(name string) *DSNBuilder {
	b.u.Path = ""
	if name != "" {
		b.u.Path = "/" + name
	}
	return b
}

// Param sets one query parameter. Empty values are skipped.
func (b *DSNBuilder) Param(key, value string) *DSNBuilder {
	if value != "" {
		b.params.Set(key, value)
	}
	return b
}

func (b *DSNBuilder) Params(params map[string]string) *DSNBuilder {
	for k, v := range params {
		b.Param(k, v)
	}
	return b
}

func (b *DSNBuilder) Validate() error {
	if b.u.Host == "" {
		return ErrMissingHost
	}
	if b.port <= 0 || b.port > 65535 {
		return fmt.Errorf("invalid port: %d", b.port)
	}
	return nil
}

// Build returns the DSN. Query parameters are emitted in key order, so equal
// configs give equal strings.
func (b *DSNBuilder) Build() string {
	u := b.u
	u.RawQuery = b.params.Encode()
	return u.String()
}

// PostgresDSN returns cfg.DSN if set, otherwise a postgres:// URL built from
// the individual fields.
func PostgresDSN(cfg Config) string {
	if cfg.DSN != "" {
		return cfg.DSN
	}
	return NewDSNBuilder("postgres").
		Auth(cfg.Username, cfg.Password).
		Host(cfg.Host, cfg.Port).
		Database(cfg.Database).
		Param("sslmode", cfg.SSLMode).
		Params(cfg.Params).
		Build()
}
