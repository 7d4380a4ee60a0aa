package internal

import (
	"github.com/go-ahc/ahc/cookiestore"
	"github.com/go-ahc/ahc/internal/redirect"
)

// Config is the client-wide configuration surface. It is passed
// explicitly, never read from global state, and copied with defaults
// applied at the start of every logical exchange.
type Config struct {
	// MaxRedirects bounds the hops of one logical exchange.
	// 0 means redirect.DefaultMaxRedirects.
	MaxRedirects int

	// Strict302Handling keeps method and body on a 302 instead of the
	// legacy GET downgrade.
	Strict302Handling bool

	// StripAuthorizationOnRedirect drops Authorization and
	// Proxy-Authorization from every follow-up request.
	StripAuthorizationOnRedirect bool

	// CookieStore, when set, is queried per hop so applicable cookies
	// follow the exchange to its new target.
	CookieStore cookiestore.Store

	// Connection pool sizing, per partition. 0 picks the defaults.
	MaxConnsPerPartition uint
	MaxIdlePerPartition  uint
}

const (
	defaultMaxConnsPerPartition = 100
	defaultMaxIdlePerPartition  = 80
)

func (c Config) withDefaults() Config {
	if c.MaxRedirects <= 0 {
		c.MaxRedirects = redirect.DefaultMaxRedirects
	}
	if c.MaxConnsPerPartition == 0 {
		c.MaxConnsPerPartition = defaultMaxConnsPerPartition
	}
	if c.MaxIdlePerPartition == 0 {
		c.MaxIdlePerPartition = defaultMaxIdlePerPartition
	}
	return c
}

func (c Config) redirectOptions() redirect.Options {
	return redirect.Options{
		MaxRedirects:                 c.MaxRedirects,
		Strict302Handling:            c.Strict302Handling,
		StripAuthorizationOnRedirect: c.StripAuthorizationOnRedirect,
		CookieStore:                  c.CookieStore,
	}
}
