package ahc

import (
	"github.com/go-ahc/ahc/internal/redirect"
)

// The redirect engine's error taxonomy, surfaced so callers can branch
// with errors.As.
type MaxRedirectError = redirect.MaxRedirectError
type InvalidLocationError = redirect.InvalidLocationError

const DefaultMaxRedirects = redirect.DefaultMaxRedirects
