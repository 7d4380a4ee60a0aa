// Package cookiestore keeps cookies between the requests of one
// client. The redirect engine consumes only the narrow Get side of the
// contract; response processing is expected to have called Add before a
// redirect is resolved.
package cookiestore

import (
	"net/http"
	"net/http/cookiejar"
	"net/url"

	"golang.org/x/net/publicsuffix"
)

// Store is the cookie contract the client and the redirect engine
// share. Implementations must be safe for use from concurrent
// exchanges.
type Store interface {
	// Get returns the cookies applicable to u, expired ones excluded.
	Get(u *url.URL) []*http.Cookie
	// Add records cookies received for u, replacing existing ones of
	// the same name, domain and path. An expired cookie acts as a
	// deletion.
	Add(u *url.URL, cookies ...*http.Cookie)
}

type jarStore struct {
	jar *cookiejar.Jar
}

// New returns a Store backed by [net/http/cookiejar], with
// public-suffix-aware domain matching so a cookie for example.co.uk
// never leaks to other co.uk hosts.
func New() (Store, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, err
	}
	return &jarStore{jar: jar}, nil
}

func (s *jarStore) Get(u *url.URL) []*http.Cookie {
	return s.jar.Cookies(u)
}

func (s *jarStore) Add(u *url.URL, cookies ...*http.Cookie) {
	s.jar.SetCookies(u, cookies)
}
