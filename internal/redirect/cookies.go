package redirect

import (
	"net/url"

	"github.com/go-ahc/ahc/cookiestore"
	"github.com/go-ahc/ahc/internal/httpmodel"
)

// ReattachCookies merges the store's cookies for uri into the follow-up
// builder, assuming the store was already updated by prior response
// processing. Cookies explicitly set on the builder win; the store
// never overrides caller intent. Store order is kept.
func ReattachCookies(b *httpmodel.RequestBuilder, uri *url.URL, store cookiestore.Store) {
	if store == nil {
		return
	}
	for _, c := range store.Get(uri) {
		b.AddCookieIfUnset(c)
	}
}
