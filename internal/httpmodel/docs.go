// package httpmodel contains the request and response model shared by
// the client and the redirect engine. Requests are built once through a
// RequestBuilder and treated as immutable afterwards; following a
// redirect always produces a new Request value.
//
// net/http components are reused on the "semantics" part ([net/http.Header],
// [net/http.Cookie], [net/url.URL]); the wire syntax is not this package's
// concern.
package httpmodel
