package redirect

import (
	"net/http"

	"github.com/go-ahc/ahc/internal/httpmodel"
)

// PropagateHeaders builds the header set for a follow-up request from
// the headers of the request that got redirected. Host and
// Content-Length never survive: the target and the body framing both
// change. Without a body there is no Content-Type either. Authorization
// and Proxy-Authorization are dropped when stripAuth asks for it, or
// when the realm is NTLM, whose credentials are bound to the original
// connection and must not be replayed elsewhere. The input set is never
// mutated.
func PropagateHeaders(h http.Header, realm *httpmodel.Realm, keepBody, stripAuth bool) http.Header {
	out := h.Clone()
	if out == nil {
		out = http.Header{}
	}
	out.Del("Host")
	out.Del("Content-Length")
	if !keepBody {
		out.Del("Content-Type")
	}
	if stripAuth || (realm != nil && realm.Scheme == httpmodel.AuthNTLM) {
		out.Del("Authorization")
		out.Del("Proxy-Authorization")
	}
	return out
}
