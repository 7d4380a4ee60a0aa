package redirect

import (
	"io"
	"net/http"
	"net/url"
	"sync/atomic"

	"github.com/go-ahc/ahc/internal/httpmodel"
)

// Exchange is the mutable state of one logical request across its
// redirect hops. It has a single writer, the code handling the current
// hop; hops are strictly sequential. Only the redirect counter may be
// read concurrently, by monitoring or cancellation code, hence the
// atomic.
type Exchange struct {
	redirects atomic.Int32

	// authentication handshake progress, reset on every hop
	InAuth      bool
	InProxyAuth bool

	KeepAlive    bool
	PartitionKey any
	URI          *url.URL
	Target       *httpmodel.Request
	ReuseConn    bool

	pending io.ReadCloser
}

// NewExchange starts an exchange at its original request.
func NewExchange(req *httpmodel.Request) *Exchange {
	return &Exchange{
		KeepAlive:    true,
		PartitionKey: req.PartitionKey(),
		URI:          req.URL,
		Target:       req,
	}
}

// NextRedirect bumps the hop counter and returns its new value.
func (e *Exchange) NextRedirect() int { return int(e.redirects.Add(1)) }

// Redirects is safe to call while the exchange is being handled.
func (e *Exchange) Redirects() int { return int(e.redirects.Load()) }

// SetPendingBody records the not-yet-consumed body of the response
// being handled. It must be drained before the connection carries
// another request.
func (e *Exchange) SetPendingBody(rc io.ReadCloser) { e.pending = rc }

// TakePendingBody hands over the outstanding body, at most once per
// hop.
func (e *Exchange) TakePendingBody() io.ReadCloser {
	rc := e.pending
	e.pending = nil
	return rc
}

// DrainBody consumes and closes an outstanding response body. Sending
// on a connection with outstanding body bytes desynchronizes the
// stream.
func DrainBody(rc io.ReadCloser) error {
	if rc == nil || rc == http.NoBody {
		return nil
	}
	_, err := io.Copy(io.Discard, rc)
	if cerr := rc.Close(); err == nil {
		err = cerr
	}
	return err
}
