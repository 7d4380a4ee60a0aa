package redirect

import (
	"context"
	"io"

	"github.com/pkg/errors"

	"github.com/go-ahc/ahc/cookiestore"
	"github.com/go-ahc/ahc/internal/httpmodel"
	"github.com/go-ahc/ahc/internal/log"
)

// Conn is the transport connection the response arrived on. The
// resolver never reads or writes it, it only routes it to the
// ConnectionManager or the Dispatcher.
type Conn = io.ReadWriteCloser

// ConnectionManager is the slice of the pool contract the resolver
// needs: hand a connection back under its partition key, or close it
// for good.
type ConnectionManager interface {
	// DrainAndOffer consumes the outstanding response body on conn and
	// returns the connection to the pool. keepAlive and partitionKey
	// describe the connection as it was before the redirect, not the
	// new target.
	DrainAndOffer(ctx context.Context, conn Conn, exch *Exchange, keepAlive bool, partitionKey any) error
	Close(conn Conn) error
}

// Dispatcher sends the follow-up request of a hop. SendOnSameConn must
// drain the outstanding response body before writing; the previous
// response may still be streaming on the connection.
type Dispatcher interface {
	SendOnSameConn(ctx context.Context, conn Conn, exch *Exchange, req *httpmodel.Request) error
	SendNew(ctx context.Context, req *httpmodel.Request, exch *Exchange) error
}

const DefaultMaxRedirects = 5

// Options is the configuration surface the resolver reads. The zero
// value follows up to DefaultMaxRedirects hops with legacy 302
// handling, no header stripping and no cookie store.
type Options struct {
	MaxRedirects                 int
	Strict302Handling            bool
	StripAuthorizationOnRedirect bool
	CookieStore                  cookiestore.Store
}

// Resolver turns a redirect response into a dispatched follow-up
// request. One resolver serves many exchanges; all per-exchange state
// lives in the Exchange passed to Handle.
type Resolver struct {
	opts  Options
	conns ConnectionManager
	send  Dispatcher
}

func NewResolver(opts Options, conns ConnectionManager, send Dispatcher) *Resolver {
	if opts.MaxRedirects <= 0 {
		opts.MaxRedirects = DefaultMaxRedirects
	}
	return &Resolver{opts: opts, conns: conns, send: send}
}

// Handle resolves one redirect hop. It returns (false, nil) when the
// request opted out of redirect following, (true, nil) once the
// follow-up request has been dispatched, and (false, err) on a terminal
// failure: the redirect ceiling, a bad Location header, a canceled
// context, or a collaborator error (propagated as-is).
//
// head must be a redirect response; the response body may still be
// streaming and is only touched through the drain contracts.
func (r *Resolver) Handle(ctx context.Context, conn Conn, exch *Exchange, head httpmodel.ResponseHead, req *httpmodel.Request, realm *httpmodel.Realm) (followed bool, err error) {
	if !req.FollowRedirect {
		return false, nil
	}
	if exch.NextRedirect() >= r.opts.MaxRedirects {
		return false, &MaxRedirectError{Limit: r.opts.MaxRedirects}
	}

	// the target may demand a fresh authentication negotiation
	exch.InAuth = false
	exch.InProxyAuth = false

	useMethod, keepBody := Decide(req.Method, head.StatusCode, r.opts.Strict302Handling)

	b := httpmodel.NewRequest(useMethod).
		SetPartitioner(req.Partitioner).
		SetFollowRedirect(true).
		SetLocalAddr(req.LocalAddr).
		SetResolver(req.Resolver).
		SetProxy(req.Proxy).
		SetRealm(req.Realm).
		SetRequestTimeout(req.RequestTimeout)

	if keepBody && req.Body.IsSet() {
		b.SetCharset(req.Charset).SetBody(req.Body)
	}

	b.SetHeader(PropagateHeaders(req.Header, realm, keepBody, r.opts.StripAuthorizationOnRedirect))

	// an http->https hop changes the exchange's pool attributes; the
	// connection is offered back under its pre-redirect identity
	keepAliveBefore := exch.KeepAlive
	partitionBefore := exch.PartitionKey

	location := head.Location()
	if location == "" {
		return false, &InvalidLocationError{}
	}
	newURI, err := exch.URI.Parse(location)
	if err != nil {
		return false, &InvalidLocationError{Location: location, Err: err}
	}
	log.Debug().Stringer("uri", newURI).Int("hop", exch.Redirects()).Msg("redirecting")

	ReattachCookies(b, newURI, r.opts.CookieStore)

	sameBase := httpmodel.SameBase(req.URL, newURI)
	if sameBase {
		// a virtual host override is only meaningful within one origin
		b.SetVirtualHost(req.VirtualHost)
	}

	next, err := b.SetURL(newURI).Build()
	if err != nil {
		return false, errors.Wrapf(err, "building redirect request for %s", newURI)
	}
	exch.Target = next
	exch.URI = newURI
	exch.PartitionKey = next.PartitionKey()

	// a canceled exchange must not dispatch a pending follow-up
	if err := ctx.Err(); err != nil {
		return false, err
	}

	if exch.KeepAlive && !head.IsChunked() {
		if sameBase {
			exch.ReuseConn = true
			// the previous response is still on conn, the dispatcher
			// drains it before writing
			if err := r.send.SendOnSameConn(ctx, conn, exch, next); err != nil {
				return false, err
			}
			return true, nil
		}
		if err := r.conns.DrainAndOffer(ctx, conn, exch, keepAliveBefore, partitionBefore); err != nil {
			return false, err
		}
		if err := r.send.SendNew(ctx, next, exch); err != nil {
			return false, err
		}
		return true, nil
	}

	// a chunked body can't be handed back mid-stream, give up on the
	// connection
	if err := r.conns.Close(conn); err != nil {
		return false, err
	}
	if err := r.send.SendNew(ctx, next, exch); err != nil {
		return false, err
	}
	return true, nil
}
