package internal

import (
	"context"

	"github.com/pkg/errors"

	"github.com/go-ahc/ahc/internal/httpmodel"
	"github.com/go-ahc/ahc/internal/redirect"
	"github.com/go-ahc/ahc/netpool"
)

type Handler = func(ctx context.Context, req *httpmodel.Request) (*httpmodel.Response, error)

type Middleware func(next Handler) Handler

// Sender is the transport seam: one request/response round trip over
// whatever wire layer the consumer plugs in. Send may dial or take a
// pooled connection and must report the connection the response
// arrived on; SendOn writes on a specific connection the redirect
// engine decided to reuse.
type Sender interface {
	Send(ctx context.Context, req *httpmodel.Request) (*httpmodel.Response, redirect.Conn, error)
	SendOn(ctx context.Context, conn redirect.Conn, req *httpmodel.Request) (*httpmodel.Response, error)
}

var ErrNoSender = errors.New("client has no transport sender configured")

// Client drives logical exchanges: it sends the original request and
// follows redirect hops through the resolver until a non-redirect
// response or a terminal failure.
type Client struct {
	Config Config

	middlewares []Middleware
	sender      Sender
	pool        *netpool.Group
}

// Use appends mw to the end of the chain. The first "Use"d mw executes first
func (c *Client) Use(mws ...Middleware) {
	c.middlewares = append(c.middlewares, mws...)
}

// UseSender plugs in the transport implementation.
func (c *Client) UseSender(s Sender) {
	c.sender = s
}

// Pool returns the client's connection pool, creating it on first use.
func (c *Client) Pool() *netpool.Group {
	if c.pool == nil {
		cfg := c.Config.withDefaults()
		c.pool = netpool.NewGroup(cfg.MaxConnsPerPartition, cfg.MaxIdlePerPartition)
	}
	return c.pool
}

func (c *Client) CtxDo(ctx context.Context, req *httpmodel.Request) (*httpmodel.Response, error) {
	if c.sender == nil {
		return nil, ErrNoSender
	}
	cfg := c.Config.withDefaults()

	next := func(ctx context.Context, req *httpmodel.Request) (*httpmodel.Response, error) {
		return c.exchange(ctx, cfg, req)
	}
	for i := len(c.middlewares) - 1; i >= 0; i-- {
		next = c.middlewares[i](next)
	}
	return next(ctx, req)
}

// exchange runs one logical exchange: INITIAL, zero or more redirect
// hops, then a terminal response or error.
func (c *Client) exchange(ctx context.Context, cfg Config, req *httpmodel.Request) (*httpmodel.Response, error) {
	exch := redirect.NewExchange(req)
	disp := &queuedDispatch{}
	resolver := redirect.NewResolver(cfg.redirectOptions(), &poolManager{pool: c.Pool()}, disp)

	cur := req
	for {
		var (
			resp *httpmodel.Response
			conn redirect.Conn
			err  error
		)
		if disp.sameConn {
			conn = disp.conn
			resp, err = c.sender.SendOn(ctx, conn, cur)
		} else {
			resp, conn, err = c.sender.Send(ctx, cur)
		}
		if err != nil {
			return nil, err
		}

		head := resp.Head()
		if !head.IsRedirect() {
			return resp, nil
		}

		exch.KeepAlive = head.KeepAlive()
		exch.SetPendingBody(resp.Body)
		disp.reset()

		followed, err := resolver.Handle(ctx, conn, exch, head, cur, cur.Realm)
		if err != nil {
			return nil, err
		}
		if !followed {
			// redirect following disabled, the 3xx is the result
			return resp, nil
		}
		cur = exch.Target
	}
}

// queuedDispatch defers the actual send to the exchange loop above; the
// resolver only decides where the follow-up goes.
type queuedDispatch struct {
	sameConn bool
	conn     redirect.Conn
}

func (d *queuedDispatch) SendOnSameConn(ctx context.Context, conn redirect.Conn, exch *redirect.Exchange, req *httpmodel.Request) error {
	if err := redirect.DrainBody(exch.TakePendingBody()); err != nil {
		return errors.Wrap(err, "draining connection before reuse")
	}
	d.sameConn, d.conn = true, conn
	return nil
}

func (d *queuedDispatch) SendNew(ctx context.Context, req *httpmodel.Request, exch *redirect.Exchange) error {
	d.sameConn, d.conn = false, nil
	return nil
}

func (d *queuedDispatch) reset() {
	d.sameConn, d.conn = false, nil
}
