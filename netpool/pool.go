// Package netpool is the persistent-connection pool. Connections are
// grouped by an opaque partition key; a connection taken from one
// partition may only be offered back under the key it was vended for.
package netpool

import (
	"context"
	"net"
	"sync"
	"time"
)

// Conn is a pooled connection handle. Closing it releases the
// partition's connection ticket along with the socket; offering it back
// through the Group keeps the socket alive for reuse instead.
type Conn interface {
	net.Conn
	Raw() net.Conn
}

// Group is a set of per-partition pools, created lazily on first use.
type Group struct {
	mu    sync.RWMutex
	pools map[any]*pool

	maxConnsPerPartition, maxIdlePerPartition uint
	maxIdleTime                               time.Duration
}

func NewGroup(maxConnsPerPartition, maxIdlePerPartition uint) *Group {
	return &Group{
		pools:                map[any]*pool{},
		maxConnsPerPartition: maxConnsPerPartition,
		maxIdlePerPartition:  maxIdlePerPartition,
	}
}

// SetMaxIdleTime caps how long an offered connection may sit idle
// before a later Get discards it. Zero means no cap.
func (g *Group) SetMaxIdleTime(d time.Duration) { g.maxIdleTime = d }

func (g *Group) pool(key any) *pool {
	g.mu.RLock()
	p, ok := g.pools[key]
	g.mu.RUnlock()
	if ok {
		return p
	}
	g.mu.Lock()
	if p, ok = g.pools[key]; !ok {
		p = &pool{
			connTicket: make(chan struct{}, g.maxConnsPerPartition),
			idle:       make(chan *conn, g.maxIdlePerPartition),
		}
		g.pools[key] = p
	}
	g.mu.Unlock()
	return p
}

// Get returns an idle connection for key or dials a fresh one. It
// blocks while the partition is at capacity.
func (g *Group) Get(ctx context.Context, key any, dial func(ctx context.Context) (net.Conn, error)) (Conn, error) {
	return g.pool(key).get(ctx, g.maxIdleTime, dial)
}

// Offer parks a connection for reuse under key. It reports false when
// the connection was closed instead: dead socket, idle list full, or a
// handle this group didn't vend.
func (g *Group) Offer(key any, c Conn) bool {
	pc, ok := c.(*pooled)
	if !ok {
		c.Close()
		return false
	}
	pc.release()
	return g.pool(key).park(pc.conn)
}

type pool struct {
	connTicket chan struct{}
	idle       chan *conn
}

func (p *pool) get(ctx context.Context, maxIdleTime time.Duration, dial func(ctx context.Context) (net.Conn, error)) (Conn, error) {
	select {
	case p.connTicket <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	for {
		select {
		case c := <-p.idle:
			if maxIdleTime != 0 && time.Since(c.lastIdle) > maxIdleTime {
				c.Close()
			} else if !c.isClosed.Load() {
				return &pooled{p: p, conn: c}, nil
			}
		default:
			nc, err := dial(ctx)
			if err != nil {
				<-p.connTicket
				return nil, err
			}
			return &pooled{p: p, conn: &conn{conn: nc}}, nil
		}
	}
}

func (p *pool) park(c *conn) bool {
	if c.isClosed.Load() {
		return false
	}
	c.lastIdle = time.Now()
	select {
	case p.idle <- c:
		return true
	default:
		c.Close()
		return false
	}
}

// pooled ties a vended connection to the pool that issued its ticket.
type pooled struct {
	p    *pool
	conn *conn

	releaseOnce sync.Once
}

func (c *pooled) Read(b []byte) (int, error)  { return c.conn.Read(b) }
func (c *pooled) Write(b []byte) (int, error) { return c.conn.Write(b) }

func (c *pooled) Close() error {
	c.release()
	return c.conn.Close()
}

func (c *pooled) Raw() net.Conn { return c.conn.conn }

func (c *pooled) LocalAddr() net.Addr  { return c.conn.conn.LocalAddr() }
func (c *pooled) RemoteAddr() net.Addr { return c.conn.conn.RemoteAddr() }

func (c *pooled) SetDeadline(t time.Time) error      { return c.conn.conn.SetDeadline(t) }
func (c *pooled) SetReadDeadline(t time.Time) error  { return c.conn.conn.SetReadDeadline(t) }
func (c *pooled) SetWriteDeadline(t time.Time) error { return c.conn.conn.SetWriteDeadline(t) }

func (c *pooled) release() {
	c.releaseOnce.Do(func() { <-c.p.connTicket })
}
