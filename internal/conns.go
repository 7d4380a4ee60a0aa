package internal

import (
	"context"

	"github.com/pkg/errors"

	"github.com/go-ahc/ahc/internal/redirect"
	"github.com/go-ahc/ahc/netpool"
)

// poolManager adapts the connection pool to the resolver's
// ConnectionManager contract.
type poolManager struct {
	pool *netpool.Group
}

func (m *poolManager) DrainAndOffer(ctx context.Context, conn redirect.Conn, exch *redirect.Exchange, keepAlive bool, partitionKey any) error {
	if err := redirect.DrainBody(exch.TakePendingBody()); err != nil {
		conn.Close()
		return errors.Wrap(err, "draining connection before offer")
	}
	if !keepAlive {
		return m.Close(conn)
	}
	if pc, ok := conn.(netpool.Conn); ok && m.pool != nil {
		m.pool.Offer(partitionKey, pc)
		return nil
	}
	// not a pooled handle, nothing to offer it back to
	return m.Close(conn)
}

func (m *poolManager) Close(conn redirect.Conn) error {
	if conn == nil {
		return nil
	}
	return conn.Close()
}
