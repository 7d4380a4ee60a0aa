package netpool

import (
	"io"
	"net"
	"sync/atomic"
	"time"

	"github.com/go-ahc/ahc/internal/log"
)

// conn marks itself closed on any read or write failure so the pool
// never vends a dead socket twice.
type conn struct {
	conn     net.Conn
	isClosed atomic.Bool
	lastIdle time.Time
}

func (c *conn) Write(p []byte) (n int, err error) {
	n, err = c.conn.Write(p)
	if err != nil {
		if err != io.EOF {
			log.Err(err).Msg("netpool: error on write")
		}
		c.Close()
	}
	return
}

func (c *conn) Read(p []byte) (n int, err error) {
	n, err = c.conn.Read(p)
	if err != nil {
		if err != io.EOF {
			log.Err(err).Msg("netpool: error on read")
		}
		c.Close()
	}
	return
}

func (c *conn) Close() error {
	err := c.conn.Close()
	c.isClosed.Store(true)
	return err
}
