package netpool_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-ahc/ahc/netpool"
)

func pipeDialer() (dial func(ctx context.Context) (net.Conn, error), dialed *int) {
	n := 0
	return func(ctx context.Context) (net.Conn, error) {
		n++
		c, s := net.Pipe()
		go func() {
			// keep the server half alive until the client half closes
			buf := make([]byte, 1)
			for {
				if _, err := s.Read(buf); err != nil {
					s.Close()
					return
				}
			}
		}()
		return c, nil
	}, &n
}

func TestGetDialsWhenEmpty(t *testing.T) {
	g := netpool.NewGroup(2, 2)
	dial, dialed := pipeDialer()

	c, err := g.Get(context.Background(), "k", dial)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, 1, *dialed)
	c.Close()
}

func TestOfferThenGetReuses(t *testing.T) {
	g := netpool.NewGroup(2, 2)
	dial, dialed := pipeDialer()

	c, err := g.Get(context.Background(), "k", dial)
	require.NoError(t, err)
	raw := c.Raw()

	assert.True(t, g.Offer("k", c))

	c2, err := g.Get(context.Background(), "k", dial)
	require.NoError(t, err)
	assert.Equal(t, 1, *dialed)
	assert.Same(t, raw, c2.Raw())
	c2.Close()
}

// partitions are isolated: a connection offered under one key is never
// vended for another
func TestPartitionsAreIsolated(t *testing.T) {
	g := netpool.NewGroup(2, 2)
	dial, dialed := pipeDialer()

	c, err := g.Get(context.Background(), "a", dial)
	require.NoError(t, err)
	require.True(t, g.Offer("a", c))

	c2, err := g.Get(context.Background(), "b", dial)
	require.NoError(t, err)
	assert.Equal(t, 2, *dialed)
	c2.Close()
}

func TestOfferClosedConnIsDiscarded(t *testing.T) {
	g := netpool.NewGroup(2, 2)
	dial, _ := pipeDialer()

	c, err := g.Get(context.Background(), "k", dial)
	require.NoError(t, err)
	c.Close()
	assert.False(t, g.Offer("k", c))
}

func TestOfferBeyondIdleCapacityCloses(t *testing.T) {
	g := netpool.NewGroup(3, 1)
	dial, _ := pipeDialer()

	c1, err := g.Get(context.Background(), "k", dial)
	require.NoError(t, err)
	c2, err := g.Get(context.Background(), "k", dial)
	require.NoError(t, err)

	assert.True(t, g.Offer("k", c1))
	assert.False(t, g.Offer("k", c2))
}

// closing a vended connection releases its ticket, the partition's
// capacity comes back
func TestCloseReleasesTicket(t *testing.T) {
	g := netpool.NewGroup(1, 1)
	dial, _ := pipeDialer()

	c, err := g.Get(context.Background(), "k", dial)
	require.NoError(t, err)
	c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	c2, err := g.Get(ctx, "k", dial)
	require.NoError(t, err)
	c2.Close()
}

func TestGetBlocksAtCapacityUntilCancel(t *testing.T) {
	g := netpool.NewGroup(1, 1)
	dial, _ := pipeDialer()

	c, err := g.Get(context.Background(), "k", dial)
	require.NoError(t, err)
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = g.Get(ctx, "k", dial)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestStaleIdleConnIsDiscarded(t *testing.T) {
	g := netpool.NewGroup(2, 2)
	g.SetMaxIdleTime(time.Nanosecond)
	dial, dialed := pipeDialer()

	c, err := g.Get(context.Background(), "k", dial)
	require.NoError(t, err)
	require.True(t, g.Offer("k", c))

	time.Sleep(time.Millisecond)
	c2, err := g.Get(context.Background(), "k", dial)
	require.NoError(t, err)
	assert.Equal(t, 2, *dialed)
	c2.Close()
}
