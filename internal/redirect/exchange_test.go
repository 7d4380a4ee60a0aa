package redirect_test

import (
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-ahc/ahc/internal/httpmodel"
	"github.com/go-ahc/ahc/internal/redirect"
)

func newExchange(t *testing.T, raw string) *redirect.Exchange {
	t.Helper()
	req, err := httpmodel.NewRequest("GET").SetURLString(raw).SetFollowRedirect(true).Build()
	require.NoError(t, err)
	return redirect.NewExchange(req)
}

func TestExchangeCounter(t *testing.T) {
	e := newExchange(t, "http://a.example/")
	assert.Equal(t, 0, e.Redirects())
	assert.Equal(t, 1, e.NextRedirect())
	assert.Equal(t, 2, e.NextRedirect())
	assert.Equal(t, 2, e.Redirects())
}

// the counter may be observed from monitoring code while the exchange
// progresses
func TestExchangeCounterConcurrentRead(t *testing.T) {
	e := newExchange(t, "http://a.example/")
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
				_ = e.Redirects()
			}
		}
	}()
	for i := 0; i < 1000; i++ {
		e.NextRedirect()
	}
	close(done)
	wg.Wait()
	assert.Equal(t, 1000, e.Redirects())
}

func TestExchangeInitialState(t *testing.T) {
	req, err := httpmodel.NewRequest("GET").SetURLString("http://a.example/x").SetFollowRedirect(true).Build()
	require.NoError(t, err)
	e := redirect.NewExchange(req)

	assert.True(t, e.KeepAlive)
	assert.Equal(t, req.PartitionKey(), e.PartitionKey)
	assert.Same(t, req.URL, e.URI)
	assert.Same(t, req, e.Target)
	assert.False(t, e.ReuseConn)
}

func TestTakePendingBodyIsOneShot(t *testing.T) {
	e := newExchange(t, "http://a.example/")
	body := io.NopCloser(strings.NewReader("rest"))
	e.SetPendingBody(body)
	assert.Equal(t, body, e.TakePendingBody())
	assert.Nil(t, e.TakePendingBody())
}

type trackingBody struct {
	io.Reader
	closed bool
}

func (b *trackingBody) Close() error {
	b.closed = true
	return nil
}

func TestDrainBody(t *testing.T) {
	r := strings.NewReader("remaining bytes")
	body := &trackingBody{Reader: r}
	require.NoError(t, redirect.DrainBody(body))
	assert.True(t, body.closed)
	assert.Zero(t, r.Len())
}

func TestDrainBodyNil(t *testing.T) {
	assert.NoError(t, redirect.DrainBody(nil))
}
