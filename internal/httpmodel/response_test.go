package httpmodel_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-ahc/ahc/internal/httpmodel"
)

func TestIsRedirectStatus(t *testing.T) {
	for _, code := range []int{301, 302, 303, 307, 308} {
		assert.True(t, httpmodel.IsRedirectStatus(code), "%d", code)
	}
	// other 3xx are not this engine's business
	for _, code := range []int{200, 201, 300, 304, 305, 306, 400, 500} {
		assert.False(t, httpmodel.IsRedirectStatus(code), "%d", code)
	}
}

func TestResponseHeadIsChunked(t *testing.T) {
	head := httpmodel.ResponseHead{StatusCode: 302, Header: http.Header{}}
	assert.False(t, head.IsChunked())

	head.Header.Set("Transfer-Encoding", "chunked")
	assert.True(t, head.IsChunked())

	head.Header.Set("Transfer-Encoding", "Chunked")
	assert.True(t, head.IsChunked())

	head.Header.Set("Transfer-Encoding", "gzip")
	head.Header.Add("Transfer-Encoding", "chunked")
	assert.True(t, head.IsChunked())
}

func TestResponseHeadKeepAlive(t *testing.T) {
	head := httpmodel.ResponseHead{StatusCode: 200, Header: http.Header{}}
	assert.True(t, head.KeepAlive())

	head.Header.Set("Connection", "keep-alive")
	assert.True(t, head.KeepAlive())

	head.Header.Set("Connection", "close")
	assert.False(t, head.KeepAlive())

	head.Header.Set("Connection", "Close")
	assert.False(t, head.KeepAlive())
}

func TestResponseHead(t *testing.T) {
	resp := &httpmodel.Response{
		StatusCode: 303,
		Header:     http.Header{"Location": {"/thanks"}},
	}
	head := resp.Head()
	assert.True(t, head.IsRedirect())
	assert.Equal(t, "/thanks", head.Location())
}
