package httpmodel

import (
	"io"
	"net/http"
	"strings"
)

// IsRedirectStatus reports whether the engine treats code as a
// redirect. Any other 3xx (300, 304, ...) is handed to the caller
// untouched.
func IsRedirectStatus(code int) bool {
	switch code {
	case http.StatusMovedPermanently,
		http.StatusFound,
		http.StatusSeeOther,
		http.StatusTemporaryRedirect,
		http.StatusPermanentRedirect:
		return true
	}
	return false
}

// ResponseHead is the read-only status and header view of a response
// whose body may still be streaming. It is all the redirect engine is
// allowed to look at.
type ResponseHead struct {
	StatusCode int
	Header     http.Header
}

func (h ResponseHead) IsRedirect() bool { return IsRedirectStatus(h.StatusCode) }

func (h ResponseHead) Location() string { return h.Header.Get("Location") }

func (h ResponseHead) IsChunked() bool {
	for _, v := range h.Header.Values("Transfer-Encoding") {
		for _, te := range strings.Split(v, ",") {
			if strings.EqualFold(strings.TrimSpace(te), "chunked") {
				return true
			}
		}
	}
	return false
}

// KeepAlive reports whether the peer allows another request on the
// connection. HTTP/1.1 defaults to persistent unless closed explicitly.
func (h ResponseHead) KeepAlive() bool {
	return !strings.EqualFold(h.Header.Get("Connection"), "close")
}

type Response struct {
	Proto      string
	Status     string
	StatusCode int
	Header     http.Header

	ContentLength int64
	Body          io.ReadCloser
}

func (r *Response) Head() ResponseHead {
	return ResponseHead{StatusCode: r.StatusCode, Header: r.Header}
}
