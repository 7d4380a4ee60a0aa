package httpmodel

import (
	"context"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
)

// ResolveFunc resolves a hostname to candidate addresses. Requests can
// carry their own resolver to bypass the system one.
type ResolveFunc func(ctx context.Context, host string) ([]net.IPAddr, error)

// Partitioner derives the connection-pool partition key for a request.
// Connections are only reusable within one partition.
type Partitioner func(u *url.URL, virtualHost string, proxy *url.URL) any

// PerHostPartitioner is the default partitioner: connections are
// grouped by target origin, virtual host and proxy origin.
var PerHostPartitioner Partitioner = func(u *url.URL, virtualHost string, proxy *url.URL) any {
	key := u.Scheme + "://" + hostPort(u)
	if virtualHost != "" {
		key += "|vh=" + virtualHost
	}
	if proxy != nil {
		key += "|proxy=" + proxy.Host
	}
	return key
}

// Request describes a single HTTP request. Treat a built Request as
// read-only: the redirect engine derives follow-up requests through a
// fresh builder, it never edits an existing value.
type Request struct {
	Method  string
	URL     *url.URL
	Header  http.Header
	Body    Body
	Charset string

	RequestTimeout time.Duration
	Proxy          *url.URL
	Realm          *Realm
	LocalAddr      net.Addr
	Resolver       ResolveFunc
	Partitioner    Partitioner
	VirtualHost    string
	FollowRedirect bool
}

// PartitionKey derives the pool partition key for this request.
func (r *Request) PartitionKey() any {
	p := r.Partitioner
	if p == nil {
		p = PerHostPartitioner
	}
	return p(r.URL, r.VirtualHost, r.Proxy)
}

var defaultPorts = map[string]string{
	"http": "80", "https": "443", "socks": "1080",
}

func hostPort(u *url.URL) string {
	if p := u.Port(); p != "" {
		return u.Hostname() + ":" + p
	}
	return u.Hostname() + ":" + defaultPorts[u.Scheme]
}

// SameBase reports whether two URIs share scheme, host and port, with
// default ports normalized. Virtual-host overrides and in-place
// connection reuse are only valid within one base.
func SameBase(a, b *url.URL) bool {
	return a.Scheme == b.Scheme && hostPort(a) == hostPort(b)
}

// RequestBuilder accumulates request fields and produces an immutable
// Request. Errors are deferred to Build so calls can chain.
type RequestBuilder struct {
	req     Request
	rawURL  string
	cookies []*http.Cookie
	err     error
}

func NewRequest(method string) *RequestBuilder {
	return &RequestBuilder{req: Request{Method: method}}
}

func (b *RequestBuilder) SetURL(u *url.URL) *RequestBuilder {
	b.req.URL = u
	return b
}

func (b *RequestBuilder) SetURLString(raw string) *RequestBuilder {
	b.rawURL = raw
	return b
}

// SetHeader replaces the whole header set. The given headers are cloned
// at Build, the caller's map is never retained.
func (b *RequestBuilder) SetHeader(h http.Header) *RequestBuilder {
	b.req.Header = h
	return b
}

func (b *RequestBuilder) AddHeader(key, value string) *RequestBuilder {
	if b.req.Header == nil {
		b.req.Header = http.Header{}
	}
	b.req.Header.Add(key, value)
	return b
}

func (b *RequestBuilder) SetBody(body Body) *RequestBuilder {
	b.req.Body = body
	return b
}

func (b *RequestBuilder) SetFormParams(v url.Values) *RequestBuilder {
	return b.SetBody(FormBody(v))
}

func (b *RequestBuilder) SetStringBody(s string) *RequestBuilder {
	return b.SetBody(StringBody(s))
}

func (b *RequestBuilder) SetCharset(charset string) *RequestBuilder {
	b.req.Charset = charset
	return b
}

func (b *RequestBuilder) SetRequestTimeout(d time.Duration) *RequestBuilder {
	b.req.RequestTimeout = d
	return b
}

func (b *RequestBuilder) SetProxy(u *url.URL) *RequestBuilder {
	b.req.Proxy = u
	return b
}

func (b *RequestBuilder) SetRealm(r *Realm) *RequestBuilder {
	b.req.Realm = r
	return b
}

func (b *RequestBuilder) SetLocalAddr(a net.Addr) *RequestBuilder {
	b.req.LocalAddr = a
	return b
}

func (b *RequestBuilder) SetResolver(r ResolveFunc) *RequestBuilder {
	b.req.Resolver = r
	return b
}

func (b *RequestBuilder) SetPartitioner(p Partitioner) *RequestBuilder {
	b.req.Partitioner = p
	return b
}

func (b *RequestBuilder) SetVirtualHost(host string) *RequestBuilder {
	b.req.VirtualHost = host
	return b
}

func (b *RequestBuilder) SetFollowRedirect(follow bool) *RequestBuilder {
	b.req.FollowRedirect = follow
	return b
}

// AddCookie sets a cookie explicitly, replacing a previous one of the
// same name, domain and path.
func (b *RequestBuilder) AddCookie(c *http.Cookie) *RequestBuilder {
	for i, have := range b.cookies {
		if sameCookieScope(have, c) {
			b.cookies[i] = c
			return b
		}
	}
	b.cookies = append(b.cookies, c)
	return b
}

// AddCookieIfUnset adds a cookie only when none of the same name,
// domain and path is present. Explicitly set cookies always win over
// ones replayed from a store.
func (b *RequestBuilder) AddCookieIfUnset(c *http.Cookie) *RequestBuilder {
	for _, have := range b.cookies {
		if sameCookieScope(have, c) {
			return b
		}
	}
	b.cookies = append(b.cookies, c)
	return b
}

func sameCookieScope(a, b *http.Cookie) bool {
	return a.Name == b.Name && a.Domain == b.Domain && a.Path == b.Path
}

// Build validates the accumulated fields and produces the Request.
func (b *RequestBuilder) Build() (*Request, error) {
	if b.err != nil {
		return nil, b.err
	}
	req := b.req
	if req.Method == "" {
		return nil, errors.New("request without a method")
	}
	if req.URL == nil {
		if b.rawURL == "" {
			return nil, errors.New("request without a target URL")
		}
		u, err := url.Parse(b.rawURL)
		if err != nil {
			return nil, errors.Wrap(err, "parsing request URL")
		}
		req.URL = u
	}
	if req.URL.Host == "" {
		return nil, errors.Errorf("request URL %q without a host", req.URL)
	}
	req.Header = req.Header.Clone()
	if req.Header == nil {
		req.Header = http.Header{}
	}
	if len(b.cookies) > 0 {
		// insertion order, joined into a single Cookie header
		line := ""
		for i, c := range b.cookies {
			if i > 0 {
				line += "; "
			}
			line += c.Name + "=" + c.Value
		}
		req.Header.Set("Cookie", line)
	}
	return &req, nil
}
