package httpmodel

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
)

type BodyKind uint8

const (
	BodyNone BodyKind = iota
	BodyForm
	BodyString
	BodyBytes
	BodyBuffer
	BodyGenerator
	BodyParts
)

// Body is a tagged variant over the supported request body
// representations. A request carries exactly one representation: every
// constructor produces a whole value and builder setters overwrite the
// previous one, so there is never an ambiguity about which
// representation wins. The zero value means no body.
type Body struct {
	kind     BodyKind
	form     url.Values
	str      string
	raw      []byte
	buf      []byte
	gen      func() (io.ReadCloser, error)
	parts    []Part
	boundary string
}

// Part is one part of a multipart body.
type Part struct {
	Name        string
	FileName    string
	ContentType string
	Data        []byte
}

func FormBody(v url.Values) Body {
	if len(v) == 0 {
		return Body{}
	}
	return Body{kind: BodyForm, form: v}
}

func StringBody(s string) Body {
	if s == "" {
		return Body{}
	}
	return Body{kind: BodyString, str: s}
}

func BytesBody(b []byte) Body {
	if len(b) == 0 {
		return Body{}
	}
	return Body{kind: BodyBytes, raw: b}
}

// BufferBody snapshots the buffer's current content, like
// [net/http.NewRequest] does for [*bytes.Buffer] bodies.
func BufferBody(b *bytes.Buffer) Body {
	if b == nil || b.Len() == 0 {
		return Body{}
	}
	return Body{kind: BodyBuffer, buf: b.Bytes()}
}

// GeneratorBody defers body production to gen. The generator is called
// once per send, so a request carrying one can be replayed across
// redirect hops as long as gen can produce a fresh reader each time.
func GeneratorBody(gen func() (io.ReadCloser, error)) Body {
	if gen == nil {
		return Body{}
	}
	return Body{kind: BodyGenerator, gen: gen}
}

func PartsBody(parts ...Part) Body {
	if len(parts) == 0 {
		return Body{}
	}
	// boundary fixed at construction so every materialization of this
	// body is byte-identical
	return Body{kind: BodyParts, parts: parts, boundary: multipart.NewWriter(io.Discard).Boundary()}
}

func (b Body) Kind() BodyKind { return b.kind }

func (b Body) IsSet() bool { return b.kind != BodyNone }

// ContentLength returns the body size in bytes, or -1 when it is not
// known up front (generators and multipart parts).
func (b Body) ContentLength() int64 {
	switch b.kind {
	case BodyNone:
		return 0
	case BodyForm:
		return int64(len(b.form.Encode()))
	case BodyString:
		return int64(len(b.str))
	case BodyBytes:
		return int64(len(b.raw))
	case BodyBuffer:
		return int64(len(b.buf))
	default:
		return -1
	}
}

// Reader materializes the body. Safe to call more than once for every
// kind; generators are responsible for their own replayability.
func (b Body) Reader() (io.ReadCloser, error) {
	switch b.kind {
	case BodyNone:
		return http.NoBody, nil
	case BodyForm:
		return io.NopCloser(strings.NewReader(b.form.Encode())), nil
	case BodyString:
		return io.NopCloser(strings.NewReader(b.str)), nil
	case BodyBytes:
		return io.NopCloser(bytes.NewReader(b.raw)), nil
	case BodyBuffer:
		return io.NopCloser(bytes.NewReader(b.buf)), nil
	case BodyGenerator:
		return b.gen()
	case BodyParts:
		return b.encodeParts()
	}
	return http.NoBody, nil
}

// ContentType returns the content type implied by the representation,
// or "" when none is implied (string, bytes, buffer, generator bodies
// take theirs from the header set).
func (b Body) ContentType() string {
	switch b.kind {
	case BodyForm:
		return "application/x-www-form-urlencoded"
	case BodyParts:
		return "multipart/form-data; boundary=" + b.boundary
	}
	return ""
}

func (b Body) encodeParts() (io.ReadCloser, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	if err := w.SetBoundary(b.boundary); err != nil {
		return nil, err
	}
	for _, p := range b.parts {
		h := make(textproto.MIMEHeader)
		cd := fmt.Sprintf("form-data; name=%q", p.Name)
		if p.FileName != "" {
			cd += fmt.Sprintf("; filename=%q", p.FileName)
		}
		h.Set("Content-Disposition", cd)
		if p.ContentType != "" {
			h.Set("Content-Type", p.ContentType)
		}
		pw, err := w.CreatePart(h)
		if err != nil {
			return nil, err
		}
		if _, err := pw.Write(p.Data); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return io.NopCloser(buf), nil
}
