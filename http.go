package ahc

import (
	"net/http"

	"github.com/go-ahc/ahc/internal/httpmodel"
)

type Header = http.Header
type Request = httpmodel.Request
type RequestBuilder = httpmodel.RequestBuilder
type Response = httpmodel.Response
type ResponseHead = httpmodel.ResponseHead
type Body = httpmodel.Body
type Part = httpmodel.Part
type Realm = httpmodel.Realm
type AuthScheme = httpmodel.AuthScheme

var NewRequest = httpmodel.NewRequest

var (
	StringBody    = httpmodel.StringBody
	BytesBody     = httpmodel.BytesBody
	BufferBody    = httpmodel.BufferBody
	FormBody      = httpmodel.FormBody
	GeneratorBody = httpmodel.GeneratorBody
	PartsBody     = httpmodel.PartsBody
)
