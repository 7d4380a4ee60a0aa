package ahc

import (
	"github.com/go-ahc/ahc/cookiestore"
	"github.com/go-ahc/ahc/internal"
)

type Client = internal.Client
type Config = internal.Config
type Middleware = internal.Middleware
type Sender = internal.Sender

type CookieStore = cookiestore.Store

var NewCookieStore = cookiestore.New
