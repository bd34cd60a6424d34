package server

import (
	"net/http"

	"github.com/justinas/alice"
	"go.uber.org/fx"
)

// CatchAll is the handler name that matches every method and path.
const CatchAll = "/"

type HttpHandler struct {
	Name    string
	Handler http.Handler
}

type HttpHandlerResult struct {
	fx.Out

	Handler *HttpHandler `group:"handlers"`
}

func AsHttpHandler(
	name string,
	handler http.Handler,
) HttpHandlerResult {
	return HttpHandlerResult{
		Handler: &HttpHandler{
			Name:    name,
			Handler: handler,
		},
	}
}

type MiddlewareResult struct {
	fx.Out

	Middleware alice.Constructor `group:"middleware"`
}

// AsMiddleware contributes a middleware to the server chain.
// Middleware contributed this way runs inside the built-in
// recovery and request id middleware.
func AsMiddleware(m alice.Constructor) MiddlewareResult {
	return MiddlewareResult{Middleware: m}
}
