package handler

import (
	"github.com/lambda-feedback/echo-server/internal/server"
)

// NewEchoRoute registers the echo handler for every method and path.
func NewEchoRoute(handler *EchoHandler) server.HttpHandlerResult {
	return server.AsHttpHandler(server.CatchAll, handler)
}
