package observability

import (
	"go.uber.org/fx"

	"github.com/lambda-feedback/echo-server/internal/server"
	"github.com/lambda-feedback/echo-server/util/logging"
)

// Module provides the request metrics and contributes their middleware
// to the server chain.
func Module() fx.Option {
	return fx.Module("metrics",
		// provide metrics
		fx.Provide(NewMetrics),
		// provide metrics middleware
		fx.Provide(func(m *Metrics) server.MiddlewareResult {
			return server.AsMiddleware(m.Middleware())
		}),
	)
}

// AdminModule starts the admin listener.
func AdminModule(config server.HttpConfig) fx.Option {
	return fx.Module("admin",
		// rename logger for module
		logging.DecorateLogger("admin"),
		// provide admin config
		fx.Supply(fx.Annotated{Name: "admin", Target: config}),
		// provide admin server
		fx.Provide(NewAdminServer),
		// invoke admin server
		fx.Invoke(func(*AdminServer) {}),
	)
}
