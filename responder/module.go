package responder

import "go.uber.org/fx"

// Module provides the echo responder.
func Module() fx.Option {
	return fx.Module(
		"responder",

		// provide responder
		fx.Provide(func() Responder { return Echo{} }),
	)
}
