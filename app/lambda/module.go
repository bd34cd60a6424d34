package lambda

import (
	"go.uber.org/fx"

	"github.com/lambda-feedback/echo-server/config"
	"github.com/lambda-feedback/echo-server/util/logging"
)

func Module(cfg config.LambdaConfig) fx.Option {
	return fx.Module(
		"lambda",
		// provide lambda config
		fx.Supply(cfg),
		// rename logger for module
		logging.DecorateLogger("lambda"),
		// provide server
		fx.Provide(NewLifecycleHandler),
		// invoke server
		fx.Invoke(func(*LambdaHandler) {}),
	)
}
