package standalone

import (
	"go.uber.org/fx"

	"github.com/lambda-feedback/echo-server/config"
	"github.com/lambda-feedback/echo-server/internal/observability"
	"github.com/lambda-feedback/echo-server/internal/server"
	"github.com/lambda-feedback/echo-server/util/logging"
)

func Module(cfg config.Config) fx.Option {
	options := []fx.Option{
		// rename logger for module
		logging.DecorateLogger("serve"),
		// provide server
		server.Module(cfg.Http),
	}

	if cfg.Admin.Enabled {
		// provide admin server
		options = append(options, observability.AdminModule(cfg.Admin.HttpConfig))
	}

	return fx.Module("serve", options...)
}
