package app

import (
	"github.com/lambda-feedback/echo-server/config"
	"github.com/lambda-feedback/echo-server/handler"
	"github.com/lambda-feedback/echo-server/internal/observability"
	"github.com/lambda-feedback/echo-server/internal/shell"
	"github.com/lambda-feedback/echo-server/responder"
	"github.com/lambda-feedback/echo-server/util/conf"
	"github.com/lambda-feedback/echo-server/util/logging"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"
)

func New(ctx *cli.Context) (*shell.Shell, error) {
	log, err := logging.LoggerFromContext(ctx.Context)
	if err != nil {
		return nil, err
	}

	config, err := conf.GetConfigFromContext[config.Config](ctx.Context)
	if err != nil {
		return nil, err
	}

	sharedModule := fx.Module(
		"shared",
		// provide global config
		fx.Supply(config),
		// provide responder
		responder.Module(),
		// provide echo handler and route
		handler.Module(),
		// provide request metrics
		observability.Module(),
	)

	return shell.New(log, sharedModule), nil
}
