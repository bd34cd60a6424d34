package cmd

import (
	"strings"

	"github.com/lambda-feedback/echo-server/app"
	"github.com/lambda-feedback/echo-server/app/standalone"
	"github.com/lambda-feedback/echo-server/responder"
	"github.com/lambda-feedback/echo-server/util/logging"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var (
	serveCmdDescription = `The serve command starts a http server that echoes every
	request it receives, on any path and with any method.

	The command will launch the http server and blocks indefin-
	itely, processing incoming http requests. It is also run if
	no command is given.`
	serveCmd = &cli.Command{
		Name:        "serve",
		Usage:       "Start a http server and echo requests.",
		Description: serveCmdDescription,
		Action:      serveAction,
		Flags:       newServeFlags(),
	}
)

// newServeFlags returns a fresh set of serve flags. Every command
// exposing them needs its own instances, since urfave/cli tracks the
// set state on the flag itself.
func newServeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "host",
			Aliases:  []string{"n", "hostname"},
			Usage:    "The IP address to listen on.",
			Value:    "127.0.0.1",
			Category: "http",
			EnvVars:  []string{"HTTP_HOST"},
		},
		&cli.IntFlag{
			Name:     "port",
			Aliases:  []string{"p"},
			Usage:    "The port to listen on.",
			Value:    3000,
			Category: "http",
			EnvVars:  []string{"HTTP_PORT"},
		},
		&cli.BoolFlag{
			Name:     "h2c",
			Usage:    "Enable HTTP/2 cleartext upgrade.",
			Value:    false,
			Category: "http",
			EnvVars:  []string{"HTTP_H2C"},
		},
		&cli.BoolFlag{
			Name:     "admin",
			Usage:    "Start the admin listener serving /metrics and /health.",
			Value:    false,
			Category: "admin",
			EnvVars:  []string{"ADMIN_ENABLED"},
		},
		&cli.StringFlag{
			Name:     "admin-host",
			Usage:    "The IP address the admin listener listens on.",
			Value:    "127.0.0.1",
			Category: "admin",
			EnvVars:  []string{"ADMIN_HOST"},
		},
		&cli.IntFlag{
			Name:     "admin-port",
			Usage:    "The port the admin listener listens on.",
			Value:    9090,
			Category: "admin",
			EnvVars:  []string{"ADMIN_PORT"},
		},
	}
}

func serveAction(ctx *cli.Context) error {
	log, err := logging.LoggerFromContext(ctx.Context)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	if err := multierr.Combine(cfg.Http.Validate(), cfg.Admin.Validate()); err != nil {
		return err
	}

	app, err := app.New(ctx)
	if err != nil {
		return err
	}

	log.Info("starting echo server",
		zap.String("address", "http://"+cfg.Http.Address()),
		zap.String("status_code_header", responder.HeaderStatusCode),
		zap.String("response_body_header", responder.HeaderResponseBody),
		zap.String("stripped_headers", strings.Join(responder.ReservedHeaders, ", ")),
		zap.Bool("verbose", cfg.Verbose),
	)

	return app.Run(ctx.Context, standalone.Module(cfg))
}

func init() {
	rootApp.Commands = append(rootApp.Commands, serveCmd)

	// serve is the default command
	rootApp.Flags = append(rootApp.Flags, newServeFlags()...)
	rootApp.Action = serveAction
}
