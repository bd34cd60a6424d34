package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/lambda-feedback/echo-server/config"
	"github.com/lambda-feedback/echo-server/internal/shell"
	"github.com/lambda-feedback/echo-server/util/conf"
	"github.com/lambda-feedback/echo-server/util/logging"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var (
	appName  = "echo-server"
	appUsage = `An HTTP server that mirrors every request back as its response.

Request headers and body are echoed. The request headers
internal.status-code and internal.response-body override the
status code and the body of the response.`
	rootApp = &cli.App{
		Name:            appName,
		Usage:           appUsage,
		HideHelpCommand: true,
		Flags: []cli.Flag{
			// general flags
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "set the log level. Options: debug, info, warn, error, panic, fatal.",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "log-format",
				Usage:   "set the log format. Options: production, development.",
				EnvVars: []string{"LOG_FORMAT"},
			},
			&cli.StringFlag{
				Name:    "config",
				Usage:   "the settings file to load. Supported formats: .json, .env.",
				Aliases: []string{"c"},
				Value:   "settings.json",
				EnvVars: []string{"CONFIG_FILE"},
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Usage:   "log every request and response.",
				Aliases: []string{"v"},
				EnvVars: []string{"VERBOSE"},
			},
		},
		Before: func(ctx *cli.Context) error {
			// create the logger
			log, err := createLogger(ctx)
			if err != nil {
				return err
			}

			// inject logger into cli context
			ctx.Context = logging.ContextWithLogger(ctx.Context, log)

			return nil
		},
		After: func(ctx *cli.Context) error {
			log, err := logging.LoggerFromContext(ctx.Context)
			if err != nil {
				return err
			}

			log.Sync()

			return nil
		},
	}
)

// cliMap maps flag names to config keys.
var cliMap = map[string]string{
	"host":                "http.host",
	"port":                "http.port",
	"h2c":                 "http.h2c",
	"admin":               "admin.enabled",
	"admin-host":          "admin.host",
	"admin-port":          "admin.port",
	"lambda-proxy-source": "lambda.proxy_source",
}

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:               "version",
		Usage:              "print the version",
		DisableDefaultText: true,
	}
}

type ExecuteParams struct {
	Version  string
	Compiled time.Time
}

// Execute runs the application and returns its exit code.
func Execute(params ExecuteParams) int {
	rootApp.Version = params.Version
	rootApp.Compiled = params.Compiled

	return run(context.Background(), os.Args)
}

func run(ctx context.Context, args []string) int {
	err := rootApp.RunContext(ctx, args)

	// if app exited without error, return
	if err == nil {
		return 0
	}

	// if app exited with ExitError, exit with given exit code,
	// otherwise, exit with exit code 1
	code := shell.ExitCode(err)
	if code != 0 {
		fmt.Fprintf(os.Stderr, "exit error: %s\n", err.Error())
	}

	return code
}

// loadConfig parses the config from defaults, the settings file, env
// vars and flags, and injects it into the cli context.
func loadConfig(ctx *cli.Context) (config.Config, error) {
	log, err := logging.LoggerFromContext(ctx.Context)
	if err != nil {
		return config.Config{}, err
	}

	schema, err := config.NewSettingsSchema()
	if err != nil {
		return config.Config{}, err
	}

	cfg, err := conf.Parse[config.Config](conf.ParseOptions{
		Cli:          ctx,
		CliMap:       cliMap,
		Defaults:     config.DefaultConfig,
		EnvPrefix:    "ECHO_",
		FileName:     ctx.String("config"),
		FileRequired: ctx.IsSet("config"),
		Schema:       schema,
		Log:          log,
	})
	if err != nil {
		return cfg, err
	}

	// inject the config into the cli context
	ctx.Context = conf.ContextWithConfig(ctx.Context, cfg)

	return cfg, nil
}

func createLogger(ctx *cli.Context) (*zap.Logger, error) {
	level := getLogLevelFromCLI(ctx)
	format := getLogFormatFromCLI(ctx)

	var config zap.Config
	if format == "production" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
	}

	config.InitialFields = map[string]any{
		"app": appName,
	}

	config.Level = level

	return config.Build()
}

func getLogFormatFromCLI(ctx *cli.Context) string {
	format := ctx.String("log-format")
	if format != "" {
		return format
	}

	return "production"
}

func getLogLevelFromCLI(ctx *cli.Context) zap.AtomicLevel {
	lvl := ctx.String("log-level")

	if atom, err := zap.ParseAtomicLevel(lvl); err == nil {
		return atom
	}

	return zap.NewAtomicLevelAt(zap.InfoLevel)
}
