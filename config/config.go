package config

import (
	"github.com/lambda-feedback/echo-server/internal/server"
	"github.com/lambda-feedback/echo-server/util/conf"
)

// ProxySource represents the source of a lambda request.
type ProxySource string

const (
	// ProxySourceApiGatewayV1 represents an API Gateway v1 request.
	ProxySourceApiGatewayV1 ProxySource = "API_GW_V1"

	// ProxySourceApiGatewayV2 represents an API Gateway v2 request.
	ProxySourceApiGatewayV2 ProxySource = "API_GW_V2"

	// ProxySourceAlb represents an Application Load Balancer request.
	ProxySourceAlb ProxySource = "ALB"
)

func (p ProxySource) String() string {
	return string(p)
}

// AdminConfig represents the configuration of the admin listener,
// which serves metrics and health checks.
type AdminConfig struct {
	// Enabled starts the admin listener
	Enabled bool `conf:"enabled"`

	// HttpConfig is the listen address of the admin listener
	HttpConfig server.HttpConfig `conf:",squash"`
}

// LambdaConfig represents the configuration of the AWS Lambda handler.
type LambdaConfig struct {
	// ProxySource is the source of the AWS Lambda event.
	ProxySource ProxySource `conf:"proxy_source"`
}

type Config struct {
	// LogLevel is the log level for the application
	LogLevel string `conf:"log_level"`

	// LogFormat is the log format for the application
	LogFormat string `conf:"log_format"`

	// Verbose enables logging of every request and response
	Verbose bool `conf:"verbose"`

	// Http is the configuration of the echo listener
	Http server.HttpConfig `conf:"http"`

	// Admin is the configuration of the admin listener
	Admin AdminConfig `conf:"admin"`

	// Lambda is the configuration of the lambda handler
	Lambda LambdaConfig `conf:"lambda"`
}

var DefaultConfig = conf.DefaultConfig{
	"log_level":                 "info",
	"log_format":                "production",
	"verbose":                   false,
	"http.host":                 "127.0.0.1",
	"http.port":                 3000,
	"http.h2c":                  false,
	"http.read_header_timeout":  "10s",
	"admin.enabled":             false,
	"admin.host":                "127.0.0.1",
	"admin.port":                9090,
	"admin.read_header_timeout": "10s",
	"lambda.proxy_source":       string(ProxySourceApiGatewayV2),
}
