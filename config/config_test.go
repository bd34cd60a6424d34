package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lambda-feedback/echo-server/config"
	"github.com/lambda-feedback/echo-server/internal/server"
	"github.com/lambda-feedback/echo-server/util/conf"
)

func TestDefaultConfig(t *testing.T) {
	cfg, err := conf.Parse[config.Config](conf.ParseOptions{
		Defaults:  config.DefaultConfig,
		EnvPrefix: "ECHO_CONFIG_TEST_",
	})
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Http.Host)
	assert.Equal(t, 3000, cfg.Http.Port)
	assert.False(t, cfg.Http.H2c)
	assert.Equal(t, 10*time.Second, cfg.Http.ReadHeaderTimeout)
	assert.False(t, cfg.Verbose)
	assert.False(t, cfg.Admin.Enabled)
	assert.Equal(t, "127.0.0.1", cfg.Admin.HttpConfig.Host)
	assert.Equal(t, 9090, cfg.Admin.HttpConfig.Port)
	assert.Equal(t, config.ProxySourceApiGatewayV2, cfg.Lambda.ProxySource)

	assert.NoError(t, cfg.Http.Validate())
	assert.NoError(t, cfg.Admin.Validate())
	assert.NoError(t, cfg.Lambda.Validate())
}

func TestConfig_EnvOverrides(t *testing.T) {
	t.Setenv("ECHO_CONFIG_TEST_HTTP__PORT", "8080")
	t.Setenv("ECHO_CONFIG_TEST_ADMIN__ENABLED", "true")
	t.Setenv("ECHO_CONFIG_TEST_VERBOSE", "1")

	cfg, err := conf.Parse[config.Config](conf.ParseOptions{
		Defaults:  config.DefaultConfig,
		EnvPrefix: "ECHO_CONFIG_TEST_",
	})
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Http.Port)
	assert.True(t, cfg.Admin.Enabled)
	assert.True(t, cfg.Verbose)
}

func TestAdminConfig_Validate(t *testing.T) {
	disabled := config.AdminConfig{
		HttpConfig: server.HttpConfig{Host: "nope", Port: 0},
	}
	assert.NoError(t, disabled.Validate())

	enabled := config.AdminConfig{
		Enabled:    true,
		HttpConfig: server.HttpConfig{Host: "nope", Port: 0},
	}
	err := enabled.Validate()
	assert.ErrorIs(t, err, server.ErrInvalidHost)
	assert.ErrorIs(t, err, server.ErrInvalidPort)
}

func TestLambdaConfig_Validate(t *testing.T) {
	for _, source := range []config.ProxySource{
		config.ProxySourceApiGatewayV1,
		config.ProxySourceApiGatewayV2,
		config.ProxySourceAlb,
	} {
		assert.NoError(t, config.LambdaConfig{ProxySource: source}.Validate(), source)
	}

	err := config.LambdaConfig{ProxySource: "SQS"}.Validate()
	assert.ErrorIs(t, err, config.ErrInvalidProxySource)
}
