package conf_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lambda-feedback/echo-server/util/conf"
)

func TestContextWithConfig(t *testing.T) {
	ctx := conf.ContextWithConfig(context.Background(), testConfig{Name: "ctx"})

	cfg, err := conf.GetConfigFromContext[testConfig](ctx)
	require.NoError(t, err)
	assert.Equal(t, "ctx", cfg.Name)
}

func TestGetConfigFromContext_Missing(t *testing.T) {
	_, err := conf.GetConfigFromContext[testConfig](context.Background())
	assert.Error(t, err)
}

func TestGetConfigFromContext_WrongType(t *testing.T) {
	ctx := conf.ContextWithConfig(context.Background(), "not a config")

	_, err := conf.GetConfigFromContext[testConfig](ctx)
	assert.Error(t, err)
}
