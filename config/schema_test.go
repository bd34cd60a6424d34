package config

import (
	"testing"

	"github.com/knadh/koanf/maps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xeipuuv/gojsonschema"
)

func validateSettings(t *testing.T, settings string) *gojsonschema.Result {
	schema, err := NewSettingsSchema()
	require.NoError(t, err)

	result, err := schema.Validate(gojsonschema.NewStringLoader(settings))
	require.NoError(t, err)

	return result
}

func TestNewSettingsSchema(t *testing.T) {
	_, err := NewSettingsSchema()
	assert.NoError(t, err)
}

func TestSettingsSchema_Valid(t *testing.T) {
	result := validateSettings(t, `{
		"log_level": "debug",
		"verbose": true,
		"http": {"host": "0.0.0.0", "port": 8080, "h2c": true, "read_header_timeout": "1m30s"},
		"admin": {"enabled": true, "port": 9091},
		"lambda": {"proxy_source": "ALB"}
	}`)

	assert.True(t, result.Valid(), result.Errors())
}

func TestSettingsSchema_Empty(t *testing.T) {
	assert.True(t, validateSettings(t, `{}`).Valid())
}

func TestSettingsSchema_UnknownKey(t *testing.T) {
	result := validateSettings(t, `{"http": {"prot": 4000}}`)

	assert.False(t, result.Valid())
}

func TestSettingsSchema_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		settings string
	}{
		{"unknown top-level key", `{"hppt": {}}`},
		{"port out of range", `{"http": {"port": 70000}}`},
		{"port as string", `{"http": {"port": "3000"}}`},
		{"bad timeout", `{"http": {"read_header_timeout": "soon"}}`},
		{"bad proxy source", `{"lambda": {"proxy_source": "NOPE"}}`},
		{"bad log format", `{"log_format": "pretty"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, validateSettings(t, tt.settings).Valid())
		})
	}
}

func TestSettingsSchema_CoversDefaults(t *testing.T) {
	schema, err := NewSettingsSchema()
	require.NoError(t, err)

	nested := maps.Unflatten(DefaultConfig, ".")

	result, err := schema.Validate(gojsonschema.NewGoLoader(nested))
	require.NoError(t, err)
	assert.True(t, result.Valid(), result.Errors())
}
