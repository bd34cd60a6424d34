package config

import (
	_ "embed"
	"encoding/json"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed settings.schema.json
var settingsSchema json.RawMessage
var settingsSchemaLoader = gojsonschema.NewBytesLoader(settingsSchema)

// NewSettingsSchema compiles the schema of the json settings file.
func NewSettingsSchema() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(settingsSchemaLoader)
}
