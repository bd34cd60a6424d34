package conf

// DefaultConfig is a flat map of config keys to default values.
// Nested keys are separated by a dot.
type DefaultConfig = map[string]any
