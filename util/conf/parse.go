package conf

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/dotenv"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/lambda-feedback/echo-server/util/cliflags"
	"github.com/urfave/cli/v2"
	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var (
	ErrUnsupportedFileType = errors.New("unsupported config file type")
	ErrSchemaViolation     = errors.New("config file does not match schema")
)

type ParseOptions struct {
	// Cli is the cli.Context from urfave/cli
	Cli *cli.Context

	// CliMap is a map of cli flag names to config keys
	CliMap map[string]string

	// Defaults is a map of default values
	Defaults DefaultConfig

	// EnvPrefix is the prefix for env vars
	EnvPrefix string

	// FileName is the name of the configuration file to load
	FileName string

	// FileRequired fails parsing if the file cannot be read
	FileRequired bool

	// Schema validates json config files before they are merged
	Schema *gojsonschema.Schema

	// Log is the logger to use
	Log *zap.Logger
}

func Parse[C any](opt ParseOptions) (C, error) {
	var config C

	var log *zap.Logger
	if opt.Log != nil {
		log = opt.Log
	} else {
		log = zap.NewNop()
	}

	k := koanf.New(".")

	if opt.Defaults != nil {
		if err := k.Load(confmap.Provider(opt.Defaults, "."), nil); err != nil {
			log.Error("error loading defaults", zap.Error(err))
			return config, err
		}
	}

	if opt.FileName != "" {
		if err := loadFile(k, opt.FileName, opt.Schema); err != nil {
			if opt.FileRequired || !errors.Is(err, fs.ErrNotExist) {
				log.Error("error parsing file",
					zap.Error(err),
					zap.String("file", opt.FileName),
				)
				return config, fmt.Errorf("config file %s: %w", opt.FileName, err)
			}

			log.Warn("config file not found, using defaults",
				zap.String("file", opt.FileName),
			)
		}
	}

	transformPrefixedEnv := func(s string) string {
		return transformEnv(s, opt.EnvPrefix)
	}

	if err := k.Load(env.Provider(opt.EnvPrefix, ".", transformPrefixedEnv), nil); err != nil {
		log.Error("error parsing env vars", zap.Error(err))
		return config, err
	}

	if opt.Cli != nil {
		transformFlag := func(s string) string {
			if opt.CliMap != nil {
				if name, ok := opt.CliMap[s]; ok {
					return name
				}
			}

			// replace - with _
			return strings.ReplaceAll(strings.ToLower(s), "-", "_")
		}

		if err := k.Load(cliflags.Provider(opt.Cli, ".", transformFlag), nil); err != nil {
			log.Error("error parsing cli flags", zap.Error(err))
			return config, err
		}
	}

	if err := k.UnmarshalWithConf("", &config, koanf.UnmarshalConf{Tag: "conf"}); err != nil {
		log.Error("error unmarshalling config", zap.Error(err))
		return config, err
	}

	return config, nil
}

func loadFile(k *koanf.Koanf, name string, schema *gojsonschema.Schema) error {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		fk := koanf.New(".")
		if err := fk.Load(file.Provider(name), json.Parser()); err != nil {
			return err
		}
		if schema != nil {
			if err := validateSchema(schema, fk.Raw()); err != nil {
				return err
			}
		}
		return k.Merge(fk)
	case ".env":
		// dotenv values are untyped strings, they are checked when
		// the config is unmarshalled and validated
		return k.Load(file.Provider(name), dotenv.ParserEnv("", ".", transformKey))
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFileType, name)
	}
}

// validateSchema combines every schema violation of data into one error.
func validateSchema(schema *gojsonschema.Schema, data map[string]any) error {
	result, err := schema.Validate(gojsonschema.NewGoLoader(data))
	if err != nil {
		return err
	}

	var errs error
	for _, e := range result.Errors() {
		errs = multierr.Append(errs, fmt.Errorf("%w: %s", ErrSchemaViolation, e.String()))
	}

	return errs
}

func transformEnv(s, prefix string) string {
	// only strip the prefix if it is set
	if prefix != "" {
		s = strings.TrimPrefix(s, prefix)
	}

	return transformKey(s)
}

func transformKey(s string) string {
	// allow specifying nested keys w/ __
	return strings.ReplaceAll(strings.ToLower(s), "__", ".")
}
