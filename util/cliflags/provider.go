// Package cliflags implements a koanf.Provider that takes a
// cli.Context and provides its explicitly set flags to koanf.
package cliflags

import (
	"errors"
	"fmt"

	"github.com/knadh/koanf/maps"
	"github.com/urfave/cli/v2"
)

// CLIFlags implements a raw map[string]any provider.
type CLIFlags struct {
	mp map[string]any
}

// Provider returns a CLI Provider that takes a CLI context.
// Only flags that were set on the command line or through their
// env vars are provided, so flag defaults never shadow values
// loaded from lower-priority sources.
// If a delim is provided, it indicates that the keys are flat
// and the map needs to be unflatted by delim.
func Provider(ctx *cli.Context, delim string, cb func(string) string) *CLIFlags {
	// create a map to store the flag values
	mp := make(map[string]any)

	// walk from the running command up to the root app. Each value is
	// read from the context that set it, and a flag set on a command
	// takes precedence over the same flag set on one of its parents.
	for _, c := range ctx.Lineage() {
		flags := commandFlags(c)

		// LocalFlagNames also covers values taken from the flag's env vars.
		for _, name := range c.LocalFlagNames() {
			flag, ok := flags[name]
			if !ok {
				continue
			}

			flagName := flag.Names()[0]

			var mapName = flagName
			if cb != nil {
				mapName = cb(flagName)
			}

			if _, ok := mp[mapName]; ok {
				continue
			}

			value, err := getFlagValue(c, flag)
			if err != nil {
				continue
			}

			mp[mapName] = value
		}
	}

	// unflatten the map if a delimiter is provided
	// this can happen when `cb` returns a nested key
	if delim != "" {
		mp = maps.Unflatten(mp, delim)
	}

	return &CLIFlags{mp: mp}
}

// commandFlags indexes the flags of the command run by c under all
// of their names.
func commandFlags(c *cli.Context) map[string]cli.Flag {
	flags := map[string]cli.Flag{}
	if c.Command == nil {
		return flags
	}

	for _, flag := range c.Command.Flags {
		for _, name := range flag.Names() {
			flags[name] = flag
		}
	}

	return flags
}

// ReadBytes is not supported by the confmap provider.
func (e *CLIFlags) ReadBytes() ([]byte, error) {
	return nil, errors.New("cli provider does not support this method")
}

// Read returns the loaded map[string]any.
func (e *CLIFlags) Read() (map[string]any, error) {
	return e.mp, nil
}

func getFlagValue(ctx *cli.Context, flag cli.Flag) (any, error) {
	name := flag.Names()[0]

	if _, ok := flag.(*cli.StringFlag); ok {
		return ctx.String(name), nil
	} else if _, ok := flag.(*cli.StringSliceFlag); ok {
		return ctx.StringSlice(name), nil
	} else if _, ok := flag.(*cli.PathFlag); ok {
		return ctx.Path(name), nil
	} else if _, ok := flag.(*cli.IntFlag); ok {
		return ctx.Int(name), nil
	} else if _, ok := flag.(*cli.IntSliceFlag); ok {
		return ctx.IntSlice(name), nil
	} else if _, ok := flag.(*cli.Int64Flag); ok {
		return ctx.Int64(name), nil
	} else if _, ok := flag.(*cli.Int64SliceFlag); ok {
		return ctx.Int64Slice(name), nil
	} else if _, ok := flag.(*cli.BoolFlag); ok {
		return ctx.Bool(name), nil
	} else if _, ok := flag.(*cli.Float64Flag); ok {
		return ctx.Float64(name), nil
	} else if _, ok := flag.(*cli.Float64SliceFlag); ok {
		return ctx.Float64Slice(name), nil
	} else if _, ok := flag.(*cli.DurationFlag); ok {
		return ctx.Duration(name), nil
	}

	return nil, fmt.Errorf("unsupported flag type %T", flag)
}
