// Package config layers defaults, an optional config file, LEO_* environment
// variables and command-line flags (highest wins) into one Config.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"leo/internal/cmdutil"
	"leo/internal/output"
	"leo/internal/runutil"
)

// EnvPrefix is the environment override prefix (LEO_PRECISION=50).
const EnvPrefix = "LEO"

// ErrConfig marks configuration file and value errors.
var ErrConfig = errors.New("config")

// Config holds the settings of one leo invocation.
type Config struct {
	Mode string `mapstructure:"-"`

	Initial       string `mapstructure:"initial"`
	Precision     int    `mapstructure:"precision"`
	Formula       string `mapstructure:"formula"`
	Metric        string `mapstructure:"metric"`
	References    string `mapstructure:"references"`
	Tolerance     string `mapstructure:"tolerance"`
	MaxIterations uint64 `mapstructure:"max-iterations"`
	Window        int    `mapstructure:"window"`
	Exponent      int    `mapstructure:"exponent"`
	LogInterval   uint64 `mapstructure:"log-interval"`

	Summary      string `mapstructure:"summary"`
	Records      string `mapstructure:"records"`
	MetricsFile  string `mapstructure:"metrics-file"`
	ContentStats string `mapstructure:"content-stats"`

	Format            string `mapstructure:"format"`
	LogLevel          string `mapstructure:"log-level"`
	LogFormat         string `mapstructure:"log-format"`
	Quiet             bool   `mapstructure:"quiet"`
	NoHeader          bool   `mapstructure:"no-header"`
	Pretty            bool   `mapstructure:"pretty"`
	ViolationExitCode int    `mapstructure:"violation-exit-code"`
}

// Defaults returns the per-mode default values, keyed like the flags.
func Defaults(mode string) map[string]any {
	d := map[string]any{
		"initial":             "",
		"metric":              "zeta",
		"references":          "",
		"tolerance":           strconv.FormatFloat(runutil.DefaultTolerance, 'g', -1, 64),
		"window":              runutil.DefaultWindow,
		"exponent":            runutil.DefaultExponent,
		"summary":             "",
		"records":             "",
		"metrics-file":        "",
		"content-stats":       "",
		"format":              output.FormatText,
		"log-level":           "warn",
		"log-format":          "console",
		"quiet":               false,
		"no-header":           false,
		"pretty":              false,
		"violation-exit-code": cmdutil.ExitViolation,
	}
	switch mode {
	case "bound":
		d["initial"] = "2.0"
		d["precision"] = 1200
		d["formula"] = "cir7"
		d["max-iterations"] = uint64(runutil.DefaultBoundMaxIter)
		d["log-interval"] = uint64(runutil.DefaultBoundLogEvery)
		d["summary"] = output.DefaultSummaryFile
	default:
		d["precision"] = 15
		d["formula"] = "simple"
		d["max-iterations"] = uint64(0)
		d["log-interval"] = uint64(runutil.DefaultListLogInterval)
	}
	return d
}

// Load resolves the configuration for mode. file may be empty. Only flags
// the user actually set override lower layers.
func Load(mode, file string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	for k, val := range Defaults(mode) {
		v.SetDefault(k, val)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("%w: read %s: %w", ErrConfig, file, err)
		}
		// A [list] or [bound] section overrides the top-level keys for that mode.
		if sub := v.Sub(mode); sub != nil {
			if err := v.MergeConfigMap(sub.AllSettings()); err != nil {
				return Config{}, fmt.Errorf("%w: %s section %q: %w", ErrConfig, file, mode, err)
			}
		}
	}

	if flags != nil {
		var bindErr error
		flags.VisitAll(func(f *pflag.Flag) {
			if _, known := Defaults(mode)[f.Name]; !known || bindErr != nil {
				return
			}
			bindErr = v.BindPFlag(f.Name, f)
		})
		if bindErr != nil {
			return Config{}, fmt.Errorf("%w: %w", ErrConfig, bindErr)
		}
	}

	c := Config{Mode: mode}
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	return c, nil
}
