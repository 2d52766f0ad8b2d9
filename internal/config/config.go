// Package config loads the settings of the treetensor command.
//
// Settings come from treetensor.yaml (or any format viper reads) in the
// working directory or $HOME/.config/treetensor, overridden by TREETENSOR_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/born-ml/treetensor/internal/tensor"
)

// Output formats.
const (
	OutputTree = "tree"
	OutputYAML = "yaml"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Configuration is the treetensor command configuration.
type Configuration struct {
	FloatDType string `mapstructure:"float_dtype"`
	IntDType   string `mapstructure:"int_dtype"`
	Output     string `mapstructure:"output"`
	Color      string `mapstructure:"color"`
	LogLevel   string `mapstructure:"log_level"`
	LogFormat  string `mapstructure:"log_format"`
}

// New uses viper to get our configuration. It must be called after SetupViper.
func New(v *viper.Viper) (*Configuration, error) {
	var c Configuration
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("viper failed to unmarshal app config: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// SetupViper sets the defaults, environment binding and config file search
// paths. An empty filename skips the file lookup, which tests use together
// with ReadConfig.
func SetupViper(v *viper.Viper, filename string) {
	if filename != "" {
		v.SetConfigName(filename)
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/treetensor")
	}

	v.SetDefault("float_dtype", "float32")
	v.SetDefault("int_dtype", "int64")
	v.SetDefault("output", OutputTree)
	v.SetDefault("color", ColorAuto)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")

	v.SetEnvPrefix("TREETENSOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// ReadInConfig reads the config file, if there is one.
func ReadInConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

func (c *Configuration) validate() error {
	var errs []error
	if _, err := c.Defaults(); err != nil {
		errs = append(errs, err)
	}
	switch c.Output {
	case OutputTree, OutputYAML:
	default:
		errs = append(errs, fmt.Errorf("output must be %q or %q, got %q", OutputTree, OutputYAML, c.Output))
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		errs = append(errs, fmt.Errorf("color must be %q, %q or %q, got %q", ColorAuto, ColorAlways, ColorNever, c.Color))
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("log_format must be \"text\" or \"json\", got %q", c.LogFormat))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// Defaults returns the default dtypes for literals and factories.
func (c *Configuration) Defaults() (tensor.Defaults, error) {
	f, err := tensor.ParseDataType(c.FloatDType)
	if err != nil {
		return tensor.Defaults{}, fmt.Errorf("float_dtype: %w", err)
	}
	if !f.IsFloat() {
		return tensor.Defaults{}, fmt.Errorf("float_dtype: %s is not a floating point dtype", f)
	}
	i, err := tensor.ParseDataType(c.IntDType)
	if err != nil {
		return tensor.Defaults{}, fmt.Errorf("int_dtype: %w", err)
	}
	if !i.IsInteger() {
		return tensor.Defaults{}, fmt.Errorf("int_dtype: %s is not an integer dtype", i)
	}
	return tensor.Defaults{Float: f, Int: i}, nil
}

// Logger builds the logger writing to w.
func (c *Configuration) Logger(w io.Writer) (*logrus.Logger, error) {
	l := logrus.New()
	l.SetOutput(w)

	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	l.SetLevel(level)

	if c.LogFormat == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	}
	return l, nil
}

// Profile returns the color profile for output written to w.
func (c *Configuration) Profile(w io.Writer) termenv.Profile {
	switch c.Color {
	case ColorAlways:
		return termenv.ANSI256
	case ColorNever:
		return termenv.Ascii
	default:
		return termenv.NewOutput(w).EnvColorProfile()
	}
}
