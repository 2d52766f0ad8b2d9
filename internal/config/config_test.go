package config

import (
	"bytes"
	"testing"

	"github.com/muesli/termenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/treetensor/internal/tensor"
)

var fullConfig = []byte(`
float_dtype: float64
int_dtype: int32
output: yaml
color: never
log_level: debug
log_format: json
`)

func newViper(t *testing.T, cfg []byte) *viper.Viper {
	t.Helper()
	v := viper.New()
	SetupViper(v, "")
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(bytes.NewBuffer(cfg)))
	return v
}

func TestDefaults(t *testing.T) {
	cfg, err := New(newViper(t, nil))
	require.NoError(t, err)

	assert.Equal(t, "float32", cfg.FloatDType)
	assert.Equal(t, "int64", cfg.IntDType)
	assert.Equal(t, OutputTree, cfg.Output)
	assert.Equal(t, ColorAuto, cfg.Color)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)

	d, err := cfg.Defaults()
	require.NoError(t, err)
	assert.Equal(t, tensor.DefaultTypes, d)
}

func TestFullConfig(t *testing.T) {
	cfg, err := New(newViper(t, fullConfig))
	require.NoError(t, err)

	d, err := cfg.Defaults()
	require.NoError(t, err)
	assert.Equal(t, tensor.Defaults{Float: tensor.Float64, Int: tensor.Int32}, d)
	assert.Equal(t, OutputYAML, cfg.Output)
	assert.Equal(t, termenv.Ascii, cfg.Profile(&bytes.Buffer{}))
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("TREETENSOR_FLOAT_DTYPE", "double")
	t.Setenv("TREETENSOR_COLOR", "always")

	cfg, err := New(newViper(t, fullConfig))
	require.NoError(t, err)

	d, err := cfg.Defaults()
	require.NoError(t, err)
	assert.Equal(t, tensor.Float64, d.Float)
	assert.Equal(t, termenv.ANSI256, cfg.Profile(&bytes.Buffer{}))
}

func TestInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		config string
		errMsg string
	}{
		{"unknown dtype", "float_dtype: half", "float_dtype"},
		{"int as float", "float_dtype: int32", "not a floating point dtype"},
		{"float as int", "int_dtype: float64", "not an integer dtype"},
		{"output", "output: xml", "output must be"},
		{"color", "color: sometimes", "color must be"},
		{"log level", "log_level: loud", "log_level"},
		{"log format", "log_format: xml", "log_format must be"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(newViper(t, []byte(tt.config)))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestInvalidConfigReportsEveryField(t *testing.T) {
	_, err := New(newViper(t, []byte("output: xml\ncolor: sometimes\n")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output must be")
	assert.Contains(t, err.Error(), "color must be")
}

func TestLogger(t *testing.T) {
	cfg, err := New(newViper(t, fullConfig))
	require.NoError(t, err)

	var buf bytes.Buffer
	l, err := cfg.Logger(&buf)
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, l.Level)

	l.WithField("op", "abs").Debug("called")
	assert.Contains(t, buf.String(), `"op":"abs"`)
	assert.Contains(t, buf.String(), `"msg":"called"`)
}

func TestReadInConfigMissingFile(t *testing.T) {
	v := viper.New()
	SetupViper(v, "treetensor-missing")
	v.AddConfigPath(t.TempDir())
	assert.NoError(t, ReadInConfig(v))
}
