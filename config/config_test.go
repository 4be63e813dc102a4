// SPDX-License-Identifier: EPL-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "audspec.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	t.Parallel()

	c := Default()
	assert.Equal(t, 8000, c.SampleRate)
	assert.Equal(t, 4096, c.ReadSize)
	assert.Equal(t, 256, c.FFTSize)
	assert.Equal(t, 80, c.HopSize)
	assert.Equal(t, 32, c.Bins)
	assert.Equal(t, 80, c.TimeFrames)
	assert.Equal(t, 0, c.InputShift)
	assert.InDelta(t, 64, c.DividerMultiplier, 1e-6)
	assert.InDelta(t, 0.5, c.Threshold, 1e-6)
	assert.Equal(t, 4, c.Model.Window)
	assert.Equal(t, int32(-128), c.Model.ZeroPoint)
	assert.Equal(t, logrus.InfoLevel, c.Level())
	require.NoError(t, c.Validate())

	assert.Equal(t, 320, c.BlockSamples())
}

func TestLoad_File(t *testing.T) {
	t.Parallel()

	path := writeFile(t, `
sample_rate: 16000
fft_size: 512
hop_size: 160
time_frames: 98
threshold: 0.8
log_level: debug
model:
  window: 2
`)

	c, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, 16000, c.SampleRate)
	assert.Equal(t, 512, c.FFTSize)
	assert.Equal(t, 160, c.HopSize)
	assert.Equal(t, 98, c.TimeFrames)
	assert.Equal(t, 32, c.Bins, "unset keys keep defaults")
	assert.InDelta(t, 0.8, c.Threshold, 1e-6)
	assert.Equal(t, 2, c.Model.Window)
	assert.Equal(t, logrus.DebugLevel, c.Level())

	e := c.Energy()
	assert.Equal(t, 98, e.Frames)
	assert.Equal(t, 32, e.Bins)
	assert.Equal(t, 2, e.Window)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Parallel()

	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_RejectsInvalidFile(t *testing.T) {
	t.Parallel()

	_, err := Load(viper.New(), writeFile(t, "hop_size: 300\n"))
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("AUDSPEC_HOP_SIZE", "128")
	t.Setenv("AUDSPEC_MODEL_SLOPE", "3.5")

	c, err := Load(viper.New(), writeFile(t, "hop_size: 64\n"))
	require.NoError(t, err)

	assert.Equal(t, 128, c.HopSize, "environment beats the file")
	assert.InDelta(t, 3.5, c.Model.Slope, 1e-6)
}

func TestLoad_Flags(t *testing.T) {
	t.Parallel()

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--fft-size=128", "--time-frames", "40"}))

	v := viper.New()
	require.NoError(t, BindFlags(v, fs))

	c, err := Load(v, writeFile(t, "fft_size: 512\nbins: 16\n"))
	require.NoError(t, err)

	assert.Equal(t, 128, c.FFTSize, "flag beats the file")
	assert.Equal(t, 40, c.TimeFrames)
	assert.Equal(t, 16, c.Bins, "unchanged flag leaves the file value")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		edit func(*Config)
	}{
		{name: "bad log level", edit: func(c *Config) { c.LogLevel = "loud" }},
		{name: "zero sample rate", edit: func(c *Config) { c.SampleRate = 0 }},
		{name: "zero read size", edit: func(c *Config) { c.ReadSize = 0 }},
		{name: "hop above fft", edit: func(c *Config) { c.HopSize = 512 }},
		{name: "too many bins", edit: func(c *Config) { c.Bins = 200 }},
		{name: "block exceeds frames", edit: func(c *Config) { c.TimeFrames = 3 }},
		{name: "zero multiplier", edit: func(c *Config) { c.DividerMultiplier = 0 }},
		{name: "threshold above one", edit: func(c *Config) { c.Threshold = 1.5 }},
		{name: "model window too wide", edit: func(c *Config) { c.Model.Window = 81 }},
		{name: "model scale", edit: func(c *Config) { c.Model.Scale = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := Default()
			tt.edit(c)
			assert.ErrorIs(t, c.Validate(), ErrInvalid)
		})
	}
}

func TestYAML_RoundTrip(t *testing.T) {
	t.Parallel()

	c := Default()
	c.HopSize = 64
	c.Model.Center = 2.5

	out, err := c.YAML()
	require.NoError(t, err)
	assert.Contains(t, string(out), "fft_size: 256")
	assert.Contains(t, string(out), "hop_size: 64")

	back, err := Load(viper.New(), writeFile(t, string(out)))
	require.NoError(t, err)
	assert.Equal(t, c, back)
}
