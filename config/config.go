// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ik5/audspec/dsp"
	"github.com/ik5/audspec/inference"
)

const EnvPrefix = "AUDSPEC"

// Config is the resolved runtime configuration.
type Config struct {
	LogLevel   string `mapstructure:"log_level" yaml:"log_level"`
	SampleRate int    `mapstructure:"sample_rate" yaml:"sample_rate"`
	// ReadSize is the decoder read chunk in samples.
	ReadSize int `mapstructure:"read_size" yaml:"read_size"`

	dsp.StreamConfig `mapstructure:",squash" yaml:",inline"`

	DividerMultiplier float32 `mapstructure:"divider_multiplier" yaml:"divider_multiplier"`
	Threshold         float32 `mapstructure:"threshold" yaml:"threshold"`

	Model ModelConfig `mapstructure:"model" yaml:"model"`
}

// ModelConfig tunes the bundled energy scorer.
type ModelConfig struct {
	Window    int     `mapstructure:"window" yaml:"window"`
	Scale     float32 `mapstructure:"scale" yaml:"scale"`
	ZeroPoint int32   `mapstructure:"zero_point" yaml:"zero_point"`
	Center    float32 `mapstructure:"center" yaml:"center"`
	Slope     float32 `mapstructure:"slope" yaml:"slope"`
}

// SetDefaults registers every key with its default value on v.
func SetDefaults(v *viper.Viper) {
	m := inference.DefaultEnergyConfig()

	v.SetDefault("log_level", "info")
	v.SetDefault("sample_rate", 8000)
	v.SetDefault("read_size", 4096)

	v.SetDefault("fft_size", 256)
	v.SetDefault("hop_size", 80)
	v.SetDefault("bins", 32)
	v.SetDefault("time_frames", 80)
	v.SetDefault("input_shift", 0)

	v.SetDefault("divider_multiplier", inference.DefaultMultiplier)
	v.SetDefault("threshold", 0.5)

	v.SetDefault("model.window", m.Window)
	v.SetDefault("model.scale", m.Scale)
	v.SetDefault("model.zero_point", m.ZeroPoint)
	v.SetDefault("model.center", m.Center)
	v.SetDefault("model.slope", m.Slope)
}

// Default returns the configuration with nothing but defaults applied.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)

	c := &Config{}
	// defaults always decode
	_ = v.Unmarshal(c)
	return c
}

// Load resolves the configuration on v. An empty path searches for
// audspec.yaml in the working directory and the user config directory and
// tolerates its absence; an explicit path must exist.
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("audspec")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "audspec"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("unable to decode configuration: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks every value, including the stream geometry.
func (c *Config) Validate() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %v", ErrInvalid, err)
	}
	if c.SampleRate <= 0 {
		return fmt.Errorf("%w: sample_rate %d", ErrInvalid, c.SampleRate)
	}
	if c.ReadSize <= 0 {
		return fmt.Errorf("%w: read_size %d", ErrInvalid, c.ReadSize)
	}
	if err := c.StreamConfig.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.DividerMultiplier <= 0 {
		return fmt.Errorf("%w: divider_multiplier %v", ErrInvalid, c.DividerMultiplier)
	}
	if c.Threshold < 0 || c.Threshold > 1 {
		return fmt.Errorf("%w: threshold %v outside [0, 1]", ErrInvalid, c.Threshold)
	}
	if c.Model.Window <= 0 || c.Model.Window > c.TimeFrames {
		return fmt.Errorf("%w: model.window %d outside [1, %d]", ErrInvalid, c.Model.Window, c.TimeFrames)
	}
	if c.Model.Scale <= 0 {
		return fmt.Errorf("%w: model.scale %v", ErrInvalid, c.Model.Scale)
	}
	return nil
}

// Energy builds the scorer configuration for the spectrogram geometry.
func (c *Config) Energy() inference.EnergyConfig {
	return inference.EnergyConfig{
		Frames:    c.TimeFrames,
		Bins:      c.Bins,
		Window:    c.Model.Window,
		Scale:     c.Model.Scale,
		ZeroPoint: c.Model.ZeroPoint,
		Center:    c.Model.Center,
		Slope:     c.Model.Slope,
	}
}

// Level returns the parsed log level. It falls back to info for values
// Validate would reject.
func (c *Config) Level() logrus.Level {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

// YAML renders the configuration as a config file would hold it.
func (c *Config) YAML() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return out, nil
}
