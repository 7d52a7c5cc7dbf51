// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/ik5/ual"
	"github.com/ik5/ual/device"
	"github.com/ik5/ual/mixer"
)

// Config holds all configuration for ualplay
type Config struct {
	Device  DeviceConfig  `mapstructure:"device"`
	Mixer   MixerConfig   `mapstructure:"mixer"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// DeviceConfig selects and sizes the output backend
type DeviceConfig struct {
	Backend    string        `mapstructure:"backend"`
	SampleRate int           `mapstructure:"sample_rate"`
	Channels   int           `mapstructure:"channels"`
	Buffer     time.Duration `mapstructure:"buffer"`
}

// MixerConfig holds the worker's polling intervals
type MixerConfig struct {
	PollInterval time.Duration `mapstructure:"poll_interval"`
	IdleInterval time.Duration `mapstructure:"idle_interval"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or text
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("device.backend", device.DefaultBackend())
	v.SetDefault("device.sample_rate", device.PreferredSampleRate)
	v.SetDefault("device.channels", device.OutputChannels)
	v.SetDefault("device.buffer", device.DefaultBuffer.String())
	v.SetDefault("mixer.poll_interval", mixer.DefaultPollInterval.String())
	v.SetDefault("mixer.idle_interval", mixer.DefaultIdleInterval.String())
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// Load reads configuration from file, when one is found, and UAL_
// environment variables into a Config. An empty file searches config.yaml
// in the current directory, $HOME/.ual and /etc/ual.
func Load(v *viper.Viper, file string) (*Config, error) {
	SetDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.ual")
		v.AddConfigPath("/etc/ual")
	}

	v.SetEnvPrefix("UAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		slog.Debug("No config file found, using defaults and environment variables")
	} else {
		slog.Debug("Using config file", slog.String("file", v.ConfigFileUsed()))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration
func (c *Config) Validate() error {
	if !slices.Contains(device.Backends(), strings.ToLower(c.Device.Backend)) {
		return &ConfigError{
			Field:   "device.backend",
			Message: fmt.Sprintf("unknown backend %q, available: %s", c.Device.Backend, strings.Join(device.Backends(), ", ")),
		}
	}
	if c.Device.SampleRate <= 0 {
		return &ConfigError{Field: "device.sample_rate", Message: "must be positive"}
	}
	if c.Device.Channels != device.OutputChannels {
		return &ConfigError{Field: "device.channels", Message: "only stereo output is supported"}
	}
	if c.Device.Buffer <= 0 {
		return &ConfigError{Field: "device.buffer", Message: "must be positive"}
	}
	if c.Mixer.PollInterval <= 0 {
		return &ConfigError{Field: "mixer.poll_interval", Message: "must be positive"}
	}
	if c.Mixer.IdleInterval <= 0 {
		return &ConfigError{Field: "mixer.idle_interval", Message: "must be positive"}
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return &ConfigError{Field: "logging.format", Message: "must be text or json"}
	}

	return nil
}

// ToDeviceConfig maps the configuration onto a playback session config.
func (c *Config) ToDeviceConfig(log *slog.Logger) ual.Config {
	return ual.Config{
		Backend:      c.Device.Backend,
		SampleRate:   c.Device.SampleRate,
		Buffer:       c.Device.Buffer,
		PollInterval: c.Mixer.PollInterval,
		IdleInterval: c.Mixer.IdleInterval,
		Logger:       log,
	}
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
