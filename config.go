package ui

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config is the engine configuration, usually read from a YAML document:
//
//	idPrefix: app-
//	idScheme: sequence
//	mountId: app
//	logLevel: debug
type Config struct {
	IDPrefix string `yaml:"idPrefix" validate:"omitempty,max=32,printascii"`
	IDScheme string `yaml:"idScheme" validate:"omitempty,oneof=sequence uuid"`
	MountID  string `yaml:"mountId" validate:"omitempty,printascii"`
	LogLevel string `yaml:"logLevel" validate:"omitempty,oneof=debug info warn error"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// LoadConfig decodes and validates a configuration. An empty document yields
// the zero Config.
func LoadConfig(r io.Reader) (Config, error) {
	var c Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return c, fmt.Errorf("decoding config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Options turns the configuration into UI options. The logger, if any, is
// the base logger the configured level is applied to.
func (c Config) Options(logger *zap.Logger) []Option {
	var opts []Option
	switch c.IDScheme {
	case "uuid":
		opts = append(opts, WithIDGenerator(UUIDs()))
	default:
		if c.IDPrefix != "" {
			opts = append(opts, WithIDPrefix(c.IDPrefix))
		}
	}
	if c.MountID != "" {
		opts = append(opts, WithMountID(c.MountID))
	}
	if logger != nil {
		if c.LogLevel != "" {
			level, err := zapcore.ParseLevel(c.LogLevel)
			if err == nil {
				logger = logger.WithOptions(zap.IncreaseLevel(level))
			}
		}
		opts = append(opts, WithLogger(logger))
	}
	return opts
}
