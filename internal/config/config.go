// Package config defines the configuration of the product service.
package config

import (
	"strings"

	"github.com/abgdnv/catalog/internal/platform/config"
	"github.com/abgdnv/catalog/internal/platform/config/configloader"
)

var _ configloader.Validator = (*Config)(nil)

type Config struct {
	HTTPServer config.HTTPConfig       `koanf:"server"`
	Log        config.LogConfig        `koanf:"log"`
	PProf      config.PProfConfig      `koanf:"pprof"`
	Shutdown   config.ShutdownConfig   `koanf:"shutdown"`
	Auth       config.AuthConfig       `koanf:"auth"`
	API        config.APIConfig        `koanf:"api"`
	GRPC       config.GrpcServerConfig `koanf:"grpc"`
	Events     config.EventsConfig     `koanf:"events"`
	Telemetry  config.TelemetryConfig  `koanf:"telemetry"`
}

// String renders every section. Secrets are masked by the sections themselves.
func (c *Config) String() string {
	var b strings.Builder
	b.WriteString(c.HTTPServer.String())
	b.WriteString(c.Log.String())
	b.WriteString(c.PProf.String())
	b.WriteString(c.Shutdown.String())
	b.WriteString(c.Auth.String())
	b.WriteString(c.API.String())
	b.WriteString(c.GRPC.String())
	b.WriteString(c.Events.String())
	b.WriteString(c.Telemetry.String())
	return b.String()
}

// Validate checks if the configuration values are valid and fills in defaults.
func (c *Config) Validate() error {
	sections := []configloader.Validator{
		&c.HTTPServer,
		&c.Log,
		&c.PProf,
		&c.Shutdown,
		&c.Auth,
		&c.API,
		&c.GRPC,
		&c.Events,
		&c.Telemetry,
	}
	for _, section := range sections {
		if err := section.Validate(); err != nil {
			return err
		}
	}
	return nil
}
