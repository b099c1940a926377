package config

import (
	"fmt"
	"strings"
)

const (
	defaultAPIPrefix    = "/api"
	defaultMaxBodyBytes = 1 << 20
)

// APIConfig controls where the product routes are mounted and how large request bodies may be.
type APIConfig struct {
	Prefix       string `koanf:"prefix"`
	MaxBodyBytes int64  `koanf:"maxbodybytes"`
}

// String returns a string representation of the API configuration.
func (c *APIConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- API ---\n")
	b.WriteString(fmt.Sprintf("  prefix: %s\n", c.Prefix))
	b.WriteString(fmt.Sprintf("  maxBodyBytes: %d\n", c.MaxBodyBytes))
	return b.String()
}

func (c *APIConfig) Validate() error {
	if c.Prefix == "" {
		c.Prefix = defaultAPIPrefix
	}
	if !strings.HasPrefix(c.Prefix, "/") {
		return fmt.Errorf("api prefix must start with '/': %s", c.Prefix)
	}
	c.Prefix = strings.TrimSuffix(c.Prefix, "/")
	if c.MaxBodyBytes < 0 {
		return fmt.Errorf("invalid api max body bytes: %d", c.MaxBodyBytes)
	}
	if c.MaxBodyBytes == 0 {
		c.MaxBodyBytes = defaultMaxBodyBytes
	}
	return nil
}
