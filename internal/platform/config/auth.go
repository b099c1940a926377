package config

import (
	"fmt"
	"strings"
)

const defaultAPIKeyHeader = "X-API-Key"

// AuthConfig holds the shared API key every product route requires.
type AuthConfig struct {
	APIKey string `koanf:"apikey"`
	Header string `koanf:"header"`
}

// String returns a string representation of the auth configuration. The key itself is never printed.
func (c *AuthConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Auth ---\n")
	if c.APIKey == "" {
		b.WriteString("  apikey: <not configured>\n")
	} else {
		b.WriteString("  apikey: ****\n")
	}
	b.WriteString(fmt.Sprintf("  header: %s\n", c.Header))
	return b.String()
}

func (c *AuthConfig) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("API key is not configured")
	}
	if c.Header == "" {
		c.Header = defaultAPIKeyHeader
	}
	return nil
}
