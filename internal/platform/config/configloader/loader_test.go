package configloader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Server struct {
		Port    int           `koanf:"port"`
		Timeout time.Duration `koanf:"timeout"`
	} `koanf:"server"`
	Auth struct {
		APIKey string `koanf:"apikey"`
	} `koanf:"auth"`
}

func (c *testConfig) Validate() error {
	if c.Auth.APIKey == "" {
		return errors.New("api key missing")
	}
	return nil
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Layering(t *testing.T) {
	// given
	dir := t.TempDir()
	yamlFile := writeFile(t, dir, "config.yaml", "server:\n  port: 3000\n  timeout: 5s\nauth:\n  apikey: from-yaml\n")
	envFile := writeFile(t, dir, ".env", "TESTSVC_SERVER_PORT=4000\nUNRELATED=1\n")
	t.Setenv("TESTSVC_AUTH_APIKEY", "from-env")

	// when
	cfg, err := Load[testConfig]("testsvc", WithConfigFile(yamlFile), WithEnvFile(envFile))

	// then
	require.NoError(t, err)
	assert.Equal(t, 4000, cfg.Server.Port, ".env overrides yaml")
	assert.Equal(t, 5*time.Second, cfg.Server.Timeout)
	assert.Equal(t, "from-env", cfg.Auth.APIKey, "system env has the highest priority")
}

func TestLoad_MissingFiles(t *testing.T) {
	// given
	dir := t.TempDir()
	t.Setenv("TESTSVC_AUTH_APIKEY", "only-env")

	// when
	cfg, err := Load[testConfig]("testsvc",
		WithConfigFile(filepath.Join(dir, "absent.yaml")),
		WithEnvFile(filepath.Join(dir, "absent.env")))

	// then
	require.NoError(t, err)
	assert.Equal(t, "only-env", cfg.Auth.APIKey)
	assert.Zero(t, cfg.Server.Port)
}

func TestLoad_ValidationError(t *testing.T) {
	dir := t.TempDir()

	_, err := Load[testConfig]("testsvc",
		WithConfigFile(filepath.Join(dir, "absent.yaml")),
		WithEnvFile(filepath.Join(dir, "absent.env")))

	assert.ErrorContains(t, err, "config validation failed: api key missing")
}
