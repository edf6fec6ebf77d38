// filepath: internal/cli/root_test.go
package cli

import (
	"os"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"

	"kpihub/internal/config"
)

// Helper to reset the global config and flags between tests
func resetGlobals() {
	cfg = nil
	port = 0
	logLevel = ""
	password = ""
	jwtSecret = ""
	dbPath = ""
	resetPassword = false
	cfgFile = "config.toml" // Default
}

func TestConfigPrecedence(t *testing.T) {
	// We cannot easily run RootCmd.Execute() in tests because it calls os.Exit
	// on failure and runs the server. Instead, we test the initializeConfig
	// and applyOverrides logic.

	t.Run("Defaults", func(t *testing.T) {
		resetGlobals()
		cfgFile = "nonexistent.toml"

		cmd := &cobra.Command{}
		err := initializeConfig(cmd)
		assert.NoError(t, err)

		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, "info", cfg.Logging.Level)
		assert.Equal(t, "kpihub.db", cfg.Database.Path)
		assert.Equal(t, 15, cfg.JWT.AccessDurationMin)
	})

	t.Run("Environment Overrides Defaults", func(t *testing.T) {
		resetGlobals()
		cfgFile = "nonexistent.toml"

		os.Setenv("KPIHUB_PORT", "9090")
		os.Setenv("KPIHUB_LOG_LEVEL", "warn")
		defer os.Unsetenv("KPIHUB_PORT")
		defer os.Unsetenv("KPIHUB_LOG_LEVEL")

		cmd := &cobra.Command{}
		err := initializeConfig(cmd)
		assert.NoError(t, err)

		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, "warn", cfg.Logging.Level)
	})

	t.Run("Flags Override Environment", func(t *testing.T) {
		resetGlobals()
		cfgFile = "nonexistent.toml"

		os.Setenv("KPIHUB_PORT", "9090")
		defer os.Unsetenv("KPIHUB_PORT")

		port = 7070

		cmd := &cobra.Command{}
		err := initializeConfig(cmd)
		assert.NoError(t, err)

		assert.Equal(t, 7070, cfg.Server.Port)
	})

	t.Run("Config File Loading", func(t *testing.T) {
		resetGlobals()

		content := []byte(`
[server]
port = 6060
[logging]
level = "error"
[database]
path = "custom.db"
`)
		tmpFile := "test_config.toml"
		err := os.WriteFile(tmpFile, content, 0644)
		assert.NoError(t, err)
		defer os.Remove(tmpFile)

		cfgFile = tmpFile

		cmd := &cobra.Command{}
		err = initializeConfig(cmd)
		assert.NoError(t, err)

		assert.Equal(t, 6060, cfg.Server.Port)
		assert.Equal(t, "error", cfg.Logging.Level)
		assert.Equal(t, "custom.db", cfg.Database.Path)
	})
}

func TestApplyOverrides(t *testing.T) {
	resetGlobals()
	c := &config.Config{
		Server:  config.ServerConfig{Port: 8080},
		Logging: config.LoggingConfig{Level: "info"},
	}

	port = 9999
	logLevel = "debug"
	password = "adminpw"
	resetPassword = true

	applyOverrides(c)

	assert.Equal(t, 9999, c.Server.Port)
	assert.Equal(t, "debug", c.Logging.Level)
	assert.Equal(t, "adminpw", c.AdminPassword)
	assert.True(t, c.ResetAdminPassword)
}
