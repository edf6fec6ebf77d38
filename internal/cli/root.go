// filepath: internal/cli/root.go
package cli

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"kpihub/internal/config"
	"kpihub/internal/logging"
)

var (
	// Version info
	Version   = "1.0.0"
	StartTime time.Time

	// Global config object populated by flags/env/file
	cfg *config.Config

	// Flags
	cfgFile       string
	password      string
	port          int
	logLevel      string
	resetPassword bool
	jwtSecret     string
	dbPath        string
)

// RootCmd represents the base command when called without any subcommands.
// It starts the HTTP server.
var RootCmd = &cobra.Command{
	Use:   "kpihub",
	Short: "KPIHub API",
	Long:  `A REST API for administering users and KPI assessment templates with weighted indicators.`,
	// PersistentPreRunE loads the configuration before any command runs.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
	// RunE executes the main server logic.
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	StartTime = time.Now()

	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Define flags.
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config_path", "config.toml", "Path to the base configuration file. (Env: KPIHUB_CONFIG_PATH)")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Logging level (debug, info, warn, error). (Env: KPIHUB_LOG_LEVEL)")

	// Server-specific flags
	RootCmd.Flags().StringVar(&password, "password", "", "Password for the 'admin' user. (Env: KPIHUB_PASSWORD)")
	RootCmd.Flags().IntVar(&port, "port", 0, "Port for the HTTP server. (Env: KPIHUB_PORT)")
	RootCmd.Flags().BoolVar(&resetPassword, "reset_pw", false, "If true, reset admin password on startup. (Env: KPIHUB_RESET_PW=true)")
	RootCmd.Flags().StringVar(&jwtSecret, "jwt-secret", "", "Secret key for signing JWTs. (Env: KPIHUB_JWT_SECRET)")
	RootCmd.Flags().StringVar(&dbPath, "db-path", "", "Path to the SQLite database file. (Env: KPIHUB_DATABASE_PATH)")
}

// initializeConfig loads and overrides configuration values.
func initializeConfig(cmd *cobra.Command) error {
	// 1. Check environment variable for config path first
	if envPath := os.Getenv("KPIHUB_CONFIG_PATH"); envPath != "" && cfgFile == "config.toml" {
		cfgFile = envPath
	}

	var err error
	cfg, err = config.LoadConfig(cfgFile)
	if err != nil {
		if os.IsNotExist(err) {
			// Create empty config if not found, rely on defaults/flags
			cfg = &config.Config{}
		} else {
			return fmt.Errorf("failed to load configuration from %s: %w", cfgFile, err)
		}
	}

	// 2. Apply Overrides (Env Vars and CLI Flags)
	applyOverrides(cfg)

	// 3. Validate (also fills in defaults)
	if err := cfg.ParseAndValidate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// 4. Initialize Logging
	logging.Init(cfg.Logging.Level)

	return nil
}

func applyOverrides(c *config.Config) {
	// --- 1. Environment Variables ---
	if v := os.Getenv("KPIHUB_PASSWORD"); v != "" {
		c.AdminPassword = v
	}
	if v := os.Getenv("KPIHUB_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
	if v := os.Getenv("KPIHUB_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("KPIHUB_RESET_PW"); v == "true" {
		c.ResetAdminPassword = true
	}
	if v := os.Getenv("KPIHUB_DATABASE_PATH"); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv("KPIHUB_JWT_SECRET"); v != "" {
		c.JWTSecret = v
	}

	// --- 2. CLI Flags (Take precedence) ---
	if password != "" {
		c.AdminPassword = password
	}
	if port != 0 {
		c.Server.Port = port
	}
	if logLevel != "" {
		c.Logging.Level = logLevel
	}
	if resetPassword {
		c.ResetAdminPassword = true
	}
	if jwtSecret != "" {
		c.JWTSecret = jwtSecret
	}
	if dbPath != "" {
		c.Database.Path = dbPath
	}
}
