// filepath: internal/cli/root.go
package cli

import (
	"fmt"
	"os"
	"strings"

	"woodbank/internal/config"
	"woodbank/internal/logging"
	"woodbank/internal/repository"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Global config object populated by flags/env/file
	cfg *config.Config
	log *logrus.Logger

	// Flags
	cfgFile  string
	dbPath   string
	logLevel string
)

// rootCmd is the base command. All functionality lives in subcommands.
var rootCmd = &cobra.Command{
	Use:   "woodbank",
	Short: "Firewood bank records management",
	Long:  `Records management for a community firewood bank: client households, work orders, deliveries, inventory, and volunteer scheduling.`,
	// PersistentPreRunE loads the configuration before any command runs.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig()
	},
	SilenceUsage: true,
}

// Execute runs the root command. Called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.toml", "Path to the configuration file. (Env: WOODBANK_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the SQLite database file. (Env: WOODBANK_DB)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Logging level (debug, info, warn, error). (Env: WOODBANK_LOG_LEVEL)")

	viper.SetEnvPrefix("WOODBANK")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	viper.BindPFlags(rootCmd.PersistentFlags())
}

// initializeConfig loads the config file and applies env/flag overrides.
// Flags win over environment variables, which win over the file.
func initializeConfig() error {
	path := viper.GetString("config")

	var err error
	cfg, err = config.LoadConfig(path)
	if err != nil {
		if os.IsNotExist(err) {
			// No config file yet, rely on defaults/flags
			cfg = &config.Config{}
		} else {
			return fmt.Errorf("failed to load configuration from %s: %w", path, err)
		}
	}
	cfgFile = path

	if v := viper.GetString("db"); v != "" {
		cfg.Database.Path = v
	}
	if v := viper.GetString("log-level"); v != "" {
		cfg.Logging.Level = v
	}
	if v := viper.GetString("session-secret"); v != "" {
		cfg.SessionSecret = v
	}

	if err := cfg.ParseAndValidate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	log = logging.NewLogger(cfg.Logging.Level)
	return nil
}

// openRepository opens the configured database. Callers own Close().
func openRepository() (*repository.Repository, error) {
	repo, err := repository.NewRepository(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", cfg.Database.Path, err)
	}
	return repo, nil
}
