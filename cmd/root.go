package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/iksnae/bizspark-chat/internal"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	configPath string
	verbose    bool
	version    string = "dev"
	commit     string = "unknown"
	date       string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bizspark",
	Short: "Chat with the BizSpark business assistant",
	Long: `A terminal client for the BizSpark sales assistant.

Ask about products in plain language, browse the item catalog and follow
the assistant's suggestions. Each tab keeps its own conversation session,
stored in a small local state database.

Quick Start:
  bizspark chat                         # Interactive chat
  bizspark ask "laptops under $500"     # One-shot question
  bizspark items --search desk          # Search the catalog
  bizspark health                       # Check the service

Configuration is read from flags, BIZSPARK_* environment variables (a .env
file in the current directory is honored) and bizspark.yaml in the current
directory or ~/.bizspark.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		settings = cfg
		return setupLogging(false)
	},
}

// settings is the resolved configuration of the running command
var settings *runConfig

type runConfig struct {
	internal.Config `mapstructure:",squash"`

	LogLevel   string `mapstructure:"log-level"`
	LogFormat  string `mapstructure:"log-format"`
	WithCaller bool   `mapstructure:"with-caller"`
	Verbose    bool   `mapstructure:"verbose"`
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	defer internal.CloseLogger()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		internal.PrintError(fmt.Sprintf("Error: %v", err))
		stop()
		_ = internal.CloseLogger()
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Config file (default ./bizspark.yaml or ~/.bizspark/bizspark.yaml)")
	flags.String("endpoint", internal.DefaultEndpoint, "Assistant service URL")
	flags.String("tab", internal.DefaultTab, "Tab scope whose session is used")
	flags.String("state-db", "", "State database path (default ~/.bizspark/state.db)")
	flags.Bool("ephemeral", false, "Keep the session in memory only")
	flags.Duration("timeout", internal.DefaultTimeout, "Request timeout")
	flags.Duration("catalog-ttl", internal.DefaultCatalogTTL, "How long a fetched catalog stays fresh")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.String("log-file", "", "Also write logs to this file")
	flags.String("log-format", "text", "Log format (text, json)")
	flags.Bool("with-caller", false, "Log caller information")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

// loadConfig merges flags, environment and the config file
func loadConfig(cmd *cobra.Command) (*runConfig, error) {
	// a local .env may carry BIZSPARK_* settings; real environment wins
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("bizspark")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("bizspark")
		v.AddConfigPath(".")
		v.AddConfigPath(internal.StateDir())
	}

	err := v.ReadInConfig()
	// a missing config file is fine
	if _, ok := err.(viper.ConfigFileNotFoundError); !ok && err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, err
	}

	var cfg runConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Verbose {
		cfg.LogLevel = "debug"
	}

	log.Debug().Str("config", v.ConfigFileUsed()).Str("endpoint", cfg.Endpoint).Str("tab", cfg.Tab).Msg("Loaded configuration")
	return &cfg, nil
}

// setupLogging configures logging for the running command. quiet routes
// logs to the log file only, for when the terminal belongs to the TUI.
func setupLogging(quiet bool) error {
	logFile := settings.LogFile
	if quiet && logFile == "" {
		logFile = internal.DefaultLogFile()
	}
	return internal.InitLogger(internal.LogConfig{
		Level:      settings.LogLevel,
		Format:     settings.LogFormat,
		File:       logFile,
		Quiet:      quiet,
		WithCaller: settings.WithCaller,
	})
}

// newApp builds the client core for the configured endpoint and tab. The
// returned function releases the tab storage.
func newApp() (*internal.App, *internal.Client, func(), error) {
	storage, closeStorage, err := settings.OpenTabStorage()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open state: %w", err)
	}
	client := internal.NewClient(settings.Endpoint, settings.Timeout)
	app := internal.NewApp(client, storage, settings.CatalogTTL)

	release := func() {
		if err := closeStorage(); err != nil {
			internal.LogWarn("Failed to close state database: %v", err)
		}
	}
	return app, client, release, nil
}
