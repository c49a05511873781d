// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the binconv CLI.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/binconv/internal/logging"
	"github.com/pdiddy/binconv/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// cfg is the merged configuration (defaults, file, env, flags).
	cfg types.Config

	// logger writes diagnostics to stderr.
	logger = zerolog.Nop()

	// configErr holds a config file read failure other than "not found".
	configErr error
)

// rootCmd is the base command for the binconv CLI.
var rootCmd = &cobra.Command{
	Use:   "binconv",
	Short: "Convert numbers between binary and decimal",
	Long: `binconv validates and converts numeric strings between binary and
decimal. Values have arbitrary precision; leading zeros are accepted.

Conversions can run locally, against a remote binconv API (--remote), or in
batch from a file. When history is enabled, every conversion is recorded in
a local SQLite database.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := loadConfig()
		if err != nil {
			return err
		}
		cfg = loaded

		l, err := logging.New(cfg.Log, os.Stderr)
		if err != nil {
			return err
		}
		logger = l
		if f := viper.ConfigFileUsed(); f != "" {
			logger.Debug().Str("file", f).Msg("using config file")
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./binconv.yaml or ~/.config/binconv/binconv.yaml)")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.String("log-format", "", "log format: console or json")
	pf.Bool("history", false, "record conversions in the history database")
	pf.String("history-dir", "", "directory holding history.db")
}

// bindConfigFlags maps flags onto config keys. It runs at execution time,
// after every command's init has registered its flags.
func bindConfigFlags() {
	pf := rootCmd.PersistentFlags()
	bindFlag("log.level", pf.Lookup("log-level"))
	bindFlag("log.format", pf.Lookup("log-format"))
	bindFlag("history.enabled", pf.Lookup("history"))
	bindFlag("history.dir", pf.Lookup("history-dir"))
	bindFlag("server.addr", serveCmd.Flags().Lookup("addr"))
}

func initConfig() {
	configErr = nil
	bindConfigFlags()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("binconv")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "binconv"))
		}
	}

	viper.SetEnvPrefix("BINCONV")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults(types.DefaultConfig())

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			configErr = fmt.Errorf("reading config: %w", err)
		}
	}
}

// setDefaults registers every key so that AutomaticEnv can override it.
func setDefaults(d types.Config) {
	viper.SetDefault("history.enabled", d.History.Enabled)
	viper.SetDefault("history.dir", d.History.Dir)
	viper.SetDefault("history.max_results", d.History.MaxResults)
	viper.SetDefault("server.addr", d.Server.Addr)
	viper.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	viper.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	viper.SetDefault("server.token_file", d.Server.TokenFile)
	viper.SetDefault("client.timeout", d.Client.Timeout)
	viper.SetDefault("client.max_retries", d.Client.MaxRetries)
	viper.SetDefault("client.user_agent", d.Client.UserAgent)
	viper.SetDefault("log.level", d.Log.Level)
	viper.SetDefault("log.format", string(d.Log.Format))
	viper.SetDefault("secrets_dir", d.SecretsDir)
}

func loadConfig() (types.Config, error) {
	if configErr != nil {
		return types.Config{}, configErr
	}
	var c types.Config
	if err := viper.Unmarshal(&c); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return c, nil
}

func bindFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
