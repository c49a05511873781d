// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HistoryConfig holds settings for the conversion history store.
type HistoryConfig struct {
	// Enabled turns on recording of CLI conversions.
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// Dir is the directory that holds history.db.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// MaxResults is the default number of entries returned by List (default 20).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// ServerConfig holds settings for the HTTP API.
type ServerConfig struct {
	// Addr is the listen address (e.g. ":8080").
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`

	// ReadTimeout bounds reading a request including its body.
	ReadTimeout time.Duration `json:"read_timeout" yaml:"read_timeout" mapstructure:"read_timeout"`

	// WriteTimeout bounds writing the response.
	WriteTimeout time.Duration `json:"write_timeout" yaml:"write_timeout" mapstructure:"write_timeout"`

	// TokenFile names the file under the secrets directory holding the
	// bearer token. An empty or missing token disables authentication.
	TokenFile string `json:"token_file" yaml:"token_file" mapstructure:"token_file"`
}

// ClientConfig holds settings for talking to a remote binconv API.
type ClientConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// MaxRetries is the number of retries on HTTP 429 (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`

	// UserAgent is the User-Agent header sent with requests.
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// LogFormat selects the log encoding.
type LogFormat string

const (
	LogConsole LogFormat = "console"
	LogJSON    LogFormat = "json"
)

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is a zerolog level name: debug, info, warn, error.
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is console or json.
	Format LogFormat `json:"format" yaml:"format" mapstructure:"format"`
}

// Config groups every section of binconv.yaml.
type Config struct {
	History    HistoryConfig `json:"history" yaml:"history" mapstructure:"history"`
	Server     ServerConfig  `json:"server" yaml:"server" mapstructure:"server"`
	Client     ClientConfig  `json:"client" yaml:"client" mapstructure:"client"`
	Log        LogConfig     `json:"log" yaml:"log" mapstructure:"log"`
	SecretsDir string        `json:"secrets_dir" yaml:"secrets_dir" mapstructure:"secrets_dir"`
}

// DefaultConfig returns the configuration used when no file, flag, or
// environment variable overrides a value.
func DefaultConfig() Config {
	return Config{
		History: HistoryConfig{
			Enabled:    false,
			Dir:        ".binconv",
			MaxResults: 20,
		},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			TokenFile:    "binconv-api-token",
		},
		Client: ClientConfig{
			Timeout:    10 * time.Second,
			MaxRetries: 5,
			UserAgent:  "binconv/0.1",
		},
		Log: LogConfig{
			Level:  "info",
			Format: LogConsole,
		},
		SecretsDir: ".secrets",
	}
}
