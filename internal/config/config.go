// Package config defines the runtime configuration and loads it from a
// YAML file with environment variable overrides.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/avalle/asset-runway/pkg/constants"
)

// Configuration holds all configuration for asset-runway.
type Configuration struct {
	LLM     LLMConfig     `yaml:"llm,omitempty"`
	Server  ServerConfig  `yaml:"server,omitempty"`
	Logging LoggingConfig `yaml:"logging,omitempty"`
	Output  OutputConfig  `yaml:"output,omitempty"`
}

// LLMConfig holds the text-generation client settings. An empty APIKey
// falls through to the SDK's ambient credential lookup.
type LLMConfig struct {
	APIKey string `yaml:"apiKey,omitempty"`
	Model  string `yaml:"model,omitempty"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Address        string `yaml:"address,omitempty"`
	MaxUploadSize  int64  `yaml:"maxUploadSize,omitempty"`  // bytes
	RequestTimeout int    `yaml:"requestTimeout,omitempty"` // seconds, LLM calls included
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. A missing path yields the defaults without error.
func LoadConfiguration(configPath string) (*Configuration, error) {
	configuration := defaults()
	if configPath == "" {
		return configuration, nil
	}

	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	if err := viper.Unmarshal(configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	configuration.applyDefaults()
	return configuration, nil
}

func defaults() *Configuration {
	c := &Configuration{}
	c.applyDefaults()
	return c
}

func (c *Configuration) applyDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = constants.DefaultServerAddress
	}
	if c.Server.MaxUploadSize <= 0 {
		c.Server.MaxUploadSize = constants.MaxUploadSizeBytes
	}
	if c.Server.RequestTimeout <= 0 {
		c.Server.RequestTimeout = 120
	}
	if c.Output.Format == "" {
		c.Output.Format = constants.OutputFormatPretty
	}
}
