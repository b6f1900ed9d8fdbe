// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/bprsb-tools/kpr-quote/pkg/constants"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for kpr-quote.
type Configuration struct {
	Logging LoggingConfig
	Output  OutputConfig
	Server  ServerConfig
	Cache   CacheConfig
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string // debug, info, warn, error
	Format     string // json, console
	OutputFile string // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string // pretty, csv
}

// ServerConfig holds HTTP server runtime parameters.
type ServerConfig struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// CacheConfig holds quote cache parameters. Backend selects the
// implementation; Address and TTL only apply to the Redis backend.
type CacheConfig struct {
	Backend string
	Address string
	TTL     time.Duration
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. A blank path or a missing file yields defaults
// without error so the CLI works out of the box.
func LoadConfiguration(configPath string) (*Configuration, error) {
	configuration := Configuration{
		Server: ServerConfig{
			Address:      constants.DefaultServerAddress,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Cache: CacheConfig{
			Backend: constants.CacheBackendMemory,
		},
	}

	if configPath == "" {
		return &configuration, nil
	}
	if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
		return &configuration, nil
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	configuration.applyDefaults()
	return &configuration, nil
}

func (conf *Configuration) applyDefaults() {
	if conf.Server.Address == "" {
		conf.Server.Address = constants.DefaultServerAddress
	}
	if conf.Server.ReadTimeout <= 0 {
		conf.Server.ReadTimeout = 15 * time.Second
	}
	if conf.Server.WriteTimeout <= 0 {
		conf.Server.WriteTimeout = 15 * time.Second
	}
	if conf.Cache.Backend == "" {
		conf.Cache.Backend = constants.CacheBackendMemory
	}
}

// ValidateConfiguration checks for configuration combinations that are
// accepted but likely unintended and returns human-readable warnings.
func (conf *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if conf.Cache.Backend == constants.CacheBackendRedis && conf.Cache.Address == "" {
		warnings = append(warnings, "cache backend is redis but no address is configured; falling back to in-memory cache")
	}
	if conf.Cache.Backend != "" &&
		conf.Cache.Backend != constants.CacheBackendMemory &&
		conf.Cache.Backend != constants.CacheBackendRedis {
		warnings = append(warnings, fmt.Sprintf("unknown cache backend %q; falling back to in-memory cache", conf.Cache.Backend))
	}
	if conf.Cache.TTL < 0 {
		warnings = append(warnings, "negative cache TTL treated as no expiration")
	}

	return warnings
}
