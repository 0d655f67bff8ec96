package kv

import (
	"errors"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Supported storage drivers.
const (
	DriverDiskv  = "diskv"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// ConfigPathEnv names a directory that is searched for .uebung.yaml first.
const ConfigPathEnv = "UEBUNG_CONFIG_PATH"

// Config describes where and how practice data is stored.
type Config interface {
	BasePath() string
	Driver() string
	Verbose() bool
}

// LoadConfig reads .uebung.yaml (if present) and UEBUNG_* environment
// variables.
func LoadConfig() (Config, error) {
	viper.SetDefault("path", "~/.uebung.db")
	viper.SetDefault("driver", DriverDiskv)
	viper.SetDefault("verbose", false)
	viper.SetConfigName(".uebung") // .yaml is implicit
	viper.SetEnvPrefix("UEBUNG")
	viper.AutomaticEnv()

	if override := os.Getenv(ConfigPathEnv); override != "" {
		viper.AddConfigPath(override)
	}

	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	path, err := homedir.Expand(viper.GetString("path"))
	if err != nil {
		return nil, err
	}

	return &fileConfig{
		Path:      path,
		Backend:   strings.ToLower(strings.TrimSpace(viper.GetString("driver"))),
		Debugging: viper.GetBool("verbose"),
	}, nil
}

// ConfigFileUsed reports the config file viper loaded, if any.
func ConfigFileUsed() string {
	return viper.ConfigFileUsed()
}

// StaticConfig is a Config built in code.
type StaticConfig struct {
	Path      string
	Backend   string
	Debugging bool
}

func (s StaticConfig) BasePath() string { return s.Path }
func (s StaticConfig) Driver() string   { return s.Backend }
func (s StaticConfig) Verbose() bool    { return s.Debugging }

type fileConfig struct {
	Path      string `json:"path"`
	Backend   string `json:"driver"`
	Debugging bool   `json:"verbose"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

func (f *fileConfig) Driver() string {
	return f.Backend
}

func (f *fileConfig) Verbose() bool {
	return f.Debugging
}
