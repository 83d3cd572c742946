// Package config reads daybook settings from .daybook.yaml and DAYBOOK_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/daybook/pkg/planner"
)

const (
	// EnvConfigPath names a directory searched for .daybook.yaml before the
	// working directory.
	EnvConfigPath = "DAYBOOK_CONFIG_PATH"

	defaultPath = "~/.daybook.db"
)

// Settings are the resolved configuration values.
type Settings struct {
	Path      string `json:"path"`
	LogLevel  string `json:"logLevel"`
	LogFile   string `json:"logFile,omitempty"`
	FirstHour int    `json:"firstHour"`
	LastHour  int    `json:"lastHour"`
}

// BasePath is the diskv directory holding the state blob.
func (s *Settings) BasePath() string {
	return s.Path
}

// Hours returns the hour rows the day view shows.
func (s *Settings) Hours() []int {
	hours := planner.HourRange(s.FirstHour, s.LastHour)
	if len(hours) == 0 {
		return planner.DefaultHours()
	}
	return hours
}

// Load resolves settings. A missing config file is not an error.
func Load() (*Settings, error) {
	v := viper.New()
	v.SetDefault("path", defaultPath)
	v.SetDefault("log-level", "warn")
	v.SetDefault("log-file", "")
	v.SetDefault("first-hour", planner.FirstHour)
	v.SetDefault("last-hour", planner.LastHour)

	v.SetConfigName(".daybook") // .yaml is implicit
	v.SetEnvPrefix("DAYBOOK")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if override := os.Getenv(EnvConfigPath); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read %s: %w", v.ConfigFileUsed(), err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("config: expand path: %w", err)
	}
	logFile := v.GetString("log-file")
	if logFile != "" {
		if logFile, err = homedir.Expand(logFile); err != nil {
			return nil, fmt.Errorf("config: expand log-file: %w", err)
		}
	}

	return &Settings{
		Path:      path,
		LogLevel:  v.GetString("log-level"),
		LogFile:   logFile,
		FirstHour: v.GetInt("first-hour"),
		LastHour:  v.GetInt("last-hour"),
	}, nil
}
