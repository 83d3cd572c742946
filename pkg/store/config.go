package store

import (
	"tableflip.dev/daybook/pkg/config"
)

// Config locates the diskv base directory.
type Config interface {
	BasePath() string
}

// LoadConfig resolves the config from .daybook.yaml and the environment.
func LoadConfig() (Config, error) {
	return config.Load()
}
