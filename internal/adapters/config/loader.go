// Package config provides the configuration loader for intern.
package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"go.trai.ch/intern/internal/core/domain"
	"go.trai.ch/intern/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultFilename is the configuration file looked up when none is given.
const DefaultFilename = "intern.yaml"

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a new configuration loader.
func NewLoader(log ports.Logger) *Loader {
	return &Loader{logger: log}
}

// Load reads the configuration at path. A missing file yields the defaults.
func (l *Loader) Load(path string) (*domain.Config, error) {
	if path == "" {
		path = DefaultFilename
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if l.logger != nil && path != DefaultFilename {
				l.logger.Warn("configuration file " + path + " not found, using defaults")
			}
			return domain.DefaultConfig(), nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read config file"), "path", path)
	}

	return Parse(data)
}

// Parse decodes a configuration document and validates it against the pool's needs.
func Parse(data []byte) (*domain.Config, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.Wrap(err, "failed to parse config file")
	}

	cfg := domain.DefaultConfig()
	cfg.JSONLogs = file.Log.JSON

	if file.Pool.MinSizeForGC != nil {
		if *file.Pool.MinSizeForGC < 0 {
			return nil, invalid("pool.minSizeForGC", *file.Pool.MinSizeForGC)
		}
		cfg.Pool.MinSizeForGC = *file.Pool.MinSizeForGC
	}

	if file.Pool.GCInterval != "" {
		d, err := time.ParseDuration(file.Pool.GCInterval)
		if err != nil || d <= 0 {
			return nil, invalid("pool.gcInterval", file.Pool.GCInterval)
		}
		cfg.Pool.GCInterval = d
	}

	if file.Load.Workers != nil {
		if *file.Load.Workers <= 0 {
			return nil, invalid("load.workers", *file.Load.Workers)
		}
		cfg.LoadWorkers = *file.Load.Workers
	}

	return cfg, nil
}

func invalid(field string, value any) error {
	return zerr.With(zerr.With(domain.ErrInvalidConfig, "field", field), "value", value)
}
