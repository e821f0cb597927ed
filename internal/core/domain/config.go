package domain

import "time"

const (
	// DefaultMinSizeForGC is the pool size a collection pass must exceed.
	DefaultMinSizeForGC = 300
	// DefaultGCInterval is the cooldown between two collection passes.
	DefaultGCInterval = 30 * time.Second
	// DefaultLoadWorkers is the number of files ingested concurrently.
	DefaultLoadWorkers = 4
)

// PoolConfig holds the collection thresholds of a pool.
type PoolConfig struct {
	MinSizeForGC int
	GCInterval   time.Duration
}

// DefaultPoolConfig returns the thresholds used when nothing is configured.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		MinSizeForGC: DefaultMinSizeForGC,
		GCInterval:   DefaultGCInterval,
	}
}

// Config is the full runtime configuration of the intern tool.
type Config struct {
	Pool        PoolConfig
	LoadWorkers int
	JSONLogs    bool
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Pool:        DefaultPoolConfig(),
		LoadWorkers: DefaultLoadWorkers,
	}
}
