package config

// File represents the structure of the intern.yaml configuration file.
type File struct {
	Version string  `yaml:"version"`
	Pool    PoolDTO `yaml:"pool"`
	Load    LoadDTO `yaml:"load"`
	Log     LogDTO  `yaml:"log"`
}

// PoolDTO holds the collection thresholds.
type PoolDTO struct {
	MinSizeForGC *int   `yaml:"minSizeForGC"`
	GCInterval   string `yaml:"gcInterval"`
}

// LoadDTO configures file ingestion.
type LoadDTO struct {
	Workers *int `yaml:"workers"`
}

// LogDTO configures the logger.
type LogDTO struct {
	JSON bool `yaml:"json"`
}
