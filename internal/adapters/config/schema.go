package config

// Sitefile represents the structure of the sitecache.yaml configuration file.
type Sitefile struct {
	Version              string              `yaml:"version"`
	PrecomputedExtension string              `yaml:"precomputedExtension"`
	ProgressInterval     *int64              `yaml:"progressInterval"`
	Log                  LogDTO              `yaml:"log"`
	Telemetry            string              `yaml:"telemetry"`
	KnownSites           map[string][]string `yaml:"knownSites"`
}

// LogDTO represents the log section of the configuration.
type LogDTO struct {
	Format string `yaml:"format"`
}

// SupportedVersion is the only configuration schema version understood.
const SupportedVersion = "1"
