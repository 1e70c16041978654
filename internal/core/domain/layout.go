package domain

import "io/fs"

const (
	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "sitecache.yaml"

	// ConfigEnvVar names an explicit configuration file, bypassing discovery.
	ConfigEnvVar = "SITECACHE_CONFIG"

	// DefaultPrecomputedExtension marks a location as a precomputed index.
	DefaultPrecomputedExtension = ".kryo"

	// DefaultProgressInterval is the number of records between progress reports.
	DefaultProgressInterval = 100000

	// LogFormatPretty renders colored, human-readable log lines.
	LogFormatPretty = "pretty"

	// LogFormatJSON renders one JSON object per log line.
	LogFormatJSON = "json"

	// TelemetryOTel records spans with OpenTelemetry.
	TelemetryOTel = "otel"

	// TelemetryProgrock records spans as progrock vertices.
	TelemetryProgrock = "progrock"

	// TelemetryNone disables tracing.
	TelemetryNone = "none"
)

const (
	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm fs.FileMode = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm fs.FileMode = 0o644
)
