package domain

import (
	"maps"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// Settings holds the resolved runtime configuration.
type Settings struct {
	// PrecomputedExtension is the suffix that routes a single-location key
	// to the precomputed index reader.
	PrecomputedExtension string

	// ProgressInterval is the number of records between progress reports.
	ProgressInterval int64

	// LogFormat is either LogFormatPretty or LogFormatJSON.
	LogFormat string

	// Telemetry selects the tracing backend.
	Telemetry string

	// KnownSites maps a set name to its ordered source locations.
	KnownSites map[string][]string
}

// DefaultSettings returns the settings used when no configuration file exists.
func DefaultSettings() Settings {
	return Settings{
		PrecomputedExtension: DefaultPrecomputedExtension,
		ProgressInterval:     DefaultProgressInterval,
		LogFormat:            LogFormatPretty,
		Telemetry:            TelemetryOTel,
		KnownSites:           map[string][]string{},
	}
}

// Validate checks that every setting holds a supported value.
func (s Settings) Validate() error {
	if s.PrecomputedExtension == "" {
		return zerr.Wrap(ErrInvalidSettings, "precomputed extension must not be empty")
	}
	if s.ProgressInterval <= 0 {
		return zerr.With(zerr.Wrap(ErrInvalidSettings, "progress interval must be positive"),
			"progress_interval", s.ProgressInterval)
	}
	switch s.LogFormat {
	case LogFormatPretty, LogFormatJSON:
	default:
		return zerr.With(zerr.Wrap(ErrInvalidSettings, "unsupported log format"), "log_format", s.LogFormat)
	}
	switch s.Telemetry {
	case TelemetryOTel, TelemetryProgrock, TelemetryNone:
	default:
		return zerr.With(zerr.Wrap(ErrInvalidSettings, "unsupported telemetry backend"), "telemetry", s.Telemetry)
	}
	for name, locations := range s.KnownSites {
		if _, err := NewKey(locations...); err != nil {
			return zerr.With(zerr.Wrap(ErrInvalidSettings, "known-sites set has no usable locations"), "set", name)
		}
	}
	return nil
}

// IsPrecomputed reports whether location carries the precomputed extension.
func (s Settings) IsPrecomputed(location string) bool {
	return s.PrecomputedExtension != "" && strings.HasSuffix(location, s.PrecomputedExtension)
}

// SetNames returns the configured known-sites set names, sorted.
func (s Settings) SetNames() []string {
	return slices.Sorted(maps.Keys(s.KnownSites))
}

// ResolveSet returns the key for the named known-sites set.
func (s Settings) ResolveSet(name string) (Key, error) {
	locations, ok := s.KnownSites[name]
	if !ok {
		return Key{}, zerr.With(zerr.Wrap(ErrUnknownSourceSet, "not configured"), "set", name)
	}
	return NewKey(locations...)
}
