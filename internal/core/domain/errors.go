package domain

import (
	"fmt"

	"go.trai.ch/zerr"
)

var (
	// ErrInvalidKey is returned when a key is empty or contains an empty location.
	ErrInvalidKey = zerr.New("invalid known-sites key")

	// ErrSourceUnreadable is returned when a source cannot be opened or read to completion.
	ErrSourceUnreadable = zerr.New("known-sites source unreadable")

	// ErrRecordMalformed is returned when a raw source yields a record that cannot be decoded.
	ErrRecordMalformed = zerr.New("malformed known-sites record")

	// ErrPrecomputedIndexCorrupt is returned when a precomputed index fails to decode.
	ErrPrecomputedIndexCorrupt = zerr.New("precomputed index corrupt")

	// ErrBuildFailed is returned by the cache when building an index for a key fails.
	ErrBuildFailed = zerr.New("failed to build known-sites index")

	// ErrInvalidInterval is returned when an interval has non-positive or inverted coordinates.
	ErrInvalidInterval = zerr.New("invalid interval")

	// ErrInvalidRegion is returned when a region string cannot be parsed.
	ErrInvalidRegion = zerr.New("invalid region, expected contig[:start[-end]]")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidSettings is returned when a config value is out of range.
	ErrInvalidSettings = zerr.New("invalid settings")

	// ErrUnknownSourceSet is returned when a named known-sites set is not configured.
	ErrUnknownSourceSet = zerr.New("unknown known-sites set")

	// ErrNoSourcesSpecified is returned when a command is given neither a set nor sources.
	ErrNoSourcesSpecified = zerr.New("no known-sites sources specified")

	// ErrPackFailed is returned when writing a precomputed index fails.
	ErrPackFailed = zerr.New("failed to write precomputed index")
)

// SourceError reports a failure tied to one source location.
// Kind is one of ErrSourceUnreadable, ErrRecordMalformed or ErrPrecomputedIndexCorrupt.
type SourceError struct {
	Kind     error
	Location string
	Err      error
}

// NewSourceError creates a SourceError of the given kind.
func NewSourceError(kind error, location string, err error) *SourceError {
	return &SourceError{Kind: kind, Location: location, Err: err}
}

// Error implements error.
func (e *SourceError) Error() string {
	if e.Err == nil {
		return e.Message()
	}
	return fmt.Sprintf("%s: %v", e.Message(), e.Err)
}

// Message returns the error message without its cause.
func (e *SourceError) Message() string {
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Location)
}

// Unwrap returns the underlying cause.
func (e *SourceError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the kind of this error.
func (e *SourceError) Is(target error) bool {
	return target == e.Kind
}

// BuildError reports that building the index for Key failed.
type BuildError struct {
	Key Key
	Err error
}

// NewBuildError wraps cause as the build failure of key.
func NewBuildError(key Key, cause error) *BuildError {
	return &BuildError{Key: key, Err: cause}
}

// Error implements error.
func (e *BuildError) Error() string {
	if e.Err == nil {
		return e.Message()
	}
	return fmt.Sprintf("%s: %v", e.Message(), e.Err)
}

// Message returns the error message without its cause.
func (e *BuildError) Message() string {
	return fmt.Sprintf("%s [%s]", ErrBuildFailed.Error(), e.Key.String())
}

// Unwrap returns the underlying cause.
func (e *BuildError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrBuildFailed.
func (e *BuildError) Is(target error) bool {
	return target == ErrBuildFailed
}
