// Package config provides the settings loader for sitecache.
package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/sitecache/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	fs     FileSystem
	getenv func(string) string
}

// NewLoader creates a Loader backed by the OS filesystem and environment.
func NewLoader() *Loader {
	return NewLoaderWithFS(NewOSFS(), os.Getenv)
}

// NewLoaderWithFS creates a Loader over the given filesystem and environment lookup.
func NewLoaderWithFS(fsys FileSystem, getenv func(string) string) *Loader {
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	return &Loader{fs: fsys, getenv: getenv}
}

// Load resolves settings for cwd.
//
// The file named by SITECACHE_CONFIG wins; otherwise sitecache.yaml is
// searched from cwd upwards. Without a file, the defaults apply.
// Relative known-sites locations are resolved against the file's directory.
func (l *Loader) Load(cwd string) (domain.Settings, error) {
	configPath, found, err := l.findConfiguration(cwd)
	if err != nil {
		return domain.Settings{}, err
	}
	if !found {
		return domain.DefaultSettings(), nil
	}

	var sitefile Sitefile
	if err := l.readAndUnmarshalYAML(configPath, &sitefile); err != nil {
		return domain.Settings{}, err
	}

	settings, err := toSettings(&sitefile, filepath.Dir(configPath))
	if err != nil {
		return domain.Settings{}, zerr.With(err, "path", configPath)
	}
	return settings, nil
}

func (l *Loader) findConfiguration(cwd string) (string, bool, error) {
	if explicit := l.getenv(domain.ConfigEnvVar); explicit != "" {
		if !filepath.IsAbs(explicit) {
			explicit = filepath.Join(cwd, explicit)
		}
		if _, err := l.fs.Stat(explicit); err != nil {
			return "", false, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", explicit)
		}
		return explicit, true, nil
	}

	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if _, err := l.fs.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", false, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", candidate)
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", false, nil
		}
		currentDir = parentDir
	}
}

// readAndUnmarshalYAML reads a YAML file and strictly unmarshals it into target.
func (l *Loader) readAndUnmarshalYAML(configPath string, target *Sitefile) error {
	content, err := l.fs.ReadFile(configPath)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", configPath)
	}

	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)
	if err := dec.Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", configPath)
	}
	return nil
}

func toSettings(sitefile *Sitefile, configDir string) (domain.Settings, error) {
	if sitefile.Version != "" && sitefile.Version != SupportedVersion {
		return domain.Settings{}, zerr.With(zerr.Wrap(domain.ErrInvalidSettings, "unsupported config version"),
			"version", sitefile.Version)
	}

	settings := domain.DefaultSettings()
	if sitefile.PrecomputedExtension != "" {
		settings.PrecomputedExtension = sitefile.PrecomputedExtension
	}
	if sitefile.ProgressInterval != nil {
		settings.ProgressInterval = *sitefile.ProgressInterval
	}
	if sitefile.Log.Format != "" {
		settings.LogFormat = strings.ToLower(sitefile.Log.Format)
	}
	if sitefile.Telemetry != "" {
		settings.Telemetry = strings.ToLower(sitefile.Telemetry)
	}

	for name, locations := range sitefile.KnownSites {
		resolved := make([]string, len(locations))
		for i, loc := range locations {
			resolved[i] = resolveLocation(configDir, loc)
		}
		settings.KnownSites[name] = resolved
	}

	if err := settings.Validate(); err != nil {
		return domain.Settings{}, err
	}
	return settings, nil
}

// resolveLocation anchors a relative file location at configDir.
// URLs and absolute paths are kept as written.
func resolveLocation(configDir, location string) string {
	if location == "" || filepath.IsAbs(location) || strings.Contains(location, "://") {
		return location
	}
	return filepath.Clean(filepath.Join(configDir, location))
}
