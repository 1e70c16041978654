package ports

import "go.trai.ch/sitecache/internal/core/domain"

// ConfigLoader defines the interface for loading runtime settings.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load resolves settings for the given working directory.
	// A missing configuration file yields domain.DefaultSettings.
	Load(cwd string) (domain.Settings, error)
}
