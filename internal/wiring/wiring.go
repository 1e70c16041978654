// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/sitecache/internal/adapters/blob"
	_ "go.trai.ch/sitecache/internal/adapters/config"
	_ "go.trai.ch/sitecache/internal/adapters/logger"
	_ "go.trai.ch/sitecache/internal/adapters/telemetry"
	_ "go.trai.ch/sitecache/internal/adapters/vcf"
	// Register app and engine nodes.
	_ "go.trai.ch/sitecache/internal/app"
	_ "go.trai.ch/sitecache/internal/engine/loader"
	_ "go.trai.ch/sitecache/internal/engine/sitecache"
)
