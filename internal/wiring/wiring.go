// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/autolink/internal/adapters/config"
	_ "go.trai.ch/autolink/internal/adapters/descriptor"
	_ "go.trai.ch/autolink/internal/adapters/fs"
	_ "go.trai.ch/autolink/internal/adapters/logger"
	_ "go.trai.ch/autolink/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "go.trai.ch/autolink/internal/app"
	_ "go.trai.ch/autolink/internal/engine/linker"
	_ "go.trai.ch/autolink/internal/engine/resolver"
)
