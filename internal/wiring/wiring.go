// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/intern/internal/adapters/clock"
	_ "go.trai.ch/intern/internal/adapters/config"
	_ "go.trai.ch/intern/internal/adapters/fs"
	_ "go.trai.ch/intern/internal/adapters/logger"
	_ "go.trai.ch/intern/internal/adapters/telemetry"
	_ "go.trai.ch/intern/internal/adapters/telemetry/progrock"
	// Register app nodes.
	_ "go.trai.ch/intern/internal/app"
)
