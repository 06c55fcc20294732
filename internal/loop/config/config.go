// Package config centralizes the session loop's timing and layout constants.
package config

import "time"

// Client rendering
const (
	ClientTargetFPS       = 30
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Layout, in terminal cells
const (
	HUDWidth      = 28 // Score panel to the right of the target
	StatusRows    = 1  // Help line at the bottom
	MinCanvasCols = 20
	MaxUsername   = 16
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
	ShutdownPollInterval   = 200 * time.Millisecond
)

// Inactivity
const (
	InactivityWarnUser       = 270 // Seconds
	InactivityDisconnectUser = 300 // Seconds
)
