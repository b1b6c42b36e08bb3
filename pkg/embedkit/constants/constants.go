// Package constants defines shared constants used throughout embedkit.
package constants

import (
	"os"
	"time"
)

// Development is the environment variable value for development mode.
const Development = "DEV"

// Environment variable names read by embedkit.
const (
	EnvironmentEnvVar  = "ENVIRONMENT"
	LogLevelEnvVar     = "EMBEDKIT_LOG_LEVEL"
	WizardConfigEnvVar = "EMBEDKIT_WIZARD_CONFIG"
)

// IsDevMode returns true if running in development mode (ENVIRONMENT=DEV).
func IsDevMode() bool {
	return os.Getenv(EnvironmentEnvVar) == Development
}

// Default timing constants.
const (
	FrameInterval                 = 16 * time.Millisecond  // ~60fps loop cadence
	DefaultCrossfadeDuration      = 300 * time.Millisecond // Crossfade strategy and crossfade segue
	DefaultSegueDuration          = 350 * time.Millisecond // Animated segue configurations
	DefaultPageTransitionDuration = 300 * time.Millisecond // Animated wizard paging
	NextButtonFadeDuration        = 250 * time.Millisecond // Wizard next affordance fade
)
