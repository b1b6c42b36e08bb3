// Package embedkit hosts a single child screen inside a container region and
// swaps it through pluggable transitions, and builds a paginated wizard flow
// on top of that.
//
// Every view mutation happens on a loop.Loop. Init configures logging and the
// process-wide configuration registry components read their styling from.
package embedkit

import (
	"log/slog"
	"os"
	"sync"

	"github.com/BrandonKowalski/embedkit/pkg/embedkit/config"
	"github.com/BrandonKowalski/embedkit/pkg/embedkit/constants"
	"github.com/BrandonKowalski/embedkit/pkg/embedkit/internal"
	"github.com/BrandonKowalski/embedkit/pkg/embedkit/platform/cannoli"
)

// Options configures embedkit initialization.
type Options struct {
	LogPath          string // Full path for log file including filename (creates parent directories)
	LogLevel         string // Application log level, overridden by EMBEDKIT_LOG_LEVEL
	WizardConfigPath string // TOML wizard configuration, overridden by EMBEDKIT_WIZARD_CONFIG
	IsCannoli        bool   // Use Cannoli CFW wizard styling
}

var (
	registryMu sync.Mutex
	registry   *config.Registry
)

// Init configures logging and registers the wizard configuration.
// Call it before creating any component.
func Init(options Options) error {
	if options.LogPath != "" {
		internal.SetLogPath(options.LogPath)
	}

	if constants.IsDevMode() {
		internal.SetInternalLogLevel(slog.LevelDebug)
	} else {
		internal.SetInternalLogLevel(slog.LevelError)
	}

	level := options.LogLevel
	if env := os.Getenv(constants.LogLevelEnvVar); env != "" {
		level = env
	}
	if level != "" {
		internal.SetLogLevel(internal.ParseLevel(level))
	}

	ui := config.Default()
	if options.IsCannoli {
		ui = cannoli.WizardConfig()
	}

	path := options.WizardConfigPath
	if env := os.Getenv(constants.WizardConfigEnvVar); env != "" {
		path = env
	}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			internal.GetInternalLogger().Error("Failed to load wizard configuration", "path", path, "error", err)
			return NewConfigurationError("init", err)
		}
		ui = loaded
	}

	r := config.NewRegistry()
	if err := r.Register(config.WizardDomain, ui); err != nil {
		return NewConfigurationError("init", err)
	}

	registryMu.Lock()
	registry = r
	registryMu.Unlock()
	return nil
}

// Config returns the process-wide configuration registry. Without Init it
// holds the defaults.
func Config() *config.Registry {
	registryMu.Lock()
	defer registryMu.Unlock()
	if registry == nil {
		registry = config.NewRegistry()
	}
	return registry
}

// Close flushes and closes the log file.
func Close() {
	internal.CloseLogger()
}

// SetLogPath sets the full path for the log file, including filename.
// Call before Init() to take effect during initialization.
func SetLogPath(path string) {
	internal.SetLogPath(path)
}

// GetLogger returns the application logger for structured logging.
func GetLogger() *slog.Logger {
	return internal.GetLogger()
}

// SetLogLevel sets the minimum log level for the application logger.
func SetLogLevel(level slog.Level) {
	internal.SetLogLevel(level)
}

// SetRawLogLevel parses and sets the log level from a string (e.g., "debug", "info", "error").
func SetRawLogLevel(level string) {
	internal.SetLogLevel(internal.ParseLevel(level))
}
