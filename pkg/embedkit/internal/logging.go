package internal

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	logPath string
	logFile *os.File

	sinkOnce sync.Once
	sink     io.Writer

	appLogger      = newLazyLogger()
	internalLogger = newLazyLogger()
)

type lazyLogger struct {
	once   sync.Once
	logger *slog.Logger
	level  *slog.LevelVar
}

func newLazyLogger() *lazyLogger {
	return &lazyLogger{level: &slog.LevelVar{}}
}

func (l *lazyLogger) get() *slog.Logger {
	l.once.Do(func() {
		l.logger = slog.New(slog.NewJSONHandler(output(), &slog.HandlerOptions{
			Level: l.level,
		}))
	})
	return l.logger
}

// SetLogPath sets the full path of the log file. Parent directories are
// created on first use. Must be called before the first log line.
func SetLogPath(path string) {
	logPath = path
}

func output() io.Writer {
	sinkOnce.Do(func() {
		sink = os.Stdout
		if logPath == "" {
			return
		}
		if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
			return
		}
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return
		}
		logFile = f
		sink = io.MultiWriter(os.Stdout, f)
	})
	return sink
}

// GetLogger returns the application logger.
func GetLogger() *slog.Logger {
	return appLogger.get()
}

// GetInternalLogger returns the logger used for embedkit diagnostics.
func GetInternalLogger() *slog.Logger {
	return internalLogger.get()
}

func SetLogLevel(level slog.Level) {
	appLogger.level.Set(level)
}

func SetInternalLogLevel(level slog.Level) {
	internalLogger.level.Set(level)
}

// ParseLevel maps "debug", "info", "warn"/"warning" and "error" to a level.
// Anything else is info.
func ParseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func CloseLogger() {
	if logFile != nil {
		logFile.Close()
	}
}
