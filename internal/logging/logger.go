// Package logging attaches a zerolog logger to a context, writing to the
// application log file with automatic rotation.
package logging

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/snipkit/snipd/internal/paths"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	maxLogSizeMB  = 10
	maxLogBackups = 3
	maxLogAgeDays = 30
)

// Log levels - aliases for zerolog levels
const (
	ErrorLevel = zerolog.ErrorLevel
	WarnLevel  = zerolog.WarnLevel
	InfoLevel  = zerolog.InfoLevel
	DebugLevel = zerolog.DebugLevel
)

// Config defines the configuration for logger creation
type Config struct {
	Writer io.Writer
	Level  zerolog.Level
}

// New creates a new context with a logger attached.
// For production: provide a path resolver and leave Writer nil for file logging.
// For tests: provide a custom Writer (like strings.Builder) for in-memory logging.
func New(ctx context.Context, resolver *paths.Resolver, config Config) (context.Context, error) {
	var writer io.Writer

	if config.Writer != nil {
		// Use provided writer (typically for tests)
		writer = config.Writer
	} else {
		// Create file writer for production
		if resolver == nil {
			return nil, errors.New("path resolver required when no writer provided")
		}

		if _, err := resolver.EnsureDataDir(); err != nil {
			return nil, fmt.Errorf("failed to prepare log directory: %w", err)
		}

		writer = &lumberjack.Logger{
			Filename:   resolver.LogFile(),
			MaxSize:    maxLogSizeMB,
			MaxBackups: maxLogBackups,
			MaxAge:     maxLogAgeDays,
		}
	}

	logger := zerolog.New(writer).With().
		Timestamp().
		Logger().
		Level(config.Level)

	return logger.WithContext(ctx), nil
}

// ParseLevel converts a config log level name to a zerolog level.
func ParseLevel(name string) (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(name)
	if err != nil {
		return zerolog.InfoLevel, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}

// Get retrieves the logger from the provided context
// Returns the logger associated with the context, or a disabled logger if none exists
func Get(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}
