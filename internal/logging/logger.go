package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/wizzomafizzo/sortdl/internal/storage"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	defaultLogSizeMB  = 10
	defaultLogBackups = 3
	defaultLogAgeDays = 30

	consoleTimeFormat = "2006-01-02 15:04:05"
)

// Log levels - aliases for zerolog levels
const (
	PanicLevel = zerolog.PanicLevel
	FatalLevel = zerolog.FatalLevel
	ErrorLevel = zerolog.ErrorLevel
	WarnLevel  = zerolog.WarnLevel
	InfoLevel  = zerolog.InfoLevel
	DebugLevel = zerolog.DebugLevel
	TraceLevel = zerolog.TraceLevel
)

// Config defines the configuration for logger creation
type Config struct {
	Writer     io.Writer
	Console    io.Writer
	Root       string
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Level      zerolog.Level
}

// New creates a new context with a logger attached
// For production: provide fs, leave Writer nil for file + console logging
// For tests: provide a custom Writer (like strings.Builder) for in-memory logging
func New(ctx context.Context, fs afero.Fs, config Config) (context.Context, error) {
	var writer io.Writer

	if config.Writer != nil {
		writer = config.Writer
	} else {
		if fs == nil {
			return nil, errors.New("filesystem required when no writer provided")
		}

		storageManager := storage.New(fs)
		logFile, err := storageManager.GetLogPath()
		if err != nil {
			return nil, fmt.Errorf("failed to get log path: %w", err)
		}

		fileWriter := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    orDefault(config.MaxSize, defaultLogSizeMB),
			MaxBackups: orDefault(config.MaxBackups, defaultLogBackups),
			MaxAge:     orDefault(config.MaxAge, defaultLogAgeDays),
		}

		console := config.Console
		if console == nil {
			console = os.Stderr
		}

		writer = zerolog.MultiLevelWriter(
			zerolog.ConsoleWriter{Out: console, TimeFormat: consoleTimeFormat},
			fileWriter,
		)
	}

	logger := zerolog.New(writer).With().
		Timestamp().
		Str("root", config.Root).
		Logger().
		Level(config.Level)

	return logger.WithContext(ctx), nil
}

// Get retrieves the logger from the provided context
// Returns the logger associated with the context, or a disabled logger if none exists
func Get(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// ParseLevel converts a level name to a zerolog level. An empty name is info.
func ParseLevel(name string) (zerolog.Level, error) {
	if name == "" {
		return InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(name)
	if err != nil {
		return InfoLevel, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}

func orDefault(value, fallback int) int {
	if value <= 0 {
		return fallback
	}
	return value
}
