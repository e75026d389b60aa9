package logger

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogFormat represents available log formats
type LogFormat int

const (
	FormatConsole LogFormat = iota
	FormatJSON
	FormatText
)

// ParseFormat converts a config string into a LogFormat, defaulting to console.
func ParseFormat(format string) LogFormat {
	switch format {
	case "json":
		return FormatJSON
	case "text":
		return FormatText
	default:
		return FormatConsole
	}
}

// ParseLevel converts a config string into a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil || parsed == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return parsed
}

// WriterFactory creates log writers based on format
type WriterFactory struct{}

// NewWriterFactory creates a new writer factory
func NewWriterFactory() *WriterFactory {
	return &WriterFactory{}
}

// CreateConsoleWriter creates a writer for terminal output
func (wf *WriterFactory) CreateConsoleWriter(format LogFormat) io.Writer {
	if format == FormatJSON {
		return os.Stderr
	}
	return zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    format == FormatText,
	}
}

// CreateFileWriter creates a rotating file writer
func (wf *WriterFactory) CreateFileWriter(cfg LoggerConfig) io.Writer {
	// Best effort; lumberjack surfaces the real error on first write.
	_ = os.MkdirAll(filepath.Dir(cfg.FilePath), 0755)

	rotator := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSizeMB,
		LocalTime:  true,
		MaxBackups: cfg.MaxBackups,
	}

	if cfg.Format == FormatJSON {
		return rotator
	}
	return zerolog.ConsoleWriter{
		Out:        rotator,
		TimeFormat: time.RFC3339,
		NoColor:    true,
	}
}
