package logger

import (
	"io"
	stdlog "log"

	"github.com/aleister1102/piholewatch/internal/errorwrapper"
	"github.com/rs/zerolog"
)

// LoggerConfig holds the resolved configuration for logger setup
type LoggerConfig struct {
	Level         zerolog.Level
	Format        LogFormat
	EnableConsole bool
	EnableFile    bool
	FilePath      string
	MaxSizeMB     int
	MaxBackups    int
}

// DefaultLoggerConfig returns default logger configuration
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		Level:         zerolog.InfoLevel,
		Format:        FormatConsole,
		EnableConsole: true,
		EnableFile:    false,
		MaxSizeMB:     100,
		MaxBackups:    3,
	}
}

// LoggerBuilder provides fluent interface for building loggers
type LoggerBuilder struct {
	config  LoggerConfig
	factory *WriterFactory
}

// NewLoggerBuilder creates a new logger builder
func NewLoggerBuilder() *LoggerBuilder {
	return &LoggerBuilder{
		config:  DefaultLoggerConfig(),
		factory: NewWriterFactory(),
	}
}

// WithConfig sets the logger configuration from application config
func (lb *LoggerBuilder) WithConfig(cfg LogConfig) *LoggerBuilder {
	lb.config = LoggerConfig{
		Level:         ParseLevel(cfg.LogLevel),
		Format:        ParseFormat(cfg.LogFormat),
		EnableConsole: true,
		EnableFile:    cfg.LogFile != "",
		FilePath:      cfg.LogFile,
		MaxSizeMB:     cfg.MaxLogSizeMB,
		MaxBackups:    cfg.MaxLogBackups,
	}
	if lb.config.MaxSizeMB <= 0 {
		lb.config.MaxSizeMB = 100
	}
	if lb.config.MaxBackups <= 0 {
		lb.config.MaxBackups = 3
	}
	return lb
}

// Build creates the logger instance
func (lb *LoggerBuilder) Build() (zerolog.Logger, error) {
	if lb.config.EnableFile && lb.config.FilePath == "" {
		return zerolog.Logger{}, errorwrapper.NewValidationError("file_path", lb.config.FilePath, "file path required when file logging enabled")
	}

	var writers []io.Writer
	if lb.config.EnableConsole {
		writers = append(writers, lb.factory.CreateConsoleWriter(lb.config.Format))
	}
	if lb.config.EnableFile {
		writers = append(writers, lb.factory.CreateFileWriter(lb.config))
	}
	if len(writers) == 0 {
		return zerolog.Logger{}, errorwrapper.NewError("no output writers configured")
	}

	multiWriter := zerolog.MultiLevelWriter(writers...)
	zerologInstance := zerolog.New(multiWriter).
		Level(lb.config.Level).
		With().
		Timestamp().
		Logger()

	zerolog.SetGlobalLevel(lb.config.Level)
	stdlog.SetOutput(zerologInstance)
	stdlog.SetFlags(0)

	return zerologInstance, nil
}

// New creates a new logger instance from application log configuration
func New(cfg LogConfig) (zerolog.Logger, error) {
	return NewLoggerBuilder().WithConfig(cfg).Build()
}
