package utils

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	logLevelDebugStringConstant          = "debug"
	logLevelInfoStringConstant           = "info"
	logLevelWarnStringConstant           = "warn"
	logLevelErrorStringConstant          = "error"
	logFormatStructuredStringConstant    = "structured"
	logFormatConsoleStringConstant       = "console"
	jsonZapEncodingStringConstant        = "json"
	consoleZapEncodingStringConstant     = "console"
	unsupportedLogLevelTemplateConstant  = "unsupported log level: %s"
	unsupportedLogFormatTemplateConstant = "unsupported log format: %s"
)

// LogLevel enumerates supported logging granularities.
type LogLevel string

// Exported log level constants for reuse across packages.
const (
	LogLevelDebug LogLevel = LogLevel(logLevelDebugStringConstant)
	LogLevelInfo  LogLevel = LogLevel(logLevelInfoStringConstant)
	LogLevelWarn  LogLevel = LogLevel(logLevelWarnStringConstant)
	LogLevelError LogLevel = LogLevel(logLevelErrorStringConstant)
)

// LogFormat enumerates supported logger output encodings.
type LogFormat string

// Exported log format constants for reuse across packages.
const (
	LogFormatStructured LogFormat = LogFormat(logFormatStructuredStringConstant)
	LogFormatConsole    LogFormat = LogFormat(logFormatConsoleStringConstant)
)

// ParseLogLevel normalizes a textual log level, defaulting to info when empty.
func ParseLogLevel(levelText string) (LogLevel, error) {
	normalizedLevel := strings.ToLower(strings.TrimSpace(levelText))
	if len(normalizedLevel) == 0 {
		return LogLevelInfo, nil
	}
	switch LogLevel(normalizedLevel) {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return LogLevel(normalizedLevel), nil
	}
	return LogLevel(""), fmt.Errorf(unsupportedLogLevelTemplateConstant, levelText)
}

// ParseLogFormat normalizes a textual log format, defaulting to structured when empty.
func ParseLogFormat(formatText string) (LogFormat, error) {
	normalizedFormat := strings.ToLower(strings.TrimSpace(formatText))
	if len(normalizedFormat) == 0 {
		return LogFormatStructured, nil
	}
	switch LogFormat(normalizedFormat) {
	case LogFormatStructured, LogFormatConsole:
		return LogFormat(normalizedFormat), nil
	}
	return LogFormat(""), fmt.Errorf(unsupportedLogFormatTemplateConstant, formatText)
}

// LoggerFactory builds zap.Logger instances with consistent configuration.
type LoggerFactory struct{}

var logLevelMapping = map[LogLevel]zapcore.Level{
	LogLevelDebug: zapcore.DebugLevel,
	LogLevelInfo:  zapcore.InfoLevel,
	LogLevelWarn:  zapcore.WarnLevel,
	LogLevelError: zapcore.ErrorLevel,
}

// NewLoggerFactory constructs a new logger factory.
func NewLoggerFactory() *LoggerFactory {
	return &LoggerFactory{}
}

// CreateLogger produces a zap.Logger honoring the requested log level and format.
func (factory *LoggerFactory) CreateLogger(requestedLogLevel LogLevel, requestedLogFormat LogFormat) (*zap.Logger, error) {
	logLevel, levelError := ParseLogLevel(string(requestedLogLevel))
	if levelError != nil {
		return nil, levelError
	}
	logFormat, formatError := ParseLogFormat(string(requestedLogFormat))
	if formatError != nil {
		return nil, formatError
	}

	configuration := zap.NewProductionConfig()
	configuration.Level = zap.NewAtomicLevelAt(logLevelMapping[logLevel])
	if logFormat == LogFormatConsole {
		configuration.Encoding = consoleZapEncodingStringConstant
		configuration.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	} else {
		configuration.Encoding = jsonZapEncodingStringConstant
	}

	return configuration.Build()
}
