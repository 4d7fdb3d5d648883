package logging

import (
	"context"
	"os"

	"github.com/rs/zerolog"

	"github.com/fleetmgmt/billplz-payment-service/internal/common"
)

type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})

	// expected to terminate the process
	Fatal(format string, v ...interface{})
}

type loggingWrapper struct {
	logger *zerolog.Logger
}

func (l *loggingWrapper) Debug(format string, v ...interface{}) {
	l.logger.Debug().Msgf(format, v...)
}

func (l *loggingWrapper) Info(format string, v ...interface{}) {
	l.logger.Info().Msgf(format, v...)
}

func (l *loggingWrapper) Warn(format string, v ...interface{}) {
	l.logger.Warn().Msgf(format, v...)
}

func (l *loggingWrapper) Error(format string, v ...interface{}) {
	l.logger.Error().Msgf(format, v...)
}

// expected to terminate the process
func (l *loggingWrapper) Fatal(format string, v ...interface{}) {
	l.logger.Fatal().Msgf(format, v...)
}

// context key with a separate type, so no other package has a chance of accessing it
type key int

// the value actually doesn't matter, the type alone will guarantee no package gets at this context value
const LoggerKey key = 0

func NewLogger() Logger {
	logger := zerolog.New(os.Stdout).
		With().
		Str("App", common.ApplicationName).
		Timestamp().
		Logger()

	return &loggingWrapper{
		logger: &logger,
	}
}

// NewLoggerWithRequestID tags all log lines with the id of the request being processed.
func NewLoggerWithRequestID(reqID string) Logger {
	logger := zerolog.New(os.Stdout).
		With().
		Str("App", common.ApplicationName).
		Str("RequestId", reqID).
		Timestamp().
		Logger()

	return &loggingWrapper{
		logger: &logger,
	}
}

// ContextWithLoggerForRequestID is used by the request id middleware, so that all code
// processing the request can log with the request id attached.
func ContextWithLoggerForRequestID(ctx context.Context, reqID string) context.Context {
	return context.WithValue(ctx, LoggerKey, NewLoggerWithRequestID(reqID))
}

func LoggerFromContext(ctx context.Context) Logger {
	logger, ok := ctx.Value(LoggerKey).(Logger)
	if !ok {
		return NewLogger()
	}

	return logger
}

func NewNoopLogger() Logger {
	return &noopLogger{}
}

type noopLogger struct {
}

func (l *noopLogger) Debug(format string, v ...interface{}) {
}

func (l *noopLogger) Info(format string, v ...interface{}) {
}

func (l *noopLogger) Warn(format string, v ...interface{}) {
}

func (l *noopLogger) Error(format string, v ...interface{}) {
}

// expected to terminate the process
func (l *noopLogger) Fatal(format string, v ...interface{}) {
}
