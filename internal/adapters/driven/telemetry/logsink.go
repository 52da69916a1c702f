// Package telemetry provides a logger-backed telemetry sink.
package telemetry

import (
	"github.com/docforge/docforge/internal/core/ports/driven"
	"github.com/docforge/docforge/internal/logger"
)

// Ensure LogSink implements the interface.
var _ driven.Telemetry = (*LogSink)(nil)

// LogSink forwards telemetry events to the process logger. Events never
// block and never influence control flow.
type LogSink struct{}

// NewLogSink creates a logger-backed telemetry sink.
func NewLogSink() *LogSink {
	return &LogSink{}
}

// Info reports a routine event.
func (LogSink) Info(format string, args ...any) {
	logger.Info(format, args...)
}

// Warn reports a recoverable anomaly.
func (LogSink) Warn(format string, args ...any) {
	logger.Warn(format, args...)
}

// Error reports a failure.
func (LogSink) Error(format string, args ...any) {
	logger.Error(format, args...)
}
