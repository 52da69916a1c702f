package driven

// Telemetry receives fire-and-forget notifications about parse, routing,
// search, and job transitions. Implementations must never block or
// influence control flow.
type Telemetry interface {
	// Info reports a routine event.
	Info(format string, args ...any)

	// Warn reports a recoverable anomaly.
	Warn(format string, args ...any)

	// Error reports a failure.
	Error(format string, args ...any)
}
