// Package observability provides the logging, metrics and tracing seams
// used by the plate executor and CLI. All implementations are optional;
// the nop logger and nil recorders are safe defaults.
package observability

// Logger is the minimal leveled key-value logging interface accepted across
// the module. Keyvals alternate keys and values, slog style.
type Logger interface {
	Debug(msg string, keyvals ...any)
	Info(msg string, keyvals ...any)
	Warn(msg string, keyvals ...any)
	Error(msg string, keyvals ...any)
}

// NopLogger discards every message. It is the default where no logger is
// configured.
type NopLogger struct{}

// Debug implements Logger.
func (NopLogger) Debug(string, ...any) {}

// Info implements Logger.
func (NopLogger) Info(string, ...any) {}

// Warn implements Logger.
func (NopLogger) Warn(string, ...any) {}

// Error implements Logger.
func (NopLogger) Error(string, ...any) {}
