// Package logger provides structured logging functionality for the
// application using Go's standard library log/slog package, plus context
// helpers for carrying a request-scoped logger through call chains.
package logger
