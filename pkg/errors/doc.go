// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Configuration rule failures carry the failing requirement together with the
// observed and required values so callers can render a precise diagnostic:
//
//	err := errors.NewConfigurationError(
//	    errors.ErrCodeCompilerTooOld,
//	    "compiler.version",
//	    "gcc 8",
//	    "gcc >= 9",
//	)
//
// Other failures wrap their cause with a code:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeNotFound,
//	    "failed to load recipe",
//	    cause,
//	    map[string]any{"path": path},
//	)
package errors
