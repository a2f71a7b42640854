// Package logging provides structured logging for vibetagger.
//
// This package wraps a package-level zap logger with convenience functions for
// the logging patterns used throughout the application: HTTP and WebSocket
// traffic in the browser front-end, calls to the remote vibe service, and
// state machine transitions.
//
// # Log Levels
//
//   - Debug: WebSocket frames, state transitions
//   - Info: HTTP requests, completed analyses, server lifecycle
//   - Warn: Failed analyses, dropped connections
//   - Error: Startup failures, unexpected errors
//
// # Silent By Default
//
// The terminal UI owns the screen, so logging is disabled unless a level is
// requested via --log-level, the config file, or VIBETAGGER_LOG_LEVEL:
//
//	if err := logging.Initialize(level); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
// Output goes to stderr in zap's console format.
//
// # Structured Logging
//
//	logging.Info("Session created",
//	    zap.String("session", id),
//	    zap.String("remote_addr", r.RemoteAddr),
//	)
//
// All functions are safe for concurrent use.
package logging
