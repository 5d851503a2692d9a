// Package logger provides the structured logging interface used across
// fanboxdl.
//
// It wraps zerolog and writes human-readable console output to the
// diagnostic stream (stderr), optionally mirrored to a log file. Colour is
// only used when stderr is a terminal.
//
//	logger.Initialize(&cfg.Logging)
//	logger.WithFields(map[string]interface{}{"creator": "someone"}).Debug("listing posts")
//
// Tests use NewTestLogger to capture messages, or NewNopLogger to drop
// them.
package logger
