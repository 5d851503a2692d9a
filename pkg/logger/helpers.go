package logger

import (
	"context"

	"github.com/rs/zerolog"
)

// LogRequest logs a completed API or media request at debug level. A failed
// status reaches the user through the returned error, not the log.
func LogRequest(log Logger, method, url string, statusCode int, duration float64) {
	fields := map[string]interface{}{
		"method":      method,
		"url":         url,
		"status_code": statusCode,
		"duration_ms": duration,
	}

	switch {
	case statusCode >= 500:
		log.DebugWithFields("HTTP request server error", fields)
	case statusCode >= 400:
		log.DebugWithFields("HTTP request client error", fields)
	default:
		log.DebugWithFields("HTTP request completed", fields)
	}
}

// LogDownload logs the outcome of one media download at debug level. The
// console reports failures.
func LogDownload(log Logger, url, dest string, written bool, err error) {
	l := log.WithFields(map[string]interface{}{
		"url":     url,
		"dest":    dest,
		"written": written,
	})

	switch {
	case err != nil:
		l.WithError(err).Debug("Download failed")
	case written:
		l.Debug("Download completed")
	default:
		l.Debug("Download skipped, destination exists")
	}
}

// NewNopLogger creates a no-operation logger for testing
func NewNopLogger() Logger {
	return &nopLogger{}
}

type nopLogger struct{}

func (n *nopLogger) Debug(msg string)                                          {}
func (n *nopLogger) Info(msg string)                                           {}
func (n *nopLogger) Warn(msg string)                                           {}
func (n *nopLogger) Error(msg string)                                          {}
func (n *nopLogger) WithField(key string, value interface{}) Logger            { return n }
func (n *nopLogger) WithFields(fields map[string]interface{}) Logger           { return n }
func (n *nopLogger) WithError(err error) Logger                                { return n }
func (n *nopLogger) WithContext(ctx context.Context) Logger                    { return n }
func (n *nopLogger) DebugWithFields(msg string, fields map[string]interface{}) {}
func (n *nopLogger) InfoWithFields(msg string, fields map[string]interface{})  {}
func (n *nopLogger) WarnWithFields(msg string, fields map[string]interface{})  {}
func (n *nopLogger) ErrorWithFields(msg string, fields map[string]interface{}) {}
func (n *nopLogger) GetZerolog() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}
