// Package logger builds slog loggers and provides attribute helpers for the
// notification pipeline.
//
// Usage:
//
//	log := logger.New(
//		logger.WithFormat(logger.FormatJSON),
//		logger.WithLevel("info"),
//		logger.WithAttr(logger.Component("notifier")),
//	)
//
//	log.Warn("send failed",
//		logger.Recipient(msg.To),
//		logger.Role(string(msg.Role)),
//		logger.Error(err),
//	)
//
// Attribute helpers return an empty slog.Attr for empty input, so optional
// values can be passed without checks.
package logger
