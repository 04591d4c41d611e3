package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

// Output formats accepted by WithFormat.
const (
	FormatJSON   = "json"
	FormatText   = "text"
	FormatPretty = "pretty"
)

type options struct {
	level  slog.Level
	format string
	output io.Writer
	attrs  []slog.Attr
}

// Option configures a logger created by New.
type Option func(*options)

// WithLevel sets the minimum level. Unknown names fall back to info.
func WithLevel(level string) Option {
	return func(o *options) {
		o.level = ParseLevel(level)
	}
}

// WithFormat selects json, text or pretty output.
func WithFormat(format string) Option {
	return func(o *options) {
		o.format = strings.ToLower(strings.TrimSpace(format))
	}
}

// WithOutput redirects log output. Defaults to stderr.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.output = w
		}
	}
}

// WithAttr attaches static attributes to every record.
func WithAttr(attrs ...slog.Attr) Option {
	return func(o *options) {
		o.attrs = append(o.attrs, attrs...)
	}
}

// New builds a slog.Logger. The pretty format renders through charmbracelet/log
// and is meant for local development consoles.
func New(opts ...Option) *slog.Logger {
	o := &options{
		level:  slog.LevelInfo,
		format: FormatJSON,
		output: os.Stderr,
	}
	for _, opt := range opts {
		opt(o)
	}

	var h slog.Handler
	switch o.format {
	case FormatText:
		h = slog.NewTextHandler(o.output, &slog.HandlerOptions{Level: o.level})
	case FormatPretty:
		h = charmlog.NewWithOptions(o.output, charmlog.Options{
			Level:           charmlog.Level(o.level),
			ReportTimestamp: true,
		})
	default:
		h = slog.NewJSONHandler(o.output, &slog.HandlerOptions{Level: o.level})
	}

	if len(o.attrs) > 0 {
		h = h.WithAttrs(o.attrs)
	}
	return slog.New(h)
}

// Discard returns a logger that drops everything. Handy in tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps debug/info/warn/error to slog levels, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
