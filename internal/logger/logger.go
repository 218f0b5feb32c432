// Package logger writes every record to a rotating log file and a filtered,
// human-friendly subset of them to the console.
package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ttacon/chalk"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	// DefaultLogMaxSize is the default maximum size in megabytes before log rotation
	DefaultLogMaxSize = 10

	// DefaultLogMaxBackups is the default number of old log files to retain
	DefaultLogMaxBackups = 3

	// DefaultLogMaxAge is the default maximum number of days to retain old log files
	DefaultLogMaxAge = 28

	appName = "procctl"
)

// LoggerInterface defines the logging methods
type LoggerInterface interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Close()
	GetLogPath() string
}

// LoggerOptions configures the logger
type LoggerOptions struct {
	Verbose    bool
	NoColor    bool
	LogDir     string    // If empty, uses %LOCALAPPDATA%\procctl
	Console    io.Writer // If nil, uses os.Stdout
	MaxSize    int       // Max size in megabytes before rotation (default: 10)
	MaxBackups int       // Max number of old log files to keep (default: 3)
	MaxAge     int       // Max days to keep old log files (default: 28)
	Compress   bool      // Whether to compress rotated logs
}

func (o LoggerOptions) withDefaults() LoggerOptions {
	if o.MaxSize == 0 {
		o.MaxSize = DefaultLogMaxSize
	}

	if o.MaxBackups == 0 {
		o.MaxBackups = DefaultLogMaxBackups
	}

	if o.MaxAge == 0 {
		o.MaxAge = DefaultLogMaxAge
	}

	if o.Console == nil {
		o.Console = os.Stdout
	}

	return o
}

// GetLogPath returns the path where logs will be written based on options
func GetLogPath(opts LoggerOptions) string {
	dir := opts.LogDir
	if dir == "" {
		base := os.Getenv("LOCALAPPDATA")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Local")
		}

		dir = filepath.Join(base, appName)
	}

	return filepath.Join(dir, appName+".log")
}

// Logger fans every record out to the log file and the console
type Logger struct {
	slog    *slog.Logger
	rotator *lumberjack.Logger
	path    string
}

// NewLogger creates the log directory and returns a ready Logger
func NewLogger(opts LoggerOptions) (*Logger, error) {
	opts = opts.withDefaults()

	path := GetLogPath(opts)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("could not create log directory: %w", err)
	}

	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    opts.MaxSize,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAge,
		Compress:   opts.Compress,
	}

	file := slog.NewTextHandler(rotator, &slog.HandlerOptions{Level: slog.LevelDebug})
	console := &ConsoleHandler{
		writer:  opts.Console,
		verbose: opts.Verbose,
		color:   !opts.NoColor,
	}

	return &Logger{
		slog:    slog.New(teeHandler{file, console}),
		rotator: rotator,
		path:    path,
	}, nil
}

// Close closes the log file. Later writes reopen it.
func (l *Logger) Close() {
	if l.rotator != nil {
		_ = l.rotator.Close()
	}
}

// GetLogPath returns the path to the current log file
func (l *Logger) GetLogPath() string {
	return l.path
}

func (l *Logger) Debug(msg string, args ...any) { l.slog.Debug(msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.slog.Info(msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.slog.Warn(msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.slog.Error(msg, args...) }

// teeHandler hands a record to every handler that accepts its level
type teeHandler []slog.Handler

func (t teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range t {
		if h.Enabled(ctx, level) {
			return true
		}
	}

	return false
}

func (t teeHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error

	for _, h := range t {
		if h.Enabled(ctx, r.Level) {
			errs = append(errs, h.Handle(ctx, r.Clone()))
		}
	}

	return errors.Join(errs...)
}

func (t teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make(teeHandler, len(t))
	for i, h := range t {
		next[i] = h.WithAttrs(attrs)
	}

	return next
}

func (t teeHandler) WithGroup(name string) slog.Handler {
	next := make(teeHandler, len(t))
	for i, h := range t {
		next[i] = h.WithGroup(name)
	}

	return next
}

// ConsoleHandler prints one line per record: an optional level prefix, the
// message and its attributes as key=value. Debug records need verbose.
type ConsoleHandler struct {
	writer  io.Writer
	verbose bool
	color   bool

	attrs  []string
	prefix string // group prefix for attribute keys
}

var levelPrefixes = map[slog.Level]struct {
	text  string
	color chalk.Color
}{
	slog.LevelError: {"ERROR: ", chalk.Red},
	slog.LevelWarn:  {"WARNING: ", chalk.Yellow},
	slog.LevelDebug: {"[DEBUG] ", chalk.Cyan},
}

func (h *ConsoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.verbose || level > slog.LevelDebug
}

func (h *ConsoleHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder

	if p, ok := levelPrefixes[r.Level]; ok {
		if h.color {
			b.WriteString(p.color.Color(p.text))
		} else {
			b.WriteString(p.text)
		}
	}

	b.WriteString(r.Message)

	fields := h.attrs
	r.Attrs(func(a slog.Attr) bool {
		fields = append(fields, h.field(a))
		return true
	})

	for _, f := range fields {
		b.WriteByte(' ')
		b.WriteString(f)
	}

	b.WriteByte('\n')

	// Console write errors are not actionable
	_, _ = io.WriteString(h.writer, b.String())
	return nil
}

func (h *ConsoleHandler) field(a slog.Attr) string {
	v := a.Value.Resolve().String()
	if strings.ContainsAny(v, " \t") {
		v = fmt.Sprintf("%q", v)
	}

	return h.prefix + a.Key + "=" + v
}

func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append([]string(nil), h.attrs...)

	for _, a := range attrs {
		next.attrs = append(next.attrs, h.field(a))
	}

	return &next
}

func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	next := *h
	next.prefix = h.prefix + name + "."
	return &next
}

// NoOpLogger discards everything. Used in tests and before setup.
type NoOpLogger struct{}

func (n *NoOpLogger) Debug(msg string, args ...any) {}
func (n *NoOpLogger) Info(msg string, args ...any)  {}
func (n *NoOpLogger) Warn(msg string, args ...any)  {}
func (n *NoOpLogger) Error(msg string, args ...any) {}
func (n *NoOpLogger) Close()                        {}
func (n *NoOpLogger) GetLogPath() string            { return "" }

func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}
