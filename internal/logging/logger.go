// Package logging wraps zerolog with the leveled helpers the CLI uses.
// Console output is human-readable (colored when enabled); the optional
// file sink receives one JSON object per line.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/backmassage/framegrab/internal/config"
)

// TimeFormat is the console timestamp layout.
const TimeFormat = "2006-01-02 15:04:05"

// Logger provides leveled logging with an optional JSON file sink.
// The zero value is not usable; construct with [NewLogger], [New] or [Nop].
type Logger struct {
	zl    zerolog.Logger
	color bool

	mu   *sync.Mutex
	file *os.File
}

// NewLogger resolves console colors from cfg, builds the console writer
// (stdout, errors to stderr), and optionally opens cfg.LogFile in append
// mode. Call Close when done if LogFile was set.
func NewLogger(cfg *config.Config) (*Logger, error) {
	color := ColorEnabled(cfg.ColorMode, os.Stdout)

	var console io.Writer = splitWriter{
		out: consoleWriter(os.Stdout, color),
		err: consoleWriter(os.Stderr, color),
	}

	var file *os.File
	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		file = f
		console = zerolog.MultiLevelWriter(console, f)
	}

	l := New(console, cfg.Verbose)
	l.file, l.color = file, color
	return l, nil
}

// New returns a Logger writing to w. Debug output is enabled when verbose.
func New(w io.Writer, verbose bool) *Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zl := zerolog.New(w).Level(level).With().Timestamp().Logger()
	return &Logger{zl: zl, mu: &sync.Mutex{}}
}

// Nop returns a Logger that discards everything.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop(), mu: &sync.Mutex{}}
}

func consoleWriter(out io.Writer, color bool) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    !color,
		TimeFormat: TimeFormat,
	}
}

// splitWriter routes error-and-above events to err and the rest to out.
type splitWriter struct {
	out io.Writer
	err io.Writer
}

func (s splitWriter) Write(p []byte) (int, error) { return s.out.Write(p) }

func (s splitWriter) WriteLevel(l zerolog.Level, p []byte) (int, error) {
	if l >= zerolog.ErrorLevel && l < zerolog.NoLevel {
		return s.err.Write(p)
	}
	return s.out.Write(p)
}

// With returns a child logger that adds key=value to every event.
// The child shares the parent's file sink.
func (l *Logger) With(key string, value any) *Logger {
	return &Logger{
		zl:    l.zl.With().Interface(key, value).Logger(),
		color: l.color,
		mu:    l.mu,
		file:  l.file,
	}
}

// Color reports whether console output is colored.
func (l *Logger) Color() bool { return l.color }

// Zerolog exposes the underlying logger for structured call sites.
func (l *Logger) Zerolog() *zerolog.Logger { return &l.zl }

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

// Info logs at INFO level.
func (l *Logger) Info(format string, args ...any) {
	l.zl.Info().Msg(fmt.Sprintf(format, args...))
}

// Success logs at INFO level with ok=true.
func (l *Logger) Success(format string, args ...any) {
	l.zl.Info().Bool("ok", true).Msg(fmt.Sprintf(format, args...))
}

// Warn logs at WARN level.
func (l *Logger) Warn(format string, args ...any) {
	l.zl.Warn().Msg(fmt.Sprintf(format, args...))
}

// Error logs at ERROR level; on the console it goes to stderr.
func (l *Logger) Error(format string, args ...any) {
	l.zl.Error().Msg(fmt.Sprintf(format, args...))
}

// Debug logs at DEBUG level. It is a no-op unless the logger is verbose.
func (l *Logger) Debug(format string, args ...any) {
	if e := l.zl.Debug(); e.Enabled() {
		e.Msg(fmt.Sprintf(format, args...))
	}
}
