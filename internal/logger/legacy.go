package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// LegacyLogger prints "[LEVEL] msg key=value" lines with fmt.
// Kept as a fallback for consoles that choke on slog output.
type LegacyLogger struct {
	level  Level
	out    io.Writer
	errOut io.Writer
	prefix []any
	mu     *sync.RWMutex
}

// NewLegacyLogger creates a legacy logger writing to stdout and stderr
func NewLegacyLogger() *LegacyLogger {
	return &LegacyLogger{
		level:  LevelInfo,
		out:    os.Stdout,
		errOut: os.Stderr,
		mu:     &sync.RWMutex{},
	}
}

// SetLevel sets the minimum level written
func (l *LegacyLogger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *LegacyLogger) shouldLog(level Level) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return level >= l.level
}

func (l *LegacyLogger) write(w io.Writer, level Level, msg string, args []any) {
	if !l.shouldLog(level) {
		return
	}
	all := append(append([]any{}, l.prefix...), args...)

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", strings.ToUpper(level.String()), msg)
	for i := 0; i+1 < len(all); i += 2 {
		fmt.Fprintf(&b, " %v=%v", all[i], all[i+1])
	}
	fmt.Fprintln(w, b.String())
}

func (l *LegacyLogger) Debug(msg string, args ...any) { l.write(l.out, LevelDebug, msg, args) }
func (l *LegacyLogger) Info(msg string, args ...any)  { l.write(l.out, LevelInfo, msg, args) }
func (l *LegacyLogger) Warn(msg string, args ...any)  { l.write(l.errOut, LevelWarn, msg, args) }
func (l *LegacyLogger) Error(msg string, args ...any) { l.write(l.errOut, LevelError, msg, args) }

// With returns a logger that prefixes args to every line
func (l *LegacyLogger) With(args ...any) Logger {
	child := *l
	child.prefix = append(append([]any{}, l.prefix...), args...)
	return &child
}

func (l *LegacyLogger) Sync() error     { return nil }
func (l *LegacyLogger) Shutdown() error { return nil }
