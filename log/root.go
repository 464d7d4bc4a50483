// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"
)

var root atomic.Value

func init() {
	root.Store(&logger{slog.New(DiscardHandler())})
}

// SetDefault sets the default global logger.
func SetDefault(l Logger) {
	root.Store(l)
	if lg, ok := l.(*logger); ok {
		slog.SetDefault(lg.inner)
	}
}

// Root returns the root logger.
func Root() Logger {
	return root.Load().(Logger)
}

// WithContext returns a logger carrying ctx that writes through whatever
// root logger is current at the time of each call. Package-level loggers
// declared before SetDefault therefore still reach the configured handler.
func WithContext(ctx ...any) Logger {
	return &lazyLogger{ctx: ctx}
}

type lazyLogger struct {
	ctx []any
}

func (l *lazyLogger) get() Logger {
	return Root().With(l.ctx...)
}

func (l *lazyLogger) With(ctx ...any) Logger {
	return &lazyLogger{ctx: append(append([]any(nil), l.ctx...), ctx...)}
}

func (l *lazyLogger) New(ctx ...any) Logger {
	return l.With(ctx...)
}

func (l *lazyLogger) Log(level slog.Level, msg string, ctx ...any) {
	l.get().Write(level, msg, ctx...)
}

func (l *lazyLogger) Trace(msg string, ctx ...any) {
	l.get().Write(LevelTrace, msg, ctx...)
}

func (l *lazyLogger) Debug(msg string, ctx ...any) {
	l.get().Write(slog.LevelDebug, msg, ctx...)
}

func (l *lazyLogger) Info(msg string, ctx ...any) {
	l.get().Write(slog.LevelInfo, msg, ctx...)
}

func (l *lazyLogger) Warn(msg string, ctx ...any) {
	l.get().Write(slog.LevelWarn, msg, ctx...)
}

func (l *lazyLogger) Error(msg string, ctx ...any) {
	l.get().Write(slog.LevelError, msg, ctx...)
}

func (l *lazyLogger) Crit(msg string, ctx ...any) {
	l.get().Write(LevelCrit, msg, ctx...)
	os.Exit(1)
}

func (l *lazyLogger) Write(level slog.Level, msg string, attrs ...any) {
	l.get().Write(level, msg, attrs...)
}

func (l *lazyLogger) Enabled(ctx context.Context, level slog.Level) bool {
	return Root().Enabled(ctx, level)
}

func (l *lazyLogger) Handler() slog.Handler {
	return l.get().Handler()
}

// Trace is a convenient alias for Root().Trace
func Trace(msg string, ctx ...any) {
	Root().Write(LevelTrace, msg, ctx...)
}

// Debug is a convenient alias for Root().Debug
func Debug(msg string, ctx ...any) {
	Root().Write(slog.LevelDebug, msg, ctx...)
}

// Info is a convenient alias for Root().Info
func Info(msg string, ctx ...any) {
	Root().Write(slog.LevelInfo, msg, ctx...)
}

// Warn is a convenient alias for Root().Warn
func Warn(msg string, ctx ...any) {
	Root().Write(slog.LevelWarn, msg, ctx...)
}

// Error is a convenient alias for Root().Error
func Error(msg string, ctx ...any) {
	Root().Write(slog.LevelError, msg, ctx...)
}

// Crit is a convenient alias for Root().Crit
func Crit(msg string, ctx ...any) {
	Root().Write(LevelCrit, msg, ctx...)
	os.Exit(1)
}

// New returns a new logger with the given context.
func New(ctx ...any) Logger {
	return Root().With(ctx...)
}
