// Package logging defines the structured-logging interface used across the
// client. Implementations wrap slog (default) or logrus.
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "request sent", "method", method, "path", path)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}

// Options selects a logger backend and its output format.
type Options struct {
	Backend string // "slog" or "logrus"
	Level   string // "debug", "info", "warn", "error"
	Format  string // "text" or "json"
}

// New builds a Logger writing to w according to opts. Unknown values fall
// back to slog, info level and text output.
func New(w io.Writer, opts Options) Logger {
	if strings.EqualFold(opts.Backend, "logrus") {
		return NewLogrusLogger(newLogrus(w, opts))
	}
	return NewSlogLogger(newSlog(w, opts))
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// Redacted replaces the value of attributes that carry credentials.
const Redacted = "[REDACTED]"

var secretKeys = map[string]struct{}{
	"access":        {},
	"refresh":       {},
	"token":         {},
	"password":      {},
	"authorization": {},
}

func isSecret(key string) bool {
	_, ok := secretKeys[strings.ToLower(key)]
	return ok
}

// redact returns args with credential values replaced. args is not modified.
func redact(args []any) []any {
	var out []any
	for i := 0; i < len(args); i++ {
		if a, ok := args[i].(slog.Attr); ok {
			if isSecret(a.Key) {
				out = copyOnce(out, args)
				out[i] = slog.String(a.Key, Redacted)
			}
			continue
		}
		key, ok := args[i].(string)
		if !ok || i+1 >= len(args) {
			continue
		}
		if isSecret(key) {
			out = copyOnce(out, args)
			out[i+1] = Redacted
		}
		i++
	}
	if out == nil {
		return args
	}
	return out
}

func copyOnce(out, args []any) []any {
	if out != nil {
		return out
	}
	return append([]any(nil), args...)
}
