package logging

import (
	"context"
	"errors"
	"log/slog"
)

// fanoutHandler sends each record to the console and the rotating log file.
// Each sink keeps its own level gate.
type fanoutHandler []slog.Handler

func newFanoutHandler(sinks ...slog.Handler) slog.Handler {
	var out fanoutHandler
	for _, sink := range sinks {
		if sink != nil {
			out = append(out, sink)
		}
	}
	switch len(out) {
	case 0:
		return NoopHandler{}
	case 1:
		return out[0]
	default:
		return out
	}
}

func (f fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, sink := range f {
		if sink.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	last := len(f) - 1
	for i, sink := range f {
		if !sink.Enabled(ctx, record.Level) {
			continue
		}
		rec := record
		if i != last {
			rec = record.Clone()
		}
		if err := sink.Handle(ctx, rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return f.each(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (f fanoutHandler) WithGroup(name string) slog.Handler {
	return f.each(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (f fanoutHandler) each(fn func(slog.Handler) slog.Handler) fanoutHandler {
	next := make(fanoutHandler, len(f))
	for i, sink := range f {
		next[i] = fn(sink)
	}
	return next
}
