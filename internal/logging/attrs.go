package logging

import (
	"log/slog"
	"time"
)

type Attr = slog.Attr

func Bool(key string, value bool) Attr { return slog.Bool(key, value) }

func Duration(key string, value time.Duration) Attr { return slog.Duration(key, value) }

func Float64(key string, value float64) Attr { return slog.Float64(key, value) }

func Int(key string, value int) Attr { return slog.Int(key, value) }

func Int64(key string, value int64) Attr { return slog.Int64(key, value) }

func String(key string, value string) Attr { return slog.String(key, value) }

// Error records err under "error". A nil error is written as "<nil>" so the
// key is never silently missing.
func Error(err error) Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Any("error", err)
}

// Title records the title being resolved.
func Title(value string) Attr { return slog.String(FieldTitle, value) }

// TMDBID records a TMDB identifier.
func TMDBID(id int64) Attr { return slog.Int64(FieldTMDBID, id) }

// ScoreAttrs breaks a candidate comparison into its components.
func ScoreAttrs(sequence, jaccard, year, composite float64) []Attr {
	return []Attr{
		slog.Float64("sequence", sequence),
		slog.Float64("jaccard", jaccard),
		slog.Float64("year_score", year),
		slog.Float64(FieldComposite, composite),
	}
}

// Args converts typed attrs into the variadic form slog.Logger methods take.
func Args(attrs ...Attr) []any {
	args := make([]any, 0, len(attrs))
	for _, attr := range attrs {
		args = append(args, attr)
	}
	return args
}

// NewComponentLogger tags logger with component. A nil logger yields a no-op
// logger.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(String(FieldComponent, component))
}

// HasAttrKey reports whether any attr in attrs uses key.
func HasAttrKey(attrs []Attr, key string) bool {
	for _, a := range attrs {
		if a.Key == key {
			return true
		}
	}
	return false
}
