package logging

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"path/filepath"
	"strings"
	"time"
)

func newJSONHandler(w io.Writer, lvl *slog.LevelVar, addSource bool) slog.Handler {
	opts := slog.HandlerOptions{
		Level:     lvl,
		AddSource: addSource,
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			switch attr.Key {
			case slog.TimeKey:
				attr.Key = "ts"
				if attr.Value.Kind() == slog.KindTime {
					attr.Value = slog.StringValue(attr.Value.Time().UTC().Format(time.RFC3339))
				}
				return attr
			case slog.LevelKey:
				attr.Value = slog.StringValue(strings.ToLower(attr.Value.String()))
				return attr
			case slog.SourceKey:
				if src, ok := attr.Value.Any().(*slog.Source); ok && src != nil {
					attr.Value = slog.StringValue(fmt.Sprintf("%s:%d", filepath.Base(src.File), src.Line))
				}
				return attr
			}
			switch attr.Value.Kind() {
			case slog.KindDuration:
				attr.Value = slog.Int64Value(attr.Value.Duration().Milliseconds())
				attr.Key += "_ms"
			case slog.KindFloat64:
				attr.Value = slog.Float64Value(roundScore(attr.Value.Float64()))
			}
			return attr
		},
	}

	return slog.NewJSONHandler(w, &opts)
}

// roundScore keeps similarity scores readable without losing ranking detail.
func roundScore(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return math.Round(v*10000) / 10000
}
