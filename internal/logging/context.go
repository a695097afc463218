package logging

import (
	"context"
	"log/slog"

	"github.com/dweagle/extras/internal/services"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID is the standardized structured logging key for reconciliation run identifiers.
	FieldRunID = "run_id"
	// FieldMediaType is the standardized structured logging key for movie/series/collection.
	FieldMediaType = "media_type"
	// FieldItemIndex is the standardized structured logging key for the 1-based document position.
	FieldItemIndex = "item_index"
	// FieldInstance is the standardized structured logging key for library server names.
	FieldInstance = "instance"
	// FieldTitle is the standardized structured logging key for the title being resolved.
	FieldTitle = "title"
	// FieldEventType classifies warnings and errors for filtering.
	FieldEventType = "event_type"
	// FieldErrorHint carries the suggested next step for a warning or error.
	FieldErrorHint = "error_hint"
	// FieldImpact is the standardized key for user-facing consequence of a warning.
	FieldImpact = "impact"
	// FieldDecisionType names the decision recorded by DecisionAttrs.
	FieldDecisionType = "decision_type"
	// FieldTMDBID is the key for TMDB identifiers.
	FieldTMDBID = "tmdb_id"
	// FieldComposite is the key for a candidate's composite score.
	FieldComposite = "composite"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 4)
	if id, ok := services.RunIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldRunID, id))
	}
	if mt, ok := services.MediaTypeFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldMediaType, mt))
	}
	if idx, ok := services.ItemIndexFromContext(ctx); ok {
		fields = append(fields, slog.Int(FieldItemIndex, idx))
	}
	if name, ok := services.InstanceFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldInstance, name))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(Args(fields...)...)
}
