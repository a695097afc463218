package services

import "context"

type contextKey string

const (
	runIDKey     contextKey = "run_id"
	mediaTypeKey contextKey = "media_type"
	itemIndexKey contextKey = "item_index"
	instanceKey  contextKey = "instance"
)

// WithRunID annotates context with the reconciliation run identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the run identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithMediaType annotates context with the media type being processed.
func WithMediaType(ctx context.Context, mediaType string) context.Context {
	if mediaType == "" {
		return ctx
	}
	return context.WithValue(ctx, mediaTypeKey, mediaType)
}

// MediaTypeFromContext returns the media type if present.
func MediaTypeFromContext(ctx context.Context) (string, bool) {
	if str, ok := ctx.Value(mediaTypeKey).(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithItemIndex annotates context with the 1-based position of the document
// item being resolved.
func WithItemIndex(ctx context.Context, index int) context.Context {
	return context.WithValue(ctx, itemIndexKey, index)
}

// ItemIndexFromContext extracts the item position if present.
func ItemIndexFromContext(ctx context.Context) (int, bool) {
	v := ctx.Value(itemIndexKey)
	if v == nil {
		return 0, false
	}
	switch val := v.(type) {
	case int:
		return val, true
	case int64:
		return int(val), true
	default:
		return 0, false
	}
}

// WithInstance annotates context with the name of the library server being
// queried.
func WithInstance(ctx context.Context, name string) context.Context {
	if name == "" {
		return ctx
	}
	return context.WithValue(ctx, instanceKey, name)
}

// InstanceFromContext returns the library server name if present.
func InstanceFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(instanceKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
