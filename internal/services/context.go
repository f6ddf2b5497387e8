package services

import "context"

type contextKey string

const (
	itemRefKey   contextKey = "item_ref"
	itemKeyKey   contextKey = "item_key"
	stageKey     contextKey = "stage"
	requestIDKey contextKey = "request_id"
)

// WithItemRef annotates context with the raw work-list reference.
func WithItemRef(ctx context.Context, ref string) context.Context {
	if ref == "" {
		return ctx
	}
	return context.WithValue(ctx, itemRefKey, ref)
}

// ItemRefFromContext extracts the work-list reference if present.
func ItemRefFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(itemRefKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithItemKey annotates context with the item's derived stable key.
func WithItemKey(ctx context.Context, key string) context.Context {
	if key == "" {
		return ctx
	}
	return context.WithValue(ctx, itemKeyKey, key)
}

// ItemKeyFromContext extracts the derived item key if present.
func ItemKeyFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(itemKeyKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithStage annotates context with the pipeline stage name.
func WithStage(ctx context.Context, stage string) context.Context {
	if stage == "" {
		return ctx
	}
	return context.WithValue(ctx, stageKey, stage)
}

// StageFromContext returns the stage name if present.
func StageFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(stageKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithRequestID annotates context with a correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(requestIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
