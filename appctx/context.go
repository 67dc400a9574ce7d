package appctx

import "context"

// ContextKey is the shared type for all context keys in this codebase.
// Keeping it in a tiny package avoids import cycles (config <-> utils).
type ContextKey string

func (c ContextKey) String() string { return string(c) }

var (
	ContextKeyEstateId      = ContextKey("EstateId")
	ContextKeyCorrelationId = ContextKey("CorrelationId")

	// ContextKeyStreamPosition carries the upstream subscription position of the
	// event currently being applied. Informational only; per-stream ordering is
	// enforced by the intake layer, not via this value.
	ContextKeyStreamPosition = ContextKey("StreamPosition")
)

func GetString(ctx context.Context, key ContextKey) (string, bool) {
	v, ok := ctx.Value(key).(string)
	return v, ok
}

func GetInt64(ctx context.Context, key ContextKey) (int64, bool) {
	v, ok := ctx.Value(key).(int64)
	return v, ok
}

func Set(ctx context.Context, key ContextKey, value any) context.Context {
	return context.WithValue(ctx, key, value)
}
