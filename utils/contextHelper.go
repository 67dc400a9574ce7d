package utils

import (
	"context"

	"github.com/merchantdata/estate_reporting_backend/appctx"
)

var (
	ContextKeyEstateId       = appctx.ContextKeyEstateId
	ContextKeyCorrelationId  = appctx.ContextKeyCorrelationId
	ContextKeyStreamPosition = appctx.ContextKeyStreamPosition
)

func GetEstateIdFromContext(ctx context.Context) (string, bool) {
	return appctx.GetString(ctx, ContextKeyEstateId)
}

func GetCorrelationIdFromContext(ctx context.Context) (string, bool) {
	return appctx.GetString(ctx, ContextKeyCorrelationId)
}

func GetStreamPositionFromContext(ctx context.Context) (int64, bool) {
	return appctx.GetInt64(ctx, ContextKeyStreamPosition)
}

func SetEstateIdInContext(ctx context.Context, estateId string) context.Context {
	return appctx.Set(ctx, ContextKeyEstateId, estateId)
}

func SetCorrelationIdInContext(ctx context.Context, correlationId string) context.Context {
	return appctx.Set(ctx, ContextKeyCorrelationId, correlationId)
}

func SetStreamPositionInContext(ctx context.Context, position int64) context.Context {
	return appctx.Set(ctx, ContextKeyStreamPosition, position)
}
