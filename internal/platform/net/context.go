// Package net provides utilities for working with request contexts
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// ctxKey is an unexported key type for context values
type ctxKey string

const keyRefKind ctxKey = "ref_kind"

// WithRequest annotates context with common request scoped ids
// refKind names the reference kind being resolved ("video", "search", "page")
func WithRequest(ctx context.Context, reqID, refKind string) context.Context {
	if reqID != "" {
		// set chi RequestID so chimw.GetReqID can retrieve it
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	if refKind != "" {
		ctx = context.WithValue(ctx, keyRefKind, refKind)
	}
	return ctx
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string {
	if v := chimw.GetReqID(ctx); v != "" {
		return v
	}
	return ""
}

// RefKind returns the reference kind on the context if present
func RefKind(ctx context.Context) string {
	if v, ok := ctx.Value(keyRefKind).(string); ok {
		return v
	}
	return ""
}
