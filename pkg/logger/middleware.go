package logger

import (
	"context"

	"github.com/google/uuid"
)

// NewRequestContext tags ctx with a fresh request ID and the issuing front end.
// An existing non-empty requestID is kept instead of generating one.
func NewRequestContext(ctx context.Context, frontEnd, requestID string) context.Context {
	if requestID == "" {
		requestID = uuid.New().String()
	}

	ctx = context.WithValue(ctx, RequestIDKey, requestID)
	return context.WithValue(ctx, FrontEndKey, frontEnd)
}
