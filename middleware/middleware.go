// Package middleware holds framework-agnostic helpers shared by the HTTP
// adapters under middleware/gin and middleware/echo.
package middleware

import (
	"context"

	dynfield "github.com/asaCurry/dynfield"
)

// ctxKeyRecord is a typed context key for storing the parsed record.
type ctxKeyRecord struct{}

// ContextWithRecord attaches a validated, coerced record submission to the
// context.
func ContextWithRecord(ctx context.Context, rec map[string]any) context.Context {
	return context.WithValue(ctx, ctxKeyRecord{}, rec)
}

// RecordFromContext retrieves the record stored by ContextWithRecord.
func RecordFromContext(ctx context.Context) (map[string]any, bool) {
	v, ok := ctx.Value(ctxKeyRecord{}).(map[string]any)
	return v, ok
}

// ErrorPayload shapes Issues for JSON responses.
func ErrorPayload(issues dynfield.Issues) map[string]any {
	return map[string]any{"issues": issues}
}
