package echomw

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dynfield "github.com/asaCurry/dynfield"
	"github.com/asaCurry/dynfield/middleware"
	"github.com/asaCurry/dynfield/schema"
)

// ValidateRecord parses the request JSON against the record schema s, stores
// the coerced record in the request context on success, or returns 400 with
// the full issues payload when validation fails.
func ValidateRecord(s schema.Record) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var values map[string]any
			if err := c.Bind(&values); err != nil {
				return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
			}
			rec, err := s.Parse(c.Request().Context(), values)
			if err != nil {
				if iss, ok := dynfield.AsIssues(err); ok {
					return c.JSON(http.StatusBadRequest, middleware.ErrorPayload(iss))
				}
				return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
			}
			ctx := middleware.ContextWithRecord(c.Request().Context(), rec)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// GetRecord fetches the validated record from echo.Context.
func GetRecord(c echo.Context) (map[string]any, bool) {
	return middleware.RecordFromContext(c.Request().Context())
}
