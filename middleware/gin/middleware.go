package ginmw

import (
	"net/http"

	"github.com/gin-gonic/gin"

	dynfield "github.com/asaCurry/dynfield"
	"github.com/asaCurry/dynfield/middleware"
	"github.com/asaCurry/dynfield/schema"
)

// ValidateRecord parses the incoming JSON submission against the record
// schema s, stores the coerced record in the request context, and on
// validation failure responds 400 with the full issues payload so the client
// can render per-field errors.
func ValidateRecord(s schema.Record) gin.HandlerFunc {
	return func(c *gin.Context) {
		var values map[string]any
		if err := c.ShouldBindJSON(&values); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			c.Abort()
			return
		}
		rec, err := s.Parse(c.Request.Context(), values)
		if err != nil {
			if iss, ok := dynfield.AsIssues(err); ok {
				c.JSON(http.StatusBadRequest, middleware.ErrorPayload(iss))
				c.Abort()
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			c.Abort()
			return
		}
		c.Request = c.Request.WithContext(middleware.ContextWithRecord(c.Request.Context(), rec))
		c.Next()
	}
}

// GetRecord fetches the validated record from gin.Context.
func GetRecord(c *gin.Context) (map[string]any, bool) {
	return middleware.RecordFromContext(c.Request.Context())
}
