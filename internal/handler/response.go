package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "timeo/internal/errors"
)

// writeError renders {"error": {"code", "message", "details"}}. A nil error
// is treated as an internal failure.
func writeError(c *gin.Context, apiErr *apperrors.APIError) {
	if apiErr == nil {
		apiErr = apperrors.Internal("")
	}
	c.JSON(apiErr.Status, gin.H{"error": apiErr})
}

// bindJSON decodes the request body into req and writes a 400 when it cannot.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		writeError(c, apperrors.BadRequest("invalid_json", "invalid request body"))
		return false
	}
	return true
}

// queryInt reads a positive integer query parameter, returning 0 when it is
// absent and false when it is malformed.
func queryInt(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed < 0 {
		writeError(c, apperrors.BadRequest("invalid_"+name, name+" must be a non-negative integer"))
		return 0, false
	}
	return parsed, true
}
