package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/prosync/prosync-api/internal/errors"
)

// parseIDParam reads a numeric path parameter, responding with 400 itself on
// bad input. Callers return immediately when ok is false.
func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		apierrors.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return id, true
}
