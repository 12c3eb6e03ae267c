package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// idParam parses a numeric path parameter, replying 400 on failure.
func idParam(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " parameter"})
		return 0, false
	}
	return uint(value), true
}

// includeDeletedQuery reads the optional ?include_deleted= flag.
func includeDeletedQuery(c *gin.Context) bool {
	include, err := strconv.ParseBool(c.DefaultQuery("include_deleted", "false"))
	if err != nil {
		return false
	}
	return include
}
