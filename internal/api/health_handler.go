package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health is the liveness probe.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
