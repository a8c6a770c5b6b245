package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary Health check
// @Description Health check endpoint
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}
