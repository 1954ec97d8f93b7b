package handlers

import (
	"net/http"

	"github.com/RobbieBendick/curb-companion-backend/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles GET /health with the last background check.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	if !status.Healthy() {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}
