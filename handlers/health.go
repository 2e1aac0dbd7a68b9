package handlers

import (
	"net/http"

	"doitto/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the latest health snapshot. A snapshot that has not
// been taken yet is reported as healthy.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	if status.CheckedAt.IsZero() {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Do it To"})
		return
	}
	code := http.StatusOK
	label := "ok"
	if !status.Healthy {
		code = http.StatusServiceUnavailable
		label = "degraded"
	}
	c.JSON(code, gin.H{"status": label, "services": status.Services, "checkedAt": status.CheckedAt})
}
