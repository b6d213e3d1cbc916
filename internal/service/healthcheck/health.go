package healthcheck

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"calldeskrest/internal/config"
	"calldeskrest/internal/models/dto"

	"github.com/gin-gonic/gin"
)

// Health reports liveness together with a ping of every connected backend
// @Summary      Healthcheck
// @Tags         health
// @Produce      json
// @Success      200  {object}  dto.HealthResponse
// @Failure      503  {object}  dto.HealthResponse
// @Router       /healthcheck/ [get]
func Health(cfg *config.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		checks := cfg.Checks(ctx)
		status, code := "OK", http.StatusOK
		for name, result := range checks {
			if strings.HasPrefix(result, "unhealthy") {
				status, code = "DEGRADED", http.StatusServiceUnavailable
				cfg.Logger.Warn("Healthcheck failed", map[string]interface{}{"backend": name, "result": result})
			}
		}
		checks["sessions"] = strconv.Itoa(cfg.Sessions.Len())

		uptime := time.Since(cfg.StartedAt).Round(time.Second).String()
		c.JSON(code, dto.NewHealthResponse(c, status, cfg.Settings.Service.Name, cfg.Settings.Service.Version, uptime, checks))
	}
}
