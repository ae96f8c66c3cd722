package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	rdb *redis.Client
}

func NewHealthHandler(rdb *redis.Client) *HealthHandler {
	return &HealthHandler{rdb: rdb}
}

// Liveness reports that the process is alive.
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness checks the session store, the only hard dependency the gateway
// cannot serve without.
func (h *HealthHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	redisStatus := "ok"
	status := http.StatusOK
	if h.rdb == nil || h.rdb.Ping(ctx).Err() != nil {
		redisStatus = "down"
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, map[string]any{
		"status":       redisStatus,
		"dependencies": map[string]string{"redis": redisStatus},
	})
}
