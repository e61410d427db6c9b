package handler

import (
	"net/http"
	"time"

	"github.com/justishika/DevSecOps-SweetSpot/internal/config"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// 死活監視用
type HealthHandler struct {
	db        *gorm.DB
	env       string
	startedAt time.Time
}

// DI
func NewHealthHandler(db *gorm.DB, cfg config.Config) *HealthHandler {
	return &HealthHandler{db: db, env: cfg.GoEnv, startedAt: time.Now()}
}

func (h *HealthHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/health", h.health)
}

type HealthResponse struct {
	Status      string `json:"status"`
	Environment string `json:"environment"`
	Uptime      string `json:"uptime"`
}

func (h *HealthHandler) health(c echo.Context) error {
	res := HealthResponse{
		Status:      "ok",
		Environment: h.env,
		Uptime:      time.Since(h.startedAt).Round(time.Second).String(),
	}

	sqlDB, err := h.db.DB()
	if err != nil {
		res.Status = "ng"
		return c.JSON(http.StatusServiceUnavailable, res)
	}
	if err := sqlDB.PingContext(c.Request().Context()); err != nil {
		res.Status = "ng"
		return c.JSON(http.StatusServiceUnavailable, res)
	}

	return c.JSON(http.StatusOK, res)
}
