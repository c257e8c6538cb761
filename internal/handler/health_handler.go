package handler

import (
	"quizmaker/internal/domain"
	"quizmaker/internal/dto"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
)

// HealthHandler reports liveness of the service and its dependencies.
type HealthHandler struct {
	db    *sqlx.DB
	cache domain.Cache
}

// NewHealthHandler creates a new HealthHandler. cache may be nil when the
// service runs without Redis.
func NewHealthHandler(db *sqlx.DB, cache domain.Cache) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// Health godoc
// @Summary Health check
// @Description Reports service, database and cache status
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	resp := dto.HealthResponse{
		Status:   "ok",
		Database: "ok",
		Cache:    "disabled",
	}
	status := fiber.StatusOK

	if err := h.db.PingContext(c.UserContext()); err != nil {
		resp.Status = "degraded"
		resp.Database = "unreachable"
		status = fiber.StatusServiceUnavailable
	}

	if h.cache != nil {
		resp.Cache = "ok"
		if err := h.cache.Ping(c.UserContext()); err != nil {
			resp.Cache = "unreachable"
		}
	}

	return c.Status(status).JSON(resp)
}
