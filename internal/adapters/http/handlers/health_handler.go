package handlers

import (
	"tricount-api/internal/adapters/persistence/models"
	"tricount-api/internal/config"
	"tricount-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// HealthHandler handles health check and system endpoints
type HealthHandler struct {
	db *gorm.DB
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Root handles root endpoint
// @Summary Root endpoint
// @Description Returns API status
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "running",
		"message": "🚀 Tricount API v1.0 is running",
		"mode":    config.AppConfig.AppMode,
		"docs":    "/swagger/index.html",
	})
}

// HealthCheck handles health check
// @Summary Health check
// @Description Check API and database health
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	dbStatus := "healthy"
	if err := config.HealthCheck(); err != nil {
		dbStatus = "unhealthy"
	}

	return c.JSON(fiber.Map{
		"status": "ok",
		"checks": fiber.Map{
			"api":      "healthy",
			"database": dbStatus,
		},
	})
}

// Ping handles connectivity probe
// @Summary Ping
// @Description Liveness probe, returns pong
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /rpc/ping [get]
func (h *HealthHandler) Ping(c *fiber.Ctx) error {
	return response.Success(c, "pong", nil)
}

// ResetDatabase drops every table, migrates and reseeds the demo data.
// Only available in dev mode.
// @Summary Reset database
// @Description Drop, migrate and reseed the database (dev only)
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /rpc/reset_database [post]
func (h *HealthHandler) ResetDatabase(c *fiber.Ctx) error {
	if config.AppConfig.IsProd() {
		return response.Forbidden(c, "Database reset is disabled in production")
	}

	if err := models.DropAll(h.db); err != nil {
		return response.InternalServerError(c, "Failed to drop tables")
	}
	if err := models.AutoMigrate(h.db); err != nil {
		return response.InternalServerError(c, "Failed to migrate tables")
	}
	if err := config.Seed(h.db); err != nil {
		return response.InternalServerError(c, "Failed to seed data")
	}

	return response.Success(c, "Database reset successfully", nil)
}
