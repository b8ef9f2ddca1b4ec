package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

type HealthResponse struct {
	Status string `json:"status"`
}

func (h *HealthHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.check)
}

func (h *HealthHandler) check(c echo.Context) error {
	return respondJSON(c, http.StatusOK, HealthResponse{Status: "ok"}, "GET", "/health")
}
