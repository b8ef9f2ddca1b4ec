package handler

import (
	"fmt"
	"net/http"
	"strings"

	"escrow/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

// NotificationHandler exposes the manual "poke the seller" endpoint. The
// webhook is the same one delivery confirmation fires automatically.
type NotificationHandler struct {
	notifier usecase.Notifier
}

func NewNotificationHandler(notifier usecase.Notifier) *NotificationHandler {
	return &NotificationHandler{notifier: notifier}
}

type NotifyRequest struct {
	OrderID string `json:"order_id"`
	Message string `json:"message"`
}

type NotifyResponse struct {
	Message string `json:"message"`
}

func (h *NotificationHandler) RegisterRoutes(e *echo.Echo, guard echo.MiddlewareFunc) {
	g := e.Group("/notifications")
	g.Use(guard)

	g.POST("/notify", h.notify)
}

func (h *NotificationHandler) notify(c echo.Context) error {
	timer := prometheus.NewTimer(httpLatency.WithLabelValues("POST", "/notifications/notify"))
	defer timer.ObserveDuration()

	if h.notifier == nil {
		return respondJSON(c, http.StatusInternalServerError, ErrorResponse{Error: "Notification service not configured"}, "POST", "/notifications/notify")
	}

	var req NotifyRequest
	if err := c.Bind(&req); err != nil {
		return respondJSON(c, http.StatusUnprocessableEntity, ErrorResponse{Error: "invalid body"}, "POST", "/notifications/notify")
	}
	if strings.TrimSpace(req.OrderID) == "" || strings.TrimSpace(req.Message) == "" {
		return respondJSON(c, http.StatusUnprocessableEntity, ErrorResponse{Error: "order_id and message are required"}, "POST", "/notifications/notify")
	}

	if err := h.notifier.Notify(c.Request().Context(), req.OrderID, req.Message); err != nil {
		return respondJSON(c, http.StatusInternalServerError, ErrorResponse{Error: "Failed to send notification"}, "POST", "/notifications/notify")
	}

	return respondJSON(c, http.StatusOK, NotifyResponse{
		Message: fmt.Sprintf("Notification sent to seller for order %s", req.OrderID),
	}, "POST", "/notifications/notify")
}
