package handler

import (
	"net/http"
	"strings"

	"escrow/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

type DeliveryHandler struct {
	uc *usecase.SettlementUsecase
}

func NewDeliveryHandler(uc *usecase.SettlementUsecase) *DeliveryHandler {
	return &DeliveryHandler{uc: uc}
}

type DeliveryConfirmRequest struct {
	OrderID           string `json:"order_id"`
	DeliveryReference string `json:"delivery_reference"`
}

type DeliveryConfirmResponse struct {
	Message string `json:"message"`
	OrderID string `json:"order_id"`
}

func (h *DeliveryHandler) RegisterRoutes(e *echo.Echo, guard echo.MiddlewareFunc) {
	g := e.Group("/delivery")
	g.Use(guard)

	g.POST("/confirm", h.confirm)
}

func (h *DeliveryHandler) confirm(c echo.Context) error {
	timer := prometheus.NewTimer(httpLatency.WithLabelValues("POST", "/delivery/confirm"))
	defer timer.ObserveDuration()

	var req DeliveryConfirmRequest
	if err := c.Bind(&req); err != nil {
		return respondJSON(c, http.StatusUnprocessableEntity, ErrorResponse{Error: "invalid body"}, "POST", "/delivery/confirm")
	}
	if strings.TrimSpace(req.OrderID) == "" {
		return respondJSON(c, http.StatusUnprocessableEntity, ErrorResponse{Error: "order_id is required"}, "POST", "/delivery/confirm")
	}
	if strings.TrimSpace(req.DeliveryReference) == "" {
		return respondJSON(c, http.StatusUnprocessableEntity, ErrorResponse{Error: "delivery_reference is required"}, "POST", "/delivery/confirm")
	}

	order, err := h.uc.ConfirmDelivery(c.Request().Context(), req.OrderID, req.DeliveryReference)
	if err != nil {
		return writeError(c, err, "POST", "/delivery/confirm")
	}

	return respondJSON(c, http.StatusOK, DeliveryConfirmResponse{
		Message: "Delivery confirmed and funds released",
		OrderID: order.OrderID,
	}, "POST", "/delivery/confirm")
}
