package handler

import (
	"net/http"
	"strings"

	"escrow/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

type SellerHandler struct {
	uc *usecase.SettlementUsecase
}

func NewSellerHandler(uc *usecase.SettlementUsecase) *SellerHandler {
	return &SellerHandler{uc: uc}
}

func (h *SellerHandler) RegisterRoutes(e *echo.Echo, guard echo.MiddlewareFunc) {
	g := e.Group("/seller")
	g.Use(guard)

	g.GET("/orders/:seller_id", h.orders)
}

func (h *SellerHandler) orders(c echo.Context) error {
	timer := prometheus.NewTimer(httpLatency.WithLabelValues("GET", "/seller/orders/:seller_id"))
	defer timer.ObserveDuration()

	sellerID := strings.TrimSpace(c.Param("seller_id"))
	if sellerID == "" {
		return respondJSON(c, http.StatusUnprocessableEntity, ErrorResponse{Error: "seller_id is required"}, "GET", "/seller/orders/:seller_id")
	}

	orders, err := h.uc.ListSellerOrders(c.Request().Context(), sellerID)
	if err != nil {
		return writeError(c, err, "GET", "/seller/orders/:seller_id")
	}

	return respondJSON(c, http.StatusOK, orders, "GET", "/seller/orders/:seller_id")
}
