package handler

import (
	"net/http"
	"strings"

	"escrow/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

type PaymentHandler struct {
	uc *usecase.SettlementUsecase
}

func NewPaymentHandler(uc *usecase.SettlementUsecase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

type PaymentInitiateRequest struct {
	OrderID          string          `json:"order_id"`
	BuyerID          string          `json:"buyer_id"`
	SellerID         string          `json:"seller_id"`
	Amount           decimal.Decimal `json:"amount"`
	PaymentReference string          `json:"payment_reference"`
}

type PaymentResponse struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

func (h *PaymentHandler) RegisterRoutes(e *echo.Echo, guard echo.MiddlewareFunc) {
	g := e.Group("/payments")
	g.Use(guard)

	g.POST("/initiate", h.initiate)
}

func (h *PaymentHandler) initiate(c echo.Context) error {
	timer := prometheus.NewTimer(httpLatency.WithLabelValues("POST", "/payments/initiate"))
	defer timer.ObserveDuration()

	var req PaymentInitiateRequest
	if err := c.Bind(&req); err != nil {
		return respondJSON(c, http.StatusUnprocessableEntity, ErrorResponse{Error: "invalid body"}, "POST", "/payments/initiate")
	}

	if msg, ok := validateInitiate(req); !ok {
		return respondJSON(c, http.StatusUnprocessableEntity, ErrorResponse{Error: msg}, "POST", "/payments/initiate")
	}

	order, err := h.uc.InitiatePayment(c.Request().Context(), usecase.InitiatePaymentInput{
		OrderID:          req.OrderID,
		BuyerID:          req.BuyerID,
		SellerID:         req.SellerID,
		Amount:           req.Amount,
		PaymentReference: req.PaymentReference,
	})
	if err != nil {
		return writeError(c, err, "POST", "/payments/initiate")
	}

	return respondJSON(c, http.StatusOK, PaymentResponse{
		OrderID: order.OrderID,
		Status:  string(order.Status),
	}, "POST", "/payments/initiate")
}

func validateInitiate(req PaymentInitiateRequest) (string, bool) {
	for field, v := range map[string]string{
		"order_id":          req.OrderID,
		"buyer_id":          req.BuyerID,
		"seller_id":         req.SellerID,
		"payment_reference": req.PaymentReference,
	} {
		if strings.TrimSpace(v) == "" {
			return field + " is required", false
		}
	}
	if !req.Amount.IsPositive() {
		return "amount must be greater than 0", false
	}
	return "", true
}
