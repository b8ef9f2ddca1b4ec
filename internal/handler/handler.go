package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"escrow/internal/domain"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpReqTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "escrow_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "endpoint", "status"})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "escrow_http_request_duration_seconds",
		Help:    "Request latency",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"method", "endpoint"})
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func respondJSON(c echo.Context, code int, payload interface{}, method, endpoint string) error {
	httpReqTotal.WithLabelValues(method, endpoint, strconv.Itoa(code)).Inc()
	return c.JSON(code, payload)
}

// writeError maps domain errors to transport codes. Anything unknown is a
// generic 500 so internals never leak to the caller.
func writeError(c echo.Context, err error, method, endpoint string) error {
	var code int
	var msg string

	switch {
	case errors.Is(err, domain.ErrInsufficientBalance),
		errors.Is(err, domain.ErrAccountNotFound):
		code, msg = http.StatusBadRequest, "Insufficient funds or payment failed"
	case errors.Is(err, domain.ErrDuplicateOrder):
		code, msg = http.StatusBadRequest, "Duplicate payment reference"
	case errors.Is(err, domain.ErrOrderNotFound):
		code, msg = http.StatusNotFound, "Order not found"
	case errors.Is(err, domain.ErrInvalidTransition):
		code, msg = http.StatusBadRequest, "Order not pending delivery confirmation"
	case errors.Is(err, domain.ErrSettlementFailed):
		code, msg = http.StatusInternalServerError, "Failed to transfer funds to seller"
	default:
		log.Printf("unhandled error method=%s endpoint=%s: %v", method, endpoint, err)
		code, msg = http.StatusInternalServerError, "internal error"
	}

	return respondJSON(c, code, ErrorResponse{Error: msg}, method, endpoint)
}
