package server

import (
	"escrow/internal/auth"
	"escrow/internal/handler"
	"escrow/internal/middleware"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handlers struct {
	Payments      *handler.PaymentHandler
	Delivery      *handler.DeliveryHandler
	Seller        *handler.SellerHandler
	Notifications *handler.NotificationHandler
	Health        *handler.HealthHandler
}

// RegisterRoutes wires all endpoints. Mutating endpoints get the full
// signature guard, notifications the key-only guard.
func RegisterRoutes(e *echo.Echo, verifier *auth.Verifier, h Handlers) {
	signed := middleware.AuthSignature(verifier)
	keyed := middleware.AuthAPIKey(verifier)

	h.Payments.RegisterRoutes(e, signed)
	h.Delivery.RegisterRoutes(e, signed)
	h.Seller.RegisterRoutes(e, signed)
	h.Notifications.RegisterRoutes(e, keyed)
	h.Health.RegisterRoutes(e)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}
