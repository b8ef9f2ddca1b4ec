package repository

import (
	"context"

	"escrow/internal/domain/model"
)

type OrderRepository interface {
	FindByID(ctx context.Context, orderID string) (model.Order, error)

	// FindByIDForUpdate locks the order row for the rest of the transaction.
	FindByIDForUpdate(ctx context.Context, orderID string) (model.Order, error)

	FindByPaymentReference(ctx context.Context, ref string) (model.Order, bool, error)

	// Create inserts the order. ErrDuplicate when the order id or payment
	// reference already exists.
	Create(ctx context.Context, order model.Order) error

	// MarkDelivered sets the terminal delivered status and the delivery
	// reference. ErrNotFound when no row matched.
	MarkDelivered(ctx context.Context, orderID string, deliveryReference string) error

	ListBySellerID(ctx context.Context, sellerID string) ([]model.Order, error)
}
