package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPaymentPending      OrderStatus = "payment_pending"
	OrderStatusPendingConfirmation OrderStatus = "pending_delivery_confirmation"
	OrderStatusDelivered           OrderStatus = "delivered"
	OrderStatusRefunded            OrderStatus = "refunded"
	OrderStatusFailed              OrderStatus = "failed"
)

// Terminal reports whether no further transition is permitted from s.
// refunded and failed are reachable only through operator tooling but stay
// in the enum so stored rows remain representable.
func (s OrderStatus) Terminal() bool {
	switch s {
	case OrderStatusDelivered, OrderStatusRefunded, OrderStatusFailed:
		return true
	}
	return false
}

type Order struct {
	OrderID           string          `gorm:"primaryKey;type:varchar(64)" json:"order_id"`
	BuyerID           string          `gorm:"type:varchar(64);not null;index" json:"buyer_id"`
	SellerID          string          `gorm:"type:varchar(64);not null;index" json:"seller_id"`
	Amount            decimal.Decimal `gorm:"type:numeric(20,4);not null" json:"amount"`
	Status            OrderStatus     `gorm:"type:varchar(40);not null;index;default:payment_pending" json:"status"`
	PaymentReference  string          `gorm:"type:varchar(128);not null;uniqueIndex" json:"payment_reference"`
	DeliveryReference *string         `gorm:"type:varchar(128);uniqueIndex" json:"delivery_reference,omitempty"`
	CreatedAt         time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
