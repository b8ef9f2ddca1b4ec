package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is one leg of a balance mutation, written in the same
// transaction as the balance change. The legs of a fully settled order sum
// to zero.
type LedgerEntry struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   string          `gorm:"type:varchar(64);not null;index" json:"order_id"`
	AccountID string          `gorm:"type:varchar(64);not null;index" json:"account_id"`
	Delta     decimal.Decimal `gorm:"type:numeric(20,4);not null" json:"delta"`
	CreatedAt time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}
