package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a buyer or seller balance. Rows are created by the seeder,
// never by the API; the service only moves money between them.
type Account struct {
	ID        string          `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Balance   decimal.Decimal `gorm:"type:numeric(20,4);not null;default:0" json:"balance"`
	CreatedAt time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
