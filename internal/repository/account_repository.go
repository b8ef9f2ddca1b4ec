package repository

import (
	"context"

	"escrow/internal/domain/model"

	"github.com/shopspring/decimal"
)

// AccountRepository is the escrow ledger surface. Debit and Credit are the
// only balance mutations in the system.
type AccountRepository interface {
	FindByID(ctx context.Context, id string) (model.Account, error)

	// Debit subtracts amount if the balance covers it, as a single
	// conditional update. Returns ErrNotFound for a missing account and
	// domain.ErrInsufficientBalance for a short one.
	Debit(ctx context.Context, id string, amount decimal.Decimal) error

	// Credit adds amount to an existing account. ErrNotFound if missing.
	Credit(ctx context.Context, id string, amount decimal.Decimal) error

	// Create is used by the seeder only.
	Create(ctx context.Context, account model.Account) error
}
