package repository

import (
	"context"

	"escrow/internal/domain/model"
)

// LedgerEntryRepository is the append-only settlement journal.
type LedgerEntryRepository interface {
	Create(ctx context.Context, entry model.LedgerEntry) error
	ListByOrderID(ctx context.Context, orderID string) ([]model.LedgerEntry, error)
}
