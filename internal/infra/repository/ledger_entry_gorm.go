package repository

import (
	"context"

	"escrow/internal/domain/model"

	"gorm.io/gorm"
)

type LedgerEntryGormRepository struct {
	db *gorm.DB
}

func NewLedgerEntryGormRepository(db *gorm.DB) *LedgerEntryGormRepository {
	return &LedgerEntryGormRepository{db: db}
}

func (r *LedgerEntryGormRepository) Create(ctx context.Context, entry model.LedgerEntry) error {
	return r.db.WithContext(ctx).Create(&entry).Error
}

func (r *LedgerEntryGormRepository) ListByOrderID(ctx context.Context, orderID string) ([]model.LedgerEntry, error) {
	var items []model.LedgerEntry
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id asc").
		Find(&items).Error
	if err != nil {
		return []model.LedgerEntry{}, err
	}
	return items, nil
}
