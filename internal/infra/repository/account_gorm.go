package repository

import (
	"context"
	"errors"

	"escrow/internal/domain"
	"escrow/internal/domain/model"
	repo "escrow/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AccountGormRepository struct {
	db *gorm.DB
}

func NewAccountGormRepository(db *gorm.DB) *AccountGormRepository {
	return &AccountGormRepository{db: db}
}

func (r *AccountGormRepository) FindByID(ctx context.Context, id string) (model.Account, error) {
	var a model.Account
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Account{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Account{}, err
	}
	return a, nil
}

// Debit is a single conditional update, so concurrent debits against the
// same account serialize on the row and the balance can never go negative.
func (r *AccountGormRepository) Debit(ctx context.Context, id string, amount decimal.Decimal) error {
	res := r.db.WithContext(ctx).Model(&model.Account{}).
		Where("id = ? AND balance >= ?", id, amount).
		Update("balance", gorm.Expr("balance - ?", amount))

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// distinguish a missing account from a short balance
		var count int64
		if err := r.db.WithContext(ctx).Model(&model.Account{}).
			Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return repo.ErrNotFound
		}
		return domain.ErrInsufficientBalance
	}
	return nil
}

func (r *AccountGormRepository) Credit(ctx context.Context, id string, amount decimal.Decimal) error {
	res := r.db.WithContext(ctx).Model(&model.Account{}).
		Where("id = ?", id).
		Update("balance", gorm.Expr("balance + ?", amount))

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *AccountGormRepository) Create(ctx context.Context, account model.Account) error {
	return r.db.WithContext(ctx).Create(&account).Error
}
