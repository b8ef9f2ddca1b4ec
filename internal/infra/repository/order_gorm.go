package repository

import (
	"context"
	"errors"

	"escrow/internal/domain/model"
	repo "escrow/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const uniqueViolation = "23505"

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) FindByID(ctx context.Context, orderID string) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

func (r *OrderGormRepository) FindByIDForUpdate(ctx context.Context, orderID string) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("order_id = ?", orderID).
		First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

func (r *OrderGormRepository) FindByPaymentReference(ctx context.Context, ref string) (model.Order, bool, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Where("payment_reference = ?", ref).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, false, nil
	}
	if err != nil {
		return model.Order{}, false, err
	}
	return o, true, nil
}

func (r *OrderGormRepository) Create(ctx context.Context, order model.Order) error {
	err := r.db.WithContext(ctx).Create(&order).Error
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return repo.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *OrderGormRepository) MarkDelivered(ctx context.Context, orderID string, deliveryReference string) error {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("order_id = ?", orderID).
		Updates(map[string]interface{}{
			"status":             model.OrderStatusDelivered,
			"delivery_reference": deliveryReference,
		})

	if res.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(res.Error, &pgErr) && pgErr.Code == uniqueViolation {
			return repo.ErrDuplicate
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *OrderGormRepository) ListBySellerID(ctx context.Context, sellerID string) ([]model.Order, error) {
	var items []model.Order
	err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("created_at desc").
		Find(&items).Error
	if err != nil {
		return []model.Order{}, err
	}
	return items, nil
}
