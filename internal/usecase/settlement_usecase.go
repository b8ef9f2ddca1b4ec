package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"escrow/internal/domain"
	"escrow/internal/domain/model"
	repo "escrow/internal/repository"

	"github.com/shopspring/decimal"
)

// Notifier delivers a best-effort message about an order. Failures are
// logged and never fail the settlement that triggered them.
type Notifier interface {
	Notify(ctx context.Context, orderID string, message string) error
}

type SettlementUsecase struct {
	tx       repo.TransactionManager
	orders   repo.OrderRepository
	notifier Notifier
}

func NewSettlementUsecase(tx repo.TransactionManager, orders repo.OrderRepository, notifier Notifier) *SettlementUsecase {
	return &SettlementUsecase{tx: tx, orders: orders, notifier: notifier}
}

type InitiatePaymentInput struct {
	OrderID          string
	BuyerID          string
	SellerID         string
	Amount           decimal.Decimal
	PaymentReference string
}

// InitiatePayment debits the buyer and creates the order in one
// transaction. Either both happen or neither does.
func (u *SettlementUsecase) InitiatePayment(ctx context.Context, in InitiatePaymentInput) (model.Order, error) {
	var order model.Order

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// same payment_reference twice is a resubmission, not a new debit
		_, found, err := r.Orders().FindByPaymentReference(ctx, in.PaymentReference)
		if err != nil {
			return err
		}
		if found {
			return domain.ErrDuplicateOrder
		}

		if err := r.Accounts().Debit(ctx, in.BuyerID, in.Amount); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return domain.ErrAccountNotFound
			}
			return err
		}

		now := time.Now()
		order = model.Order{
			OrderID:          in.OrderID,
			BuyerID:          in.BuyerID,
			SellerID:         in.SellerID,
			Amount:           in.Amount,
			Status:           model.OrderStatusPendingConfirmation,
			PaymentReference: in.PaymentReference,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if err := r.Orders().Create(ctx, order); err != nil {
			// concurrent initiate with the same reference or order id
			if errors.Is(err, repo.ErrDuplicate) {
				return domain.ErrDuplicateOrder
			}
			return err
		}

		return r.LedgerEntries().Create(ctx, model.LedgerEntry{
			OrderID:   in.OrderID,
			AccountID: in.BuyerID,
			Delta:     in.Amount.Neg(),
		})
	})

	if err != nil {
		return model.Order{}, err
	}

	log.Printf("payment initiated order_id=%s buyer_id=%s amount=%s", order.OrderID, order.BuyerID, order.Amount)
	return order, nil
}

// ConfirmDelivery releases escrowed funds to the seller and moves the order
// to its terminal delivered status, atomically. A failed credit leaves the
// order pending.
func (u *SettlementUsecase) ConfirmDelivery(ctx context.Context, orderID string, deliveryReference string) (model.Order, error) {
	var order model.Order

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByIDForUpdate(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return domain.ErrOrderNotFound
		}
		if err != nil {
			return err
		}

		if o.Status != model.OrderStatusPendingConfirmation {
			return domain.ErrInvalidTransition
		}

		if err := r.Accounts().Credit(ctx, o.SellerID, o.Amount); err != nil {
			log.Printf("seller credit failed order_id=%s seller_id=%s: %v", orderID, o.SellerID, err)
			return domain.ErrSettlementFailed
		}

		if err := r.Orders().MarkDelivered(ctx, orderID, deliveryReference); err != nil {
			return err
		}

		if err := r.LedgerEntries().Create(ctx, model.LedgerEntry{
			OrderID:   o.OrderID,
			AccountID: o.SellerID,
			Delta:     o.Amount,
		}); err != nil {
			return err
		}

		o.Status = model.OrderStatusDelivered
		o.DeliveryReference = &deliveryReference
		order = o
		return nil
	})

	if err != nil {
		return model.Order{}, err
	}

	log.Printf("delivery confirmed order_id=%s seller_id=%s amount=%s", order.OrderID, order.SellerID, order.Amount)

	if u.notifier != nil {
		// best effort, off the request path
		go func(orderID string) {
			nctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := u.notifier.Notify(nctx, orderID, "Delivery confirmed and funds released"); err != nil {
				log.Printf("seller notification failed order_id=%s: %v", orderID, err)
			}
		}(order.OrderID)
	}

	return order, nil
}

// ListSellerOrders returns a seller's orders, newest first.
func (u *SettlementUsecase) ListSellerOrders(ctx context.Context, sellerID string) ([]model.Order, error) {
	return u.orders.ListBySellerID(ctx, sellerID)
}
