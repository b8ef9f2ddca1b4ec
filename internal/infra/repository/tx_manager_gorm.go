package repository

import (
	"context"

	repo "escrow/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	orders        repo.OrderRepository
	accounts      repo.AccountRepository
	ledgerEntries repo.LedgerEntryRepository
}

func (r *txReposGorm) Orders() repo.OrderRepository              { return r.orders }
func (r *txReposGorm) Accounts() repo.AccountRepository          { return r.accounts }
func (r *txReposGorm) LedgerEntries() repo.LedgerEntryRepository { return r.ledgerEntries }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// repos are rebuilt on the tx handle
		r := &txReposGorm{
			orders:        NewOrderGormRepository(tx),
			accounts:      NewAccountGormRepository(tx),
			ledgerEntries: NewLedgerEntryGormRepository(tx),
		}
		return fn(r)
	})
}
