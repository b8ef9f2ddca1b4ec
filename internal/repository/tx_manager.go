package repository

import "context"

// TxRepos are the repositories bound to one transaction.
type TxRepos interface {
	Orders() OrderRepository
	Accounts() AccountRepository
	LedgerEntries() LedgerEntryRepository
}

// TransactionManager hides tx begin/commit/rollback from the usecase.
// fn returning an error rolls the whole transaction back.
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
