package domain

import "errors"

var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrDuplicateOrder      = errors.New("duplicate payment reference")
	ErrOrderNotFound       = errors.New("order not found")
	ErrInvalidTransition   = errors.New("order not pending delivery confirmation")
	ErrSettlementFailed    = errors.New("failed to transfer funds to seller")
)
