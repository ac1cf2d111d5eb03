package repositories

import "context"

// TxFn is a function that runs within a transaction
type TxFn func(ctx context.Context) error

// TransactionManager handles multi-step atomic operations
type TransactionManager interface {
	// ExecTx executes fn within a transaction. Writes made through ctx are
	// committed together when fn returns nil and discarded otherwise.
	ExecTx(ctx context.Context, fn TxFn) error
}
