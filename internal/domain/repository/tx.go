package repository

import "context"

// TxManager runs a function inside a single database transaction. Repository
// calls made with the context it passes join that transaction, so a state
// transition and its stock/ledger side effects commit or roll back together.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
