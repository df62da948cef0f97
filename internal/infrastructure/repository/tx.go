package repository

import (
	"context"

	domainRepo "github.com/ajjawam/ajjawam-api/internal/domain/repository"
	"gorm.io/gorm"
)

type txManager struct {
	db *gorm.DB
}

// NewTxManager creates a transaction manager backed by GORM transactions
func NewTxManager(db *gorm.DB) domainRepo.TxManager {
	return &txManager{db: db}
}

// Do runs fn inside a transaction. The transaction handle is placed in the
// context so repository calls made with that context join the transaction.
func (m *txManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey, tx))
	})
}

// dbFrom returns the transaction handle from the context when one is in
// flight, falling back to the base connection otherwise.
func dbFrom(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx
	}
	return db
}
