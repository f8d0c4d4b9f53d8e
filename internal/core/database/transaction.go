package database

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"
)

type txContextKey struct{}

// TransactionManager runs units of work inside a gorm transaction carried by
// the context. Repositories pick it up through DBFromContext.
type TransactionManager struct {
	db *gorm.DB
}

func NewTransactionManager(db *gorm.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// WithinReadOnly runs fn in a read-only transaction.
func (m *TransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	return m.within(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

// WithinReadWrite runs fn in a read-write transaction. It commits when fn
// returns nil and rolls back on error or panic.
func (m *TransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	return m.within(ctx, nil, fn)
}

func (m *TransactionManager) within(ctx context.Context, opts *sql.TxOptions, fn func(context.Context) error) error {
	if fn == nil {
		return errors.New("database: transaction function is required")
	}

	// joins the outer transaction
	if _, ok := txFromContext(ctx); ok {
		return fn(ctx)
	}

	txFn := func(tx *gorm.DB) error {
		return fn(contextWithTx(ctx, tx))
	}

	if opts == nil {
		return m.db.WithContext(ctx).Transaction(txFn)
	}
	return m.db.WithContext(ctx).Transaction(txFn, opts)
}

// DBFromContext returns the transaction stored in ctx, or fallback bound to
// ctx when there is none.
func DBFromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := txFromContext(ctx); ok {
		return tx
	}
	return fallback.WithContext(ctx)
}

func contextWithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txContextKey{}, tx)
}

func txFromContext(ctx context.Context) (*gorm.DB, bool) {
	if ctx == nil {
		return nil, false
	}
	tx, ok := ctx.Value(txContextKey{}).(*gorm.DB)
	return tx, ok
}
