package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// transaction tracks whether a GORM transaction has been committed or
// rolled back, so the deferred rollback in WithTransactionResult is a no-op
// after a successful commit.
type transaction struct {
	tx   *gorm.DB
	done bool
}

func begin(ctx context.Context, db Database) (*transaction, error) {
	tx := db.Session(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("begin transaction: %w", tx.Error)
	}
	return &transaction{tx: tx}, nil
}

func (t *transaction) commit() error {
	if t.done {
		return nil
	}
	t.done = true
	if err := t.tx.Commit().Error; err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (t *transaction) rollback() error {
	if t.done {
		return nil
	}
	t.done = true
	if err := t.tx.Rollback().Error; err != nil {
		return fmt.Errorf("rollback transaction: %w", err)
	}
	return nil
}

// WithTransaction runs fn in a transaction. It commits when fn returns nil
// and rolls back otherwise.
func WithTransaction(ctx context.Context, db Database, fn func(tx *gorm.DB) error) error {
	_, err := WithTransactionResult(ctx, db, func(tx *gorm.DB) (struct{}, error) {
		return struct{}{}, fn(tx)
	})
	return err
}

// WithTransactionResult runs fn in a transaction and returns its result once
// the transaction has committed.
func WithTransactionResult[T any](ctx context.Context, db Database, fn func(tx *gorm.DB) (T, error)) (T, error) {
	var zero T

	txn, err := begin(ctx, db)
	if err != nil {
		return zero, err
	}
	defer func() { _ = txn.rollback() }()

	result, err := fn(txn.tx)
	if err != nil {
		return zero, err
	}
	if err := txn.commit(); err != nil {
		return zero, err
	}
	return result, nil
}

// LockRow locks the row of model with the given id until tx ends. A missing
// row is ErrNotFound. On SQLite the single connection already serializes
// transactions, so no lock clause is added.
func LockRow(tx *gorm.DB, db Database, model any, id int64) error {
	q := tx.Model(model).Where("id = ?", id)
	if db.IsPostgres() {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var locked []int64
	if err := q.Pluck("id", &locked).Error; err != nil {
		return fmt.Errorf("lock row %d: %w", id, err)
	}
	if len(locked) == 0 {
		return fmt.Errorf("%w: row %d", ErrNotFound, id)
	}
	return nil
}
