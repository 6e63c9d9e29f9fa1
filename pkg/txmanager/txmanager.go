package txmanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/barberbook/booking-service/pkg/dbmetrics"
)

// TxBeginner источник транзакций (*dbmetrics.DB или обёрнутый *sql.DB, см. WrapDB)
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager runs functions inside database transactions.
// Активная транзакция передаётся вниз по стеку через context
// (см. dbmetrics.WithExecutor / dbmetrics.GetExecutor).
type TransactionManager struct {
	beginner TxBeginner
}

// NewTransactionManager creates a transaction manager over the given beginner
func NewTransactionManager(beginner TxBeginner) *TransactionManager {
	return &TransactionManager{beginner: beginner}
}

// Do runs fn inside a transaction with the default isolation level
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{}, fn)
}

// DoSerializable runs fn inside a SERIALIZABLE transaction.
// Используется там, где нужна защита от гонок вида check-then-write.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, fn)
}

// DoReadOnly runs fn inside a read-only transaction
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	tx, err := m.beginner.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("txmanager: begin transaction: %w", err)
	}

	txCtx := dbmetrics.WithExecutor(ctx, tx)

	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("txmanager: rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("txmanager: commit transaction: %w", err)
	}

	return nil
}

// sqlDBBeginner адаптер *sql.DB под интерфейс TxBeginner
type sqlDBBeginner struct {
	db *sql.DB
}

// WrapDB adapts a plain *sql.DB to the TxBeginner interface.
// Используется, когда сбор метрик отключён.
func WrapDB(db *sql.DB) TxBeginner {
	return &sqlDBBeginner{db: db}
}

func (b *sqlDBBeginner) BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	return b.db.BeginTx(ctx, opts)
}
