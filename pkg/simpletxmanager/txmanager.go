package simpletxmanager

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ensembleops/ERS-ReservationService/pkg/dbmetrics"
	"github.com/ensembleops/ERS-ReservationService/pkg/txmanager"
)

const (
	serializableMaxAttempts = 3
	retryBackoff            = 25 * time.Millisecond
)

// TransactionManager управляет транзакциями напрямую поверх *sql.DB,
// без сбора метрик. Семантика идентична pkg/txmanager
type TransactionManager struct {
	db *sql.DB
}

// NewTransactionManager создает новый transaction manager
func NewTransactionManager(db *sql.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// Do выполняет fn в транзакции с изоляцией по умолчанию
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{}, fn)
}

// DoReadOnly выполняет fn в read-only транзакции с изоляцией Repeatable Read:
// все чтения внутри fn видят один снапшот данных
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}, fn)
}

// DoSerializable выполняет fn в serializable транзакции с повторами,
// возвращает txmanager.ErrTxBusy после исчерпания попыток
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	var lastErr error
	for attempt := 1; attempt <= serializableMaxAttempts; attempt++ {
		err := m.run(ctx, opts, fn)
		if err == nil {
			return nil
		}
		if !txmanager.IsRetryable(err) {
			return err
		}

		lastErr = err
		select {
		case <-time.After(time.Duration(attempt) * retryBackoff):
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", txmanager.ErrTxBusy, ctx.Err())
		}
	}

	return fmt.Errorf("%w: %v", txmanager.ErrTxBusy, lastErr)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	txCtx := dbmetrics.WithExecutor(ctx, tx)
	if opts != nil && opts.ReadOnly {
		txCtx = dbmetrics.WithReadOnlyExecutor(ctx, tx)
	}

	if err := fn(txCtx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
