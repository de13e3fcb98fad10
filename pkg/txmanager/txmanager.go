package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/ensembleops/ERS-ReservationService/pkg/dbmetrics"
)

var (
	// ErrTxBusy возвращается, когда транзакция не смогла завершиться из-за конкуренции
	// (serialization failure, deadlock, lock timeout) после всех повторов.
	// Вызывающая сторона может повторить операцию целиком.
	ErrTxBusy = errors.New("txmanager: transaction aborted due to contention, retry later")
)

const (
	serializableMaxAttempts = 3
	retryBackoff            = 25 * time.Millisecond
)

// TxBeginner интерфейс для начала транзакций
// Реализуется *dbmetrics.DB
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager управляет транзакциями поверх dbmetrics.DB
type TransactionManager struct {
	db TxBeginner
}

// NewTransactionManager создает новый transaction manager
func NewTransactionManager(db TxBeginner) *TransactionManager {
	return &TransactionManager{db: db}
}

// Do выполняет fn в транзакции с изоляцией по умолчанию (Read Committed)
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{}, fn)
}

// DoReadOnly выполняет fn в read-only транзакции с изоляцией Repeatable Read.
// На Read Committed каждый statement получает собственный снапшот, поэтому
// два чтения внутри fn могли бы разойтись при конкурирующем commit
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}, fn)
}

// DoSerializable выполняет fn в serializable транзакции
// При serialization failure или deadlock повторяет до serializableMaxAttempts раз,
// после чего возвращает ErrTxBusy
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	var lastErr error
	for attempt := 1; attempt <= serializableMaxAttempts; attempt++ {
		err := m.run(ctx, opts, fn)
		if err == nil {
			return nil
		}
		if !IsRetryable(err) {
			return err
		}

		lastErr = err
		select {
		case <-time.After(time.Duration(attempt) * retryBackoff):
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", ErrTxBusy, ctx.Err())
		}
	}

	return fmt.Errorf("%w: %v", ErrTxBusy, lastErr)
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

// IsRetryable возвращает true для ошибок Postgres, при которых транзакцию
// имеет смысл повторить: serialization failure, deadlock, lock timeout
func IsRetryable(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	switch string(pqErr.Code) {
	case "40001", "40P01", "55P03":
		return true
	}
	return false
}
