package dbmetrics

import "context"

type ctxKey int

const (
	executorKey ctxKey = iota
	readOnlyKey
)

// WithExecutor кладет активную транзакцию в контекст
// Репозитории достают её через GetExecutor и выполняют запросы в рамках транзакции
func WithExecutor(ctx context.Context, exec TxExecutor) context.Context {
	return context.WithValue(ctx, executorKey, exec)
}

// WithReadOnlyExecutor кладет read-only транзакцию в контекст
// Репозитории в такой транзакции не добавляют блокирующих конструкций:
// SELECT ... FOR UPDATE в read-only транзакции Postgres запрещен
func WithReadOnlyExecutor(ctx context.Context, exec TxExecutor) context.Context {
	ctx = context.WithValue(ctx, executorKey, exec)
	return context.WithValue(ctx, readOnlyKey, true)
}

// GetExecutor возвращает executor из контекста, если там есть активная транзакция,
// иначе возвращает fallback (обычно это *sql.DB или *dbmetrics.DB репозитория)
func GetExecutor(ctx context.Context, fallback DBExecutor) DBExecutor {
	if exec, ok := ctx.Value(executorKey).(TxExecutor); ok {
		return exec
	}
	return fallback
}

// IsInTransaction возвращает true, если в контексте есть активная транзакция
func IsInTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(executorKey).(TxExecutor)
	return ok
}

// IsInWritableTransaction возвращает true, если в контексте есть транзакция,
// допускающая блокировки строк
func IsInWritableTransaction(ctx context.Context) bool {
	if !IsInTransaction(ctx) {
		return false
	}
	readOnly, _ := ctx.Value(readOnlyKey).(bool)
	return !readOnly
}
