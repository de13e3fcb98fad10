package instrument

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/ensembleops/ERS-ReservationService/internal/domain"
	"github.com/ensembleops/ERS-ReservationService/pkg/dbmetrics"
	"github.com/ensembleops/ERS-ReservationService/pkg/psqlbuilder"
)

// Repository репозиторий каталога инструментов
// Каталог меняется только инвентарной админкой - этот сервис его не мутирует
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает инструмент по ID
// В пишущей транзакции строка блокируется через FOR UPDATE - корзины, занимающие
// один инструмент, сериализуются на этой блокировке
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Instrument, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"name",
		"total_quantity",
		"price_per_day",
		"condition_status",
		"created_at",
		"updated_at",
	).
		From("instruments").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInWritableTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var instrument domain.Instrument
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&instrument.ID,
		&instrument.Name,
		&instrument.TotalQuantity,
		&instrument.PricePerDay,
		&instrument.ConditionStatus,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrInstrumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan instrument: %w", ErrScanRow, err)
	}

	instrument.CreatedAt = createdAt.Time
	instrument.UpdatedAt = updatedAt.Time

	return &instrument, nil
}

// List получает все инструменты каталога
func (r *Repository) List(ctx context.Context) ([]*domain.Instrument, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"total_quantity",
		"price_per_day",
		"condition_status",
		"created_at",
		"updated_at",
	).
		From("instruments").
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	instruments := make([]*domain.Instrument, 0)
	for rows.Next() {
		var instrument domain.Instrument
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&instrument.ID,
			&instrument.Name,
			&instrument.TotalQuantity,
			&instrument.PricePerDay,
			&instrument.ConditionStatus,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}

		instrument.CreatedAt = createdAt.Time
		instrument.UpdatedAt = updatedAt.Time

		instruments = append(instruments, &instrument)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return instruments, nil
}
