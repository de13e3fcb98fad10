package request

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/ensembleops/ERS-ReservationService/internal/domain"
	"github.com/ensembleops/ERS-ReservationService/pkg/dbmetrics"
	"github.com/ensembleops/ERS-ReservationService/pkg/psqlbuilder"
)

const pqUniqueViolation = "23505"

var requestColumns = []string{
	"id",
	"instrument_id",
	"kind",
	"quantity",
	"start_date",
	"end_date",
	"status",
	"requester_id",
	"requester_contact",
	"rental_fee",
	"client_token",
	"created_at",
	"updated_at",
}

// Repository репозиторий ledger-таблицы заявок на аренду/выдачу инструментов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заявок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую заявку
// Если в контексте передана активная транзакция (через context.Value), использует её.
// Вставка строк корзины должна выполняться в той же транзакции, что и проверка
// доступности - иначе между проверкой и вставкой может вклиниться конкурирующая корзина
func (r *Repository) Create(ctx context.Context, req *domain.ReservationRequest) (*domain.ReservationRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservation_requests").
		Columns(
			"instrument_id",
			"kind",
			"quantity",
			"start_date",
			"end_date",
			"status",
			"requester_id",
			"requester_contact",
			"rental_fee",
			"client_token",
		).
		Values(
			req.InstrumentID,
			req.Kind,
			req.Quantity,
			req.Period.StartDate,
			req.Period.EndDate,
			req.Status,
			req.RequesterID,
			req.RequesterContact,
			req.RentalFee,
			req.ClientToken,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&req.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return nil, fmt.Errorf("%w: Create - %w", ErrDuplicateClientToken, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	req.CreatedAt = createdAt.Time
	req.UpdatedAt = updatedAt.Time

	return req, nil
}

// GetByID получает заявку по ID
// Внутри транзакции строка блокируется FOR UPDATE - конкурирующие переходы
// статуса по одной заявке сериализуются на этой блокировке
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ReservationRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(requestColumns...).
		From("reservation_requests").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInWritableTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	req, err := scanRequest(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan request: %w", ErrScanRow, err)
	}

	return req, nil
}

// GetOverlapping получает все заявки на инструмент, которые потребляют ёмкость
// (pending/approved/paid) и пересекаются с указанным диапазоном дат.
// Тест пересечения инклюзивный: start_date <= period.end AND end_date >= period.start.
//
// Внутри транзакции найденные строки блокируются FOR UPDATE - это закрывает гонку
// check-then-act между двумя корзинами, претендующими на последние единицы инструмента
func (r *Repository) GetOverlapping(ctx context.Context, instrumentID int64, period domain.DateRange) ([]*domain.ReservationRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	consumingStatuses := make([]string, len(domain.CapacityConsumingStatuses))
	for i, s := range domain.CapacityConsumingStatuses {
		consumingStatuses[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select(requestColumns...).
		From("reservation_requests").
		Where(squirrel.Eq{"instrument_id": instrumentID}).
		Where(squirrel.Eq{"status": consumingStatuses}).
		Where(squirrel.LtOrEq{"start_date": period.EndDate}).
		Where(squirrel.GtOrEq{"end_date": period.StartDate}).
		OrderBy("id ASC")

	if dbmetrics.IsInWritableTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverlapping - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanRequests(rows)
}

// GetWithFilter получает заявки с гибкой фильтрацией
// Поддерживает фильтрацию по заявителю, инструменту, статусу и периоду (пересечение)
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.RequestsFilter) ([]*domain.ReservationRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(requestColumns...).
		From("reservation_requests").
		OrderBy("created_at DESC, id DESC")

	if filter.RequesterID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"requester_id": *filter.RequesterID})
	}
	if filter.InstrumentID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"instrument_id": *filter.InstrumentID})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.Period != nil {
		selectBuilder = selectBuilder.
			Where(squirrel.LtOrEq{"start_date": filter.Period.EndDate}).
			Where(squirrel.GtOrEq{"end_date": filter.Period.StartDate})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanRequests(rows)
}

// UpdateStatus обновляет статус заявки
// Валидация допустимости перехода выполняется на уровне usecase под блокировкой строки
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.RequestStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservation_requests").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRequestNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRequest(row rowScanner) (*domain.ReservationRequest, error) {
	var req domain.ReservationRequest
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&req.ID,
		&req.InstrumentID,
		&req.Kind,
		&req.Quantity,
		&req.Period.StartDate,
		&req.Period.EndDate,
		&req.Status,
		&req.RequesterID,
		&req.RequesterContact,
		&req.RentalFee,
		&req.ClientToken,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	req.CreatedAt = createdAt.Time
	req.UpdatedAt = updatedAt.Time

	return &req, nil
}

// scanRequests сканирует результаты запроса в слайс заявок
func (r *Repository) scanRequests(rows *sql.Rows) ([]*domain.ReservationRequest, error) {
	requests := make([]*domain.ReservationRequest, 0)

	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanRequests - scan row: %w", ErrScanRow, err)
		}
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanRequests - rows error: %w", ErrScanRow, err)
	}

	return requests, nil
}
