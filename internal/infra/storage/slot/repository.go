package slot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/polyakovn/HMS-SchedulingService/internal/domain"
	"github.com/polyakovn/HMS-SchedulingService/pkg/dbmetrics"
	"github.com/polyakovn/HMS-SchedulingService/pkg/psqlbuilder"
	"github.com/polyakovn/HMS-SchedulingService/pkg/types"
)

// slotColumns полный набор колонок таблицы slots
var slotColumns = []string{
	"id",
	"doctor_id",
	"slot_date",
	"start_time",
	"end_time",
	"duration_minutes",
	"delivery_mode",
	"state",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы со слотами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// InsertBatch вставляет пакет слотов одним запросом
// Вызывается только внутри транзакции генератора: либо вставляются все слоты
// пакета, либо ни одного
func (r *Repository) InsertBatch(ctx context.Context, slots []*domain.Slot) error {
	if len(slots) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("slots").
		Columns(
			"doctor_id",
			"slot_date",
			"start_time",
			"end_time",
			"duration_minutes",
			"delivery_mode",
			"state",
		)

	for _, s := range slots {
		insertBuilder = insertBuilder.Values(
			s.DoctorID,
			s.Date,
			s.StartTime,
			s.EndTime,
			s.DurationMinutes,
			s.DeliveryMode,
			s.State,
		)
	}

	query, args, err := insertBuilder.
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: InsertBatch - build insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: InsertBatch - execute insert: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	i := 0
	for rows.Next() {
		if i >= len(slots) {
			break
		}
		if err := rows.Scan(&slots[i].ID); err != nil {
			return fmt.Errorf("%w: InsertBatch - scan id: %v", ErrScanRow, err)
		}
		i++
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: InsertBatch - rows error: %v", ErrScanRow, err)
	}

	return nil
}

// GetByID получает слот по ID
// Внутри транзакции строка блокируется через FOR UPDATE
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	return slot, nil
}

// ListByFilter получает слоты врача с фильтрацией по дате/периоду/состоянию
// Сортировка: для одной даты по start_time, иначе по (slot_date, start_time)
func (r *Repository) ListByFilter(ctx context.Context, filter domain.SlotFilter) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"doctor_id": filter.DoctorID})

	if filter.Date != nil {
		selectBuilder = selectBuilder.
			Where(squirrel.Eq{"slot_date": *filter.Date}).
			OrderBy("start_time ASC")
	} else {
		if filter.StartDate != nil {
			selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"slot_date": *filter.StartDate})
		}
		if filter.EndDate != nil {
			selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"slot_date": *filter.EndDate})
		}
		selectBuilder = selectBuilder.OrderBy("slot_date ASC, start_time ASC")
	}

	if filter.State != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"state": *filter.State})
	} else if filter.ExcludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"state": domain.SlotStateCancelled})
	}

	// Внутри транзакции выборка дня блокируется, чтобы генератор и shift
	// не гонялись с конкурирующими вставками
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// ListFreeByDoctors получает свободные слоты набора врачей начиная с даты fromDate
// Используется поиском по специальности; сортировка (slot_date, start_time)
func (r *Repository) ListFreeByDoctors(ctx context.Context, doctorIDs []int64, fromDate time.Time) ([]*domain.Slot, error) {
	if len(doctorIDs) == 0 {
		return []*domain.Slot{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where("doctor_id = ANY(?)", pq.Array(doctorIDs)).
		Where(squirrel.Eq{"state": domain.SlotStateFree}).
		Where(squirrel.GtOrEq{"slot_date": fromDate}).
		OrderBy("slot_date ASC, start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListFreeByDoctors - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListFreeByDoctors - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// FindOverlapping получает неотменённые слоты врача на дату, пересекающиеся
// с окном [start, end). Граничащие интервалы пересечением не считаются
func (r *Repository) FindOverlapping(
	ctx context.Context,
	doctorID int64,
	date time.Time,
	start, end types.TimeString,
	excludeID *int64,
) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"doctor_id": doctorID}).
		Where(squirrel.Eq{"slot_date": date}).
		Where(squirrel.NotEq{"state": domain.SlotStateCancelled}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start}).
		OrderBy("start_time ASC")

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// FindFreeByDoctorDateTime ищет свободный слот врача с точным временем начала
// Используется legacy-путём бронирования по голой дате
func (r *Repository) FindFreeByDoctorDateTime(
	ctx context.Context,
	doctorID int64,
	date time.Time,
	start types.TimeString,
) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{
			"doctor_id":  doctorID,
			"slot_date":  date,
			"start_time": start,
			"state":      domain.SlotStateFree,
		}).
		Limit(1)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindFreeByDoctorDateTime - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindFreeByDoctorDateTime - scan slot: %v", ErrScanRow, err)
	}

	return slot, nil
}

// MarkBooked переводит слот free -> booked условным обновлением
// Это и есть compare-and-set против гонки двух бронирований: при конкурентном
// бронировании выигрывает ровно одна транзакция, остальные получают
// ErrSlotUnavailable
func (r *Repository) MarkBooked(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("state", domain.SlotStateBooked).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"id":    id,
			"state": domain.SlotStateFree,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkBooked - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkBooked - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkBooked - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotUnavailable
	}

	return nil
}

// Release возвращает слот booked -> free
func (r *Repository) Release(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("state", domain.SlotStateFree).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"id":    id,
			"state": domain.SlotStateBooked,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Release - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Release - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Release - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// CancelByIDs переводит слоты в cancelled, пропуская уже отменённые
// Возвращает ID реально изменённых слотов - операция идемпотентна
func (r *Repository) CancelByIDs(ctx context.Context, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return []int64{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("state", domain.SlotStateCancelled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where("id = ANY(?)", pq.Array(ids)).
		Where(squirrel.NotEq{"state": domain.SlotStateCancelled}).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CancelByIDs - build update query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CancelByIDs - execute update: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanIDs(rows)
}

// CancelByDate переводит в cancelled все неотменённые слоты на дату
// При doctorID != nil операция ограничена слотами этого врача
func (r *Repository) CancelByDate(ctx context.Context, date time.Time, doctorID *int64) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("slots").
		Set("state", domain.SlotStateCancelled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"slot_date": date}).
		Where(squirrel.NotEq{"state": domain.SlotStateCancelled})

	if doctorID != nil {
		updateBuilder = updateBuilder.Where(squirrel.Eq{"doctor_id": *doctorID})
	}

	query, args, err := updateBuilder.
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CancelByDate - build update query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CancelByDate - execute update: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanIDs(rows)
}

// UpdateSchedule обновляет расписание слота на месте
// ID и состояние слота не меняются, привязанный приём сохраняется
func (r *Repository) UpdateSchedule(
	ctx context.Context,
	id int64,
	date time.Time,
	start, end types.TimeString,
) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("slot_date", date).
		Set("start_time", start).
		Set("end_time", end).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// UpdateDeliveryMode обновляет тип приёма слота (телемедицина/очный)
func (r *Repository) UpdateDeliveryMode(ctx context.Context, id int64, mode domain.DeliveryMode) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("delivery_mode", mode).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateDeliveryMode - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateDeliveryMode - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateDeliveryMode - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// scanSlot сканирует одну строку в слот
func scanSlot(row *sql.Row) (*domain.Slot, error) {
	var slot domain.Slot
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&slot.ID,
		&slot.DoctorID,
		&slot.Date,
		&slot.StartTime,
		&slot.EndTime,
		&slot.DurationMinutes,
		&slot.DeliveryMode,
		&slot.State,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return &slot, nil
}

// scanSlots сканирует результаты запроса в слайс слотов
func scanSlots(rows *sql.Rows) ([]*domain.Slot, error) {
	slots := make([]*domain.Slot, 0)

	for rows.Next() {
		var slot domain.Slot
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&slot.ID,
			&slot.DoctorID,
			&slot.Date,
			&slot.StartTime,
			&slot.EndTime,
			&slot.DurationMinutes,
			&slot.DeliveryMode,
			&slot.State,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %v", ErrScanRow, err)
		}

		slot.CreatedAt = createdAt.Time
		slot.UpdatedAt = updatedAt.Time

		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// scanIDs сканирует результаты запроса в слайс идентификаторов
func scanIDs(rows *sql.Rows) ([]int64, error) {
	ids := make([]int64, 0)

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: scanIDs - scan id: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanIDs - rows error: %v", ErrScanRow, err)
	}

	return ids, nil
}
