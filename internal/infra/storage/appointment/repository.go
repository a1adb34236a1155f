package appointment

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
)

// appointmentColumns полный набор колонок таблицы appointments
var appointmentColumns = []string{
	"id",
	"name",
	"slot_id",
	"patient_id",
	"doctor_id",
	"institution_id",
	"specialty_id",
	"urgency",
	"visit_type",
	"delivery_mode",
	"state",
	"created_by",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с приёмами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория приёмов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый приём
// Вызывается только внутри транзакции бронирования вместе с условным
// переводом слота в booked
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"name",
			"slot_id",
			"patient_id",
			"doctor_id",
			"institution_id",
			"specialty_id",
			"urgency",
			"visit_type",
			"delivery_mode",
			"state",
			"created_by",
		).
		Values(
			appt.Name,
			appt.SlotID,
			appt.PatientID,
			appt.DoctorID,
			appt.InstitutionID,
			appt.SpecialtyID,
			appt.Urgency,
			appt.VisitType,
			appt.DeliveryMode,
			appt.State,
			appt.CreatedBy,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return appt, nil
}

// GetByID получает приём по ID
// Внутри транзакции строка блокируется через FOR UPDATE
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appt, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return appt, nil
}

// GetActiveBySlotID получает неотменённый приём, привязанный к слоту
// На слот может ссылаться не более одного активного приёма
func (r *Repository) GetActiveBySlotID(ctx context.Context, slotID int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"slot_id": slotID}).
		Where(squirrel.NotEq{"state": domain.AppointmentStateCancelled}).
		Limit(1)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveBySlotID - build select query: %v", ErrBuildQuery, err)
	}

	appt, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveBySlotID - scan appointment: %v", ErrScanRow, err)
	}

	return appt, nil
}

// ListByPatient получает приёмы пациента, опционально фильтруя по дате слота
// Сортировка по дате и времени слота, сначала новые
func (r *Repository) ListByPatient(ctx context.Context, patientID int64, date *time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(prefixed("a", appointmentColumns)...).
		From("appointments a").
		Join("slots s ON s.id = a.slot_id").
		Where(squirrel.Eq{"a.patient_id": patientID}).
		OrderBy("s.slot_date DESC, s.start_time DESC")

	if date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"s.slot_date": *date})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByPatient - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByPatient - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// UpdateSlot перенацеливает приём на другой слот
func (r *Repository) UpdateSlot(ctx context.Context, id int64, slotID int64) error {
	return r.update(ctx, "UpdateSlot", id, map[string]interface{}{
		"slot_id": slotID,
	})
}

// UpdateState обновляет состояние приёма
func (r *Repository) UpdateState(ctx context.Context, id int64, state domain.AppointmentState) error {
	return r.update(ctx, "UpdateState", id, map[string]interface{}{
		"state": state,
	})
}

// UpdateDeliveryMode обновляет тип приёма
func (r *Repository) UpdateDeliveryMode(ctx context.Context, id int64, mode domain.DeliveryMode) error {
	return r.update(ctx, "UpdateDeliveryMode", id, map[string]interface{}{
		"delivery_mode": mode,
	})
}

// UpdateMetadata обновляет срочность и тип визита приёма
// Поля со значением nil не затрагиваются
func (r *Repository) UpdateMetadata(ctx context.Context, id int64, urgency *domain.Urgency, visitType *string) error {
	sets := map[string]interface{}{}
	if urgency != nil {
		sets["urgency"] = *urgency
	}
	if visitType != nil {
		sets["visit_type"] = *visitType
	}
	if len(sets) == 0 {
		return nil
	}
	return r.update(ctx, "UpdateMetadata", id, sets)
}

// CancelBySlotIDs каскадно отменяет активные приёмы, привязанные к слотам
// Возвращает количество отменённых приёмов
func (r *Repository) CancelBySlotIDs(ctx context.Context, slotIDs []int64) (int64, error) {
	if len(slotIDs) == 0 {
		return 0, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("state", domain.AppointmentStateCancelled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where("slot_id = ANY(?)", pq.Array(slotIDs)).
		Where(squirrel.NotEq{"state": domain.AppointmentStateCancelled}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CancelBySlotIDs - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CancelBySlotIDs - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: CancelBySlotIDs - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

func (r *Repository) update(ctx context.Context, op string, id int64, sets map[string]interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("appointments").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	for column, value := range sets {
		updateBuilder = updateBuilder.Set(column, value)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// prefixed добавляет алиас таблицы к именам колонок
func prefixed(alias string, columns []string) []string {
	result := make([]string, len(columns))
	for i, c := range columns {
		result[i] = alias + "." + c
	}
	return result
}

// scanAppointment сканирует одну строку в приём
func scanAppointment(row *sql.Row) (*domain.Appointment, error) {
	var appt domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&appt.ID,
		&appt.Name,
		&appt.SlotID,
		&appt.PatientID,
		&appt.DoctorID,
		&appt.InstitutionID,
		&appt.SpecialtyID,
		&appt.Urgency,
		&appt.VisitType,
		&appt.DeliveryMode,
		&appt.State,
		&appt.CreatedBy,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return &appt, nil
}

// scanAppointments сканирует результаты запроса в слайс приёмов
func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		var appt domain.Appointment
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&appt.ID,
			&appt.Name,
			&appt.SlotID,
			&appt.PatientID,
			&appt.DoctorID,
			&appt.InstitutionID,
			&appt.SpecialtyID,
			&appt.Urgency,
			&appt.VisitType,
			&appt.DeliveryMode,
			&appt.State,
			&appt.CreatedBy,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}

		appt.CreatedAt = createdAt.Time
		appt.UpdatedAt = updatedAt.Time

		appointments = append(appointments, &appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}
