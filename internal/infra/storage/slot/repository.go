package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SAMASS-BookingService/internal/domain"
	"github.com/m04kA/SAMASS-BookingService/pkg/dbmetrics"
	"github.com/m04kA/SAMASS-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий для работы со слотами доступности
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// FindFreeForUpdate получает свободный слот по ID с эксклюзивной блокировкой строки.
// Блокировка держится до конца объемлющей транзакции, поэтому параллельные
// бронирования одного слота сериализуются: проигравший после коммита победителя
// не видит строку (is_booked уже true или строка удалена) и получает ErrSlotNotFound.
// Если блокировка не получена за lock_timeout транзакции, возвращает ErrSlotLocked.
func (r *Repository) FindFreeForUpdate(ctx context.Context, id int64) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"start_at",
		"end_at",
		"is_booked",
		"created_at",
		"updated_at",
	).
		From("availability_slots").
		Where(squirrel.Eq{"id": id, "is_booked": false})

	// FOR UPDATE имеет смысл только внутри транзакции
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindFreeForUpdate - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Slot
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.StartAt,
		&s.EndAt,
		&s.IsBooked,
		&s.CreatedAt,
		&s.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if isLockNotAvailable(err) {
		return nil, ErrSlotLocked
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindFreeForUpdate - scan slot: %v", ErrScanRow, err)
	}

	return &s, nil
}

// GetByID получает слот по ID независимо от состояния is_booked
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"start_at",
		"end_at",
		"is_booked",
		"created_at",
		"updated_at",
	).
		From("availability_slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Slot
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.StartAt,
		&s.EndAt,
		&s.IsBooked,
		&s.CreatedAt,
		&s.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	return &s, nil
}

// Insert вставляет слот как есть, без проверки пересечений.
// Используется движком бронирования: дочерние слоты разбиения
// не пересекаются по построению.
func (r *Repository) Insert(ctx context.Context, s *domain.Slot) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if !s.Interval().IsValid() {
		return nil, ErrInvalidInterval
	}

	query, args, err := psqlbuilder.Insert("availability_slots").
		Columns("start_at", "end_at", "is_booked").
		Values(s.StartAt, s.EndAt, s.IsBooked).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Insert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Insert - execute insert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// InsertFree вставляет свободный слот, предварительно удалив все пересекающиеся
// слоты в любом состоянии. Политика last-writer-wins для ручного редактирования
// календаря: конфликтующие данные намеренно уничтожаются, а не отклоняются.
func (r *Repository) InsertFree(ctx context.Context, interval domain.Interval) (*domain.Slot, error) {
	if !interval.IsValid() {
		return nil, ErrInvalidInterval
	}

	if _, err := r.DeleteOverlapping(ctx, interval); err != nil {
		return nil, err
	}

	return r.Insert(ctx, &domain.Slot{
		StartAt:  interval.Start,
		EndAt:    interval.End,
		IsBooked: false,
	})
}

// DeleteOverlapping удаляет все слоты, пересекающиеся с интервалом.
// Возвращает количество удаленных строк.
func (r *Repository) DeleteOverlapping(ctx context.Context, interval domain.Interval) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// Полуоткрытые интервалы: касание границ пересечением не считается
	query, args, err := psqlbuilder.Delete("availability_slots").
		Where(squirrel.Lt{"start_at": interval.End}).
		Where(squirrel.Gt{"end_at": interval.Start}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteOverlapping - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteOverlapping - execute delete: %v", ErrExecQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteOverlapping - get rows affected: %v", ErrExecQuery, err)
	}

	return deleted, nil
}

// QueryFree возвращает свободные слоты, ещё не закончившиеся к текущему моменту.
// Если date задана, результат ограничивается слотами, начинающимися в этот
// календарный день. Сортировка по времени начала.
func (r *Repository) QueryFree(ctx context.Context, now time.Time, date *time.Time) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"start_at",
		"end_at",
		"is_booked",
		"created_at",
		"updated_at",
	).
		From("availability_slots").
		Where(squirrel.Eq{"is_booked": false}).
		Where(squirrel.GtOrEq{"end_at": now}).
		OrderBy("start_at ASC")

	if date != nil {
		dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
		dayEnd := dayStart.AddDate(0, 0, 1)
		selectBuilder = selectBuilder.
			Where(squirrel.GtOrEq{"start_at": dayStart}).
			Where(squirrel.Lt{"start_at": dayEnd})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: QueryFree - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: QueryFree - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// List возвращает все слоты календаря, включая занятые и истекшие.
// Используется админкой как полная картина календаря.
func (r *Repository) List(ctx context.Context) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"start_at",
		"end_at",
		"is_booked",
		"created_at",
		"updated_at",
	).
		From("availability_slots").
		OrderBy("start_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// Update обновляет границы и состояние слота
func (r *Repository) Update(ctx context.Context, s *domain.Slot) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if !s.Interval().IsValid() {
		return ErrInvalidInterval
	}

	query, args, err := psqlbuilder.Update("availability_slots").
		Set("start_at", s.StartAt).
		Set("end_at", s.EndAt).
		Set("is_booked", s.IsBooked).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": s.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// SetBooked переключает флаг is_booked слота.
// Используется при отмене бронирования для возврата слота в свободный пул.
func (r *Repository) SetBooked(ctx context.Context, id int64, booked bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("availability_slots").
		Set("is_booked", booked).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetBooked - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetBooked - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetBooked - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// Delete удаляет слот
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("availability_slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// GetByIDs получает слоты по списку ID
func (r *Repository) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Slot, error) {
	if len(ids) == 0 {
		return []*domain.Slot{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"start_at",
		"end_at",
		"is_booked",
		"created_at",
		"updated_at",
	).
		From("availability_slots").
		Where(squirrel.Eq{"id": ids}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// scanSlots сканирует результаты запроса в слайс слотов
func (r *Repository) scanSlots(rows *sql.Rows) ([]*domain.Slot, error) {
	slots := make([]*domain.Slot, 0)

	for rows.Next() {
		var s domain.Slot
		err := rows.Scan(
			&s.ID,
			&s.StartAt,
			&s.EndAt,
			&s.IsBooked,
			&s.CreatedAt,
			&s.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// isLockNotAvailable возвращает true для ошибки PostgreSQL 55P03
// (lock_not_available — блокировка не получена за lock_timeout)
func isLockNotAvailable(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "55P03"
}
