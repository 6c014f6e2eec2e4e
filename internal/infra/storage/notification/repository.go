package notification

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/campushub/CB-ReservationService/internal/domain"
	"github.com/campushub/CB-ReservationService/pkg/dbmetrics"
	"github.com/campushub/CB-ReservationService/pkg/psqlbuilder"
)

// Переиспользуем интерфейс executor из dbmetrics
type DBExecutor = dbmetrics.DBExecutor

// intentColumns полный набор колонок таблицы notification_intents
var intentColumns = []string{
	"id",
	"intent_key",
	"recipient_id",
	"kind",
	"booking_id",
	"waitlist_entry_id",
	"resource_id",
	"occurs_at",
	"context",
	"dispatched_at",
	"created_at",
}

// Repository репозиторий notification outbox
// Intent записывается в той же транзакции, что и изменение состояния,
// поэтому потерянных уведомлений при частичном сбое не бывает
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория outbox
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create записывает intent в outbox
// Вызывается внутри транзакции бизнес-операции (через контекст)
func (r *Repository) Create(ctx context.Context, intent *domain.NotificationIntent) (*domain.NotificationIntent, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	contextJSON, err := json.Marshal(intent.Context)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - marshal context: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Insert("notification_intents").
		Columns(
			"intent_key",
			"recipient_id",
			"kind",
			"booking_id",
			"waitlist_entry_id",
			"resource_id",
			"occurs_at",
			"context",
		).
		Values(
			intent.IntentKey,
			intent.RecipientID,
			intent.Kind,
			intent.BookingID,
			intent.WaitlistEntryID,
			intent.ResourceID,
			intent.OccursAt,
			contextJSON,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&intent.ID,
		&createdAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	intent.CreatedAt = createdAt.Time

	return intent, nil
}

// GetPending получает неотправленные intents, старые первыми
func (r *Repository) GetPending(ctx context.Context, limit uint64) ([]*domain.NotificationIntent, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(intentColumns...).
		From("notification_intents").
		Where("dispatched_at IS NULL").
		OrderBy("created_at ASC").
		Limit(limit).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetPending - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetPending - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanIntents(rows)
}

// MarkDispatched помечает intent как переданный сервису доставки
func (r *Repository) MarkDispatched(ctx context.Context, id int64, dispatchedAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("notification_intents").
		Set("dispatched_at", dispatchedAt).
		Where(squirrel.Eq{"id": id}).
		Where("dispatched_at IS NULL").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkDispatched - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkDispatched - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkDispatched - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrIntentNotFound
	}

	return nil
}

// scanIntents сканирует результаты запроса в слайс intents
func (r *Repository) scanIntents(rows *sql.Rows) ([]*domain.NotificationIntent, error) {
	intents := make([]*domain.NotificationIntent, 0)

	for rows.Next() {
		var intent domain.NotificationIntent
		var createdAt sql.NullTime
		var contextJSON []byte

		err := rows.Scan(
			&intent.ID,
			&intent.IntentKey,
			&intent.RecipientID,
			&intent.Kind,
			&intent.BookingID,
			&intent.WaitlistEntryID,
			&intent.ResourceID,
			&intent.OccursAt,
			&contextJSON,
			&intent.DispatchedAt,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanIntents - scan row: %v", ErrScanRow, err)
		}

		if len(contextJSON) > 0 {
			if err := json.Unmarshal(contextJSON, &intent.Context); err != nil {
				return nil, fmt.Errorf("%w: scanIntents - unmarshal context: %v", ErrScanRow, err)
			}
		}

		intent.CreatedAt = createdAt.Time
		intents = append(intents, &intent)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanIntents - rows error: %v", ErrScanRow, err)
	}

	return intents, nil
}
