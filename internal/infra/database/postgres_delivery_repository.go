// internal/infra/database/postgres_delivery_repository.go
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"numerology_fortune_bot/internal/domain/delivery"
)

var ErrDuplicateDelivery = errors.New("fortune already delivered to this subscriber for this date")

type PostgresDeliveryRepository struct {
	db *sql.DB
}

func NewPostgresDeliveryRepository(db *sql.DB) *PostgresDeliveryRepository {
	return &PostgresDeliveryRepository{db: db}
}

func (r *PostgresDeliveryRepository) Create(ctx context.Context, d *delivery.Delivery) error {
	query := `INSERT INTO fortune_deliveries (subscriber_id, fortune_date)
               VALUES ($1, $2::date)
               RETURNING id, delivered_at`
	err := r.db.QueryRowContext(ctx, query, d.SubscriberID, calendarDay(d.FortuneDate)).Scan(&d.ID, &d.DeliveredAt)
	if err != nil {
		if isUniqueViolation(err, "fortune_deliveries_subscriber_date_key") {
			return ErrDuplicateDelivery
		}
		return fmt.Errorf("error creating fortune delivery: %w", err)
	}
	return nil
}

func (r *PostgresDeliveryRepository) Exists(ctx context.Context, subscriberID int64, fortuneDate time.Time) (bool, error) {
	query := `SELECT 1 FROM fortune_deliveries WHERE subscriber_id = $1 AND fortune_date = $2::date`
	var one int
	err := r.db.QueryRowContext(ctx, query, subscriberID, calendarDay(fortuneDate)).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("error checking fortune delivery: %w", err)
	}
	return true, nil
}

func (r *PostgresDeliveryRepository) CountForDate(ctx context.Context, fortuneDate time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM fortune_deliveries WHERE fortune_date = $1::date`
	var n int
	if err := r.db.QueryRowContext(ctx, query, calendarDay(fortuneDate)).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting fortune deliveries: %w", err)
	}
	return n, nil
}
