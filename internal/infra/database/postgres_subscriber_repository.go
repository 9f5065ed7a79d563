package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"numerology_fortune_bot/internal/domain/subscriber"
)

var ErrSubscriberNotFound = errors.New("subscriber not found")
var ErrDuplicateTelegramID = errors.New("subscriber with this Telegram ID already exists")

const subscriberColumns = `id, telegram_id, first_name, email, is_active, created_at, updated_at`

type PostgresSubscriberRepository struct {
	db *sql.DB
}

func NewPostgresSubscriberRepository(db *sql.DB) *PostgresSubscriberRepository {
	return &PostgresSubscriberRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubscriber(row rowScanner) (*subscriber.Subscriber, error) {
	s := &subscriber.Subscriber{}
	err := row.Scan(&s.ID, &s.TelegramID, &s.FirstName, &s.Email, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func (r *PostgresSubscriberRepository) Create(ctx context.Context, s *subscriber.Subscriber) error {
	query := `INSERT INTO subscribers (telegram_id, first_name, email, is_active)
               VALUES ($1, $2, $3, $4)
               RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, s.TelegramID, s.FirstName, s.Email, s.IsActive).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "subscribers_telegram_id_key") {
			return ErrDuplicateTelegramID
		}
		return fmt.Errorf("error creating subscriber: %w", err)
	}
	return nil
}

func (r *PostgresSubscriberRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*subscriber.Subscriber, error) {
	query := `SELECT ` + subscriberColumns + ` FROM subscribers WHERE telegram_id = $1`
	s, err := scanSubscriber(r.db.QueryRowContext(ctx, query, telegramID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSubscriberNotFound
		}
		return nil, fmt.Errorf("error getting subscriber by Telegram ID: %w", err)
	}
	return s, nil
}

func (r *PostgresSubscriberRepository) Update(ctx context.Context, s *subscriber.Subscriber) error {
	query := `UPDATE subscribers
               SET first_name = $1, email = $2, is_active = $3, updated_at = NOW()
               WHERE id = $4
               RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query, s.FirstName, s.Email, s.IsActive, s.ID).Scan(&s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrSubscriberNotFound
		}
		return fmt.Errorf("error updating subscriber: %w", err)
	}
	return nil
}

func (r *PostgresSubscriberRepository) ListActive(ctx context.Context) ([]*subscriber.Subscriber, error) {
	query := `SELECT ` + subscriberColumns + ` FROM subscribers WHERE is_active = TRUE ORDER BY id`
	return r.list(ctx, query, "active")
}

func (r *PostgresSubscriberRepository) ListAll(ctx context.Context) ([]*subscriber.Subscriber, error) {
	query := `SELECT ` + subscriberColumns + ` FROM subscribers ORDER BY id`
	return r.list(ctx, query, "all")
}

func (r *PostgresSubscriberRepository) list(ctx context.Context, query, kind string) ([]*subscriber.Subscriber, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing %s subscribers: %w", kind, err)
	}
	defer rows.Close()

	subscribers := make([]*subscriber.Subscriber, 0)
	for rows.Next() {
		s, err := scanSubscriber(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning %s subscriber: %w", kind, err)
		}
		subscribers = append(subscribers, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s subscribers: %w", kind, err)
	}
	return subscribers, nil
}
