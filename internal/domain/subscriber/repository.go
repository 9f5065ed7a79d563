package subscriber

import (
	"context"
)

// Repository defines the operations for persisting and retrieving Subscriber entities.
type Repository interface {
	Create(ctx context.Context, s *Subscriber) error
	GetByTelegramID(ctx context.Context, telegramID int64) (*Subscriber, error)
	Update(ctx context.Context, s *Subscriber) error // FirstName, Email, IsActive
	ListActive(ctx context.Context) ([]*Subscriber, error)
	ListAll(ctx context.Context) ([]*Subscriber, error)
}
