// internal/domain/delivery/repository.go
package delivery

import (
	"context"
	"time"
)

// Repository tracks which subscribers already received a day's fortune.
type Repository interface {
	Create(ctx context.Context, d *Delivery) error
	Exists(ctx context.Context, subscriberID int64, fortuneDate time.Time) (bool, error)
	CountForDate(ctx context.Context, fortuneDate time.Time) (int, error)
}
