package subscriber

import (
	"time"
)

// Subscriber is a Telegram user who registered an email address for
// fortune readings.
type Subscriber struct {
	ID         int64
	TelegramID int64
	FirstName  string
	Email      string // as typed by the user, never a computed fortune
	IsActive   bool   // receives the daily broadcast
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
