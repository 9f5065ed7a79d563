// internal/domain/delivery/delivery.go
package delivery

import "time"

// Delivery records that a subscriber was sent the fortune for a given
// calendar day. It deliberately holds no fortune content.
// Corresponds to the 'fortune_deliveries' table.
type Delivery struct {
	ID           int64
	SubscriberID int64     // Foreign Key to subscribers.id
	FortuneDate  time.Time // calendar day the fortune was computed for
	DeliveredAt  time.Time
}
