// internal/app/broadcast_service.go
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"

	"numerology_fortune_bot/internal/domain/delivery"
	"numerology_fortune_bot/internal/domain/subscriber"
	domainTelegram "numerology_fortune_bot/internal/domain/telegram"
	idb "numerology_fortune_bot/internal/infra/database"
)

var ErrBroadcastInProgress = errors.New("a broadcast is already running")

// BroadcastReport summarizes one SendDaily run.
type BroadcastReport struct {
	Sent    int // delivered in this run
	Skipped int // already delivered earlier for the same day
	Failed  int
}

func (r BroadcastReport) String() string {
	return fmt.Sprintf("sent=%d skipped=%d failed=%d", r.Sent, r.Skipped, r.Failed)
}

// BroadcastService pushes the daily fortune to every active subscriber.
type BroadcastService struct {
	subscriberRepo subscriber.Repository
	deliveryRepo   delivery.Repository
	fortunes       *FortuneService
	telegramClient domainTelegram.Client
	logger         *logrus.Entry
	running        sync.Mutex
}

func NewBroadcastService(
	sr subscriber.Repository,
	dr delivery.Repository,
	fortunes *FortuneService,
	tc domainTelegram.Client,
	logger *logrus.Entry,
) *BroadcastService {
	return &BroadcastService{
		subscriberRepo: sr,
		deliveryRepo:   dr,
		fortunes:       fortunes,
		telegramClient: tc,
		logger:         logger,
	}
}

// SendDaily sends the fortune for date to each active subscriber who has
// not received it yet. A delivery is recorded only after Telegram accepted
// the message, so a failed send is retried by the next run for that day.
// Per-subscriber failures are counted, not returned.
func (s *BroadcastService) SendDaily(ctx context.Context, date time.Time) (BroadcastReport, error) {
	var report BroadcastReport
	if !s.running.TryLock() {
		return report, ErrBroadcastInProgress
	}
	defer s.running.Unlock()

	log := s.logger.WithField("fortune_date", date.Format("2006-01-02"))
	log.Info("Starting daily fortune broadcast")

	subscribers, err := s.subscriberRepo.ListActive(ctx)
	if err != nil {
		return report, fmt.Errorf("failed to list active subscribers: %w", err)
	}
	if len(subscribers) == 0 {
		log.Info("No active subscribers, nothing to send")
		return report, nil
	}

	for _, sub := range subscribers {
		if err := ctx.Err(); err != nil {
			log.WithError(err).Warn("Broadcast interrupted")
			return report, err
		}

		subLog := log.WithFields(logrus.Fields{
			"subscriber_id": sub.ID,
			"telegram_id":   sub.TelegramID,
		})

		done, err := s.deliveryRepo.Exists(ctx, sub.ID, date)
		if err != nil {
			subLog.WithError(err).Error("Failed to check delivery")
			report.Failed++
			continue
		}
		if done {
			report.Skipped++
			continue
		}

		res, err := s.fortunes.Tell(ctx, sub.Email, date)
		if err != nil {
			subLog.WithError(err).Warn("Could not compute fortune for stored email")
			report.Failed++
			continue
		}

		text := RenderFortune(res, date)
		if err := s.telegramClient.SendMessage(sub.TelegramID, text, &telebot.SendOptions{ParseMode: telebot.ModeHTML}); err != nil {
			subLog.WithError(err).Error("Failed to send daily fortune")
			report.Failed++
			continue
		}

		err = s.deliveryRepo.Create(ctx, &delivery.Delivery{SubscriberID: sub.ID, FortuneDate: date})
		if err != nil && !errors.Is(err, idb.ErrDuplicateDelivery) {
			// The user got the message; only the bookkeeping failed.
			subLog.WithError(err).Error("Failed to record delivery")
		}
		report.Sent++
	}

	log.WithField("report", report.String()).Info("Daily fortune broadcast finished")
	return report, nil
}
