package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"numerology_fortune_bot/internal/app"
)

const broadcastTimeout = 30 * time.Minute

// DailySender is the part of the broadcast service the scheduler needs.
type DailySender interface {
	SendDaily(ctx context.Context, date time.Time) (app.BroadcastReport, error)
}

// FortuneScheduler triggers the daily fortune broadcast.
type FortuneScheduler struct {
	cronEngine *cron.Cron
	sender     DailySender
	location   *time.Location
	logger     *logrus.Entry
	cronSpec   string
	now        func() time.Time
}

func NewFortuneScheduler(
	sender DailySender,
	location *time.Location,
	logger *logrus.Entry,
	cronSpecDaily string, // e.g., "0 8 * * *" (08:00 daily)
) *FortuneScheduler {
	if location == nil {
		location = time.Local
	}
	return &FortuneScheduler{
		cronEngine: cron.New(cron.WithLocation(location)),
		sender:     sender,
		location:   location,
		logger:     logger,
		cronSpec:   cronSpecDaily,
		now:        time.Now,
	}
}

// Start registers the daily job and starts the cron engine. An invalid
// cron spec is returned as an error.
func (s *FortuneScheduler) Start() error {
	s.logger.Info("Starting fortune scheduler...")

	_, err := s.cronEngine.AddFunc(s.cronSpec, func() {
		s.logger.Info("Cron job triggered for daily fortune broadcast.")
		ctx, cancel := context.WithTimeout(context.Background(), broadcastTimeout)
		defer cancel()
		s.RunOnce(ctx)
	})
	if err != nil {
		return fmt.Errorf("could not add daily fortune cron job %q: %w", s.cronSpec, err)
	}

	s.cronEngine.Start()
	s.logger.WithField("cron_spec", s.cronSpec).Info("Fortune scheduler started.")
	return nil
}

// RunOnce sends the fortune for the current day in the scheduler's
// location.
func (s *FortuneScheduler) RunOnce(ctx context.Context) {
	now := s.now().In(s.location)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.location)

	report, err := s.sender.SendDaily(ctx, today)
	if err != nil {
		if errors.Is(err, app.ErrBroadcastInProgress) {
			s.logger.Warn("Previous broadcast still running, skipping this trigger.")
			return
		}
		s.logger.WithError(err).Error("Daily fortune broadcast failed.")
		return
	}
	s.logger.WithField("report", report.String()).Info("Daily fortune broadcast completed.")
}

func (s *FortuneScheduler) Stop() {
	s.logger.Info("Stopping fortune scheduler...")
	ctx := s.cronEngine.Stop() // Stops the scheduler from adding new jobs, waits for running jobs.
	<-ctx.Done()
	s.logger.Info("Fortune scheduler gracefully stopped.")
}
