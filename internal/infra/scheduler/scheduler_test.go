package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"numerology_fortune_bot/internal/app"
)

type recordingSender struct {
	dates  []time.Time
	report app.BroadcastReport
	err    error
}

func (r *recordingSender) SendDaily(_ context.Context, date time.Time) (app.BroadcastReport, error) {
	r.dates = append(r.dates, date)
	return r.report, r.err
}

func newTestScheduler(sender DailySender, loc *time.Location, spec string) (*FortuneScheduler, *logtest.Hook) {
	l, hook := logtest.NewNullLogger()
	return NewFortuneScheduler(sender, loc, logrus.NewEntry(l), spec), hook
}

func TestRunOnce_UsesLocalCalendarDay(t *testing.T) {
	sender := &recordingSender{report: app.BroadcastReport{Sent: 3}}
	tokyo := time.FixedZone("JST", 9*60*60)
	s, hook := newTestScheduler(sender, tokyo, "0 8 * * *")
	s.now = func() time.Time { return time.Date(2024, time.January, 15, 23, 0, 0, 0, time.UTC) }

	s.RunOnce(context.Background())

	require.Len(t, sender.dates, 1)
	assert.Equal(t, time.Date(2024, time.January, 16, 0, 0, 0, 0, tokyo), sender.dates[0])
	assert.Equal(t, "sent=3 skipped=0 failed=0", hook.LastEntry().Data["report"])
}

func TestRunOnce_LogsErrors(t *testing.T) {
	sender := &recordingSender{err: errors.New("db down")}
	s, hook := newTestScheduler(sender, time.UTC, "0 8 * * *")

	s.RunOnce(context.Background())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)

	sender.err = app.ErrBroadcastInProgress
	s.RunOnce(context.Background())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestStart_InvalidSpec(t *testing.T) {
	s, _ := newTestScheduler(&recordingSender{}, time.UTC, "every morning")
	assert.Error(t, s.Start())
}

func TestStartStop(t *testing.T) {
	s, _ := newTestScheduler(&recordingSender{}, nil, "0 8 * * *")
	require.NoError(t, s.Start())
	s.Stop()
}
