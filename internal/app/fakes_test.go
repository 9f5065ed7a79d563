package app

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"gopkg.in/telebot.v3"

	"numerology_fortune_bot/internal/domain/delivery"
	"numerology_fortune_bot/internal/domain/fortune"
	"numerology_fortune_bot/internal/domain/subscriber"
	idb "numerology_fortune_bot/internal/infra/database"
)

var jan15 = time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)

func testLogger() (*logrus.Entry, *logtest.Hook) {
	l, hook := logtest.NewNullLogger()
	l.SetLevel(logrus.DebugLevel)
	return logrus.NewEntry(l), hook
}

type fakeSubscriberRepo struct {
	mu      sync.Mutex
	nextID  int64
	byTG    map[int64]*subscriber.Subscriber
	listErr error
}

func newFakeSubscriberRepo(subs ...*subscriber.Subscriber) *fakeSubscriberRepo {
	r := &fakeSubscriberRepo{byTG: map[int64]*subscriber.Subscriber{}}
	for _, s := range subs {
		_ = r.Create(context.Background(), s)
	}
	return r
}

func (r *fakeSubscriberRepo) Create(_ context.Context, s *subscriber.Subscriber) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byTG[s.TelegramID]; ok {
		return idb.ErrDuplicateTelegramID
	}
	r.nextID++
	s.ID = r.nextID
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	cp := *s
	r.byTG[s.TelegramID] = &cp
	return nil
}

func (r *fakeSubscriberRepo) GetByTelegramID(_ context.Context, telegramID int64) (*subscriber.Subscriber, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byTG[telegramID]
	if !ok {
		return nil, idb.ErrSubscriberNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSubscriberRepo) Update(_ context.Context, s *subscriber.Subscriber) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byTG[s.TelegramID]; !ok {
		return idb.ErrSubscriberNotFound
	}
	s.UpdatedAt = time.Now()
	cp := *s
	r.byTG[s.TelegramID] = &cp
	return nil
}

func (r *fakeSubscriberRepo) list(activeOnly bool) ([]*subscriber.Subscriber, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]*subscriber.Subscriber, 0, len(r.byTG))
	for _, s := range r.byTG {
		if !activeOnly || s.IsActive {
			cp := *s
			out = append(out, &cp)
		}
	}
	slices.SortFunc(out, func(a, b *subscriber.Subscriber) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (r *fakeSubscriberRepo) ListActive(context.Context) ([]*subscriber.Subscriber, error) {
	return r.list(true)
}

func (r *fakeSubscriberRepo) ListAll(context.Context) ([]*subscriber.Subscriber, error) {
	return r.list(false)
}

type fakeDeliveryRepo struct {
	mu        sync.Mutex
	delivered map[string]bool
	createErr error
}

func newFakeDeliveryRepo() *fakeDeliveryRepo {
	return &fakeDeliveryRepo{delivered: map[string]bool{}}
}

func deliveryKey(subscriberID int64, date time.Time) string {
	return date.Format("2006-01-02") + "/" + strconv.FormatInt(subscriberID, 10)
}

func (r *fakeDeliveryRepo) Create(_ context.Context, d *delivery.Delivery) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	k := deliveryKey(d.SubscriberID, d.FortuneDate)
	if r.delivered[k] {
		return idb.ErrDuplicateDelivery
	}
	r.delivered[k] = true
	d.DeliveredAt = time.Now()
	return nil
}

func (r *fakeDeliveryRepo) Exists(_ context.Context, subscriberID int64, date time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.delivered[deliveryKey(subscriberID, date)], nil
}

func (r *fakeDeliveryRepo) CountForDate(_ context.Context, date time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	prefix := date.Format("2006-01-02") + "/"
	n := 0
	for k := range r.delivered {
		if strings.HasPrefix(k, prefix) {
			n++
		}
	}
	return n, nil
}

type sentMessage struct {
	chatID  int64
	text    string
	options *telebot.SendOptions
}

type fakeClient struct {
	mu     sync.Mutex
	sent   []sentMessage
	failTo  map[int64]bool
	block   chan struct{}
	entered chan struct{}
}

func (c *fakeClient) SendMessage(chatID int64, text string, options *telebot.SendOptions) error {
	if c.block != nil {
		if c.entered != nil {
			c.entered <- struct{}{}
		}
		<-c.block
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failTo[chatID] {
		return errors.New("telegram: bot was blocked by the user")
	}
	c.sent = append(c.sent, sentMessage{chatID: chatID, text: text, options: options})
	return nil
}

type fakeNarrator struct {
	name  string
	text  string
	err   error
	calls []string
}

func (n *fakeNarrator) Name() string { return n.name }

func (n *fakeNarrator) Narrate(_ context.Context, r fortune.Reading) (string, error) {
	n.calls = append(n.calls, fortune.Key(r.Category, r.Number))
	return n.text, n.err
}

func fullTable(t *testing.T) *fortune.Table {
	t.Helper()
	entries := map[string]fortune.Entry{}
	for _, c := range fortune.Categories {
		for _, n := range fortune.Numbers {
			entries[fortune.Key(c, n)] = fortune.Entry{Text: "table " + fortune.Key(c, n)}
		}
	}
	tbl, err := fortune.NewTable(entries)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	return tbl
}
