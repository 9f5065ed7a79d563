package app

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"numerology_fortune_bot/internal/domain/fortune"
)

// Narrator writes a text for a reading the fortune table has no text for.
type Narrator interface {
	Name() string
	Narrate(ctx context.Context, r fortune.Reading) (string, error)
}

// FortuneService computes readings and fills in any text the table lacks.
type FortuneService struct {
	table     *fortune.Table
	narrators []Narrator
	location  *time.Location
	now       func() time.Time
	logger    *logrus.Entry
}

// NewFortuneService builds the service. Narrators are tried in order for
// readings with empty text; the first non-empty answer wins.
func NewFortuneService(table *fortune.Table, location *time.Location, logger *logrus.Entry, narrators ...Narrator) *FortuneService {
	if location == nil {
		location = time.Local
	}
	return &FortuneService{
		table:     table,
		narrators: narrators,
		location:  location,
		now:       time.Now,
		logger:    logger,
	}
}

// Today is the current calendar day in the configured location.
func (s *FortuneService) Today() time.Time {
	now := s.now().In(s.location)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.location)
}

// Tell computes the fortune for email on date. Numbers and marks come
// straight from the engine; narrators only ever touch empty texts.
func (s *FortuneService) Tell(ctx context.Context, email string, date time.Time) (*fortune.Result, error) {
	res, err := fortune.Compute(email, date, s.table)
	if err != nil {
		return nil, err
	}

	for _, r := range []*fortune.Reading{&res.Inner, &res.Environment, &res.Relationships, &res.Overall} {
		if r.Text == "" {
			r.Text = s.narrate(ctx, *r)
		}
	}
	return res, nil
}

func (s *FortuneService) narrate(ctx context.Context, r fortune.Reading) string {
	for _, n := range s.narrators {
		text, err := n.Narrate(ctx, r)
		if err != nil {
			s.logger.WithError(err).WithFields(logrus.Fields{
				"narrator": n.Name(),
				"key":      fortune.Key(r.Category, r.Number),
			}).Warn("Narrator failed, trying next")
			continue
		}
		if text != "" {
			return text
		}
	}
	return ""
}
