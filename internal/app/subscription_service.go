package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"numerology_fortune_bot/internal/domain/fortune"
	"numerology_fortune_bot/internal/domain/subscriber"
	idb "numerology_fortune_bot/internal/infra/database"
)

var ErrNotSubscribed = errors.New("user has no active subscription")

type SubscriptionService struct {
	subscriberRepo subscriber.Repository
}

func NewSubscriptionService(sr subscriber.Repository) *SubscriptionService {
	return &SubscriptionService{subscriberRepo: sr}
}

// Subscribe stores email for the user and turns the daily fortune on. An
// existing record, active or not, is updated in place. The bool reports
// whether a new record was created.
func (s *SubscriptionService) Subscribe(ctx context.Context, telegramID int64, firstName, email string) (*subscriber.Subscriber, bool, error) {
	email = strings.TrimSpace(email)
	if _, err := fortune.ParseEmail(email); err != nil {
		return nil, false, err
	}

	existing, err := s.subscriberRepo.GetByTelegramID(ctx, telegramID)
	if err == nil {
		existing.Email = email
		existing.FirstName = firstName
		existing.IsActive = true
		if err := s.subscriberRepo.Update(ctx, existing); err != nil {
			return nil, false, fmt.Errorf("failed to update subscriber: %w", err)
		}
		return existing, false, nil
	}
	if !errors.Is(err, idb.ErrSubscriberNotFound) {
		return nil, false, fmt.Errorf("failed to check existing subscriber: %w", err)
	}

	created := &subscriber.Subscriber{
		TelegramID: telegramID,
		FirstName:  firstName,
		Email:      email,
		IsActive:   true,
	}
	if err := s.subscriberRepo.Create(ctx, created); err != nil {
		return nil, false, fmt.Errorf("failed to create subscriber: %w", err)
	}
	return created, true, nil
}

// Unsubscribe stops the daily fortune. The stored email is kept so
// /fortune keeps working without an argument.
func (s *SubscriptionService) Unsubscribe(ctx context.Context, telegramID int64) (*subscriber.Subscriber, error) {
	sub, err := s.subscriberRepo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		if errors.Is(err, idb.ErrSubscriberNotFound) {
			return nil, ErrNotSubscribed
		}
		return nil, fmt.Errorf("failed to get subscriber: %w", err)
	}
	if !sub.IsActive {
		return sub, ErrNotSubscribed
	}

	sub.IsActive = false
	if err := s.subscriberRepo.Update(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to deactivate subscriber: %w", err)
	}
	return sub, nil
}

// Get returns the user's record, active or not.
func (s *SubscriptionService) Get(ctx context.Context, telegramID int64) (*subscriber.Subscriber, error) {
	sub, err := s.subscriberRepo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		if errors.Is(err, idb.ErrSubscriberNotFound) {
			return nil, ErrNotSubscribed
		}
		return nil, fmt.Errorf("failed to get subscriber: %w", err)
	}
	return sub, nil
}
