package app

import (
	"context"
	"errors"
	"fmt"

	"numerology_fortune_bot/internal/domain/delivery"
	"numerology_fortune_bot/internal/domain/subscriber"
)

var ErrAdminNotAuthorized = errors.New("performing user is not authorized as an admin")

// SubscriberStats is the overview shown by /subscribers.
type SubscriberStats struct {
	Subscribers    []*subscriber.Subscriber
	DeliveredToday int
}

type AdminService struct {
	subscriberRepo  subscriber.Repository
	deliveryRepo    delivery.Repository
	broadcaster     *BroadcastService
	fortunes        *FortuneService
	adminTelegramID int64
}

func NewAdminService(sr subscriber.Repository, dr delivery.Repository, broadcaster *BroadcastService, fortunes *FortuneService, adminID int64) *AdminService {
	return &AdminService{
		subscriberRepo:  sr,
		deliveryRepo:    dr,
		broadcaster:     broadcaster,
		fortunes:        fortunes,
		adminTelegramID: adminID,
	}
}

func (s *AdminService) IsAdmin(telegramID int64) bool {
	return telegramID == s.adminTelegramID
}

// ListSubscribers returns active subscribers, or all of them when all is set,
// with the number of deliveries recorded for today.
func (s *AdminService) ListSubscribers(ctx context.Context, performingAdminID int64, all bool) (*SubscriberStats, error) {
	if !s.IsAdmin(performingAdminID) {
		return nil, ErrAdminNotAuthorized
	}

	var (
		list []*subscriber.Subscriber
		err  error
	)
	if all {
		list, err = s.subscriberRepo.ListAll(ctx)
	} else {
		list, err = s.subscriberRepo.ListActive(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}

	delivered, err := s.deliveryRepo.CountForDate(ctx, s.fortunes.Today())
	if err != nil {
		return nil, fmt.Errorf("failed to count today's deliveries: %w", err)
	}

	return &SubscriberStats{Subscribers: list, DeliveredToday: delivered}, nil
}

// BroadcastNow runs today's broadcast immediately. Subscribers already
// served today are skipped.
func (s *AdminService) BroadcastNow(ctx context.Context, performingAdminID int64) (BroadcastReport, error) {
	if !s.IsAdmin(performingAdminID) {
		return BroadcastReport{}, ErrAdminNotAuthorized
	}
	return s.broadcaster.SendDaily(ctx, s.fortunes.Today())
}
