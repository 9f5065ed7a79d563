package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"

	"numerology_fortune_bot/internal/app"
)

const notAuthorizedReply = "Error: you are not allowed to run this command."

// AdminHandlers serves the administrator commands.
type AdminHandlers struct {
	ctx          context.Context
	adminService *app.AdminService
	logger       *logrus.Entry
}

func NewAdminHandlers(ctx context.Context, adminService *app.AdminService, baseLogger *logrus.Entry) *AdminHandlers {
	return &AdminHandlers{
		ctx:          ctx,
		adminService: adminService,
		logger:       baseLogger.WithField("handler_group", "admin"),
	}
}

// RegisterAdminHandlers registers handlers for admin commands.
func RegisterAdminHandlers(b *telebot.Bot, h *AdminHandlers) {
	b.Handle("/subscribers", h.handleSubscribers)
	b.Handle("/broadcast_now", h.handleBroadcastNow)
}

func (h *AdminHandlers) handleSubscribers(c telebot.Context) error {
	handlerLogger := h.logger.WithFields(logrus.Fields{
		"handler":   "/subscribers",
		"sender_id": c.Sender().ID,
	})
	if !h.adminService.IsAdmin(c.Sender().ID) {
		handlerLogger.Warn("Unauthorized access attempt")
		return c.Send(notAuthorizedReply)
	}

	listType := "active"
	if args := c.Args(); len(args) > 0 {
		listType = strings.ToLower(args[0])
	}
	handlerLogger = handlerLogger.WithField("list_type", listType)

	var title string
	switch listType {
	case "active":
		title = "Active subscribers"
	case "all":
		title = "All subscribers"
	default:
		handlerLogger.Warn("Invalid list type argument")
		return c.Send("Invalid argument. Use 'active' or 'all', or leave it empty for active subscribers.")
	}

	stats, err := h.adminService.ListSubscribers(h.ctx, c.Sender().ID, listType == "all")
	if err != nil {
		logWithError := handlerLogger.WithError(err)
		if errors.Is(err, app.ErrAdminNotAuthorized) {
			logWithError.Warn("Admin not authorized (service level)")
			return c.Send(notAuthorizedReply)
		}
		logWithError.Error("Failed to get list of subscribers")
		return c.Send(fmt.Sprintf("Failed to list subscribers: %s", err.Error()))
	}

	handlerLogger.WithField("subscribers_count", len(stats.Subscribers)).Info("Successfully retrieved subscriber list")

	if len(stats.Subscribers) == 0 {
		if listType == "active" {
			return c.Send("No active subscribers.")
		}
		return c.Send("No subscribers yet.")
	}

	var response strings.Builder
	response.WriteString(fmt.Sprintf("--- %s (%d) ---\n", title, len(stats.Subscribers)))
	for _, s := range stats.Subscribers {
		status := "paused"
		if s.IsActive {
			status = "active"
		}
		response.WriteString(fmt.Sprintf("ID: %d, Telegram ID: %d, Name: %s, Email: %s, Status: %s\n",
			s.ID, s.TelegramID, s.FirstName, s.Email, status))
	}
	response.WriteString(fmt.Sprintf("Delivered today: %d", stats.DeliveredToday))
	return c.Send(response.String())
}

func (h *AdminHandlers) handleBroadcastNow(c telebot.Context) error {
	handlerLogger := h.logger.WithFields(logrus.Fields{
		"handler":   "/broadcast_now",
		"sender_id": c.Sender().ID,
	})
	handlerLogger.Info("Command received")

	report, err := h.adminService.BroadcastNow(h.ctx, c.Sender().ID)
	if err != nil {
		logWithError := handlerLogger.WithError(err)
		switch {
		case errors.Is(err, app.ErrAdminNotAuthorized):
			logWithError.Warn("Unauthorized access attempt")
			return c.Send(notAuthorizedReply)
		case errors.Is(err, app.ErrBroadcastInProgress):
			return c.Send("A broadcast is already running, try again in a moment.")
		default:
			logWithError.Error("Manual broadcast failed")
			return c.Send(fmt.Sprintf("Broadcast failed: %s", err.Error()))
		}
	}

	handlerLogger.WithField("report", report.String()).Info("Manual broadcast finished")
	return c.Send(fmt.Sprintf("Broadcast finished. Sent: %d, already delivered: %d, failed: %d.",
		report.Sent, report.Skipped, report.Failed))
}
