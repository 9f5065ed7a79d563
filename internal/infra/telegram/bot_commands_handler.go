// internal/infra/telegram/bot_commands_handler.go
package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"

	"numerology_fortune_bot/internal/app"
	"numerology_fortune_bot/internal/domain/fortune"
)

const invalidEmailReply = "That does not look like an email address. Try something like /fortune name@example.com"

// BotHandlers serves the commands every user can run.
type BotHandlers struct {
	ctx           context.Context
	fortunes      *app.FortuneService
	subscriptions *app.SubscriptionService
	admin         *app.AdminService
	logger        *logrus.Entry
}

func NewBotHandlers(
	ctx context.Context,
	fortunes *app.FortuneService,
	subscriptions *app.SubscriptionService,
	admin *app.AdminService,
	baseLogger *logrus.Entry,
) *BotHandlers {
	return &BotHandlers{
		ctx:           ctx,
		fortunes:      fortunes,
		subscriptions: subscriptions,
		admin:         admin,
		logger:        baseLogger.WithField("handler_group", "user"),
	}
}

// RegisterBotCommands wires the user commands into the bot.
func RegisterBotCommands(b *telebot.Bot, h *BotHandlers) {
	b.Handle("/start", h.handleStart)
	b.Handle("/help", h.handleHelp)
	b.Handle("/fortune", h.handleFortune)
	b.Handle("/subscribe", h.handleSubscribe)
	b.Handle("/unsubscribe", h.handleUnsubscribe)
	b.Handle("/me", h.handleMe)
	b.Handle(telebot.OnText, h.handleText)
}

func (h *BotHandlers) logFor(command string, c telebot.Context) *logrus.Entry {
	return h.logger.WithFields(logrus.Fields{
		"command":   command,
		"sender_id": c.Sender().ID,
	})
}

func (h *BotHandlers) handleStart(c telebot.Context) error {
	logCtx := h.logFor("/start", c)
	logCtx.Info("Processing /start command")

	name := c.Sender().FirstName
	if h.admin.IsAdmin(c.Sender().ID) {
		return c.Send(fmt.Sprintf("Hello, %s! You are the administrator. Use /help to see every command.", name))
	}
	return c.Send(fmt.Sprintf("Hello, %s! 🔮 Send me your email address and I will read today's numerology fortune for it. "+
		"Use /subscribe to get it every morning.", name))
}

func (h *BotHandlers) handleHelp(c telebot.Context) error {
	h.logFor("/help", c).Info("Processing /help command")

	var helpText strings.Builder
	helpText.WriteString("Available commands:\n\n")
	helpText.WriteString("`/fortune [email]`\n - Today's fortune. Without an argument your subscribed address is used.\n\n")
	helpText.WriteString("`/subscribe <email>`\n - Receive the fortune every morning.\n\n")
	helpText.WriteString("`/unsubscribe`\n - Stop the morning fortune.\n\n")
	helpText.WriteString("`/me`\n - Show your subscription.\n\n")
	if h.admin.IsAdmin(c.Sender().ID) {
		helpText.WriteString("Administrator commands:\n\n")
		helpText.WriteString("`/subscribers [active|all]`\n - List subscribers. Active ones by default.\n\n")
		helpText.WriteString("`/broadcast_now`\n - Send today's fortune to everyone who has not received it yet.\n\n")
	}
	helpText.WriteString("You can also just send an email address as a message.")
	return c.Send(helpText.String(), &telebot.SendOptions{ParseMode: telebot.ModeMarkdown})
}

func (h *BotHandlers) handleFortune(c telebot.Context) error {
	logCtx := h.logFor("/fortune", c)

	args := c.Args()
	if len(args) > 1 {
		return c.Send("Usage: /fortune [email]")
	}

	var email string
	if len(args) == 1 {
		email = args[0]
	} else {
		sub, err := h.subscriptions.Get(h.ctx, c.Sender().ID)
		if err != nil {
			if errors.Is(err, app.ErrNotSubscribed) {
				return c.Send("Tell me which address to read: /fortune name@example.com")
			}
			logCtx.WithError(err).Error("Failed to load subscription")
			return c.Send("Something went wrong while looking up your address. Please try again later.")
		}
		email = sub.Email
	}

	return h.tell(c, logCtx, email)
}

func (h *BotHandlers) handleText(c telebot.Context) error {
	text := strings.TrimSpace(c.Text())
	if strings.HasPrefix(text, "/") {
		return c.Send("Unknown command. Use /help to see what I can do.")
	}
	if !strings.Contains(text, "@") || strings.ContainsAny(text, " \t\n") {
		return c.Send("Send me an email address and I will read today's fortune for it.")
	}
	return h.tell(c, h.logFor("text", c), text)
}

func (h *BotHandlers) tell(c telebot.Context, logCtx *logrus.Entry, email string) error {
	today := h.fortunes.Today()
	res, err := h.fortunes.Tell(h.ctx, email, today)
	if err != nil {
		if errors.Is(err, fortune.ErrInvalidEmail) {
			logCtx.WithError(err).Info("Rejected malformed email")
			return c.Send(invalidEmailReply)
		}
		logCtx.WithError(err).Error("Failed to compute fortune")
		return c.Send("Something went wrong while reading your fortune. Please try again later.")
	}

	logCtx.WithFields(logrus.Fields{
		"inner":         res.Inner.Number,
		"environment":   res.Environment.Number,
		"relationships": res.Relationships.Number,
		"overall":       res.Overall.Number,
	}).Info("Fortune told")
	return c.Send(app.RenderFortune(res, today), &telebot.SendOptions{ParseMode: telebot.ModeHTML})
}

func (h *BotHandlers) handleSubscribe(c telebot.Context) error {
	logCtx := h.logFor("/subscribe", c)
	logCtx.Info("Command received")

	args := c.Args()
	if len(args) != 1 {
		return c.Send("Usage: /subscribe name@example.com")
	}

	sub, created, err := h.subscriptions.Subscribe(h.ctx, c.Sender().ID, c.Sender().FirstName, args[0])
	if err != nil {
		if errors.Is(err, fortune.ErrInvalidEmail) {
			return c.Send(invalidEmailReply)
		}
		logCtx.WithError(err).Error("Failed to subscribe")
		return c.Send("Something went wrong while saving your subscription. Please try again later.")
	}

	logCtx.WithFields(logrus.Fields{
		"subscriber_id": sub.ID,
		"created":       created,
	}).Info("Subscription saved")

	if created {
		return c.Send(fmt.Sprintf("Subscribed! Every morning I will send the fortune for %s.", sub.Email))
	}
	return c.Send(fmt.Sprintf("Subscription updated. Your morning fortune will use %s.", sub.Email))
}

func (h *BotHandlers) handleUnsubscribe(c telebot.Context) error {
	logCtx := h.logFor("/unsubscribe", c)
	logCtx.Info("Command received")

	_, err := h.subscriptions.Unsubscribe(h.ctx, c.Sender().ID)
	if err != nil {
		if errors.Is(err, app.ErrNotSubscribed) {
			return c.Send("You are not subscribed.")
		}
		logCtx.WithError(err).Error("Failed to unsubscribe")
		return c.Send("Something went wrong. Please try again later.")
	}
	return c.Send("Unsubscribed. You can still ask for a fortune any time with /fortune.")
}

func (h *BotHandlers) handleMe(c telebot.Context) error {
	logCtx := h.logFor("/me", c)

	sub, err := h.subscriptions.Get(h.ctx, c.Sender().ID)
	if err != nil {
		if errors.Is(err, app.ErrNotSubscribed) {
			return c.Send("You have no saved address. Use /subscribe name@example.com")
		}
		logCtx.WithError(err).Error("Failed to load subscription")
		return c.Send("Something went wrong. Please try again later.")
	}

	status := "paused"
	if sub.IsActive {
		status = "active"
	}
	return c.Send(fmt.Sprintf("Address: %s\nMorning fortune: %s", sub.Email, status))
}
