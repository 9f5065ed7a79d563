package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"numerology_fortune_bot/internal/app"
	"numerology_fortune_bot/internal/infra/config"
	idb "numerology_fortune_bot/internal/infra/database"
	"numerology_fortune_bot/internal/infra/fortunetable"
	"numerology_fortune_bot/internal/infra/logger"
	"numerology_fortune_bot/internal/infra/narrator"
	"numerology_fortune_bot/internal/infra/scheduler"
	"numerology_fortune_bot/internal/infra/telegram"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Could not load application configuration: %v", err)
	}

	logger.Init(cfg)
	mainLogger := logger.Component("main")
	mainLogger.WithFields(logrus.Fields{
		"log_level":   cfg.LogLevel,
		"environment": cfg.Environment,
		"timezone":    cfg.Location.String(),
		"admin_id":    cfg.AdminTelegramID,
	}).Info("Numerology Fortune Bot starting...")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Fortune table
	table, err := fortunetable.Load(cfg.TablePath)
	if err != nil {
		mainLogger.WithError(err).Fatal("Could not load fortune table")
	}
	if missing := table.Missing(); len(missing) > 0 {
		mainLogger.WithField("missing", missing).Warn("Fortune table is incomplete, narrators will fill the gaps")
	}
	mainLogger.WithField("entries", table.Len()).Info("Fortune table loaded.")

	// Narrators
	var narrators []app.Narrator
	if cfg.GeminiAPIKey != "" {
		gemini, err := narrator.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiTimeout)
		if err != nil {
			mainLogger.WithError(err).Fatal("Could not create Gemini narrator")
		}
		narrators = append(narrators, gemini)
		mainLogger.WithField("model", cfg.GeminiModel).Info("Gemini narrator enabled.")
	}
	narrators = append(narrators, narrator.Keywords{})

	// Database
	db, err := idb.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		mainLogger.WithError(err).Fatal("Could not connect to database")
	}
	defer db.Close()
	if err := idb.EnsureSchema(ctx, db); err != nil {
		mainLogger.WithError(err).Fatal("Could not prepare database schema")
	}
	mainLogger.Info("Database connection established successfully.")

	subscriberRepo := idb.NewPostgresSubscriberRepository(db)
	deliveryRepo := idb.NewPostgresDeliveryRepository(db)

	// Telegram Bot
	pref := telebot.Settings{
		Token:  cfg.TelegramToken,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c telebot.Context) {
			entry := logger.Component("telebot").WithError(err)
			if c != nil && c.Sender() != nil && c.Chat() != nil {
				entry = entry.WithFields(logrus.Fields{
					"sender_id": c.Sender().ID,
					"chat_id":   c.Chat().ID,
				})
			}
			entry.Error("Telegram handler error")
		},
	}
	bot, err := telebot.NewBot(pref)
	if err != nil {
		mainLogger.WithError(err).Fatal("Could not create Telegram bot")
	}

	// Services
	fortuneService := app.NewFortuneService(table, cfg.Location, logger.Component("fortune"), narrators...)
	subscriptionService := app.NewSubscriptionService(subscriberRepo)
	broadcastService := app.NewBroadcastService(
		subscriberRepo,
		deliveryRepo,
		fortuneService,
		telegram.NewTelebotAdapter(bot),
		logger.Component("broadcast"),
	)
	adminService := app.NewAdminService(subscriberRepo, deliveryRepo, broadcastService, fortuneService, cfg.AdminTelegramID)

	// Handlers
	handlerLogger := logger.Component("telegram")
	telegram.RegisterBotCommands(bot, telegram.NewBotHandlers(ctx, fortuneService, subscriptionService, adminService, handlerLogger))
	telegram.RegisterAdminHandlers(bot, telegram.NewAdminHandlers(ctx, adminService, handlerLogger))
	mainLogger.Info("Command handlers registered.")

	// Scheduler
	fortuneScheduler := scheduler.NewFortuneScheduler(broadcastService, cfg.Location, logger.Component("scheduler"), cfg.CronSpecDaily)
	if err := fortuneScheduler.Start(); err != nil {
		mainLogger.WithError(err).Fatal("Could not start scheduler")
	}

	// Start bot in a goroutine so it doesn't block graceful shutdown handling
	go bot.Start()
	mainLogger.Info("Application setup complete. Bot and scheduler are running.")

	<-ctx.Done()

	mainLogger.Info("Shutting down application...")
	bot.Stop()
	fortuneScheduler.Stop()
	mainLogger.Info("Application shut down gracefully.")
}
