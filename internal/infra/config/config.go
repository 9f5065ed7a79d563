package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultLogLevel          = "info"
	defaultEnvironment       = "development"
	defaultCronSpecDaily     = "0 8 * * *" // 08:00 every day
	defaultGeminiModel       = "gemini-2.0-flash"
	defaultGeminiTimeoutSecs = 20
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	TelegramToken   string
	DatabaseURL     string
	AdminTelegramID int64
	LogLevel        string
	Environment     string
	Location        *time.Location // decides which calendar day "today" is
	CronSpecDaily   string
	TablePath       string // empty means the built-in fortune table
	GeminiAPIKey    string // empty disables generated texts
	GeminiModel     string
	GeminiTimeout   time.Duration
}

// Load reads the bot configuration from environment variables and .env
// file (if present). Values already set in the environment win over .env.
func Load() (*AppConfig, error) {
	_ = godotenv.Load()

	cfg, err := loadShared()
	if err != nil {
		return nil, err
	}

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is not set")
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	adminIDStr := os.Getenv("ADMIN_TELEGRAM_ID")
	if adminIDStr == "" {
		return nil, fmt.Errorf("ADMIN_TELEGRAM_ID is not set")
	}
	cfg.AdminTelegramID, err = strconv.ParseInt(adminIDStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid ADMIN_TELEGRAM_ID: %w", err)
	}

	return cfg, nil
}

// LoadCLI reads only the optional settings; the command-line tool needs
// neither Telegram nor the database.
func LoadCLI() (*AppConfig, error) {
	_ = godotenv.Load()
	return loadShared()
}

func loadShared() (*AppConfig, error) {
	cfg := &AppConfig{}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = defaultEnvironment
	}

	cfg.Location = time.Local
	if tz := os.Getenv("TIMEZONE"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("invalid TIMEZONE %q: %w", tz, err)
		}
		cfg.Location = loc
	}

	cfg.CronSpecDaily = os.Getenv("CRON_SPEC_DAILY_FORTUNE")
	if cfg.CronSpecDaily == "" {
		cfg.CronSpecDaily = defaultCronSpecDaily
	}

	cfg.TablePath = os.Getenv("FORTUNE_TABLE_PATH")

	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.GeminiModel = os.Getenv("GEMINI_MODEL")
	if cfg.GeminiModel == "" {
		cfg.GeminiModel = defaultGeminiModel
	}

	timeoutSecs := defaultGeminiTimeoutSecs
	if v := os.Getenv("GEMINI_TIMEOUT_SECONDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid GEMINI_TIMEOUT_SECONDS %q", v)
		}
		timeoutSecs = n
	}
	cfg.GeminiTimeout = time.Duration(timeoutSecs) * time.Second

	return cfg, nil
}
