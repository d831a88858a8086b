package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/rvc-001/planning-sub000/internal/infrastructure/gviz"
)

// Config is the service configuration, loaded from the environment.
type Config struct {
	Port           string
	AllowedOrigins []string

	// Read path.
	SpreadsheetID string
	GvizBaseURL   string
	HeaderRows    int

	// Write path.
	ScriptURL string

	// Optional integrations.
	TelegramToken  string
	NotifyChatID   int64
	NotifyThreadID int
	GeminiAPIKey   string
}

// parseChatTarget understands "-1001234567890" and "-1001234567890/4"
// (chat id plus topic thread), with inline "#" comments tolerated.
func parseChatTarget(raw string) (int64, int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, 0, nil
	}
	if idx := strings.Index(raw, "#"); idx >= 0 {
		raw = strings.TrimSpace(raw[:idx])
	}
	parts := strings.Split(raw, "/")
	if len(parts) > 2 {
		return 0, 0, fmt.Errorf("bad format, expected -1001234567890 or -1001234567890/2")
	}

	chatID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, 0, err
	}
	if chatID > 0 {
		// Supergroups and channels carry negative ids; fix up bare ones.
		chatID = -chatID
	}

	threadID := 0
	if len(parts) == 2 && strings.TrimSpace(parts[1]) != "" {
		tid, err := strconv.Atoi(parts[1])
		if err != nil {
			return 0, 0, fmt.Errorf("bad topic id: %v", err)
		}
		if tid < 0 {
			tid = -tid
		}
		threadID = tid
	}

	return chatID, threadID, nil
}

// Load reads the environment, with .env support for local runs.
func Load() (*Config, error) {
	_ = godotenv.Load()

	config := &Config{
		Port:          getEnvDefault("PORT", "8080"),
		SpreadsheetID: strings.TrimSpace(os.Getenv("SPREADSHEET_ID")),
		GvizBaseURL:   getEnvDefault("GVIZ_BASE_URL", gviz.DefaultBaseURL),
		HeaderRows:    getEnvInt("SHEET_HEADER_ROWS", 1),
		ScriptURL:     strings.TrimSpace(os.Getenv("SCRIPT_URL")),
		TelegramToken: strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN")),
		GeminiAPIKey:  strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
	}

	if raw := strings.TrimSpace(os.Getenv("ALLOWED_ORIGINS")); raw != "" {
		for _, origin := range strings.Split(raw, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				config.AllowedOrigins = append(config.AllowedOrigins, origin)
			}
		}
	}

	if rawTarget := os.Getenv("NOTIFY_CHAT_ID"); strings.TrimSpace(rawTarget) != "" {
		chatID, threadID, err := parseChatTarget(rawTarget)
		if err != nil {
			return nil, fmt.Errorf("NOTIFY_CHAT_ID has bad format: %v", err)
		}
		config.NotifyChatID = chatID
		config.NotifyThreadID = threadID
	}

	if config.SpreadsheetID == "" {
		return nil, fmt.Errorf("SPREADSHEET_ID environment variable is empty")
	}
	if config.ScriptURL == "" {
		return nil, fmt.Errorf("SCRIPT_URL environment variable is empty")
	}
	if config.NotifyChatID != 0 && config.TelegramToken == "" {
		return nil, fmt.Errorf("NOTIFY_CHAT_ID is set but TELEGRAM_BOT_TOKEN is empty")
	}

	return config, nil
}

func getEnvDefault(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
