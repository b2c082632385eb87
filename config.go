package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/liushuangls/go-anthropic/v2"
)

// BotConfig holds the runtime parameters. Tunables come from a JSON file;
// credentials come only from the environment and are never written to disk.
type BotConfig struct {
	ID              string          `json:"id"`
	HistoryPath     string          `json:"history_path"`
	NotifyChatID    int64           `json:"notify_chat_id"`
	ChartSchedule   string          `json:"chart_schedule"`
	ChartWidth      int             `json:"chart_width"`
	ChartHeight     int             `json:"chart_height"`
	ChartDPI        float64         `json:"chart_dpi"`
	HighlightTopK   int             `json:"highlight_top_k"`
	MemorySize      int             `json:"memory_size"`
	MessagePerHour  int             `json:"messages_per_hour"`
	MessagePerDay   int             `json:"messages_per_day"`
	TempBanDuration string          `json:"temp_ban_duration"`
	Model           anthropic.Model `json:"model"`
	SystemPrompt    string          `json:"system_prompt"`

	TelegramToken   string `json:"-"`
	AnthropicAPIKey string `json:"-"`
}

// validateConfigPath ensures the config file sits inside the config directory
// and carries a .json extension, rejecting traversal attempts.
func validateConfigPath(configDir, filename string) (string, error) {
	if filepath.Ext(filename) != ".json" {
		return "", fmt.Errorf("config file must have a .json extension: %s", filename)
	}

	absDir, err := filepath.Abs(configDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve config directory: %w", err)
	}
	absPath, err := filepath.Abs(filepath.Join(absDir, filename))
	if err != nil {
		return "", fmt.Errorf("failed to resolve config path: %w", err)
	}
	if absPath != absDir && !strings.HasPrefix(absPath, absDir+string(os.PathSeparator)) {
		return "", fmt.Errorf("config path escapes config directory: %s", filename)
	}
	return absPath, nil
}

func loadConfig(filename string) (BotConfig, error) {
	var config BotConfig
	file, err := os.Open(filename)
	if err != nil {
		return config, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&config); err != nil {
		return config, fmt.Errorf("failed to decode JSON: %w", err)
	}

	config.applyDefaults()
	if err := validateConfig(&config); err != nil {
		return config, err
	}
	return config, nil
}

func (c *BotConfig) applyDefaults() {
	if c.HistoryPath == "" {
		c.HistoryPath = "history.csv"
	}
	if c.ChartWidth <= 0 {
		c.ChartWidth = 1280
	}
	if c.ChartHeight <= 0 {
		c.ChartHeight = 720
	}
	if c.ChartDPI <= 0 {
		c.ChartDPI = 92
	}
	if c.HighlightTopK <= 0 {
		c.HighlightTopK = 10
	}
	if c.MemorySize <= 0 {
		c.MemorySize = 10
	}
	if c.MessagePerHour <= 0 {
		c.MessagePerHour = 20
	}
	if c.MessagePerDay <= 0 {
		c.MessagePerDay = 100
	}
	if c.TempBanDuration == "" {
		c.TempBanDuration = "15m"
	}
	if c.Model == "" {
		c.Model = anthropic.ModelClaude3Dot5Sonnet20240620
	}
}

func validateConfig(c *BotConfig) error {
	if c.ID == "" {
		return fmt.Errorf("missing 'id' field in config")
	}
	if c.Model == "" {
		return fmt.Errorf("missing 'model' field in config")
	}
	if _, err := time.ParseDuration(c.TempBanDuration); err != nil {
		return fmt.Errorf("invalid 'temp_ban_duration' in config: %w", err)
	}
	return nil
}

// loadCredentials pulls the secrets from the environment, after loading an
// optional .env file. A missing credential is a fatal startup condition; a
// missing notification chat only disables scheduled sends.
func loadCredentials(c *BotConfig) error {
	_ = godotenv.Load()

	c.TelegramToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	if c.TelegramToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable is not set")
	}
	c.AnthropicAPIKey = os.Getenv("ANTHROPIC_API_KEY")
	if c.AnthropicAPIKey == "" {
		return fmt.Errorf("ANTHROPIC_API_KEY environment variable is not set")
	}
	return nil
}
