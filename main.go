package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
)

func main() {
	configDir := flag.String("config", "config", "directory containing the bot config")
	configFile := flag.String("config-file", "bot.json", "config file name inside the config directory")
	dbPath := flag.String("db", "bot.db", "path to the sqlite database")
	flag.Parse()

	// Initialize custom loggers
	initLoggers()

	InfoLogger.Println("Starting Mark Six Telegram bot")

	configPath, err := validateConfigPath(*configDir, *configFile)
	if err != nil {
		ErrorLogger.Fatalf("Error resolving config path: %v", err)
	}
	config, err := loadConfig(configPath)
	if err != nil {
		ErrorLogger.Fatalf("Error loading configuration: %v", err)
	}
	if err := loadCredentials(&config); err != nil {
		ErrorLogger.Fatalf("Error loading credentials: %v", err)
	}

	db, err := initDB(*dbPath)
	if err != nil {
		ErrorLogger.Fatalf("Error initializing database: %v", err)
	}

	// Fail fast on an unreadable history file; malformed rows inside it are
	// skipped with warnings instead.
	table, err := LoadHistory(config.HistoryPath)
	if err != nil {
		ErrorLogger.Fatalf("Error loading draw history from %s: %v",
			filepath.Clean(config.HistoryPath), err)
	}
	InfoLogger.Printf("Loaded %d draws from %s", len(table), config.HistoryPath)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	markSixBot, err := NewBot(db, config, RealClock{}, nil)
	if err != nil {
		ErrorLogger.Fatalf("Error creating bot: %v", err)
	}

	tgClient, err := initTelegramBot(config.TelegramToken, markSixBot.handleUpdate)
	if err != nil {
		ErrorLogger.Fatalf("Error initializing Telegram client: %v", err)
	}
	markSixBot.tgBot = tgClient

	scheduler := NewScheduler(markSixBot)
	if err := scheduler.Start(); err != nil {
		ErrorLogger.Fatalf("Error starting scheduler: %v", err)
	}
	defer scheduler.Stop()

	InfoLogger.Printf("Starting bot %s...", config.ID)
	markSixBot.Start(ctx)

	InfoLogger.Println("Bot stopped. Exiting application.")
}
