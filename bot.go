package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/liushuangls/go-anthropic/v2"
	"gorm.io/gorm"
)

const fileDownloadTimeout = 30 * time.Second

type Bot struct {
	tgBot           TelegramClient
	db              *gorm.DB
	anthropicClient *anthropic.Client
	httpClient      *http.Client
	chatMemories    map[int64]*ChatMemory
	memorySize      int
	chatMemoriesMu  sync.RWMutex
	config          BotConfig
	userLimiters    map[int64]*userLimiter
	userLimitersMu  sync.RWMutex
	clock           Clock
}

func NewBot(db *gorm.DB, config BotConfig, clock Clock, tgClient TelegramClient) (*Bot, error) {
	if config.ID == "" {
		return nil, fmt.Errorf("bot config has no id")
	}

	b := &Bot{
		db:              db,
		anthropicClient: anthropic.NewClient(config.AnthropicAPIKey),
		httpClient:      &http.Client{Timeout: fileDownloadTimeout},
		chatMemories:    make(map[int64]*ChatMemory),
		memorySize:      config.MemorySize,
		config:          config,
		userLimiters:    make(map[int64]*userLimiter),
		clock:           clock,
		tgBot:           tgClient,
	}

	return b, nil
}

func (b *Bot) Start(ctx context.Context) {
	b.tgBot.Start(ctx)
}

func initTelegramBot(token string, handleUpdate func(ctx context.Context, tgBot *bot.Bot, update *models.Update)) (TelegramClient, error) {
	opts := []bot.Option{
		bot.WithDefaultHandler(handleUpdate),
	}

	tgBot, err := bot.New(token, opts...)
	if err != nil {
		return nil, err
	}

	return tgBot, nil
}

// loadHistorySnapshot reads a fresh immutable table for one handling turn.
// Queries run against the snapshot they were given; a reload never mutates a
// table an in-flight query holds.
func (b *Bot) loadHistorySnapshot() ([]DrawRecord, error) {
	return LoadHistory(b.config.HistoryPath)
}

func (b *Bot) getOrCreateUser(userID int64, username string) (User, error) {
	var user User
	err := b.db.Where("telegram_id = ?", userID).First(&user).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return User{}, err
		}
		user = User{
			TelegramID: userID,
			Username:   username,
		}
		if err := b.db.Create(&user).Error; err != nil {
			return User{}, fmt.Errorf("failed to create user: %w", err)
		}
		return user, nil
	}

	if username != "" && user.Username != username {
		user.Username = username
		if err := b.db.Save(&user).Error; err != nil {
			return User{}, fmt.Errorf("failed to update username: %w", err)
		}
	}
	return user, nil
}

func (b *Bot) createMessage(chatID, userID int64, username, text string, isUser bool) Message {
	message := Message{
		ChatID:    chatID,
		Text:      text,
		Timestamp: b.clock.Now(),
		IsUser:    isUser,
	}

	if isUser {
		message.UserID = userID
		message.Username = username
	} else {
		message.UserID = 0
		message.Username = "AI Assistant"
	}

	return message
}

func (b *Bot) storeMessage(message Message) error {
	return b.db.Create(&message).Error
}

func (b *Bot) getOrCreateChatMemory(chatID int64) *ChatMemory {
	b.chatMemoriesMu.RLock()
	chatMemory, exists := b.chatMemories[chatID]
	b.chatMemoriesMu.RUnlock()

	if !exists {
		b.chatMemoriesMu.Lock()
		// Double-check to prevent race condition
		chatMemory, exists = b.chatMemories[chatID]
		if !exists {
			var messages []Message
			b.db.Where("chat_id = ?", chatID).
				Order("timestamp asc").
				Limit(b.memorySize * 2).
				Find(&messages)

			chatMemory = &ChatMemory{
				Messages: messages,
				Size:     b.memorySize * 2,
			}

			b.chatMemories[chatID] = chatMemory
		}
		b.chatMemoriesMu.Unlock()
	}

	return chatMemory
}

func (b *Bot) addMessageToChatMemory(chatMemory *ChatMemory, message Message) {
	b.chatMemoriesMu.Lock()
	defer b.chatMemoriesMu.Unlock()

	chatMemory.Messages = append(chatMemory.Messages, message)
	if len(chatMemory.Messages) > chatMemory.Size {
		chatMemory.Messages = chatMemory.Messages[2:]
	}
}

func (b *Bot) prepareContextMessages(chatMemory *ChatMemory) []anthropic.Message {
	b.chatMemoriesMu.RLock()
	defer b.chatMemoriesMu.RUnlock()

	var contextMessages []anthropic.Message
	for _, msg := range chatMemory.Messages {
		role := anthropic.RoleUser
		if !msg.IsUser {
			role = anthropic.RoleAssistant
		}

		textContent := strings.TrimSpace(msg.Text)
		if textContent == "" {
			// Skip empty messages
			continue
		}

		contextMessages = append(contextMessages, anthropic.Message{
			Role: role,
			Content: []anthropic.MessageContent{
				anthropic.NewTextMessageContent(textContent),
			},
		})
	}
	return contextMessages
}

func (b *Bot) isNewChat(chatID int64) bool {
	var count int64
	b.db.Model(&Message{}).Where("chat_id = ?", chatID).Count(&count)
	return count == 1
}

func (b *Bot) sendResponse(ctx context.Context, chatID int64, text string) error {
	_, err := b.tgBot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		ErrorLogger.Printf("[%s] Error sending message to chat %d: %v", b.config.ID, chatID, err)
		return fmt.Errorf("%w: %v", ErrExternalService, err)
	}
	return nil
}

func (b *Bot) sendChart(ctx context.Context, chatID int64, png []byte, caption string) error {
	_, err := b.tgBot.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID: chatID,
		Photo: &models.InputFileUpload{
			Filename: "frequency.png",
			Data:     bytes.NewReader(png),
		},
		Caption: caption,
	})
	if err != nil {
		ErrorLogger.Printf("[%s] Error sending chart to chat %d: %v", b.config.ID, chatID, err)
		return fmt.Errorf("%w: %v", ErrExternalService, err)
	}
	return nil
}

// sendStats reports the loaded history and stored conversation counters.
func (b *Bot) sendStats(ctx context.Context, chatID, userID int64, username string) {
	table, err := b.loadHistorySnapshot()
	if err != nil {
		ErrorLogger.Printf("Error loading history for /stats: %v", err)
		b.sendResponse(ctx, chatID, "Sorry, I couldn't retrieve the stats at this time.")
		return
	}

	totalUsers, totalMessages, err := b.getStats()
	if err != nil {
		ErrorLogger.Printf("Error fetching stats: %v", err)
		b.sendResponse(ctx, chatID, "Sorry, I couldn't retrieve the stats at this time.")
		return
	}

	summary := Summarize(table)
	statsMessage := fmt.Sprintf(
		"📊 Bot Statistics:\n\n"+
			"- Draws loaded: %d\n"+
			"- Total Users: %d\n"+
			"- Total Messages: %d",
		summary.Size,
		totalUsers,
		totalMessages,
	)
	if summary.Size > 0 {
		statsMessage += fmt.Sprintf("\n- Date range: %s to %s",
			summary.From.Format(dateLayout), summary.To.Format(dateLayout))
	}

	userMessage := b.createMessage(chatID, userID, username, "/stats", true)
	if err := b.storeMessage(userMessage); err != nil {
		ErrorLogger.Printf("Error storing user message: %v", err)
	}

	if err := b.sendResponse(ctx, chatID, statsMessage); err != nil {
		ErrorLogger.Printf("Error sending stats message: %v", err)
	}
	assistantMessage := b.createMessage(chatID, 0, "", statsMessage, false)
	if err := b.storeMessage(assistantMessage); err != nil {
		ErrorLogger.Printf("Error storing assistant message: %v", err)
	}
}

// getStats retrieves the total number of users and messages from the database.
func (b *Bot) getStats() (int64, int64, error) {
	var totalUsers int64
	if err := b.db.Model(&User{}).Count(&totalUsers).Error; err != nil {
		return 0, 0, err
	}

	var totalMessages int64
	if err := b.db.Model(&Message{}).Count(&totalMessages).Error; err != nil {
		return 0, 0, err
	}

	return totalUsers, totalMessages, nil
}
