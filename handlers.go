package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const (
	startMessage = "Hi! I'm a Mark Six assistant bot with three capabilities:\n\n" +
		"1️⃣ Calculator: send me an arithmetic expression like (1+2)*3\n" +
		"2️⃣ Result extractor: send me a photo of a Mark Six result table\n" +
		"3️⃣ History: ask about past draws, e.g. \"latest result\" or \"how often has 7 appeared?\"\n\n" +
		"Try it out!"

	helpMessage = "I can help you with:\n" +
		"• Math: 2/4+3*5, (1+2)**3, 10÷4 ...\n" +
		"• Mark Six results from images (just send a photo)\n" +
		"• History: \"latest result\", \"last 5 draws\", \"how often has 7 appeared?\", \"stats\", \"chart\"\n\n" +
		"Anything else goes to the AI assistant."

	genericErrorReply = "I'm sorry, I'm having trouble processing your request right now."
)

func (b *Bot) handleUpdate(ctx context.Context, tgBot *bot.Bot, update *models.Update) {
	if update.Message == nil {
		// No message to process
		return
	}
	message := update.Message
	if message.From == nil {
		return
	}

	chatID := message.Chat.ID
	userID := message.From.ID
	username := message.From.Username

	// Command entities short-circuit everything else.
	for _, entity := range message.Entities {
		if entity.Type == "bot_command" {
			command := strings.TrimSpace(message.Text[entity.Offset : entity.Offset+entity.Length])
			switch command {
			case "/start":
				b.sendResponse(ctx, chatID, startMessage)
				return
			case "/help":
				b.sendResponse(ctx, chatID, helpMessage)
				return
			case "/stats":
				b.sendStats(ctx, chatID, userID, username)
				return
			}
		}
	}

	if !b.checkRateLimits(userID) {
		b.sendResponse(ctx, chatID, "Rate limit exceeded. Please try again later.")
		return
	}

	if _, err := b.getOrCreateUser(userID, username); err != nil {
		ErrorLogger.Printf("Error getting or creating user %d: %v", userID, err)
		return
	}

	if len(message.Photo) > 0 {
		b.handlePhotoMessage(ctx, chatID, userID, message)
		return
	}

	if message.Text == "" {
		InfoLogger.Printf("Received a non-text message from user %d in chat %d", userID, chatID)
		return
	}

	b.handleTextMessage(ctx, chatID, userID, username, message.Text)
}

func (b *Bot) handleTextMessage(ctx context.Context, chatID, userID int64, username, text string) {
	userMessage := b.createMessage(chatID, userID, username, text, true)
	if err := b.storeMessage(userMessage); err != nil {
		ErrorLogger.Printf("Error storing user message: %v", err)
	}
	chatMemory := b.getOrCreateChatMemory(chatID)
	b.addMessageToChatMemory(chatMemory, userMessage)

	intent := ClassifyIntent(text)

	var reply string
	switch intent.Kind {
	case IntentCalc:
		reply = b.answerCalculation(intent.Expr)

	case IntentChart:
		b.answerChart(ctx, chatID)
		return

	case IntentLatest, IntentFrequency, IntentLastK, IntentSummary:
		reply = b.answerHistoryQuery(intent)

	default:
		b.tgBot.SendChatAction(ctx, &bot.SendChatActionParams{
			ChatID: chatID,
			Action: models.ChatActionTyping,
		})
		response, err := b.getAnthropicResponse(ctx, b.prepareContextMessages(chatMemory), b.isNewChat(chatID))
		if err != nil {
			ErrorLogger.Printf("Error getting Anthropic response: %v", err)
			response = genericErrorReply
		}
		reply = response
	}

	if err := b.sendResponse(ctx, chatID, reply); err != nil {
		return
	}

	assistantMessage := b.createMessage(chatID, 0, "", reply, false)
	if err := b.storeMessage(assistantMessage); err != nil {
		ErrorLogger.Printf("Error storing assistant message: %v", err)
	}
	b.addMessageToChatMemory(chatMemory, assistantMessage)
}

func (b *Bot) answerCalculation(expression string) string {
	result, err := Evaluate(expression)
	if err != nil {
		InfoLogger.Printf("Rejected expression %q: %v", expression, err)
		return "I couldn't evaluate that expression. I only do plain arithmetic: + - * / ** and parentheses."
	}
	return fmt.Sprintf("%s = %s", strings.TrimSpace(expression), strconv.FormatFloat(result, 'f', -1, 64))
}

// answerHistoryQuery resolves a history intent against a fresh snapshot.
// Errors stay generic for the user; detail goes to the operator log.
func (b *Bot) answerHistoryQuery(intent Intent) string {
	table, err := b.loadHistorySnapshot()
	if err != nil {
		ErrorLogger.Printf("Error loading draw history: %v", err)
		return "Historical data is not available right now. Please try again later."
	}

	answer, err := Answer(intent, table)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyTable):
			return "No historical data available yet."
		case errors.Is(err, ErrOutOfRange):
			return fmt.Sprintf("Numbers must be between %d and %d.", minNumber, maxNumber)
		default:
			ErrorLogger.Printf("Error answering history query: %v", err)
			return genericErrorReply
		}
	}
	return answer
}

func (b *Bot) answerChart(ctx context.Context, chatID int64) {
	table, err := b.loadHistorySnapshot()
	if err != nil {
		ErrorLogger.Printf("Error loading draw history for chart: %v", err)
		b.sendResponse(ctx, chatID, "Historical data is not available right now. Please try again later.")
		return
	}

	png, err := RenderFrequencyChart(Frequencies(table), b.config.HighlightTopK, ChartOptions{
		Width:  b.config.ChartWidth,
		Height: b.config.ChartHeight,
		DPI:    b.config.ChartDPI,
	})
	if err != nil {
		ErrorLogger.Printf("Error rendering frequency chart: %v", err)
		b.sendResponse(ctx, chatID, "Sorry, I couldn't generate the chart right now.")
		return
	}

	caption := fmt.Sprintf("Number frequency across %d draws (top %d highlighted)",
		len(table), b.config.HighlightTopK)
	if err := b.sendChart(ctx, chatID, png, caption); err != nil {
		ErrorLogger.Printf("Error sending chart: %v", err)
	}
}

func (b *Bot) handlePhotoMessage(ctx context.Context, chatID, userID int64, message *models.Message) {
	username := message.From.Username

	b.tgBot.SendChatAction(ctx, &bot.SendChatActionParams{
		ChatID: chatID,
		Action: models.ChatActionTyping,
	})

	// Telegram orders PhotoSize ascending; the last entry is the largest.
	photo := message.Photo[len(message.Photo)-1]
	imageData, err := b.downloadTelegramFile(ctx, photo.FileID)
	if err != nil {
		ErrorLogger.Printf("Error downloading photo %s: %v", photo.FileID, err)
		b.sendResponse(ctx, chatID, "Sorry, I couldn't process the image.")
		return
	}

	record, err := b.extractDrawFromImage(ctx, imageData, "image/jpeg")
	if err != nil {
		ErrorLogger.Printf("Error extracting draw from image: %v", err)
		b.sendResponse(ctx, chatID, "Sorry, I couldn't read Mark Six results from that image.")
		return
	}

	userMessage := b.createMessage(chatID, userID, username, "Sent a Mark Six result photo.", true)
	userMessage.ExtractedDrawID = record.DrawID
	if err := b.storeMessage(userMessage); err != nil {
		ErrorLogger.Printf("Error storing user message: %v", err)
	}

	reply := "Mark Six results extracted:\n" + formatDraw(record)
	if err := b.sendResponse(ctx, chatID, reply); err != nil {
		return
	}
	assistantMessage := b.createMessage(chatID, 0, "", reply, false)
	if err := b.storeMessage(assistantMessage); err != nil {
		ErrorLogger.Printf("Error storing assistant message: %v", err)
	}
}

// downloadTelegramFile fetches a file's bytes through the bot API. The HTTP
// client is timeout-bounded so a stalled download cannot hang a handler.
func (b *Bot) downloadTelegramFile(ctx context.Context, fileID string) ([]byte, error) {
	file, err := b.tgBot.GetFile(ctx, &bot.GetFileParams{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("%w: resolving file: %v", ErrExternalService, err)
	}

	link := b.tgBot.FileDownloadLink(file)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building download request: %v", ErrExternalService, err)
	}
	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: downloading file: %v", ErrExternalService, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: download returned status %d", ErrExternalService, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
