package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/liushuangls/go-anthropic/v2"
)

const (
	llmRequestTimeout    = 45 * time.Second
	visionExtractRetries = 3
)

const defaultSystemPrompt = "You are a friendly assistant for a Hong Kong Mark Six lottery bot. " +
	"You can chat about the lottery, but you must never invent draw results: " +
	"historical results come only from the bot's own data. " +
	"Keep answers short and clear."

// visionSystemPrompt pins the extraction schema. The reply is re-validated
// locally; the model's output is never trusted as-is.
const visionSystemPrompt = `Analyze images containing Hong Kong Mark Six lottery results and extract the lottery information.

Respond with ONLY a JSON object, no prose and no code fences, in this exact shape:
{"draw_number": <positive integer>, "draw_date": "YYYY-MM-DD", "numbers": [six distinct integers 1-49, ascending], "bonus_number": <integer 1-49 not among numbers>}`

// getAnthropicResponse asks the model for a conversational reply with the
// chat's recent messages as context. Failures wrap ErrExternalService.
func (b *Bot) getAnthropicResponse(ctx context.Context, messages []anthropic.Message, isNewChat bool) (string, error) {
	systemMessage := b.config.SystemPrompt
	if systemMessage == "" {
		systemMessage = defaultSystemPrompt
	}
	if !isNewChat {
		systemMessage += " Continue the conversation."
	}

	ctx, cancel := context.WithTimeout(ctx, llmRequestTimeout)
	defer cancel()

	resp, err := b.anthropicClient.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:     b.config.Model,
		Messages:  messages,
		System:    systemMessage,
		MaxTokens: 1000,
	})
	if err != nil {
		return "", fmt.Errorf("%w: creating Anthropic message: %v", ErrExternalService, err)
	}

	if len(resp.Content) == 0 || resp.Content[0].Type != anthropic.MessagesContentTypeText {
		return "", fmt.Errorf("%w: unexpected response format from Anthropic", ErrExternalService)
	}

	return resp.Content[0].GetText(), nil
}

// drawExtraction is the wire shape the vision model is asked to return.
type drawExtraction struct {
	DrawNumber  int    `json:"draw_number"`
	DrawDate    string `json:"draw_date"`
	Numbers     []int  `json:"numbers"`
	BonusNumber int    `json:"bonus_number"`
}

// extractDrawFromImage sends the photographed result table to the vision
// model and parses the structured reply into a DrawRecord. The record is
// validated against the Mark Six invariants before it is accepted; a reply
// that violates them counts as a failed attempt. Transport failures wrap
// ErrExternalService.
func (b *Bot) extractDrawFromImage(ctx context.Context, imageData []byte, mediaType string) (DrawRecord, error) {
	request := anthropic.MessagesRequest{
		Model: b.config.Model,
		Messages: []anthropic.Message{
			{
				Role: anthropic.RoleUser,
				Content: []anthropic.MessageContent{
					anthropic.NewImageMessageContent(
						anthropic.NewMessageContentSource(anthropic.MessagesContentSourceTypeBase64, mediaType, imageData),
					),
					anthropic.NewTextMessageContent("Extract the Mark Six lottery results from this image."),
				},
			},
		},
		System:    visionSystemPrompt,
		MaxTokens: 500,
	}

	var lastErr error
	for attempt := 1; attempt <= visionExtractRetries; attempt++ {
		record, err := b.runVisionExtraction(ctx, request)
		if err == nil {
			return record, nil
		}
		lastErr = err
		ErrorLogger.Printf("Vision extraction attempt %d/%d failed: %v", attempt, visionExtractRetries, err)
		if ctx.Err() != nil {
			break
		}
	}
	return DrawRecord{}, lastErr
}

func (b *Bot) runVisionExtraction(ctx context.Context, request anthropic.MessagesRequest) (DrawRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, llmRequestTimeout)
	defer cancel()

	resp, err := b.anthropicClient.CreateMessages(ctx, request)
	if err != nil {
		return DrawRecord{}, fmt.Errorf("%w: vision request: %v", ErrExternalService, err)
	}
	if len(resp.Content) == 0 || resp.Content[0].Type != anthropic.MessagesContentTypeText {
		return DrawRecord{}, fmt.Errorf("%w: unexpected vision response format", ErrExternalService)
	}

	return parseDrawExtraction(resp.Content[0].GetText())
}

// parseDrawExtraction turns the model's JSON reply into a validated
// DrawRecord. Code fences are tolerated since models add them despite
// instructions.
func parseDrawExtraction(raw string) (DrawRecord, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var extraction drawExtraction
	if err := json.Unmarshal([]byte(cleaned), &extraction); err != nil {
		return DrawRecord{}, fmt.Errorf("%w: vision reply is not valid JSON: %v", ErrDataFormat, err)
	}

	if len(extraction.Numbers) != mainNumberCount {
		return DrawRecord{}, fmt.Errorf("%w: expected %d main numbers, got %d",
			ErrDataFormat, mainNumberCount, len(extraction.Numbers))
	}

	drawDate, err := time.Parse(dateLayout, extraction.DrawDate)
	if err != nil {
		return DrawRecord{}, fmt.Errorf("%w: bad draw date %q", ErrDataFormat, extraction.DrawDate)
	}

	record := DrawRecord{
		DrawID:      extraction.DrawNumber,
		DrawDate:    drawDate,
		BonusNumber: extraction.BonusNumber,
	}
	copy(record.MainNumbers[:], extraction.Numbers)

	if err := ValidateDraw(record); err != nil {
		return DrawRecord{}, err
	}
	return record, nil
}
