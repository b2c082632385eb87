// telegram_client_mock.go
package main

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/mock"
)

// MockTelegramClient is a mock implementation of TelegramClient for testing.
type MockTelegramClient struct {
	mock.Mock
	SendMessageFunc    func(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	SendPhotoFunc      func(ctx context.Context, params *bot.SendPhotoParams) (*models.Message, error)
	SendChatActionFunc func(ctx context.Context, params *bot.SendChatActionParams) (bool, error)
	GetFileFunc        func(ctx context.Context, params *bot.GetFileParams) (*models.File, error)
	DownloadLinkFunc   func(f *models.File) string
	StartFunc          func(ctx context.Context)
}

// SendMessage mocks sending a text message.
func (m *MockTelegramClient) SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	if m.SendMessageFunc != nil {
		return m.SendMessageFunc(ctx, params)
	}
	args := m.Called(ctx, params)
	if msg, ok := args.Get(0).(*models.Message); ok {
		return msg, args.Error(1)
	}
	return nil, args.Error(1)
}

// SendPhoto mocks sending a photo.
func (m *MockTelegramClient) SendPhoto(ctx context.Context, params *bot.SendPhotoParams) (*models.Message, error) {
	if m.SendPhotoFunc != nil {
		return m.SendPhotoFunc(ctx, params)
	}
	args := m.Called(ctx, params)
	if msg, ok := args.Get(0).(*models.Message); ok {
		return msg, args.Error(1)
	}
	return nil, args.Error(1)
}

// SendChatAction mocks the typing indicator. Defaults to success so handler
// tests do not need to stub it.
func (m *MockTelegramClient) SendChatAction(ctx context.Context, params *bot.SendChatActionParams) (bool, error) {
	if m.SendChatActionFunc != nil {
		return m.SendChatActionFunc(ctx, params)
	}
	return true, nil
}

// GetFile mocks resolving a Telegram file id.
func (m *MockTelegramClient) GetFile(ctx context.Context, params *bot.GetFileParams) (*models.File, error) {
	if m.GetFileFunc != nil {
		return m.GetFileFunc(ctx, params)
	}
	args := m.Called(ctx, params)
	if f, ok := args.Get(0).(*models.File); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

// FileDownloadLink mocks building the download URL for a file.
func (m *MockTelegramClient) FileDownloadLink(f *models.File) string {
	if m.DownloadLinkFunc != nil {
		return m.DownloadLinkFunc(f)
	}
	return ""
}

// Start mocks starting the Telegram client.
func (m *MockTelegramClient) Start(ctx context.Context) {
	if m.StartFunc != nil {
		m.StartFunc(ctx)
		return
	}
	m.Called(ctx)
}
