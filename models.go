package main

import (
	"time"

	"gorm.io/gorm"
)

// Message is one stored chat message, user or assistant side. The draw
// history itself lives in the CSV file, not here; the database only carries
// conversation state and usage stats.
type Message struct {
	gorm.Model
	ChatID    int64     `gorm:"index"`
	UserID    int64     `gorm:"index"`
	Username  string    `gorm:"index"`
	Text      string    `gorm:"type:text"`
	Timestamp time.Time `gorm:"index"`
	IsUser    bool
	// Set when the message was a photo the vision model extracted a draw
	// from, so extractions stay auditable.
	ExtractedDrawID int `gorm:"index"`
}

// User is one Telegram user the bot has talked to.
type User struct {
	gorm.Model
	TelegramID int64 `gorm:"uniqueIndex;not null"`
	Username   string
}

// ChatMemory is the in-process sliding window of recent messages for one
// chat, used to build LLM context. Backed by the Message table on first
// access.
type ChatMemory struct {
	Messages []Message
	Size     int
}
