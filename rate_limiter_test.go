package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestCheckRateLimits verifies that users are allowed or denied based on
// their message rates, that exceeding a limit places a temporary ban, and
// that the daily reset gives a banned-out user a fresh start.
func TestCheckRateLimits(t *testing.T) {
	mockClock := &MockClock{
		currentTime: time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC),
	}

	config := testBotConfig("does-not-exist.csv")
	config.MessagePerHour = 5
	config.MessagePerDay = 10
	config.TempBanDuration = "1m"

	b := &Bot{
		config:       config,
		userLimiters: make(map[int64]*userLimiter),
		clock:        mockClock,
	}

	userID := int64(12345)

	// The hourly burst is allowed in full.
	for i := 0; i < config.MessagePerHour; i++ {
		assert.True(t, b.checkRateLimits(userID), "message %d should be allowed", i+1)
	}

	// The next message exceeds the hourly limit and triggers a ban.
	assert.False(t, b.checkRateLimits(userID), "message should be denied once the hourly limit is hit")

	// Still banned right away.
	assert.False(t, b.checkRateLimits(userID), "message should be denied while the user is banned")

	// Lifting the ban is not enough: the hourly bucket is still empty, so
	// the next attempt re-bans.
	mockClock.Advance(2 * time.Minute)
	assert.False(t, b.checkRateLimits(userID), "message should be denied while the hourly bucket is empty")

	// After a full day both limiters are rebuilt and the user recovers.
	mockClock.Advance(25 * time.Hour)
	assert.True(t, b.checkRateLimits(userID), "message should be allowed after the daily reset")
}

func TestCheckRateLimits_IndependentUsers(t *testing.T) {
	config := testBotConfig("does-not-exist.csv")
	config.MessagePerHour = 1
	config.MessagePerDay = 2

	b := &Bot{
		config:       config,
		userLimiters: make(map[int64]*userLimiter),
		clock:        &MockClock{currentTime: time.Now()},
	}

	// Exhausting one user's budget never affects another.
	assert.True(t, b.checkRateLimits(1))
	assert.False(t, b.checkRateLimits(1))
	assert.True(t, b.checkRateLimits(2))
}
