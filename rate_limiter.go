package main

import (
	"time"

	"golang.org/x/time/rate"
)

type userLimiter struct {
	hourlyLimiter *rate.Limiter
	dailyLimiter  *rate.Limiter
	lastReset     time.Time
	banUntil      time.Time
}

func (b *Bot) newUserLimiter() *userLimiter {
	return &userLimiter{
		hourlyLimiter: rate.NewLimiter(rate.Every(time.Hour/time.Duration(b.config.MessagePerHour)), b.config.MessagePerHour),
		dailyLimiter:  rate.NewLimiter(rate.Every(24*time.Hour/time.Duration(b.config.MessagePerDay)), b.config.MessagePerDay),
		lastReset:     b.clock.Now(),
	}
}

// checkRateLimits reports whether userID may send another message. Exceeding
// either window places a temporary ban; both limiters are rebuilt after a
// full day so a banned-out user eventually recovers.
func (b *Bot) checkRateLimits(userID int64) bool {
	b.userLimitersMu.Lock()
	defer b.userLimitersMu.Unlock()

	limiter, exists := b.userLimiters[userID]
	if !exists {
		limiter = b.newUserLimiter()
		b.userLimiters[userID] = limiter
	}

	now := b.clock.Now()

	if now.Before(limiter.banUntil) {
		return false
	}

	if now.Sub(limiter.lastReset) >= 24*time.Hour {
		fresh := b.newUserLimiter()
		fresh.lastReset = now
		b.userLimiters[userID] = fresh
		limiter = fresh
	}

	if !limiter.hourlyLimiter.Allow() || !limiter.dailyLimiter.Allow() {
		banDuration, _ := time.ParseDuration(b.config.TempBanDuration)
		limiter.banUntil = now.Add(banDuration)
		return false
	}

	return true
}
