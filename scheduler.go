package main

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

const (
	chartJobTimeout = 2 * time.Minute
	chartJobRetries = 3
	chartRetryDelay = 2 * time.Second
)

// Scheduler fires the chart-generation-and-send flow at the configured
// wall-clock times. Jobs run independently of interactive handling: each run
// is deadline-bounded, and a run that exhausts its retries is logged and
// dropped for that tick rather than accumulated.
type Scheduler struct {
	cron *cron.Cron
	bot  *Bot
}

func NewScheduler(b *Bot) *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		bot:  b,
	}
}

// Start registers the chart job and starts the cron loop. An empty schedule
// or a missing notification chat disables scheduling; neither is fatal.
func (s *Scheduler) Start() error {
	if s.bot.config.ChartSchedule == "" {
		InfoLogger.Println("No chart schedule configured; scheduled sends disabled")
		return nil
	}
	if s.bot.config.NotifyChatID == 0 {
		InfoLogger.Println("No notification chat configured; scheduled sends disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(s.bot.config.ChartSchedule, s.runChartJob); err != nil {
		return fmt.Errorf("invalid chart schedule %q: %w", s.bot.config.ChartSchedule, err)
	}

	s.cron.Start()
	InfoLogger.Printf("Scheduled chart job: %q -> chat %d",
		s.bot.config.ChartSchedule, s.bot.config.NotifyChatID)
	return nil
}

// Stop halts the cron loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runChartJob() {
	ctx, cancel := context.WithTimeout(context.Background(), chartJobTimeout)
	defer cancel()

	if err := runWithRetries(ctx, chartJobRetries, chartRetryDelay, s.sendScheduledChart); err != nil {
		ErrorLogger.Printf("Scheduled chart job failed, dropping until next tick: %v", err)
	}
}

// sendScheduledChart is one attempt of the scheduled flow: fresh snapshot,
// aggregate, render, send.
func (s *Scheduler) sendScheduledChart(ctx context.Context) error {
	table, err := s.bot.loadHistorySnapshot()
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	cfg := s.bot.config
	png, err := RenderFrequencyChart(Frequencies(table), cfg.HighlightTopK, ChartOptions{
		Width:  cfg.ChartWidth,
		Height: cfg.ChartHeight,
		DPI:    cfg.ChartDPI,
	})
	if err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}

	caption := fmt.Sprintf("Weekly Mark Six frequency chart (%d draws, top %d highlighted)",
		len(table), cfg.HighlightTopK)
	return s.bot.sendChart(ctx, cfg.NotifyChatID, png, caption)
}

// runWithRetries runs fn up to attempts times with doubling backoff, stopping
// early once the context is done.
func runWithRetries(ctx context.Context, attempts int, delay time.Duration, fn func(context.Context) error) error {
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if lastErr = fn(ctx); lastErr == nil {
			return nil
		}
		ErrorLogger.Printf("Attempt %d/%d failed: %v", attempt, attempts, lastErr)

		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", ctx.Err(), lastErr)
		case <-time.After(delay):
		}
		delay *= 2
	}
	return lastErr
}
