package main

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// The query engine answers the closed intent set against an immutable table
// snapshot. Every function takes the table as an explicit argument; nothing
// here holds state between calls.

// Latest returns the draw with the greatest draw id.
func Latest(table []DrawRecord) (DrawRecord, error) {
	if len(table) == 0 {
		return DrawRecord{}, ErrEmptyTable
	}
	latest := table[0]
	for _, record := range table[1:] {
		if record.DrawID > latest.DrawID {
			latest = record
		}
	}
	return latest, nil
}

// FrequencyOf counts how often n appears among all draws' main numbers. A
// number that never appeared yields 0, not an error; only n outside [1,49]
// fails.
func FrequencyOf(table []DrawRecord, n int) (int, error) {
	if n < minNumber || n > maxNumber {
		return 0, fmt.Errorf("%w: number %d must be between %d and %d",
			ErrOutOfRange, n, minNumber, maxNumber)
	}
	return Frequencies(table)[n], nil
}

// LastK returns the k most recent draws ordered by descending draw id. A k
// larger than the table clamps to the full table; it is not an error.
func LastK(table []DrawRecord, k int) []DrawRecord {
	if k < 0 {
		k = 0
	}

	recent := make([]DrawRecord, len(table))
	copy(recent, table)
	// Stable descending sort keeps file order for (invalid but tolerated)
	// duplicate draw ids.
	for i := 1; i < len(recent); i++ {
		for j := i; j > 0 && recent[j].DrawID > recent[j-1].DrawID; j-- {
			recent[j], recent[j-1] = recent[j-1], recent[j]
		}
	}

	if k > len(recent) {
		k = len(recent)
	}
	return recent[:k]
}

// TableSummary describes the loaded history: its size, date range and the
// most and least frequent numbers.
type TableSummary struct {
	Size     int
	From, To time.Time
	Top      []NumberCount
	Bottom   []NumberCount
}

const summaryRankSize = 10

// Summarize builds the summary view. An empty table yields size 0, a zero
// date range and empty rankings.
func Summarize(table []DrawRecord) TableSummary {
	summary := TableSummary{Size: len(table)}
	if len(table) == 0 {
		return summary
	}

	summary.From = table[0].DrawDate
	summary.To = table[0].DrawDate
	for _, record := range table[1:] {
		if record.DrawDate.Before(summary.From) {
			summary.From = record.DrawDate
		}
		if record.DrawDate.After(summary.To) {
			summary.To = record.DrawDate
		}
	}
	summary.Top = TopN(table, summaryRankSize)
	summary.Bottom = BottomN(table, summaryRankSize)
	return summary
}

// Answer resolves a classified intent against a table snapshot and formats a
// user-facing reply. Calculator and chart intents are handled by their own
// adapters, not here.
func Answer(intent Intent, table []DrawRecord) (string, error) {
	switch intent.Kind {
	case IntentLatest:
		latest, err := Latest(table)
		if err != nil {
			return "", err
		}
		return formatDraw(latest), nil

	case IntentFrequency:
		count, err := FrequencyOf(table, intent.Number)
		if err != nil {
			return "", err
		}
		bonusCount := BonusFrequencies(table)[intent.Number]
		percentage := 0.0
		if len(table) > 0 {
			percentage = float64(count) / float64(len(table)) * 100
		}
		return fmt.Sprintf(
			"Frequency analysis for number %d:\n"+
				"📊 Appeared %d times in the main 6 numbers (out of %d draws)\n"+
				"📈 Frequency: %.1f%%\n"+
				"⭐ Appeared %d times as the extra number",
			intent.Number, count, len(table), percentage, bonusCount), nil

	case IntentLastK:
		recent := LastK(table, intent.Count)
		if len(recent) == 0 {
			return "", ErrEmptyTable
		}
		lines := []string{fmt.Sprintf("Latest %d Mark Six results:", len(recent))}
		for _, record := range recent {
			lines = append(lines, formatDrawLine(record))
		}
		return strings.Join(lines, "\n"), nil

	case IntentSummary:
		return formatSummary(Summarize(table)), nil
	}

	return "", fmt.Errorf("%w: intent kind %d has no query answer", ErrOutOfRange, intent.Kind)
}

func formatDraw(record DrawRecord) string {
	return fmt.Sprintf(
		"Draw #%d - %s\n🎱 Numbers: %s\n⭐ Bonus: %d",
		record.DrawID,
		record.DrawDate.Format(dateLayout),
		joinNumbers(record.MainNumbers[:]),
		record.BonusNumber,
	)
}

func formatDrawLine(record DrawRecord) string {
	return fmt.Sprintf("%s: %s + extra %d",
		record.DrawDate.Format(dateLayout),
		joinNumbers(record.MainNumbers[:]),
		record.BonusNumber,
	)
}

func formatSummary(summary TableSummary) string {
	if summary.Size == 0 {
		return "No historical data available."
	}

	caser := cases.Title(language.English)
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s from %d draws (%s to %s):\n\n",
		caser.String("statistics"),
		summary.Size,
		summary.From.Format(dateLayout),
		summary.To.Format(dateLayout),
	)
	sb.WriteString("🔥 Top 10 most frequent:\n")
	for _, nc := range summary.Top {
		fmt.Fprintf(&sb, "  Number %d: %d times\n", nc.Number, nc.Count)
	}
	sb.WriteString("\n❄️ Least frequent (bottom 10):\n")
	for _, nc := range summary.Bottom {
		fmt.Fprintf(&sb, "  Number %d: %d times\n", nc.Number, nc.Count)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func joinNumbers(numbers []int) string {
	parts := make([]string, len(numbers))
	for i, n := range numbers {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return strings.Join(parts, ", ")
}
