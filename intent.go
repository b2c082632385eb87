package main

import (
	"regexp"
	"strconv"
	"strings"
)

// IntentKind enumerates the closed set of requests the bot can answer without
// the LLM. Anything else classifies as IntentUnrecognized and falls through to
// the model.
type IntentKind int

const (
	IntentUnrecognized IntentKind = iota
	IntentLatest
	IntentFrequency
	IntentLastK
	IntentSummary
	IntentChart
	IntentCalc
)

// Intent is a tagged variant: Kind selects which payload field is meaningful.
type Intent struct {
	Kind   IntentKind
	Number int    // IntentFrequency: the number whose frequency is asked
	Count  int    // IntentLastK: how many draws were requested
	Expr   string // IntentCalc: the raw arithmetic expression
}

var (
	lastKRe     = regexp.MustCompile(`(?i)\blast\s+(\d+)\s+(?:draws?|results?)\b`)
	latestRe    = regexp.MustCompile(`(?i)\b(?:latest|most recent|newest)\b.*\b(?:result|draw|numbers?)\b|\blast (?:result|draw)\b`)
	frequencyRe = regexp.MustCompile(`(?i)\b(?:how (?:often|many times)|frequency|frequent)\b\D*(\d{1,3})`)
	summaryRe   = regexp.MustCompile(`(?i)\b(?:stats|statistics|summary|overview)\b`)
	chartRe     = regexp.MustCompile(`(?i)\b(?:chart|graph|plot|histogram)\b`)

	// An arithmetic expression contains only digits, operators, parentheses,
	// decimal points and whitespace (plus the localized glyphs the calculator
	// normalizes), with at least one digit and one operator.
	calcRe     = regexp.MustCompile(`^[0-9+\-*/().,×÷−\s]+$`)
	calcOperRe = regexp.MustCompile(`[+\-*/×÷−]`)
)

// ClassifyIntent maps raw message text to an Intent. The classifier is purely
// local and deterministic; it never calls the model.
func ClassifyIntent(text string) Intent {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Intent{Kind: IntentUnrecognized}
	}

	if calcRe.MatchString(trimmed) &&
		calcOperRe.MatchString(trimmed) &&
		strings.ContainsAny(trimmed, "0123456789") {
		return Intent{Kind: IntentCalc, Expr: trimmed}
	}

	// "last 5 draws" must win over the bare "latest result" pattern.
	if m := lastKRe.FindStringSubmatch(trimmed); m != nil {
		k, err := strconv.Atoi(m[1])
		if err == nil && k > 0 {
			return Intent{Kind: IntentLastK, Count: k}
		}
	}
	if latestRe.MatchString(trimmed) {
		return Intent{Kind: IntentLatest}
	}
	if m := frequencyRe.FindStringSubmatch(trimmed); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return Intent{Kind: IntentFrequency, Number: n}
		}
	}
	if chartRe.MatchString(trimmed) {
		return Intent{Kind: IntentChart}
	}
	if summaryRe.MatchString(trimmed) {
		return Intent{Kind: IntentSummary}
	}

	return Intent{Kind: IntentUnrecognized}
}
