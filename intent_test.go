package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyIntent(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Intent
	}{
		{name: "latest result", text: "What's the latest result?", want: Intent{Kind: IntentLatest}},
		{name: "most recent draw", text: "show me the most recent draw", want: Intent{Kind: IntentLatest}},
		{name: "last draw", text: "last draw please", want: Intent{Kind: IntentLatest}},
		{name: "last k draws", text: "Show me the last 5 draws", want: Intent{Kind: IntentLastK, Count: 5}},
		{name: "last k results", text: "last 12 results", want: Intent{Kind: IntentLastK, Count: 12}},
		{name: "frequency how often", text: "How often has number 7 appeared?", want: Intent{Kind: IntentFrequency, Number: 7}},
		{name: "frequency how many times", text: "how many times did 23 come up", want: Intent{Kind: IntentFrequency, Number: 23}},
		{name: "frequency keyword", text: "frequency of 49", want: Intent{Kind: IntentFrequency, Number: 49}},
		{name: "summary stats", text: "show me the stats", want: Intent{Kind: IntentSummary}},
		{name: "summary statistics", text: "statistics please", want: Intent{Kind: IntentSummary}},
		{name: "chart", text: "can I get a frequency chart?", want: Intent{Kind: IntentChart}},
		{name: "graph", text: "draw me a graph", want: Intent{Kind: IntentChart}},
		{name: "plain expression", text: "1-9", want: Intent{Kind: IntentCalc, Expr: "1-9"}},
		{name: "complex expression", text: "2/4+3*5-1/27", want: Intent{Kind: IntentCalc, Expr: "2/4+3*5-1/27"}},
		{name: "localized glyph expression", text: "10 ÷ 4", want: Intent{Kind: IntentCalc, Expr: "10 ÷ 4"}},
		{name: "parenthesized expression", text: "(1+2)*3", want: Intent{Kind: IntentCalc, Expr: "(1+2)*3"}},
		{name: "free text falls through", text: "Tell me about the Mark Six lottery", want: Intent{Kind: IntentUnrecognized}},
		{name: "greeting falls through", text: "hello there", want: Intent{Kind: IntentUnrecognized}},
		{name: "bare number is not an expression", text: "42", want: Intent{Kind: IntentUnrecognized}},
		{name: "empty text", text: "   ", want: Intent{Kind: IntentUnrecognized}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyIntent(tt.text))
		})
	}
}
