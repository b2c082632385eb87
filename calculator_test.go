package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		want       float64
	}{
		{name: "addition", expression: "5+3", want: 8},
		{name: "subtraction with negative result", expression: "1-9", want: -8},
		{name: "multiplication", expression: "5*4", want: 20},
		{name: "localized multiply glyph", expression: "5×4", want: 20},
		{name: "localized divide glyph", expression: "10÷4", want: 2.5},
		{name: "division with decimal result", expression: "10/4", want: 2.5},
		{name: "operator precedence", expression: "1+2/4", want: 1.5},
		{name: "mixed precedence chain", expression: "2/4+3*5-1/2*7", want: 12},
		{name: "parentheses", expression: "(1+2)*3", want: 9},
		{name: "nested parentheses", expression: "((2+3)*(4-1))/5", want: 3},
		{name: "exponentiation", expression: "2**10", want: 1024},
		{name: "unary minus", expression: "-5+3", want: -2},
		{name: "decimals", expression: "0.1*10", want: 1},
		{name: "surrounding whitespace", expression: "  7 - 2 ", want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Evaluate(tt.expression)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, result, 1e-9)
		})
	}
}

func TestEvaluate_ExactDecimalChain(t *testing.T) {
	// 2/4 + 3*5 - 1/27 with standard precedence.
	result, err := Evaluate("2/4+3*5-1/27")
	require.NoError(t, err)
	assert.InDelta(t, 0.5+15-1.0/27, result, 1e-12)
}

func TestEvaluate_Errors(t *testing.T) {
	tests := []struct {
		name       string
		expression string
	}{
		{name: "division by zero", expression: "1/0"},
		{name: "division by zero in subexpression", expression: "5+3/(2-2)"},
		{name: "unbalanced parentheses", expression: "(1+2"},
		{name: "dangling operator", expression: "4+"},
		{name: "empty expression", expression: "   "},
		{name: "unknown symbol", expression: "3$4"},
		{name: "identifier", expression: "x+1"},
		{name: "function call", expression: "abs(-1)"},
		{name: "import attempt", expression: "__import__('os')"},
		{name: "attribute access", expression: "().__class__"},
		{name: "quoted string", expression: "\"rm -rf\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Evaluate(tt.expression)
			require.Error(t, err)
			// The whole taxonomy collapses to ErrEvaluation: callers show
			// one generic message either way.
			assert.ErrorIs(t, err, ErrEvaluation)
		})
	}
}
