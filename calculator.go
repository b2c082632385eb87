package main

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/Knetic/govaluate"
)

// The calculator is a security boundary, not just an arithmetic feature: it
// must reject anything it cannot prove is a pure arithmetic expression.
// Identifiers, function calls and quotes never reach the evaluator.

var glyphNormalizer = strings.NewReplacer(
	"×", "*",
	"÷", "/",
	"−", "-", // U+2212 minus sign
	",", ".",
)

// Evaluate computes an arithmetic expression: the four basic operators,
// parentheses, exponentiation via **, decimals and unary minus. Localized
// multiply/divide glyphs are normalized first. Every failure, including
// division by zero, wraps ErrEvaluation.
func Evaluate(expression string) (float64, error) {
	normalized := strings.TrimSpace(glyphNormalizer.Replace(expression))
	if normalized == "" {
		return 0, fmt.Errorf("%w: empty expression", ErrEvaluation)
	}

	for _, r := range normalized {
		if !isArithmeticRune(r) {
			return 0, fmt.Errorf("%w: unsupported symbol %q in %q", ErrEvaluation, r, expression)
		}
	}

	parsed, err := govaluate.NewEvaluableExpression(normalized)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrEvaluation, err)
	}

	result, err := parsed.Evaluate(nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrEvaluation, err)
	}

	value, ok := result.(float64)
	if !ok {
		return 0, fmt.Errorf("%w: %q is not a numeric expression", ErrEvaluation, expression)
	}
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, fmt.Errorf("%w: division by zero in %q", ErrEvaluation, expression)
	}
	return value, nil
}

func isArithmeticRune(r rune) bool {
	if unicode.IsDigit(r) || unicode.IsSpace(r) {
		return true
	}
	switch r {
	case '+', '-', '*', '/', '(', ')', '.':
		return true
	}
	return false
}
