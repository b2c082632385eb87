package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The vision model's output is untrusted input: everything it returns gets
// re-validated against the Mark Six invariants before acceptance.

func TestParseDrawExtraction(t *testing.T) {
	raw := `{"draw_number": 24088, "draw_date": "2024-08-06", "numbers": [3, 11, 19, 27, 35, 49], "bonus_number": 48}`

	record, err := parseDrawExtraction(raw)
	require.NoError(t, err)
	assert.Equal(t, 24088, record.DrawID)
	assert.Equal(t, mustDate(t, "2024-08-06"), record.DrawDate)
	assert.Equal(t, [6]int{3, 11, 19, 27, 35, 49}, record.MainNumbers)
	assert.Equal(t, 48, record.BonusNumber)
}

func TestParseDrawExtraction_ToleratesCodeFences(t *testing.T) {
	raw := "```json\n{\"draw_number\": 1, \"draw_date\": \"2024-01-02\", \"numbers\": [1,2,3,4,5,6], \"bonus_number\": 7}\n```"

	record, err := parseDrawExtraction(raw)
	require.NoError(t, err)
	assert.Equal(t, 1, record.DrawID)
}

func TestParseDrawExtraction_RejectsInvalidReplies(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "not json", raw: "The numbers are 1, 2, 3, 4, 5, 6 with bonus 7."},
		{name: "five main numbers", raw: `{"draw_number": 1, "draw_date": "2024-01-02", "numbers": [1,2,3,4,5], "bonus_number": 7}`},
		{name: "seven main numbers", raw: `{"draw_number": 1, "draw_date": "2024-01-02", "numbers": [1,2,3,4,5,6,7], "bonus_number": 8}`},
		{name: "duplicate main numbers", raw: `{"draw_number": 1, "draw_date": "2024-01-02", "numbers": [1,1,3,4,5,6], "bonus_number": 7}`},
		{name: "bonus collides with main", raw: `{"draw_number": 1, "draw_date": "2024-01-02", "numbers": [1,2,3,4,5,6], "bonus_number": 6}`},
		{name: "number out of range", raw: `{"draw_number": 1, "draw_date": "2024-01-02", "numbers": [1,2,3,4,5,99], "bonus_number": 7}`},
		{name: "bad date", raw: `{"draw_number": 1, "draw_date": "06/08/2024", "numbers": [1,2,3,4,5,6], "bonus_number": 7}`},
		{name: "zero draw number", raw: `{"draw_number": 0, "draw_date": "2024-01-02", "numbers": [1,2,3,4,5,6], "bonus_number": 7}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseDrawExtraction(tt.raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrDataFormat)
		})
	}
}
