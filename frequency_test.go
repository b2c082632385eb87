package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTable(t *testing.T) []DrawRecord {
	t.Helper()
	return []DrawRecord{
		{DrawID: 1, DrawDate: mustDate(t, "2024-01-02"), MainNumbers: [6]int{1, 2, 3, 4, 5, 6}, BonusNumber: 7},
		{DrawID: 2, DrawDate: mustDate(t, "2024-01-04"), MainNumbers: [6]int{1, 2, 3, 4, 5, 7}, BonusNumber: 8},
	}
}

func TestFrequencies(t *testing.T) {
	table := testTable(t)
	freqs := Frequencies(table)

	assert.Equal(t, 2, freqs[1])
	assert.Equal(t, 2, freqs[5])
	assert.Equal(t, 1, freqs[6])
	// Bonus numbers never enter the main frequency table.
	assert.Equal(t, 1, freqs[7])
	assert.Equal(t, 0, freqs[8])
	assert.Equal(t, 0, freqs[49])

	// All 49 numbers are always present as candidates.
	assert.Len(t, freqs, 49)
}

func TestFrequencies_DoesNotMutateInput(t *testing.T) {
	table := testTable(t)
	before := table[0]
	Frequencies(table)
	assert.Equal(t, before, table[0])
}

func TestBonusFrequencies(t *testing.T) {
	freqs := BonusFrequencies(testTable(t))
	assert.Equal(t, 1, freqs[7])
	assert.Equal(t, 1, freqs[8])
	assert.Equal(t, 0, freqs[1])
}

func TestTopN_OrderAndTieBreak(t *testing.T) {
	table := testTable(t)

	top := TopN(table, 6)
	require.Len(t, top, 6)

	// Counts descending, ties broken by ascending number: 1..5 all have
	// count 2, then 6 and 7 tie at 1 and 6 wins.
	for i, want := range []NumberCount{
		{Number: 1, Count: 2},
		{Number: 2, Count: 2},
		{Number: 3, Count: 2},
		{Number: 4, Count: 2},
		{Number: 5, Count: 2},
		{Number: 6, Count: 1},
	} {
		assert.Equal(t, want, top[i], "position %d", i)
	}
}

func TestTopN_AlwaysFullLength(t *testing.T) {
	table := testTable(t)

	for _, n := range []int{1, 7, 10, 49} {
		assert.Len(t, TopN(table, n), n, "n=%d", n)
	}

	// Clamped, not failed, outside [0,49].
	assert.Len(t, TopN(table, 100), 49)
	assert.Len(t, TopN(table, -3), 0)

	// Well-defined even over an empty table: every count is 0 and ties
	// resolve ascending.
	top := TopN(nil, 3)
	require.Len(t, top, 3)
	assert.Equal(t, NumberCount{Number: 1, Count: 0}, top[0])
}

func TestBottomN(t *testing.T) {
	bottom := BottomN(testTable(t), 3)
	require.Len(t, bottom, 3)

	// 8..49 (and the never-drawn low numbers) all sit at 0; ascending
	// tie-break puts 8 first since 1..7 all appeared.
	assert.Equal(t, NumberCount{Number: 8, Count: 0}, bottom[0])
	assert.Equal(t, NumberCount{Number: 9, Count: 0}, bottom[1])
	assert.Equal(t, NumberCount{Number: 10, Count: 0}, bottom[2])
}
