package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestRenderFrequencyChart(t *testing.T) {
	freqs := Frequencies(testTable(t))

	png, err := RenderFrequencyChart(freqs, 10, ChartOptions{Width: 1280, Height: 720, DPI: 92})
	require.NoError(t, err)
	require.NotEmpty(t, png)
	assert.Equal(t, pngMagic, png[:4])
}

func TestRenderFrequencyChart_EmptyTable(t *testing.T) {
	// No partial output on failure.
	png, err := RenderFrequencyChart(Frequencies(nil), 10, ChartOptions{Width: 1280, Height: 720, DPI: 92})
	assert.ErrorIs(t, err, ErrRender)
	assert.Nil(t, png)
}

func TestHighlightSet(t *testing.T) {
	freqs := Frequencies(testTable(t))

	// Same ranking and tie-break as TopN: 1..5 at count 2, then 6.
	set := highlightSet(freqs, 6)
	require.Len(t, set, 6)
	for _, n := range []int{1, 2, 3, 4, 5, 6} {
		assert.True(t, set[n], "number %d should be highlighted", n)
	}
	assert.False(t, set[7])
}
