package main

import "sort"

// FrequencyTable maps each number in [1,49] to its occurrence count across all
// draws' main numbers. Bonus numbers are deliberately excluded from frequency
// ranking; they are reported separately where relevant.
type FrequencyTable map[int]int

// NumberCount pairs a number with its frequency, for ranked views.
type NumberCount struct {
	Number int
	Count  int
}

// Frequencies computes the frequency table for a snapshot. Pure function of
// its input; numbers that never appeared are present with count 0, so every
// number in [1,49] is always a ranking candidate.
func Frequencies(table []DrawRecord) FrequencyTable {
	freqs := make(FrequencyTable, maxNumber)
	for n := minNumber; n <= maxNumber; n++ {
		freqs[n] = 0
	}
	for _, record := range table {
		for _, n := range record.MainNumbers {
			freqs[n]++
		}
	}
	return freqs
}

// BonusFrequencies counts bonus-number appearances, kept separate from the
// main frequency table.
func BonusFrequencies(table []DrawRecord) FrequencyTable {
	freqs := make(FrequencyTable, maxNumber)
	for _, record := range table {
		freqs[record.BonusNumber]++
	}
	return freqs
}

// TopN returns the n most frequent numbers, most frequent first. Ties are
// broken by ascending number value so results are deterministic. n is clamped
// to [0,49].
func TopN(table []DrawRecord, n int) []NumberCount {
	return rankedN(Frequencies(table), n, true)
}

// BottomN returns the n least frequent numbers, least frequent first, with the
// same ascending-number tie-break as TopN.
func BottomN(table []DrawRecord, n int) []NumberCount {
	return rankedN(Frequencies(table), n, false)
}

func rankedN(freqs FrequencyTable, n int, descending bool) []NumberCount {
	if n < 0 {
		n = 0
	}
	if n > maxNumber {
		n = maxNumber
	}

	ranked := make([]NumberCount, 0, maxNumber)
	for number := minNumber; number <= maxNumber; number++ {
		ranked = append(ranked, NumberCount{Number: number, Count: freqs[number]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			if descending {
				return ranked[i].Count > ranked[j].Count
			}
			return ranked[i].Count < ranked[j].Count
		}
		return ranked[i].Number < ranked[j].Number
	})
	return ranked[:n]
}
