package stats

import (
	"math"
	"slices"
	"strconv"
)

// Tally is a group key with the number of items that fell into it.
type Tally[K comparable] struct {
	Key   K
	Count int
}

// Count groups items by key, keeping groups in the order their key was first seen.
func Count[T any, K comparable](items []T, key func(T) K) []Tally[K] {
	index := make(map[K]int)
	var out []Tally[K]
	for _, item := range items {
		k := key(item)
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, Tally[K]{Key: k})
		}
		out[i].Count++
	}
	return out
}

// RankDesc sorts by count, highest first. Equal counts keep their relative order,
// which callers must not rely on.
func RankDesc[K comparable](tallies []Tally[K]) {
	slices.SortStableFunc(tallies, func(a, b Tally[K]) int {
		return b.Count - a.Count
	})
}

// Top keeps at most n tallies; n <= 0 keeps everything.
func Top[K comparable](tallies []Tally[K], n int) []Tally[K] {
	if n <= 0 || len(tallies) <= n {
		return tallies
	}
	return tallies[:n]
}

// RoundRating rounds to one decimal place from the exact binary value, ties to even.
// 2.25 -> 2.2, 2.75 -> 2.8, 2.35 (stored as 2.3500000000000000888) -> 2.4.
func RoundRating(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 1, 64), 64)
	if err != nil {
		return 0
	}
	return r
}
