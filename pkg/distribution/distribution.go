// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package distribution

import (
	"cmp"
	"math"
	"slices"
	"unicode/utf8"
)

// Distribution is a probability mass function over the categories observed in a corpus.
// Categories that were not observed are not stored and read as 0.
type Distribution[K cmp.Ordered] map[K]float64

// Build counts key(p) for every password and normalizes the counts by the corpus size.
func Build[K cmp.Ordered](passwords []string, key KeyFunc[K]) (Distribution[K], error) {
	return Count(passwords, key).Normalize()
}

// Length is the length key function, in characters.
func Length(password string) int {
	return utf8.RuneCountInString(password)
}

// Keys returns the categories of the distribution in ascending order.
func (d Distribution[K]) Keys() []K {
	keys := make([]K, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	return keys
}

func (d Distribution[K]) Sum() float64 {
	sum := 0.0
	for _, k := range d.Keys() {
		sum += d[k]
	}

	return sum
}

// Euclidean is the distance between a and b over the union of their categories.
func Euclidean[K cmp.Ordered](a, b Distribution[K]) float64 {
	union := make([]K, 0, len(a)+len(b))
	for k := range a {
		union = append(union, k)
	}
	for k := range b {
		if _, ok := a[k]; !ok {
			union = append(union, k)
		}
	}
	// Fixed summation order, so the result does not depend on map iteration or argument order.
	slices.Sort(union)

	sum := 0.0
	for _, k := range union {
		diff := a[k] - b[k]
		sum += diff * diff
	}

	return math.Sqrt(sum)
}
