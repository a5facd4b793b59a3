// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package distribution

import (
	"cmp"
	"fmt"
	"github.com/alvinbaena/pwd-analyst/pkg/corpus"
	"github.com/jfcg/sorty/v2"
)

// KeyFunc maps a password to the category it is counted under.
type KeyFunc[K cmp.Ordered] func(password string) K

// Bucket is a single category of a histogram with its count and relative frequency.
type Bucket[K cmp.Ordered] struct {
	Key       K       `json:"key"`
	Count     int     `json:"count"`
	Frequency float64 `json:"frequency"`

	// position of the first occurrence, breaks ties between equal counts
	seen int
}

// Histogram counts occurrences of categories, remembering the order in which they were first seen.
type Histogram[K cmp.Ordered] struct {
	counts map[K]int
	order  []K
	total  int
}

func NewHistogram[K cmp.Ordered]() *Histogram[K] {
	return &Histogram[K]{counts: make(map[K]int)}
}

// Count builds the histogram of key(p) for every password p.
func Count[K cmp.Ordered](passwords []string, key KeyFunc[K]) *Histogram[K] {
	h := NewHistogram[K]()
	for _, p := range passwords {
		h.Add(key(p))
	}

	return h
}

func (h *Histogram[K]) Add(key K) {
	if _, ok := h.counts[key]; !ok {
		h.order = append(h.order, key)
	}
	h.counts[key]++
	h.total++
}

// Total is the number of observations.
func (h *Histogram[K]) Total() int {
	return h.total
}

// Len is the number of distinct categories observed.
func (h *Histogram[K]) Len() int {
	return len(h.order)
}

func (h *Histogram[K]) Get(key K) int {
	return h.counts[key]
}

// MaxCount is the count of the most frequent category, 0 for an empty histogram.
func (h *Histogram[K]) MaxCount() int {
	m := 0
	for _, c := range h.counts {
		if c > m {
			m = c
		}
	}

	return m
}

// Normalize divides every count by the total. Fails with corpus.ErrEmptyInput when nothing was counted.
func (h *Histogram[K]) Normalize() (Distribution[K], error) {
	if h.total == 0 {
		return nil, fmt.Errorf("%w: cannot build a distribution from an empty corpus", corpus.ErrEmptyInput)
	}

	d := make(Distribution[K], len(h.counts))
	total := float64(h.total)
	for k, c := range h.counts {
		d[k] = float64(c) / total
	}

	return d, nil
}

// Top returns the n most frequent categories, most frequent first. Equal counts keep the order in
// which the categories were first seen. n <= 0 returns every category.
func (h *Histogram[K]) Top(n int) []Bucket[K] {
	buckets := make([]Bucket[K], 0, len(h.order))
	for i, k := range h.order {
		c := h.counts[k]
		buckets = append(buckets, Bucket[K]{
			Key:       k,
			Count:     c,
			Frequency: float64(c) / float64(h.total),
			seen:      i,
		})
	}

	sorty.Sort(len(buckets), func(i, k, r, s int) bool {
		if buckets[i].Count > buckets[k].Count ||
			(buckets[i].Count == buckets[k].Count && buckets[i].seen < buckets[k].seen) {
			if r != s {
				buckets[r], buckets[s] = buckets[s], buckets[r]
			}
			return true
		}
		return false
	})

	if n > 0 && n < len(buckets) {
		buckets = buckets[:n]
	}

	return buckets
}
