// Package freq builds frequency distributions over token sequences.
package freq

import "sort"

// Entry is one item of a frequency table.
type Entry[K comparable] struct {
	Key   K
	Count int
}

// Table maps items to their occurrence counts. It is built once from a finite
// sequence and never modified; filtering returns a new Table.
type Table[K comparable] struct {
	counts map[K]int
	order  []K // first-seen order
	total  int
}

// New counts the items of seq.
func New[K comparable](seq []K) *Table[K] {
	t := &Table[K]{counts: make(map[K]int)}
	for _, k := range seq {
		if _, seen := t.counts[k]; !seen {
			t.order = append(t.order, k)
		}
		t.counts[k]++
	}
	t.total = len(seq)
	return t
}

// Count returns the number of occurrences of k; zero when absent.
func (t *Table[K]) Count(k K) int {
	return t.counts[k]
}

// Total returns the number of items counted, duplicates included.
func (t *Table[K]) Total() int {
	return t.total
}

// Len returns the number of distinct items.
func (t *Table[K]) Len() int {
	return len(t.order)
}

// Keys returns the distinct items in first-seen order.
func (t *Table[K]) Keys() []K {
	out := make([]K, len(t.order))
	copy(out, t.order)
	return out
}

// MostCommon returns the k entries with the highest counts, ties broken by
// first-seen order. k <= 0 returns every entry.
func (t *Table[K]) MostCommon(k int) []Entry[K] {
	entries := make([]Entry[K], len(t.order))
	for i, key := range t.order {
		entries[i] = Entry[K]{Key: key, Count: t.counts[key]}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})

	if k > 0 && len(entries) > k {
		entries = entries[:k]
	}
	return entries
}

// AtLeast returns a new table holding only items counted at least min times.
// First-seen order and the original total are kept.
func (t *Table[K]) AtLeast(min int) *Table[K] {
	out := &Table[K]{counts: make(map[K]int), total: t.total}
	for _, key := range t.order {
		if c := t.counts[key]; c >= min {
			out.order = append(out.order, key)
			out.counts[key] = c
		}
	}
	return out
}
