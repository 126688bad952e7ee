package analytics

import "sort"

// Entry is a key with its count.
type Entry[K comparable] struct {
	Key   K
	Count int
}

// Counter counts keys and remembers the order in which each key was first
// seen. That order is the tie-break when ranking. A nil *Counter behaves as
// an empty one for every read method.
type Counter[K comparable] struct {
	order  []K
	counts map[K]int
}

func NewCounter[K comparable]() *Counter[K] {
	return &Counter[K]{counts: make(map[K]int)}
}

// Add increments k, registering it on first sight.
func (c *Counter[K]) Add(k K) {
	c.AddN(k, 1)
}

func (c *Counter[K]) AddN(k K, n int) {
	if _, ok := c.counts[k]; !ok {
		c.order = append(c.order, k)
	}
	c.counts[k] += n
}

// Set stores n for k. A key set to zero is still present.
func (c *Counter[K]) Set(k K, n int) {
	if _, ok := c.counts[k]; !ok {
		c.order = append(c.order, k)
	}
	c.counts[k] = n
}

// Get reports the count of k and whether k is present at all.
func (c *Counter[K]) Get(k K) (int, bool) {
	if c == nil {
		return 0, false
	}
	n, ok := c.counts[k]
	return n, ok
}

func (c *Counter[K]) Count(k K) int {
	n, _ := c.Get(k)
	return n
}

func (c *Counter[K]) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}

// Total is the sum of all counts.
func (c *Counter[K]) Total() int {
	if c == nil {
		return 0
	}
	total := 0
	for _, n := range c.counts {
		total += n
	}
	return total
}

// Max is the largest count, or 0 for an empty counter.
func (c *Counter[K]) Max() int {
	if c == nil {
		return 0
	}
	highest := 0
	for _, n := range c.counts {
		if n > highest {
			highest = n
		}
	}
	return highest
}

// Keys returns the keys in first-seen order.
func (c *Counter[K]) Keys() []K {
	if c == nil {
		return nil
	}
	keys := make([]K, len(c.order))
	copy(keys, c.order)
	return keys
}

// Ranked returns all entries by count descending. Equal counts keep their
// first-seen order, so the sort must stay stable.
func (c *Counter[K]) Ranked() []Entry[K] {
	if c == nil {
		return nil
	}
	entries := make([]Entry[K], 0, len(c.order))
	for _, k := range c.order {
		entries = append(entries, Entry[K]{Key: k, Count: c.counts[k]})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	return entries
}

// Top returns the first n ranked entries. n <= 0 or n beyond the number of
// keys returns everything.
func (c *Counter[K]) Top(n int) []Entry[K] {
	ranked := c.Ranked()
	if n <= 0 || n >= len(ranked) {
		return ranked
	}
	return ranked[:n]
}

func (c *Counter[K]) Clone() *Counter[K] {
	clone := NewCounter[K]()
	if c == nil {
		return clone
	}
	for _, k := range c.order {
		clone.Set(k, c.counts[k])
	}
	return clone
}

// Merge sums counters into a new one. Keys keep the order of first
// appearance across the inputs, in argument order.
func Merge[K comparable](counters ...*Counter[K]) *Counter[K] {
	merged := NewCounter[K]()
	for _, c := range counters {
		if c == nil {
			continue
		}
		for _, k := range c.order {
			merged.AddN(k, c.counts[k])
		}
	}
	return merged
}
