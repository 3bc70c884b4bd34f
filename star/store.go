// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package star

// dimension holds rows in surrogate-key order. The row with key k lives at
// rows[k-1], so keys start at 1 and are never reused.
type dimension[T any] struct {
	rows  []T
	index map[string]int
}

func newDimension[T any]() dimension[T] {
	return dimension[T]{index: make(map[string]int)}
}

func (d *dimension[T]) lookup(naturalKey string) (int, bool) {
	id, ok := d.index[naturalKey]
	return id, ok
}

func (d *dimension[T]) get(id int) (T, bool) {
	if id < 1 || id > len(d.rows) {
		var zero T
		return zero, false
	}
	return d.rows[id-1], true
}

// insert allocates the next surrogate key and stores the row built for it
func (d *dimension[T]) insert(naturalKey string, build func(id int) T) int {
	id := len(d.rows) + 1
	d.rows = append(d.rows, build(id))
	d.index[naturalKey] = id
	return id
}

func (d *dimension[T]) len() int {
	return len(d.rows)
}

func (d *dimension[T]) snapshot() []T {
	out := make([]T, len(d.rows))
	copy(out, d.rows)
	return out
}
