package memory

// table is an insertion-ordered map. It is not safe for concurrent use;
// Store guards all tables with one lock.
type table[K comparable, V any] struct {
	order []K
	rows  map[K]V
}

func newTable[K comparable, V any]() *table[K, V] {
	return &table[K, V]{rows: make(map[K]V)}
}

func (t *table[K, V]) get(key K) (V, bool) {
	v, ok := t.rows[key]
	return v, ok
}

// put inserts or replaces the row. New keys go to the end.
func (t *table[K, V]) put(key K, v V) {
	if _, ok := t.rows[key]; !ok {
		t.order = append(t.order, key)
	}

	t.rows[key] = v
}

func (t *table[K, V]) remove(key K) bool {
	if _, ok := t.rows[key]; !ok {
		return false
	}

	delete(t.rows, key)

	for i, k := range t.order {
		if k == key {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}

	return true
}

// list returns the rows accepted by keep, in insertion order. A nil keep
// accepts everything. The result is never nil.
func (t *table[K, V]) list(keep func(V) bool) []V {
	out := make([]V, 0, len(t.order))

	for _, key := range t.order {
		v := t.rows[key]
		if keep == nil || keep(v) {
			out = append(out, v)
		}
	}

	return out
}

// find returns the first row accepted by match.
func (t *table[K, V]) find(match func(V) bool) (V, bool) {
	for _, key := range t.order {
		if v := t.rows[key]; match(v) {
			return v, true
		}
	}

	var zero V

	return zero, false
}

// removeWhere deletes every row accepted by match.
func (t *table[K, V]) removeWhere(match func(V) bool) {
	kept := t.order[:0]

	for _, key := range t.order {
		if match(t.rows[key]) {
			delete(t.rows, key)
			continue
		}
		kept = append(kept, key)
	}

	t.order = kept
}
