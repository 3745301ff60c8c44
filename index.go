package subpub

// index is a hash map keyed by (u64 hash, Name), supporting find, insert
// (which returns the prior value and removes the entry when val is the zero
// value of V), and insertion-ordered iteration. The Broker's three indexes
// (exact channels, pattern channels, and the client dedup table) all share
// this one generic implementation. Iteration is only safe against
// concurrent mutation while the caller holds the broker lock; index itself
// holds no lock of its own.
type index[V comparable] struct {
	buckets map[uint64][]*indexEntry[V]
	order   []*indexEntry[V]
}

type indexEntry[V comparable] struct {
	hash uint64
	name Name
	val  V
}

func newIndex[V comparable]() *index[V] {
	return &index[V]{buckets: make(map[uint64][]*indexEntry[V])}
}

// find returns the value stored under (hash, name), if any.
func (idx *index[V]) find(hash uint64, name Name) (V, bool) {
	for _, e := range idx.buckets[hash] {
		if e.name.Equals(name) {
			return e.val, true
		}
	}
	var zero V
	return zero, false
}

// insert stores val under (hash, name) and returns the prior value (zero,
// false if none existed). Inserting the zero value of V removes the entry,
// returning the value that was removed — used by callers that must assert
// they removed the exact entry they expected to.
func (idx *index[V]) insert(hash uint64, name Name, val V) (V, bool) {
	var zero V
	bucket := idx.buckets[hash]
	for i, e := range bucket {
		if e.name.Equals(name) {
			prior := e.val
			if val == zero {
				idx.buckets[hash] = append(bucket[:i:i], bucket[i+1:]...)
				idx.removeFromOrder(e)
				return prior, true
			}
			e.val = val
			return prior, true
		}
	}
	if val == zero {
		return zero, false
	}
	e := &indexEntry[V]{hash: hash, name: name, val: val}
	idx.buckets[hash] = append(bucket, e)
	idx.order = append(idx.order, e)
	return zero, false
}

func (idx *index[V]) removeFromOrder(e *indexEntry[V]) {
	for i, o := range idx.order {
		if o == e {
			idx.order = append(idx.order[:i:i], idx.order[i+1:]...)
			return
		}
	}
}

// each iterates entries in insertion order. Must run under the broker lock.
func (idx *index[V]) each(fn func(hash uint64, name Name, val V) bool) {
	for _, e := range idx.order {
		if !fn(e.hash, e.name, e.val) {
			return
		}
	}
}

func (idx *index[V]) len() int { return len(idx.order) }
