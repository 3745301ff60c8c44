package subpub

import "sync/atomic"

// refCount is a small atomic reference counter shared by Client and
// messageWrapper. It never needs the broker lock.
type refCount struct {
	n atomic.Int64
}

func (r *refCount) store(n int64) { r.n.Store(n) }

// retain adds one reference.
func (r *refCount) retain() { r.n.Add(1) }

// drop removes one reference and reports whether this was the last one.
func (r *refCount) drop() bool { return r.n.Add(-1) == 0 }

// load returns the current count, for diagnostics and tests only.
func (r *refCount) load() int64 { return r.n.Load() }
