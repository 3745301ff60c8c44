package object

import (
	"sync/atomic"

	"github.com/kestrelbus/subpub"
)

// Bytes is the concrete subpub.Payload: an immutable, refcounted byte
// payload. Unlike Symbol, payloads are never interned — message bodies are
// rarely repeated, and deduplicating them would mean hashing every publish.
type Bytes struct {
	data []byte
	ref  atomic.Int64
}

// NewBytes wraps b in a refcounted Payload with an initial count of 1.
func NewBytes(b []byte) *Bytes {
	p := &Bytes{data: append([]byte(nil), b...)}
	p.ref.Store(1)
	return p
}

// Bytes returns a read-only view of the payload (subpub.Payload).
func (p *Bytes) Bytes() []byte { return p.data }

// Dup increments the refcount and returns p itself (subpub.Payload).
func (p *Bytes) Dup() subpub.Payload {
	p.ref.Add(1)
	return p
}

// Release decrements the refcount (subpub.Payload). Bytes holds no resource
// beyond the Go heap allocation, so reaching zero needs no extra cleanup;
// the count exists to satisfy the contract and to let callers detect
// use-after-free in tests via RefCount.
func (p *Bytes) Release() {
	p.ref.Add(-1)
}

// RefCount reports the current reference count, for diagnostics and tests.
func (p *Bytes) RefCount() int64 { return p.ref.Load() }
