// Package object is the concrete, outside-the-core implementation of the
// subpub.Name/subpub.Payload contract, grounded on the fiobj value system
// of facil.io's original pubsub.c: immutable, refcounted byte values with a
// stable 64-bit symbol identity, expressed as idiomatic Go values rather
// than a C tagged union.
package object

import (
	"bytes"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/kestrelbus/subpub"
)

// symbolTable interns Symbol values by content, mirroring fiobj_sym_id's
// deduplication: two Symbols built from equal byte sequences share one
// underlying allocation and one symbol id.
var symbolTable sync.Map // string(data) -> *Symbol

// Symbol is the concrete subpub.Name: an immutable UTF-8 byte sequence with
// a cached 64-bit symbol id (xxhash.Sum64 of its bytes) and a refcount.
type Symbol struct {
	data []byte
	sym  uint64
	ref  atomic.Int64
}

// NewSymbol interns b, returning a refcounted Symbol. Repeated calls with an
// equal byte sequence return the same *Symbol with its refcount bumped,
// rather than allocating a duplicate.
func NewSymbol(b []byte) *Symbol {
	key := string(b)
	if v, ok := symbolTable.Load(key); ok {
		s := v.(*Symbol)
		s.ref.Add(1)
		return s
	}
	s := &Symbol{data: append([]byte(nil), b...), sym: xxhash.Sum64(b)}
	s.ref.Store(1)
	if actual, loaded := symbolTable.LoadOrStore(key, s); loaded {
		as := actual.(*Symbol)
		as.ref.Add(1)
		return as
	}
	return s
}

var nullSymbol = NewSymbol(nil)

// Null returns the package's distinguished placeholder Name, analogous to
// fiobj_null() — a Name value usable as a sentinel key where a concrete
// channel name is not meaningful.
func Null() subpub.Name { return nullSymbol }

// Equals reports byte-for-byte content equality (subpub.Name).
func (s *Symbol) Equals(other subpub.Name) bool {
	if other == nil {
		return false
	}
	if o, ok := other.(*Symbol); ok {
		if s == o {
			return true
		}
		return bytes.Equal(s.data, o.data)
	}
	return bytes.Equal(s.data, other.Bytes())
}

// SymbolID returns the cached symbol identity (subpub.Name).
func (s *Symbol) SymbolID() uint64 { return s.sym }

// Bytes returns a read-only view of the underlying bytes (subpub.Name).
func (s *Symbol) Bytes() []byte { return s.data }

// Dup increments the refcount and returns s itself (subpub.Name) — Names
// are reference types, so duplication never copies bytes.
func (s *Symbol) Dup() subpub.Name {
	s.ref.Add(1)
	return s
}

// Release decrements the refcount, removing s from the intern table once it
// reaches zero (subpub.Name).
func (s *Symbol) Release() {
	if s.ref.Add(-1) == 0 {
		symbolTable.CompareAndDelete(string(s.data), s)
	}
}

// RefCount reports the current reference count, for diagnostics and tests.
func (s *Symbol) RefCount() int64 { return s.ref.Load() }
