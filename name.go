package subpub

// Name is the immutable channel/payload-name contract the broker consumes.
// The core treats Name opaquely: it never constructs one itself, only
// compares, hashes, views and ref-counts the values callers hand it. A
// concrete implementation lives in package object (github.com/kestrelbus/subpub/object),
// grounded on the fiobj symbol system of the original facil.io pubsub service.
type Name interface {
	// Equals reports content equality: same UTF-8 byte sequence.
	Equals(other Name) bool
	// SymbolID returns a stable 64-bit identity used as the hash component
	// of this Name's index key. Equal byte sequences must yield equal ids.
	SymbolID() uint64
	// Bytes returns a read-only view of the underlying byte sequence.
	Bytes() []byte
	// Dup increments the reference count and returns the same Name.
	Dup() Name
	// Release decrements the reference count, freeing the Name at zero.
	Release()
}

// Payload is the immutable message-body contract the broker consumes. Like
// Name, the core only duplicates, releases and views it; it never inspects
// content.
type Payload interface {
	// Bytes returns a read-only view of the underlying byte sequence.
	Bytes() []byte
	// Dup increments the reference count and returns the same Payload.
	Dup() Payload
	// Release decrements the reference count, freeing the Payload at zero.
	Release()
}

// OnMessage is invoked once per delivery with a transient Message view. The
// view must not be retained past the call unless Defer is used to re-queue
// it.
type OnMessage func(msg *Message)

// OnUnsubscribe is invoked exactly once per accepted subscription's
// lifetime, after the subscription has fully unwound.
type OnUnsubscribe func(udata1, udata2 any)
