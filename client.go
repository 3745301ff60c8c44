package subpub

import (
	"fmt"
	"reflect"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

// Client is a single registered handler bound to one Channel — the
// Subscription handle returned by Subscribe/FindSubscription.
type Client struct {
	// id is a diagnostic identifier only; it plays no role in routing or
	// dedup. Grounded on the teacher's GetUniqueSubscriberID, swapped for a
	// real UUID since google/uuid is already the teacher's one dependency.
	id string

	onMessage     OnMessage
	onUnsubscribe OnUnsubscribe
	udata1, udata2 any

	name       Name
	usePattern bool

	parent     *Channel
	prev, next *Client // intrusive doubly-linked list node

	ref refCount
}

// ID returns the Client's diagnostic identifier.
func (c *Client) ID() string { return c.id }

func newClient(name Name, usePattern bool, onMessage OnMessage, onUnsubscribe OnUnsubscribe, udata1, udata2 any) *Client {
	cl := &Client{
		id:            uuid.NewString(),
		onMessage:     onMessage,
		onUnsubscribe: onUnsubscribe,
		udata1:        udata1,
		udata2:        udata2,
		name:          name.Dup(),
		usePattern:    usePattern,
	}
	cl.ref.store(1)
	return cl
}

// release drops the membership/delivery/unsubscribe-task reference held by
// the caller. The Client's resources are freed exactly when the count
// reaches zero.
func (c *Client) release() {
	if c.ref.drop() {
		c.name.Release()
	}
}

// clientHash mixes (onMessage, onUnsubscribe, udata1, udata2) into a
// deterministic 64-bit value such that two subscriptions with the same
// callbacks and user data collide, which is what makes Subscribe's dedup
// check work. Go cannot cast a function value to an integer the way C casts
// a function pointer, so the mix uses reflect.Value.Pointer() for the
// callbacks (the address of their compiled code, stable for the lifetime of
// a given function value) and an identity/content hash for the user data.
// The shape of the mix — two cross-multiplied terms shifted in opposite
// directions, XORed with a third term — follows facil.io's
// client_compute_hash.
func clientHash(onMessage OnMessage, onUnsubscribe OnUnsubscribe, udata1, udata2 any) uint64 {
	const magicA = 0x736f6d6570736575 // same constant facil.io's original uses
	const magicB = 0x646f72616e646f6d

	msgPtr := funcPointer(onMessage)
	unsubPtr := funcPointer(onUnsubscribe)
	u1 := identityBits(udata1)
	u2 := identityBits(udata2)

	term1 := (msgPtr * (u1 ^ magicA)) >> 5
	term2 := (unsubPtr * (u1 ^ magicA)) << 47
	return (term1 | term2) ^ (u2 ^ magicB)
}

func funcPointer(fn any) uint64 {
	if fn == nil {
		return 0
	}
	v := reflect.ValueOf(fn)
	if v.IsNil() {
		return 0
	}
	return uint64(v.Pointer())
}

// identityBits returns a pointer identity for reference-shaped values
// (pointers, maps, channels, slices, funcs) and a content hash otherwise, so
// that two udata values that are "the same" for the caller's purposes mix to
// the same bits.
func identityBits(v any) uint64 {
	if v == nil {
		return 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Chan, reflect.Map, reflect.Func, reflect.UnsafePointer:
		if rv.IsNil() {
			return 0
		}
		return uint64(rv.Pointer())
	case reflect.Slice:
		if rv.IsNil() || rv.Len() == 0 {
			return 0
		}
		return uint64(rv.Pointer())
	default:
		return xxhash.Sum64String(fmt.Sprintf("%#v", v))
	}
}
