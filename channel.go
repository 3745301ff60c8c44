package subpub

// Channel is a named routing endpoint, exact-match or pattern-match, owning
// an intrusive doubly-linked list of Clients. The list membership is the
// Channel's only reference to a Client — lifetime past removal is governed
// solely by refcount.
type Channel struct {
	name       Name
	usePattern bool

	head, tail *Client
	count      int
}

func newChannel(name Name, usePattern bool) *Channel {
	return &Channel{name: name, usePattern: usePattern}
}

// push attaches a Client to the end of the list. Requires the broker lock.
func (ch *Channel) push(cl *Client) {
	cl.parent = ch
	cl.prev = ch.tail
	cl.next = nil
	if ch.tail != nil {
		ch.tail.next = cl
	} else {
		ch.head = cl
	}
	ch.tail = cl
	ch.count++
}

// remove detaches a Client from the list and reports whether the list is now
// empty. Requires the broker lock.
func (ch *Channel) remove(cl *Client) (empty bool) {
	if cl.prev != nil {
		cl.prev.next = cl.next
	} else {
		ch.head = cl.next
	}
	if cl.next != nil {
		cl.next.prev = cl.prev
	} else {
		ch.tail = cl.prev
	}
	cl.prev, cl.next = nil, nil
	ch.count--
	return ch.count == 0
}

// isEmpty reports whether the Channel currently has no Clients.
func (ch *Channel) isEmpty() bool { return ch.count == 0 }
