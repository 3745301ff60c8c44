package subpub

// Message is the transient envelope handed to OnMessage. It must not be
// retained past the callback except via Defer.
type Message struct {
	Channel      Name
	Payload      Payload
	Subscription *Client
	UData1       any
	UData2       any

	wrapper *messageWrapper
}

// messageWrapper is allocated once per local publish and shared across its
// fan-out. Its refcount is 1 (publisher hold) plus one per delivery task
// submitted for it; it is reclaimed after the final delivery finishes.
type messageWrapper struct {
	ref     refCount
	channel Name
	payload Payload
}

func newMessageWrapper(channel Name, payload Payload) *messageWrapper {
	w := &messageWrapper{channel: channel.Dup(), payload: payload.Dup()}
	w.ref.store(1)
	return w
}

func (w *messageWrapper) release() {
	if w.ref.drop() {
		w.channel.Release()
		w.payload.Release()
	}
}
