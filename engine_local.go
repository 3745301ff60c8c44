package subpub

// LocalEngine routes publications within the broker's own process.
// Subscribe/Unsubscribe are no-ops — all routing state already lives in the
// broker's indexes; only Publish does work.
type LocalEngine struct {
	broker *Broker
}

func (e *LocalEngine) Subscribe(Name, bool)   {}
func (e *LocalEngine) Unsubscribe(Name, bool) {}

// Publish matches channel against the exact index and every pattern in the
// pattern index, reference-counts the message once per matched Client, and
// defers one delivery task per match. It returns ErrNoSubscribers, with no
// observable state change, when nothing matched.
func (e *LocalEngine) Publish(channel Name, payload Payload) error {
	b := e.broker
	w := newMessageWrapper(channel, payload)
	delivered := false

	b.mu.Lock()
	if ch, ok := b.channels.find(channel.SymbolID(), channel); ok {
		delivered = e.fanOut(ch, w) || delivered
	}
	b.patterns.each(func(_ uint64, name Name, ch *Channel) bool {
		if Match(channel.Bytes(), name.Bytes()) {
			delivered = e.fanOut(ch, w) || delivered
		}
		return true
	})
	b.mu.Unlock()

	w.release() // release the publisher's initial hold
	if !delivered {
		return ErrNoSubscribers
	}
	return nil
}

// fanOut submits one delivery task per Client currently on ch's list. Must
// run under the broker lock.
func (e *LocalEngine) fanOut(ch *Channel, w *messageWrapper) bool {
	matched := false
	for cl := ch.head; cl != nil; cl = cl.next {
		w.ref.retain()
		cl.ref.retain()
		e.broker.runner.Defer(e.broker.runDeliverTask, cl, w)
		matched = true
	}
	return matched
}
