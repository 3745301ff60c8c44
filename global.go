package subpub

// The functions below mirror the Broker methods of the same name against
// the package-wide Default() broker. Most embedders should prefer an
// explicit *Broker (via New) for testability; these exist for callers that
// want the single-process-wide broker the original facil.io service exposes
// as bare C functions.

// Subscribe registers a handler on Default().
func Subscribe(channel Name, usePattern bool, onMessage OnMessage, onUnsubscribe OnUnsubscribe, udata1, udata2 any) *Client {
	return defaultBroker.Subscribe(channel, usePattern, onMessage, onUnsubscribe, udata1, udata2)
}

// FindSubscription looks up an existing subscription on Default().
func FindSubscription(channel Name, onMessage OnMessage, onUnsubscribe OnUnsubscribe, udata1, udata2 any) *Client {
	return defaultBroker.FindSubscription(channel, onMessage, onUnsubscribe, udata1, udata2)
}

// Unsubscribe removes a subscription from Default().
func Unsubscribe(sub *Client) error {
	return defaultBroker.Unsubscribe(sub)
}

// Publish dispatches through Default().
func Publish(channel Name, payload Payload, engine Engine) error {
	return defaultBroker.Publish(channel, payload, engine)
}

// Defer re-queues the current delivery on Default().
func Defer(msg *Message) {
	defaultBroker.Defer(msg)
}

// RegisterEngine registers an Engine with Default().
func RegisterEngine(e Engine) {
	defaultBroker.RegisterEngine(e)
}

// DeregisterEngine removes an Engine from Default().
func DeregisterEngine(e Engine) {
	defaultBroker.DeregisterEngine(e)
}
