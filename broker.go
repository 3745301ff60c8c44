package subpub

import (
	"sync"

	"github.com/rs/zerolog"
)

// Broker is the process-wide routing fabric: a three-way index (exact
// channels, pattern channels, and the dedup table of live subscriptions),
// the publish-time match-and-fan-out algorithm, and the engine-notification
// protocol, all guarded by one mutex ("the broker lock"). Default() below is
// a single package-wide instance kept only for API ergonomics; every method
// here is equally usable on a Broker built with New for tests or
// multi-tenant embedding.
type Broker struct {
	mu sync.Mutex

	channels *index[*Channel]
	patterns *index[*Channel]
	clients  *index[*Client]
	engines  *engineRegistry

	defaultEngine Engine
	localEngine   Engine
	clusterEngine Engine

	runner Runner
	log    zerolog.Logger
}

// Option configures a Broker built with New.
type Option func(*Broker)

// WithLogger installs a structured logger for channel creation and
// destruction events. The default is zerolog.Nop() — silent unless explicitly enabled.
func WithLogger(l zerolog.Logger) Option {
	return func(b *Broker) { b.log = l }
}

// WithRunner installs a custom task Runner in place of the default
// goroutine-per-delivery implementation.
func WithRunner(r Runner) Option {
	return func(b *Broker) { b.runner = r }
}

// WithClusterEngine installs a real cluster transport as both the process
// default and the fallback cluster engine, in place of the no-op stub.
func WithClusterEngine(e Engine) Option {
	return func(b *Broker) {
		b.clusterEngine = e
		b.defaultEngine = e
	}
}

// New constructs a Broker with its local-process engine registered and
// installed as the process default, and the cluster stub wired as the
// fallback terminus for when no real cluster transport is registered.
func New(opts ...Option) *Broker {
	b := &Broker{
		channels:      newIndex[*Channel](),
		patterns:      newIndex[*Channel](),
		clients:       newIndex[*Client](),
		engines:       newEngineRegistry(),
		clusterEngine: ClusterEngineStub,
		runner:        NewGoroutineRunner(),
		log:           zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.localEngine = &LocalEngine{broker: b}
	b.engines.register(b.localEngine)
	if b.defaultEngine == nil {
		b.defaultEngine = b.localEngine
	}
	return b
}

var defaultBroker = New()

// Default returns the package-wide Broker instance, for callers that want
// the facil.io-style single global broker rather than an explicit instance.
func Default() *Broker { return defaultBroker }

// Subscribe registers a handler on a channel. It rejects requests missing a
// channel name or message handler, invoking onUnsubscribe once (if
// supplied) before returning nil. Subscribing twice with identical
// (channel, usePattern, callbacks, udata1, udata2) returns the existing
// Client without incrementing any visible refcount — a single Unsubscribe
// call dismantles it.
func (b *Broker) Subscribe(channel Name, usePattern bool, onMessage OnMessage, onUnsubscribe OnUnsubscribe, udata1, udata2 any) *Client {
	if onMessage == nil || channel == nil {
		if onUnsubscribe != nil {
			onUnsubscribe(udata1, udata2)
		}
		return nil
	}

	hash := clientHash(onMessage, onUnsubscribe, udata1, udata2)

	b.mu.Lock()
	defer b.mu.Unlock()

	if existing, ok := b.clients.find(hash, channel); ok {
		return existing
	}

	cl := newClient(channel, usePattern, onMessage, onUnsubscribe, udata1, udata2)
	b.clients.insert(hash, channel, cl)

	chIdx := b.channelIndex(usePattern)
	ch, ok := chIdx.find(channel.SymbolID(), channel)
	if !ok {
		ch = newChannel(channel.Dup(), usePattern)
		chIdx.insert(channel.SymbolID(), channel, ch)
		b.log.Debug().Str("channel", string(channel.Bytes())).Bool("pattern", usePattern).Msg("channel created")
		b.notifySubscribe(ch)
	}
	ch.push(cl)
	return cl
}

// FindSubscription performs a read-only lookup for an existing subscription.
// Callers must not call Unsubscribe more times than they successfully call
// Subscribe.
func (b *Broker) FindSubscription(channel Name, onMessage OnMessage, onUnsubscribe OnUnsubscribe, udata1, udata2 any) *Client {
	if onMessage == nil || channel == nil {
		return nil
	}
	hash := clientHash(onMessage, onUnsubscribe, udata1, udata2)
	b.mu.Lock()
	defer b.mu.Unlock()
	cl, _ := b.clients.find(hash, channel)
	return cl
}

// Unsubscribe removes a subscription. It is a no-op, returning
// ErrNilSubscription, on a nil handle. Unsubscribing is not idempotent: the
// caller must not call it more times than it successfully subscribed.
func (b *Broker) Unsubscribe(sub *Client) error {
	if sub == nil {
		return ErrNilSubscription
	}

	hash := clientHash(sub.onMessage, sub.onUnsubscribe, sub.udata1, sub.udata2)

	b.mu.Lock()
	ch := sub.parent
	empty := ch.remove(sub)

	// The clients dedup index must drop its entry here: otherwise a future
	// Subscribe with identical arguments would resurrect a Client that has
	// already left its Channel instead of starting a fresh one.
	if removed, ok := b.clients.insert(hash, sub.name, nil); !ok || removed != sub {
		panic("subpub: client index corruption detected")
	}

	if empty {
		chIdx := b.channelIndex(sub.usePattern)
		removed, ok := chIdx.insert(ch.name.SymbolID(), ch.name, nil)
		if !ok || removed != ch {
			panic("subpub: channel index corruption detected")
		}
		b.log.Debug().Str("channel", string(ch.name.Bytes())).Bool("pattern", ch.usePattern).Msg("channel destroyed")
		b.notifyUnsubscribe(ch)
	}
	b.mu.Unlock()

	if sub.onUnsubscribe != nil {
		sub.ref.retain()
		b.runner.Defer(b.runUnsubscribeTask, sub, nil)
	}
	sub.release()

	if empty {
		ch.name.Release()
	}
	return nil
}

// Defer re-queues the delivery a running OnMessage callback was invoked
// for. It is only valid from inside OnMessage; callers must return promptly
// after calling it since code may now run concurrently.
func (b *Broker) Defer(msg *Message) {
	msg.wrapper.ref.retain()
	msg.Subscription.ref.retain()
	b.runner.Defer(b.runDeliverTask, msg.Subscription, msg.wrapper)
}

// Publish dispatches to the selected Engine: explicit argument, else the
// process default, else the cluster engine. A nil resolved engine indicates
// broker corruption and is fatal rather than returned as an error.
func (b *Broker) Publish(channel Name, payload Payload, engine Engine) error {
	if channel == nil {
		return ErrMissingChannel
	}
	if payload == nil {
		return ErrMissingPayload
	}
	eng := engine
	if eng == nil {
		b.mu.Lock()
		eng = b.defaultEngine
		if eng == nil {
			eng = b.clusterEngine
		}
		b.mu.Unlock()
	}
	if eng == nil {
		panic("subpub: engine pointer data corrupted")
	}
	return eng.Publish(channel, payload)
}

// RegisterEngine adds an Engine so it receives subscribe/unsubscribe
// notifications and becomes eligible to be the process default.
func (b *Broker) RegisterEngine(e Engine) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.engines.register(e)
}

// DeregisterEngine removes an Engine. If it was the process default, the
// default falls back to the cluster engine; callers must install a new
// default afterwards if one is still wanted.
func (b *Broker) DeregisterEngine(e Engine) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.engines.deregister(e)
	if b.defaultEngine == e {
		b.defaultEngine = b.clusterEngine
	}
}

// SetDefaultEngine installs e as the engine Publish resolves to when called
// without an explicit engine argument.
func (b *Broker) SetDefaultEngine(e Engine) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.defaultEngine = e
}

// LocalEngine returns the broker's own in-process engine, for embedders that
// want to pass it explicitly to Publish.
func (b *Broker) LocalEngine() Engine { return b.localEngine }

func (b *Broker) channelIndex(usePattern bool) *index[*Channel] {
	if usePattern {
		return b.patterns
	}
	return b.channels
}

// notifySubscribe and notifyUnsubscribe run under the broker lock; Engine
// implementations must not re-enter locking broker APIs from within them.
func (b *Broker) notifySubscribe(ch *Channel) {
	b.engines.each(func(e Engine) { e.Subscribe(ch.name, ch.usePattern) })
}

func (b *Broker) notifyUnsubscribe(ch *Channel) {
	b.engines.each(func(e Engine) { e.Unsubscribe(ch.name, ch.usePattern) })
}

func (b *Broker) runUnsubscribeTask(arg1, _ any) {
	cl := arg1.(*Client)
	cl.onUnsubscribe(cl.udata1, cl.udata2)
	cl.release()
}

func (b *Broker) runDeliverTask(arg1, arg2 any) {
	cl := arg1.(*Client)
	w := arg2.(*messageWrapper)
	msg := &Message{
		Channel:      w.channel,
		Payload:      w.payload,
		Subscription: cl,
		UData1:       cl.udata1,
		UData2:       cl.udata2,
		wrapper:      w,
	}
	cl.onMessage(msg)
	w.release()
	cl.release()
}
