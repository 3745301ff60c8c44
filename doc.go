/*
Package subpub implements a concurrency-safe, in-process publish/subscribe
routing fabric: subscriptions on named channels — exact or glob-pattern
matched — publications fanned out to every matching subscriber exactly once,
asynchronously, with zero-copy payload sharing via reference counting.

It is designed to be embedded: one process-wide Broker shared by cooperating
producers, consumers, and pluggable transport Engines (in-process, cluster,
or an external bus). The routing core — the three-way index, the publish-time
match-and-fan-out algorithm, the refcounted Client/MessageWrapper lifecycle,
and the engine-notification protocol — is the part of the system where
correctness under concurrent mutation is non-trivial; everything else
(the Name/Payload value contract, the task Runner, concrete Engines) is a
small interface the core consumes, with a real implementation living
elsewhere.

# Key Features

  - Exact and pattern channels: Subscribe with usePattern=true to register a
    glob (`?`, `*`, `[...]`) against every published channel name instead of
    one literal name.

  - Deduplication: subscribing twice with identical callbacks, user data and
    channel returns the same Client handle rather than creating a second
    registration; a single Unsubscribe dismantles it.

  - Deferred delivery: OnMessage runs outside the broker lock, handed off to
    a pluggable Runner (goroutine-based by default). Calling Defer from
    inside OnMessage re-queues the same delivery for one more invocation.

  - Pluggable Engines: publish routing can be handled entirely in-process
    (LocalEngine, the default) or handed to a registered cluster transport —
    see github.com/kestrelbus/subpub/engine/redisengine for one built on
    Redis pub/sub.

# Usage

Construct a Broker, subscribe, and publish:

	broker := subpub.New()

	name := object.NewSymbol([]byte("news"))
	defer name.Release()

	sub := broker.Subscribe(name, false, func(msg *subpub.Message) {
		fmt.Printf("news: %s\n", msg.Payload.Bytes())
	}, nil, nil, nil)
	defer broker.Unsubscribe(sub)

	payload := object.NewBytes([]byte("hello"))
	defer payload.Release()
	broker.Publish(name, payload, nil)

# Pattern subscriptions

	pattern := object.NewSymbol([]byte("user.*"))
	sub := broker.Subscribe(pattern, true, onUserEvent, nil, nil, nil)

	channel := object.NewSymbol([]byte("user.42"))
	broker.Publish(channel, payload, nil) // delivered to sub

# Engines

A registered Engine is notified once whenever a channel transitions between
empty and non-empty, and is eligible to become the process default that
Publish resolves to when called with a nil engine argument:

	broker.RegisterEngine(redisEngine)
	broker.SetDefaultEngine(redisEngine)
	broker.Publish(name, payload, nil) // now routed through redisEngine
*/
package subpub
