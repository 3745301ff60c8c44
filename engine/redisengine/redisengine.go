// Package redisengine is a real cluster Engine built on Redis pub/sub.
// Grounded on wayli-app-fluxbase's internal/pubsub/redis.go, which wraps the
// same go-redis client the same way; that file only ever calls
// client.Subscribe, so the PSUBSCRIBE path for pattern channels here is an
// extension of its Subscribe-only shape rather than something carried over
// directly. Adapted from a standalone channel-based pub/sub into a
// subpub.Engine that forwards inbound Redis traffic back into a local
// *subpub.Broker so a cluster-wide publish fans out to in-process
// subscribers exactly like a local one.
package redisengine

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/kestrelbus/subpub"
	"github.com/kestrelbus/subpub/object"
)

// Engine routes subpub.Engine.Publish calls through Redis PUBLISH, and
// forwards messages received over Redis SUBSCRIBE/PSUBSCRIBE back into a
// local Broker's Publish so cluster traffic reaches local subscribers.
type Engine struct {
	client *redis.Client
	broker *subpub.Broker
	log    zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu   sync.Mutex
	subs map[string]*redis.PubSub // channel/pattern name -> live subscription
}

// New connects to the Redis-compatible server at addr and returns an Engine
// that forwards cluster traffic into broker. broker's RegisterEngine (and,
// typically, SetDefaultEngine) must still be called by the caller — New only
// builds the Engine, it does not install it.
func New(addr string, broker *subpub.Broker, log zerolog.Logger) (*Engine, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	runCtx, cancel := context.WithCancel(context.Background())
	e := &Engine{
		client: client,
		broker: broker,
		log:    log,
		ctx:    runCtx,
		cancel: cancel,
		subs:   make(map[string]*redis.PubSub),
	}
	log.Info().Str("addr", addr).Msg("redisengine: connected")
	return e, nil
}

// Subscribe opens a Redis subscription for name the first time the broker
// notifies this engine of it (exactly once per channel creation). usePattern
// selects PSUBSCRIBE over SUBSCRIBE.
func (e *Engine) Subscribe(name subpub.Name, usePattern bool) {
	key := string(name.Bytes())

	e.mu.Lock()
	if _, ok := e.subs[key]; ok {
		e.mu.Unlock()
		return
	}
	var rps *redis.PubSub
	if usePattern {
		rps = e.client.PSubscribe(e.ctx, key)
	} else {
		rps = e.client.Subscribe(e.ctx, key)
	}
	e.subs[key] = rps
	e.mu.Unlock()

	if _, err := rps.Receive(e.ctx); err != nil {
		e.log.Warn().Err(err).Str("channel", key).Msg("redisengine: subscribe failed")
		return
	}

	e.wg.Add(1)
	go e.forward(key, rps)
}

// Unsubscribe tears down the Redis subscription for name when the broker
// notifies this engine the channel has emptied.
func (e *Engine) Unsubscribe(name subpub.Name, _ bool) {
	key := string(name.Bytes())
	e.mu.Lock()
	rps, ok := e.subs[key]
	if ok {
		delete(e.subs, key)
	}
	e.mu.Unlock()
	if ok {
		_ = rps.Close()
	}
}

// Publish issues a Redis PUBLISH carrying payload's byte view.
func (e *Engine) Publish(name subpub.Name, payload subpub.Payload) error {
	return e.client.Publish(e.ctx, string(name.Bytes()), payload.Bytes()).Err()
}

// Close tears down every live Redis subscription and the client connection.
func (e *Engine) Close() error {
	e.cancel()
	e.wg.Wait()
	e.mu.Lock()
	for key, rps := range e.subs {
		_ = rps.Close()
		delete(e.subs, key)
	}
	e.mu.Unlock()
	return e.client.Close()
}

// forward relays messages received on a Redis subscription back into the
// local broker, so cluster-wide publishes reach in-process subscribers the
// same way a local Publish would.
func (e *Engine) forward(key string, rps *redis.PubSub) {
	defer e.wg.Done()
	msgCh := rps.Channel()
	for {
		select {
		case <-e.ctx.Done():
			return
		case msg, ok := <-msgCh:
			if !ok {
				return
			}
			name := object.NewSymbol([]byte(msg.Channel))
			payload := object.NewBytes([]byte(msg.Payload))
			if err := e.broker.Publish(name, payload, e.broker.LocalEngine()); err != nil {
				e.log.Debug().Err(err).Str("channel", key).Msg("redisengine: forwarded publish had no local subscribers")
			}
			name.Release()
			payload.Release()
		}
	}
}
