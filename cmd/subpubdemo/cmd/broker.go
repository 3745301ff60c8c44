package cmd

import (
	"github.com/rs/zerolog/log"

	"github.com/kestrelbus/subpub"
	"github.com/kestrelbus/subpub/engine/redisengine"
)

// buildBroker constructs a Broker wired with the Redis cluster engine when
// redisAddr is set. The returned closer must be called (if non-nil) before
// exit.
func buildBroker() (*subpub.Broker, func(), error) {
	broker := subpub.New(subpub.WithLogger(log.Logger))

	if redisAddr == "" {
		return broker, func() {}, nil
	}

	eng, err := redisengine.New(redisAddr, broker, log.Logger)
	if err != nil {
		return nil, nil, err
	}
	broker.RegisterEngine(eng)
	broker.SetDefaultEngine(eng)
	return broker, func() { _ = eng.Close() }, nil
}
