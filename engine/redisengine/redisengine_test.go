package redisengine

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/kestrelbus/subpub"
)

func TestNewFailsFastOnUnreachableAddress(t *testing.T) {
	broker := subpub.New()

	// Port 0 on localhost never accepts a connection, so Ping fails
	// immediately instead of hanging the test suite on a dial timeout.
	eng, err := New("127.0.0.1:0", broker, zerolog.Nop())
	require.Error(t, err)
	require.Nil(t, eng)
}
