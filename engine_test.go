package subpub

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClusterEngineStubAlwaysFailsPublish(t *testing.T) {
	err := ClusterEngineStub.Publish(testName("x"), nil)
	require.ErrorIs(t, err, ErrEngineUnavailable)

	// Subscribe/Unsubscribe are no-ops and must never panic.
	ClusterEngineStub.Subscribe(testName("x"), false)
	ClusterEngineStub.Unsubscribe(testName("x"), false)
}

func TestEngineRegistryRegisterIsIdempotent(t *testing.T) {
	r := newEngineRegistry()
	e := &spyEngine{}

	r.register(e)
	r.register(e)

	count := 0
	r.each(func(Engine) { count++ })
	require.Equal(t, 1, count)
}

func TestEngineRegistryDeregisterCompactsOrder(t *testing.T) {
	r := newEngineRegistry()
	a, b, c := &spyEngine{}, &spyEngine{}, &spyEngine{}
	r.register(a)
	r.register(b)
	r.register(c)

	r.deregister(b)

	var seen []Engine
	r.each(func(e Engine) { seen = append(seen, e) })
	require.Equal(t, []Engine{a, c}, seen)

	// Deregistering something never registered is a no-op.
	r.deregister(b)
	seen = nil
	r.each(func(e Engine) { seen = append(seen, e) })
	require.Equal(t, []Engine{a, c}, seen)
}

func TestEngineRegistryEachRunsInRegistrationOrder(t *testing.T) {
	r := newEngineRegistry()
	var registered []Engine
	for i := 0; i < 3; i++ {
		e := &spyEngine{}
		registered = append(registered, e)
		r.register(e)
	}
	var seen []Engine
	r.each(func(e Engine) { seen = append(seen, e) })
	require.Len(t, seen, len(registered))
	for i := range registered {
		require.Same(t, registered[i], seen[i])
	}
}
