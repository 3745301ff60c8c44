package subpub

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// testPayload is a minimal Payload for exercising the broker in isolation,
// mirroring testName in index_test.go — the object package cannot be
// imported here since it imports subpub itself.
type testPayload []byte

func (p testPayload) Bytes() []byte  { return p }
func (p testPayload) Dup() Payload   { return p }
func (p testPayload) Release()       {}

func awaitCondition(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	require.True(t, cond(), "condition not met within %s", timeout)
}

func TestSubscribePublishExactChannel(t *testing.T) {
	b := New()

	name := testName("news")
	defer name.Release()

	var got atomic.Value
	var wg sync.WaitGroup
	wg.Add(1)
	sub := b.Subscribe(name, false, func(msg *Message) {
		got.Store(string(msg.Payload.Bytes()))
		wg.Done()
	}, nil, nil, nil)
	require.NotNil(t, sub)
	defer b.Unsubscribe(sub)

	payload := testPayload("hello")
	defer payload.Release()

	require.NoError(t, b.Publish(name, payload, nil))
	wg.Wait()
	require.Equal(t, "hello", got.Load())
}

func TestPublishWithNoSubscribersReturnsErrNoSubscribers(t *testing.T) {
	b := New()
	name := testName("empty.channel")
	defer name.Release()
	payload := testPayload("x")
	defer payload.Release()

	err := b.Publish(name, payload, nil)
	require.ErrorIs(t, err, ErrNoSubscribers)
}

func TestPublishRejectsMissingChannelOrPayload(t *testing.T) {
	b := New()
	payload := testPayload("x")
	defer payload.Release()
	name := testName("c")
	defer name.Release()

	require.ErrorIs(t, b.Publish(nil, payload, nil), ErrMissingChannel)
	require.ErrorIs(t, b.Publish(name, nil, nil), ErrMissingPayload)
}

func TestPatternSubscriptionMatchesOnlyPrefixedChannels(t *testing.T) {
	b := New()

	pattern := testName("user.*")
	defer pattern.Release()

	var mu sync.Mutex
	var received []string
	sub := b.Subscribe(pattern, true, func(msg *Message) {
		mu.Lock()
		received = append(received, string(msg.Channel.Bytes()))
		mu.Unlock()
	}, nil, nil, nil)
	defer b.Unsubscribe(sub)

	payload := testPayload("x")
	defer payload.Release()

	matching := testName("user.42")
	defer matching.Release()
	require.NoError(t, b.Publish(matching, payload, nil))

	nonMatching := testName("users.42")
	defer nonMatching.Release()
	require.ErrorIs(t, b.Publish(nonMatching, payload, nil), ErrNoSubscribers)

	awaitCondition(t, time.Second, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(received) == 1
	})
	mu.Lock()
	require.Equal(t, []string{"user.42"}, received)
	mu.Unlock()
}

func TestSubscribeDeduplicatesIdenticalRegistrations(t *testing.T) {
	b := New()
	name := testName("dedup")
	defer name.Release()

	handler := func(msg *Message) {}

	first := b.Subscribe(name, false, handler, nil, "same", "udata")
	second := b.Subscribe(name, false, handler, nil, "same", "udata")
	require.Same(t, first, second)

	require.NoError(t, b.Unsubscribe(first))
}

func TestFindSubscriptionLocatesExistingClient(t *testing.T) {
	b := New()
	name := testName("findme")
	defer name.Release()
	handler := func(msg *Message) {}

	sub := b.Subscribe(name, false, handler, nil, nil, nil)
	defer b.Unsubscribe(sub)

	found := b.FindSubscription(name, handler, nil, nil, nil)
	require.Same(t, sub, found)

	notFound := b.FindSubscription(name, func(msg *Message) {}, nil, nil, nil)
	require.Nil(t, notFound)
}

func TestUnsubscribeRunsOnUnsubscribeExactlyOnce(t *testing.T) {
	b := New()
	name := testName("bye")
	defer name.Release()

	var calls atomic.Int32
	var wg sync.WaitGroup
	wg.Add(1)
	sub := b.Subscribe(name, false, func(msg *Message) {}, func(udata1, udata2 any) {
		calls.Add(1)
		wg.Done()
	}, nil, nil)

	require.NoError(t, b.Unsubscribe(sub))
	wg.Wait()
	require.Equal(t, int32(1), calls.Load())
}

func TestUnsubscribeNilReturnsErrNilSubscription(t *testing.T) {
	b := New()
	require.ErrorIs(t, b.Unsubscribe(nil), ErrNilSubscription)
}

func TestUnsubscribeAllowsFreshSubscribeWithSameArguments(t *testing.T) {
	b := New()
	name := testName("resub")
	defer name.Release()
	handler := func(msg *Message) {}

	first := b.Subscribe(name, false, handler, nil, "k", nil)
	require.NoError(t, b.Unsubscribe(first))

	second := b.Subscribe(name, false, handler, nil, "k", nil)
	require.NotNil(t, second)
	require.NotSame(t, first, second)
	require.NoError(t, b.Unsubscribe(second))
}

func TestDeferRedeliversMessage(t *testing.T) {
	b := New()
	name := testName("retry")
	defer name.Release()

	var attempts atomic.Int32
	var wg sync.WaitGroup
	wg.Add(2)
	sub := b.Subscribe(name, false, func(msg *Message) {
		n := attempts.Add(1)
		wg.Done()
		if n == 1 {
			b.Defer(msg)
		}
	}, nil, nil, nil)
	defer b.Unsubscribe(sub)

	payload := testPayload("x")
	defer payload.Release()
	require.NoError(t, b.Publish(name, payload, nil))

	wg.Wait()
	require.Equal(t, int32(2), attempts.Load())
}

func TestPublishResolvesDefaultThenClusterEngine(t *testing.T) {
	b := New()
	require.Same(t, b.localEngine, b.defaultEngine)

	name := testName("fallback")
	defer name.Release()
	payload := testPayload("x")
	defer payload.Release()

	// No subscribers and no custom engines: local engine reports no match.
	require.ErrorIs(t, b.Publish(name, payload, nil), ErrNoSubscribers)

	b.DeregisterEngine(b.localEngine)
	require.ErrorIs(t, b.Publish(name, payload, nil), ErrEngineUnavailable)
}

func TestRegisterEngineReceivesLifecycleNotifications(t *testing.T) {
	b := New()
	spy := &spyEngine{}
	b.RegisterEngine(spy)

	name := testName("watched")
	defer name.Release()

	sub := b.Subscribe(name, false, func(msg *Message) {}, nil, nil, nil)
	require.Equal(t, 1, spy.subscribes)

	require.NoError(t, b.Unsubscribe(sub))
	require.Equal(t, 1, spy.unsubscribes)
}

type spyEngine struct {
	mu           sync.Mutex
	subscribes   int
	unsubscribes int
}

func (s *spyEngine) Subscribe(Name, bool) {
	s.mu.Lock()
	s.subscribes++
	s.mu.Unlock()
}

func (s *spyEngine) Unsubscribe(Name, bool) {
	s.mu.Lock()
	s.unsubscribes++
	s.mu.Unlock()
}

func (s *spyEngine) Publish(Name, Payload) error { return nil }
