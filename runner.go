package subpub

// Runner queues fn(arg1, arg2) for asynchronous execution, with no ordering
// guarantee beyond "eventually runs exactly once". The broker never blocks
// waiting on a Runner; it only submits.
type Runner interface {
	Defer(fn func(arg1, arg2 any), arg1, arg2 any)
}

// goroutineRunner is the package's default Runner. The retrieved reference
// pack carries no worker-pool library (no ants/pond/tunny-style dependency
// anywhere in it), so this follows the teacher's own mechanism for running
// callbacks off the calling goroutine — go-pubsubmutex starts one goroutine
// per subscriber (Subscriber.deliverMessages); here one goroutine is started
// per deferred delivery instead, since deliveries are already bounded by
// Client/MessageWrapper refcounts rather than a persistent per-subscriber
// channel.
type goroutineRunner struct{}

func (goroutineRunner) Defer(fn func(arg1, arg2 any), arg1, arg2 any) {
	go fn(arg1, arg2)
}

// NewGoroutineRunner returns the default Runner implementation.
func NewGoroutineRunner() Runner {
	return goroutineRunner{}
}
