package subpub

import "errors"

// Sentinel errors returned at the broker's API boundary.
var (
	// ErrMissingChannel is returned when Publish is called with a nil channel Name.
	ErrMissingChannel = errors.New("subpub: channel name is required")
	// ErrMissingPayload is returned when Publish is called with a nil Payload.
	ErrMissingPayload = errors.New("subpub: payload is required")
	// ErrNilSubscription is returned by Unsubscribe when called with a nil handle.
	ErrNilSubscription = errors.New("subpub: subscription is nil")
	// ErrNoSubscribers is returned by Publish when no Client matched the channel.
	ErrNoSubscribers = errors.New("subpub: no matching subscribers")
	// ErrEngineUnavailable is returned by the cluster engine stub's Publish.
	ErrEngineUnavailable = errors.New("subpub: no cluster engine registered")
)
