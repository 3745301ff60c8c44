package subpub

// clusterEngineStub satisfies the Engine contract with no-op Subscribe and
// Unsubscribe and a Publish that always fails. It exists so the
// default-fallback chain (explicit engine → process default → cluster)
// always terminates in a well-defined object, even when no real cluster
// transport has been registered. Real transports — see
// github.com/kestrelbus/subpub/engine/redisengine for one grounded on
// go-redis — plug in via Broker.RegisterEngine and may be installed as the
// process default.
type clusterEngineStub struct{}

func (clusterEngineStub) Subscribe(Name, bool)   {}
func (clusterEngineStub) Unsubscribe(Name, bool) {}
func (clusterEngineStub) Publish(Name, Payload) error {
	return ErrEngineUnavailable
}

// ClusterEngineStub is the package-wide placeholder cluster engine.
var ClusterEngineStub Engine = clusterEngineStub{}
