package routing

import (
	"fmt"

	"github.com/pkg/errors"
)

//go:generate mockgen --build_flags=--mod=mod -destination ../testing/mocks/routing/routing.go -package routing . EndpointResolver,EndpointProvider

// ErrUnknownEndpoint is returned when an endpoint is referenced by a name nobody registered
var ErrUnknownEndpoint = errors.New("unknown endpoint")

// Destination is where a transport publishes to and where it consumes from
type Destination struct {
	Publish   string
	Subscribe string
}

func (d Destination) String() string {
	if d.Publish == d.Subscribe {
		return d.Publish
	}

	return fmt.Sprintf("[publish:%s subscribe:%s]", d.Publish, d.Subscribe)
}

// Endpoint is a transport level address of a route entry. Delivery itself is done by the dispatch engine.
type Endpoint struct {
	Name                string
	TransportID         string
	Destination         Destination
	SerializationFormat string
	// SharedDestination is set when several message types are delivered through the same destination
	SharedDestination bool
	// Arguments are transport specific, e.g. queue arguments
	Arguments map[string]interface{}
}

// EndpointResolver maps a routing key to an endpoint
type EndpointResolver interface {
	Resolve(key RoutingKey) (Endpoint, error)
}

// EndpointResolverFunc allows to use a function as EndpointResolver
type EndpointResolverFunc func(key RoutingKey) (Endpoint, error)

func (f EndpointResolverFunc) Resolve(key RoutingKey) (Endpoint, error) {
	return f(key)
}

// EndpointProvider returns endpoints declared by name
type EndpointProvider interface {
	Get(name string) (Endpoint, error)
	Contains(name string) bool
}

// EndpointRegistry is a map backed EndpointProvider
type EndpointRegistry struct {
	endpoints map[string]Endpoint
}

func NewEndpointRegistry(endpoints ...Endpoint) *EndpointRegistry {
	r := &EndpointRegistry{endpoints: make(map[string]Endpoint)}

	for _, e := range endpoints {
		r.Register(e)
	}

	return r
}

// Register adds or replaces an endpoint with the same name
func (r *EndpointRegistry) Register(endpoint Endpoint) {
	r.endpoints[endpoint.Name] = endpoint
}

func (r *EndpointRegistry) Get(name string) (Endpoint, error) {
	endpoint, ok := r.endpoints[name]
	if !ok {
		return Endpoint{}, errors.Wrapf(ErrUnknownEndpoint, "endpoint %q", name)
	}

	return endpoint, nil
}

func (r *EndpointRegistry) Contains(name string) bool {
	_, ok := r.endpoints[name]
	return ok
}
