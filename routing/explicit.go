package routing

import (
	"github.com/pkg/errors"
)

// ExplicitEndpoint binds a predicate to an endpoint name. The first matching binding wins.
type ExplicitEndpoint struct {
	Predicate Predicate
	Endpoint  string
}

// NewExplicitEndpointResolver layers explicit endpoints over fallback. Bindings are evaluated in the given order.
func NewExplicitEndpointResolver(bindings []ExplicitEndpoint, provider EndpointProvider, fallback EndpointResolver) EndpointResolver {
	copied := make([]ExplicitEndpoint, len(bindings))
	copy(copied, bindings)

	return &explicitEndpointResolver{bindings: copied, provider: provider, fallback: fallback}
}

// HasExplicitEndpoints tells whether resolver was built by NewExplicitEndpointResolver with at least one binding
func HasExplicitEndpoints(resolver EndpointResolver) bool {
	r, ok := resolver.(*explicitEndpointResolver)
	return ok && len(r.bindings) > 0
}

type explicitEndpointResolver struct {
	bindings []ExplicitEndpoint
	provider EndpointProvider
	fallback EndpointResolver
}

func (r explicitEndpointResolver) Resolve(key RoutingKey) (Endpoint, error) {
	for _, binding := range r.bindings {
		if !binding.Predicate(key) {
			continue
		}

		endpoint, err := r.provider.Get(binding.Endpoint)
		if err != nil {
			return Endpoint{}, errors.Wrapf(err, "resolving explicit endpoint for %s", key)
		}

		return endpoint, nil
	}

	if r.fallback == nil {
		return Endpoint{}, errors.Errorf("no endpoint resolver is configured for %s", key)
	}

	return r.fallback.Resolve(key)
}
