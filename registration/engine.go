package registration

import (
	"github.com/go-foreman/cqrs/boundedcontext"
	"github.com/go-foreman/cqrs/log"
	"github.com/go-foreman/cqrs/routing"
)

//go:generate mockgen --build_flags=--mod=mod -destination ../testing/mocks/registration/engine.go -package registration . Engine

// Engine supplies the collaborators registrations are compiled against
type Engine interface {
	Logger() log.Logger
	DependencyResolver() boundedcontext.DependencyResolver
	// EndpointResolver is the default resolver used when no explicit endpoint matches a routing key
	EndpointResolver() routing.EndpointResolver
	// EndpointProvider looks up explicit endpoints by name
	EndpointProvider() routing.EndpointProvider
	BoundedContexts() *boundedcontext.Registry
}
