package registration

import (
	"reflect"

	"github.com/go-foreman/cqrs/boundedcontext"
	"github.com/go-foreman/cqrs/routing"
	"github.com/pkg/errors"
)

// routeSpec accumulates what a route descriptor declares about its route
type routeSpec struct {
	route             string
	lowestPriority    uint
	explicitEndpoints []routing.ExplicitEndpoint
}

// resolver layers explicit endpoints over the engine default resolver
func (s *routeSpec) resolver(engine Engine) routing.EndpointResolver {
	if len(s.explicitEndpoints) == 0 && engine.EndpointResolver() != nil {
		return engine.EndpointResolver()
	}

	return routing.NewExplicitEndpointResolver(s.explicitEndpoints, engine.EndpointProvider(), engine.EndpointResolver())
}

func (s *routeSpec) target(bc *boundedcontext.BoundedContext) (*boundedcontext.Route, error) {
	if s.route == "" {
		return nil, errors.Wrap(ErrInvalidConfiguration, "route is not set")
	}

	return bc.Routes().Get(s.route), nil
}

// ExplicitEndpointDescriptor binds an endpoint to routing keys of the owning descriptor
type ExplicitEndpointDescriptor[T any] struct {
	owner    T
	spec     *routeSpec
	endpoint string
}

// For appends the binding after the ones declared before, the first binding matching a key wins
func (e ExplicitEndpointDescriptor[T]) For(predicate routing.Predicate) T {
	if predicate == nil {
		panic(invalidConfiguration("explicit endpoint %s: predicate is nil", e.endpoint))
	}

	e.spec.explicitEndpoints = append(e.spec.explicitEndpoints, routing.ExplicitEndpoint{Predicate: predicate, Endpoint: e.endpoint})

	return e.owner
}

func withEndpoint[T any](owner T, spec *routeSpec, endpoint string) ExplicitEndpointDescriptor[T] {
	if endpoint == "" {
		panic(invalidConfiguration("explicit endpoint name is empty"))
	}

	return ExplicitEndpointDescriptor[T]{owner: owner, spec: spec, endpoint: endpoint}
}

func ensureRoute(route string) string {
	if route == "" {
		panic(invalidConfiguration("route name is empty"))
	}

	return route
}

// PublishingCommandsDescriptor declares commands the bounded context sends
type PublishingCommandsDescriptor struct {
	*Registration
	spec  routeSpec
	types []reflect.Type
	to    string
}

// To is the bounded context the commands are sent to
func (d *PublishingCommandsDescriptor) To(boundedContext string) *PublishingCommandsDescriptor {
	if boundedContext == "" {
		panic(invalidConfiguration("bounded context %s: publishing commands destination is empty", d.name))
	}

	d.to = boundedContext

	return d
}

func (d *PublishingCommandsDescriptor) With(route string) *PublishingCommandsDescriptor {
	d.spec.route = ensureRoute(route)
	return d
}

func (d *PublishingCommandsDescriptor) WithEndpoint(endpoint string) ExplicitEndpointDescriptor[*PublishingCommandsDescriptor] {
	return withEndpoint(d, &d.spec, endpoint)
}

func (d *PublishingCommandsDescriptor) dependencies() []reflect.Type {
	return nil
}

func (d *PublishingCommandsDescriptor) create(bc *boundedcontext.BoundedContext, _ boundedcontext.DependencyResolver) error {
	if d.spec.route != "" {
		bc.Routes().Get(d.spec.route)
	}

	return nil
}

func (d *PublishingCommandsDescriptor) process(bc *boundedcontext.BoundedContext, engine Engine) error {
	route, err := d.spec.target(bc)
	if err != nil {
		return errors.Wrapf(err, "publishing commands %v", d.types)
	}

	resolver := d.spec.resolver(engine)

	for _, t := range d.types {
		if err := route.AddPublishedCommand(t, 0, d.to, resolver); err != nil {
			return errors.WithStack(err)
		}
	}

	return nil
}

// PublishingEventsDescriptor declares events the bounded context emits
type PublishingEventsDescriptor struct {
	*Registration
	spec  routeSpec
	types []reflect.Type
}

func (d *PublishingEventsDescriptor) With(route string) *PublishingEventsDescriptor {
	d.spec.route = ensureRoute(route)
	return d
}

func (d *PublishingEventsDescriptor) WithEndpoint(endpoint string) ExplicitEndpointDescriptor[*PublishingEventsDescriptor] {
	return withEndpoint(d, &d.spec, endpoint)
}

// WithLoopback makes the bounded context listen to its own events, on the given route or on the publishing route
func (d *PublishingEventsDescriptor) WithLoopback(route ...string) *ListeningEventsDescriptor {
	loopbackTo := loopbackRoute(d.spec.route, route)

	loopback := d.listeningEvents(d.types)
	loopback.from = d.name
	loopback.spec.route = loopbackTo

	return loopback
}

func (d *PublishingEventsDescriptor) dependencies() []reflect.Type {
	return nil
}

func (d *PublishingEventsDescriptor) create(bc *boundedcontext.BoundedContext, _ boundedcontext.DependencyResolver) error {
	if d.spec.route != "" {
		bc.Routes().Get(d.spec.route)
	}

	return nil
}

func (d *PublishingEventsDescriptor) process(bc *boundedcontext.BoundedContext, engine Engine) error {
	route, err := d.spec.target(bc)
	if err != nil {
		return errors.Wrapf(err, "publishing events %v", d.types)
	}

	resolver := d.spec.resolver(engine)

	for _, t := range d.types {
		if err := route.AddPublishedEvent(t, 0, resolver); err != nil {
			return errors.WithStack(err)
		}
	}

	return nil
}

// ListeningCommandsDescriptor declares commands the bounded context handles
type ListeningCommandsDescriptor struct {
	*Registration
	spec  routeSpec
	types []reflect.Type
}

func (d *ListeningCommandsDescriptor) On(route string) *ListeningCommandsDescriptor {
	d.spec.route = ensureRoute(route)
	return d
}

// MaxPriority is the highest priority tier a route can subscribe to, the same limit AMQP puts on message priorities
const MaxPriority uint = 255

// Prioritized subscribes every command once per priority from 0 to lowestPriority inclusive
func (d *ListeningCommandsDescriptor) Prioritized(lowestPriority uint) *ListeningCommandsDescriptor {
	if lowestPriority > MaxPriority {
		panic(invalidConfiguration("bounded context %s: priority %d is above %d", d.name, lowestPriority, MaxPriority))
	}

	d.spec.lowestPriority = lowestPriority
	return d
}

func (d *ListeningCommandsDescriptor) WithEndpoint(endpoint string) ExplicitEndpointDescriptor[*ListeningCommandsDescriptor] {
	return withEndpoint(d, &d.spec, endpoint)
}

// WithLoopback makes the bounded context send the commands to itself, on the given route or on the listening route
func (d *ListeningCommandsDescriptor) WithLoopback(route ...string) *PublishingCommandsDescriptor {
	loopbackTo := loopbackRoute(d.spec.route, route)

	loopback := d.publishingCommands(d.types)
	loopback.to = d.name
	loopback.spec.route = loopbackTo

	return loopback
}

func (d *ListeningCommandsDescriptor) dependencies() []reflect.Type {
	return nil
}

func (d *ListeningCommandsDescriptor) create(bc *boundedcontext.BoundedContext, _ boundedcontext.DependencyResolver) error {
	if d.spec.route != "" {
		bc.Routes().Get(d.spec.route)
	}

	return nil
}

func (d *ListeningCommandsDescriptor) process(bc *boundedcontext.BoundedContext, engine Engine) error {
	route, err := d.spec.target(bc)
	if err != nil {
		return errors.Wrapf(err, "listening commands %v", d.types)
	}

	resolver := d.spec.resolver(engine)

	for _, t := range d.types {
		for priority := uint(0); priority <= d.spec.lowestPriority; priority++ {
			if err := route.AddSubscribedCommand(t, priority, resolver); err != nil {
				return errors.WithStack(err)
			}
		}
	}

	return nil
}

// ListeningEventsDescriptor declares events of another bounded context this one listens to
type ListeningEventsDescriptor struct {
	*Registration
	spec  routeSpec
	types []reflect.Type
	from  string
}

func (d *ListeningEventsDescriptor) From(boundedContext string) *ListeningEventsDescriptor {
	if boundedContext == "" {
		panic(invalidConfiguration("bounded context %s: listening events source is empty", d.name))
	}

	d.from = boundedContext

	return d
}

func (d *ListeningEventsDescriptor) On(route string) *ListeningEventsDescriptor {
	d.spec.route = ensureRoute(route)
	return d
}

func (d *ListeningEventsDescriptor) WithEndpoint(endpoint string) ExplicitEndpointDescriptor[*ListeningEventsDescriptor] {
	return withEndpoint(d, &d.spec, endpoint)
}

func (d *ListeningEventsDescriptor) dependencies() []reflect.Type {
	return nil
}

func (d *ListeningEventsDescriptor) create(bc *boundedcontext.BoundedContext, _ boundedcontext.DependencyResolver) error {
	if d.spec.route != "" {
		bc.Routes().Get(d.spec.route)
	}

	return nil
}

func (d *ListeningEventsDescriptor) process(bc *boundedcontext.BoundedContext, engine Engine) error {
	route, err := d.spec.target(bc)
	if err != nil {
		return errors.Wrapf(err, "listening events %v", d.types)
	}

	if d.from == "" {
		return errors.Wrapf(ErrInvalidConfiguration, "listening events %v: source bounded context is not set", d.types)
	}

	resolver := d.spec.resolver(engine)

	for _, t := range d.types {
		if err := route.AddSubscribedEvent(t, 0, d.from, resolver); err != nil {
			return errors.WithStack(err)
		}
	}

	return nil
}

// loopbackRoute prefers an explicit non empty route over the route of the originating descriptor
func loopbackRoute(own string, explicit []string) string {
	if len(explicit) > 1 {
		panic(invalidConfiguration("loopback accepts a single route, got %v", explicit))
	}

	if len(explicit) == 1 && explicit[0] != "" {
		return explicit[0]
	}

	return own
}
