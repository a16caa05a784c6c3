package boundedcontext

import (
	"reflect"

	"github.com/go-foreman/cqrs/routing"
	"github.com/pkg/errors"
)

// RouteEntry is a single message type and priority tier declared on a route
type RouteEntry struct {
	Key      routing.RoutingKey
	Resolver routing.EndpointResolver
	// Local is set when the remote context of the key is hosted by the same engine
	Local bool
}

// Route is a named channel of a bounded context. It carries either commands or events.
type Route struct {
	name             string
	bc               *BoundedContext
	concurrencyLevel uint
	routeType        routing.RouteType
	entries          []RouteEntry
	keys             map[routing.RoutingKey]int
}

func newRoute(name string, bc *BoundedContext) *Route {
	return &Route{
		name:             name,
		bc:               bc,
		concurrencyLevel: 1,
		keys:             make(map[routing.RoutingKey]int),
	}
}

func (r *Route) Name() string {
	return r.name
}

// ConcurrencyLevel is the number of workers the dispatch engine runs for the route, 1 unless set
func (r *Route) ConcurrencyLevel() uint {
	return r.concurrencyLevel
}

func (r *Route) SetConcurrencyLevel(level uint) error {
	if level == 0 {
		return errors.Wrapf(ErrInvalidConfiguration, "route %s: concurrency level must be greater than 0", r.name)
	}

	r.concurrencyLevel = level

	return nil
}

// Type returns 0 until the first entry is added
func (r *Route) Type() routing.RouteType {
	return r.routeType
}

func (r *Route) AddPublishedCommand(t reflect.Type, priority uint, remoteContext string, resolver routing.EndpointResolver) error {
	return r.add(t, priority, remoteContext, routing.Commands, routing.Publish, resolver)
}

func (r *Route) AddPublishedEvent(t reflect.Type, priority uint, resolver routing.EndpointResolver) error {
	return r.add(t, priority, "", routing.Events, routing.Publish, resolver)
}

func (r *Route) AddSubscribedCommand(t reflect.Type, priority uint, resolver routing.EndpointResolver) error {
	return r.add(t, priority, "", routing.Commands, routing.Subscribe, resolver)
}

func (r *Route) AddSubscribedEvent(t reflect.Type, priority uint, remoteContext string, resolver routing.EndpointResolver) error {
	return r.add(t, priority, remoteContext, routing.Events, routing.Subscribe, resolver)
}

// Entries returns entries in the order they were added
func (r *Route) Entries() []RouteEntry {
	res := make([]RouteEntry, len(r.entries))
	copy(res, r.entries)

	return res
}

func (r *Route) add(t reflect.Type, priority uint, remoteContext string, routeType routing.RouteType, communication routing.CommunicationType, resolver routing.EndpointResolver) error {
	if t == nil {
		return errors.Wrapf(ErrInvalidConfiguration, "route %s: message type is nil", r.name)
	}

	if resolver == nil {
		return errors.Wrapf(ErrInvalidConfiguration, "route %s: endpoint resolver is nil", r.name)
	}

	if r.routeType != 0 && r.routeType != routeType {
		return errors.Wrapf(ErrInvalidConfiguration, "route %s carries %s, %s can't be added", r.name, r.routeType, t)
	}

	key := routing.RoutingKey{
		LocalContext:  r.bc.Name,
		RemoteContext: remoteContext,
		Route:         r.name,
		MessageType:   t,
		RouteType:     routeType,
		Communication: communication,
		Priority:      priority,
	}

	r.routeType = routeType

	// the same declaration may come from a loopback and an explicit descriptor
	if i, exists := r.keys[key]; exists {
		return r.redeclare(i, resolver)
	}

	r.keys[key] = len(r.entries)
	r.entries = append(r.entries, RouteEntry{
		Key:      key,
		Resolver: resolver,
		Local:    remoteContext != "" && r.bc.hosts(remoteContext),
	})

	return nil
}

// redeclare keeps a single entry per key. Explicit endpoints of a later declaration replace the default
// resolver, two declarations with explicit endpoints are ambiguous.
func (r *Route) redeclare(i int, resolver routing.EndpointResolver) error {
	if !routing.HasExplicitEndpoints(resolver) {
		return nil
	}

	existing := &r.entries[i]
	if routing.HasExplicitEndpoints(existing.Resolver) {
		return errors.Wrapf(ErrInvalidConfiguration, "route %s: %s is declared twice with explicit endpoints", r.name, existing.Key)
	}

	existing.Resolver = resolver

	return nil
}

// RouteMap holds routes of a bounded context, a route is created on first access
type RouteMap struct {
	bc     *BoundedContext
	routes map[string]*Route
	names  []string
}

func newRouteMap(bc *BoundedContext) *RouteMap {
	return &RouteMap{bc: bc, routes: make(map[string]*Route)}
}

func (m *RouteMap) Get(name string) *Route {
	if route, ok := m.routes[name]; ok {
		return route
	}

	route := newRoute(name, m.bc)
	m.routes[name] = route
	m.names = append(m.names, name)

	return route
}

func (m *RouteMap) Contains(name string) bool {
	_, ok := m.routes[name]
	return ok
}

// Names returns route names in creation order
func (m *RouteMap) Names() []string {
	res := make([]string, len(m.names))
	copy(res, m.names)

	return res
}
