package registration

import (
	"reflect"
	"time"

	"github.com/go-foreman/cqrs/boundedcontext"
	"github.com/go-foreman/cqrs/contracts"
	"github.com/go-foreman/cqrs/eventstore"
	"github.com/go-foreman/cqrs/log"
	"github.com/go-foreman/cqrs/pubsub/message"
	"github.com/go-foreman/cqrs/runtime/scheme"
	"github.com/pkg/errors"
)

// Registration declares a bounded context. Builder methods panic with an error wrapping ErrInvalidConfiguration
// on misuse and leave the registration unchanged.
type Registration struct {
	name                    string
	descriptors             []Descriptor
	dependencies            []reflect.Type
	failedCommandRetryDelay time.Duration
}

// Named starts a registration of the bounded context. The infrastructure commands handler is always its first descriptor.
func Named(name string) *Registration {
	if name == "" {
		panic(invalidConfiguration("bounded context name is empty"))
	}

	r := &Registration{name: name}
	r.addDescriptor(&infrastructureCommandsHandlerDescriptor{})

	return r
}

func (r *Registration) Name() string {
	return r.name
}

// FailedCommandRetryDelay is how long the dispatch engine waits before retrying a failed command, 0 means immediately
func (r *Registration) FailedCommandRetryDelay(delay time.Duration) *Registration {
	if delay < 0 {
		panic(invalidConfiguration("bounded context %s: failed command retry delay %s is negative", r.name, delay))
	}

	r.failedCommandRetryDelay = delay

	return r
}

func (r *Registration) RetryDelay() time.Duration {
	return r.failedCommandRetryDelay
}

// Dependencies returns types the dependency resolver must supply, each once in order of first declaration
func (r *Registration) Dependencies() []reflect.Type {
	res := make([]reflect.Type, len(r.dependencies))
	copy(res, r.dependencies)

	return res
}

func (r *Registration) Descriptors() []Descriptor {
	res := make([]Descriptor, len(r.descriptors))
	copy(res, r.descriptors)

	return res
}

func (r *Registration) PublishingCommands(commands ...message.Object) *PublishingCommandsDescriptor {
	return r.publishingCommands(r.messageTypes("publishing commands", commands))
}

func (r *Registration) PublishingEvents(events ...message.Object) *PublishingEventsDescriptor {
	return r.publishingEvents(r.messageTypes("publishing events", events))
}

func (r *Registration) ListeningCommands(commands ...message.Object) *ListeningCommandsDescriptor {
	d := &ListeningCommandsDescriptor{Registration: r, types: r.messageTypes("listening commands", commands)}
	r.addDescriptor(d)

	return d
}

func (r *Registration) ListeningEvents(events ...message.Object) *ListeningEventsDescriptor {
	return r.listeningEvents(r.messageTypes("listening events", events))
}

// ListeningInfrastructureCommands subscribes the bounded context for commands served by the infrastructure commands handler
func (r *Registration) ListeningInfrastructureCommands() *ListeningCommandsDescriptor {
	return r.ListeningCommands(&contracts.ReplayEventsCommand{})
}

func (r *Registration) PublishingInfrastructureCommands() *PublishingCommandsDescriptor {
	return r.PublishingCommands(&contracts.ReplayEventsCommand{})
}

func (r *Registration) ProcessingOptions(route string) *ProcessingOptionsDescriptor {
	if route == "" {
		panic(invalidConfiguration("bounded context %s: processing options route is empty", r.name))
	}

	d := &ProcessingOptionsDescriptor{Registration: r, route: route}
	r.addDescriptor(d)

	return d
}

func (r *Registration) WithCommandsHandler(handler boundedcontext.CommandsHandler) *Registration {
	if isNil(handler) {
		panic(invalidConfiguration("bounded context %s: commands handler is nil", r.name))
	}

	r.addDescriptor(&commandsHandlerDescriptor{handlers: []boundedcontext.CommandsHandler{handler}})

	return r
}

// WithCommandsHandlers declares handler types, instances are created by the dependency resolver
func (r *Registration) WithCommandsHandlers(handlerTypes ...reflect.Type) *Registration {
	if len(handlerTypes) == 0 {
		return r
	}

	r.addDescriptor(&commandsHandlerDescriptor{types: r.serviceTypes("commands handler", handlerTypes)})

	return r
}

func (r *Registration) WithProjection(listener boundedcontext.EventsListener, fromBoundedContext string) *Registration {
	if isNil(listener) {
		panic(invalidConfiguration("bounded context %s: projection is nil", r.name))
	}

	r.addDescriptor(&projectionDescriptor{listener: listener, from: r.sourceContext(fromBoundedContext)})

	return r
}

func (r *Registration) WithProjectionType(listenerType reflect.Type, fromBoundedContext string) *Registration {
	types := r.serviceTypes("projection", []reflect.Type{listenerType})
	r.addDescriptor(&projectionDescriptor{listenerType: types[0], from: r.sourceContext(fromBoundedContext)})

	return r
}

func (r *Registration) WithProcess(process boundedcontext.Process) *Registration {
	if isNil(process) {
		panic(invalidConfiguration("bounded context %s: process is nil", r.name))
	}

	r.addDescriptor(&localProcessDescriptor{instance: process})

	return r
}

func (r *Registration) WithProcessType(processType reflect.Type) *Registration {
	types := r.serviceTypes("process", []reflect.Type{processType})
	r.addDescriptor(&localProcessDescriptor{processType: types[0]})

	return r
}

// WithEventStore attaches a connection. A context has one event store, the last declared wins.
func (r *Registration) WithEventStore(conn eventstore.Connection) *Registration {
	if isNil(conn) {
		panic(invalidConfiguration("bounded context %s: event store connection is nil", r.name))
	}

	r.addDescriptor(&eventStoreDescriptor{conn: conn})

	return r
}

// WithEventStoreWireup builds the connection at compile time, commits are dispatched to the context listeners
func (r *Registration) WithEventStoreWireup(wireup eventstore.Wireup) *Registration {
	if wireup == nil {
		panic(invalidConfiguration("bounded context %s: event store wireup is nil", r.name))
	}

	r.addDescriptor(&eventStoreDescriptor{wireup: wireup})

	return r
}

func (r *Registration) publishingCommands(types []reflect.Type) *PublishingCommandsDescriptor {
	d := &PublishingCommandsDescriptor{Registration: r, types: types}
	r.addDescriptor(d)

	return d
}

func (r *Registration) publishingEvents(types []reflect.Type) *PublishingEventsDescriptor {
	d := &PublishingEventsDescriptor{Registration: r, types: types}
	r.addDescriptor(d)

	return d
}

func (r *Registration) listeningEvents(types []reflect.Type) *ListeningEventsDescriptor {
	d := &ListeningEventsDescriptor{Registration: r, types: types}
	r.addDescriptor(d)

	return d
}

func (r *Registration) addDescriptor(d Descriptor) {
	r.dependencies = appendUnique(r.dependencies, d.dependencies()...)
	r.descriptors = append(r.descriptors, d)
}

func (r *Registration) create(engine Engine) (*boundedcontext.BoundedContext, error) {
	bc := boundedcontext.New(r.name, r.failedCommandRetryDelay, engine.Logger())
	resolver := engine.DependencyResolver()

	for i, d := range r.descriptors {
		if err := d.create(bc, resolver); err != nil {
			return nil, errors.Wrapf(err, "bounded context %s: creating descriptor %d %T", r.name, i, d)
		}
	}

	bc.Logger().Logf(log.DebugLevel, "created with %d descriptors", len(r.descriptors))

	return bc, nil
}

func (r *Registration) process(bc *boundedcontext.BoundedContext, engine Engine) error {
	for i, d := range r.descriptors {
		if err := d.process(bc, engine); err != nil {
			return errors.Wrapf(err, "bounded context %s: processing descriptor %d %T", r.name, i, d)
		}
	}

	bc.Logger().Logf(log.DebugLevel, "processed %d routes", len(bc.Routes().Names()))

	return nil
}

func (r *Registration) messageTypes(what string, objs []message.Object) []reflect.Type {
	if len(objs) == 0 {
		panic(invalidConfiguration("bounded context %s: %s without message types", r.name, what))
	}

	types := make([]reflect.Type, len(objs))

	for i, obj := range objs {
		if isNil(obj) {
			panic(invalidConfiguration("bounded context %s: %s message %d is nil", r.name, what, i))
		}
		types[i] = scheme.GetStructType(obj)
	}

	return types
}

func (r *Registration) serviceTypes(what string, types []reflect.Type) []reflect.Type {
	if len(types) == 0 {
		panic(invalidConfiguration("bounded context %s: %s type is missing", r.name, what))
	}

	for _, t := range types {
		if t == nil {
			panic(invalidConfiguration("bounded context %s: %s type is nil", r.name, what))
		}
	}

	return append([]reflect.Type(nil), types...)
}

func (r *Registration) sourceContext(name string) string {
	if name == "" {
		panic(invalidConfiguration("bounded context %s: projection source context is empty", r.name))
	}

	return name
}

// appendUnique appends types not yet present, keeping the position of the first occurrence
func appendUnique(to []reflect.Type, types ...reflect.Type) []reflect.Type {
	for _, t := range types {
		found := false

		for _, existing := range to {
			if existing == t {
				found = true
				break
			}
		}

		if !found {
			to = append(to, t)
		}
	}

	return to
}

func isNil(v interface{}) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Func, reflect.Interface, reflect.Slice, reflect.Chan:
		return rv.IsNil()
	}

	return false
}
