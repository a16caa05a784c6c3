package registration

import (
	"reflect"

	"github.com/go-foreman/cqrs/boundedcontext"
	"github.com/go-foreman/cqrs/eventstore"
	"github.com/go-foreman/cqrs/infrastructure"
	"github.com/go-foreman/cqrs/runtime/scheme"
	"github.com/pkg/errors"
)

// Descriptor is a single declaration of a registration. Create runs for every registration before Process runs for any,
// so Process may refer to bounded contexts declared later.
type Descriptor interface {
	dependencies() []reflect.Type
	create(bc *boundedcontext.BoundedContext, resolver boundedcontext.DependencyResolver) error
	process(bc *boundedcontext.BoundedContext, engine Engine) error
}

// ProcessingOptionsDescriptor declares how the dispatch engine processes a route
type ProcessingOptionsDescriptor struct {
	*Registration
	route       string
	threadCount uint
}

// MultiThreaded sets the concurrency level of the route
func (d *ProcessingOptionsDescriptor) MultiThreaded(threadCount uint) *ProcessingOptionsDescriptor {
	if threadCount == 0 {
		panic(invalidConfiguration("bounded context %s: route %s thread count should be greater than 0", d.name, d.route))
	}

	d.threadCount = threadCount

	return d
}

func (d *ProcessingOptionsDescriptor) dependencies() []reflect.Type {
	return nil
}

func (d *ProcessingOptionsDescriptor) create(bc *boundedcontext.BoundedContext, _ boundedcontext.DependencyResolver) error {
	route := bc.Routes().Get(d.route)

	if d.threadCount == 0 {
		return nil
	}

	return route.SetConcurrencyLevel(d.threadCount)
}

func (d *ProcessingOptionsDescriptor) process(*boundedcontext.BoundedContext, Engine) error {
	return nil
}

type commandsHandlerDescriptor struct {
	handlers []boundedcontext.CommandsHandler
	types    []reflect.Type
}

func (d *commandsHandlerDescriptor) dependencies() []reflect.Type {
	return d.types
}

func (d *commandsHandlerDescriptor) create(bc *boundedcontext.BoundedContext, resolver boundedcontext.DependencyResolver) error {
	handlers := append([]boundedcontext.CommandsHandler(nil), d.handlers...)

	for _, t := range d.types {
		instance, err := resolve(resolver, t)
		if err != nil {
			return err
		}

		handler, ok := instance.(boundedcontext.CommandsHandler)
		if !ok {
			return errors.Wrapf(ErrInvalidConfiguration, "%s is not a commands handler", t)
		}

		handlers = append(handlers, handler)
	}

	for _, handler := range handlers {
		if err := bc.AddCommandsHandler(handler); err != nil {
			return err
		}
	}

	return nil
}

func (d *commandsHandlerDescriptor) process(*boundedcontext.BoundedContext, Engine) error {
	return nil
}

type projectionDescriptor struct {
	listener     boundedcontext.EventsListener
	listenerType reflect.Type
	from         string
}

func (d *projectionDescriptor) dependencies() []reflect.Type {
	if d.listenerType == nil {
		return nil
	}

	return []reflect.Type{d.listenerType}
}

func (d *projectionDescriptor) create(bc *boundedcontext.BoundedContext, resolver boundedcontext.DependencyResolver) error {
	listener := d.listener

	if listener == nil {
		instance, err := resolve(resolver, d.listenerType)
		if err != nil {
			return err
		}

		var ok bool
		if listener, ok = instance.(boundedcontext.EventsListener); !ok {
			return errors.Wrapf(ErrInvalidConfiguration, "%s is not an events listener", d.listenerType)
		}
	}

	return bc.AddProjection(listener, d.from)
}

func (d *projectionDescriptor) process(*boundedcontext.BoundedContext, Engine) error {
	return nil
}

type localProcessDescriptor struct {
	instance    boundedcontext.Process
	processType reflect.Type
}

func (d *localProcessDescriptor) dependencies() []reflect.Type {
	if d.processType == nil {
		return nil
	}

	return []reflect.Type{d.processType}
}

func (d *localProcessDescriptor) create(bc *boundedcontext.BoundedContext, resolver boundedcontext.DependencyResolver) error {
	process := d.instance

	if process == nil {
		instance, err := resolve(resolver, d.processType)
		if err != nil {
			return err
		}

		var ok bool
		if process, ok = instance.(boundedcontext.Process); !ok {
			return errors.Wrapf(ErrInvalidConfiguration, "%s is not a process", d.processType)
		}
	}

	return bc.AddProcess(process)
}

func (d *localProcessDescriptor) process(*boundedcontext.BoundedContext, Engine) error {
	return nil
}

type eventStoreDescriptor struct {
	conn   eventstore.Connection
	wireup eventstore.Wireup
}

func (d *eventStoreDescriptor) dependencies() []reflect.Type {
	return nil
}

func (d *eventStoreDescriptor) create(bc *boundedcontext.BoundedContext, _ boundedcontext.DependencyResolver) error {
	conn := d.conn

	if d.wireup != nil {
		var err error
		if conn, err = d.wireup(bc); err != nil {
			return errors.Wrap(err, "wiring up event store")
		}
	}

	bc.SetEventStore(conn)

	return nil
}

func (d *eventStoreDescriptor) process(*boundedcontext.BoundedContext, Engine) error {
	return nil
}

// infrastructureCommandsHandlerDescriptor serves infrastructure commands in every bounded context
type infrastructureCommandsHandlerDescriptor struct{}

func (d *infrastructureCommandsHandlerDescriptor) dependencies() []reflect.Type {
	return nil
}

func (d *infrastructureCommandsHandlerDescriptor) create(bc *boundedcontext.BoundedContext, _ boundedcontext.DependencyResolver) error {
	return bc.AddCommandsHandler(infrastructure.NewReplayEventsHandler(bc, scheme.KnownTypesRegistryInstance))
}

func (d *infrastructureCommandsHandlerDescriptor) process(*boundedcontext.BoundedContext, Engine) error {
	return nil
}

func resolve(resolver boundedcontext.DependencyResolver, t reflect.Type) (interface{}, error) {
	if resolver == nil {
		return nil, errors.Errorf("no dependency resolver to resolve %s", t)
	}

	instance, err := resolver.Resolve(t)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving %s", t)
	}

	return instance, nil
}
