package config

import (
	"github.com/go-foreman/cqrs/boundedcontext"
	"github.com/go-foreman/cqrs/contracts"
	"github.com/go-foreman/cqrs/eventstore"
	"github.com/go-foreman/cqrs/pubsub/message"
	"github.com/go-foreman/cqrs/registration"
	"github.com/go-foreman/cqrs/routing"
	amqpRouting "github.com/go-foreman/cqrs/routing/amqp"
	"github.com/go-foreman/cqrs/runtime/scheme"
	"github.com/pkg/errors"
)

// Catalog holds instances referenced by name from a config
type Catalog struct {
	CommandsHandlers map[string]boundedcontext.CommandsHandler
	Projections      map[string]boundedcontext.EventsListener
	Processes        map[string]boundedcontext.Process
}

// EndpointRegistry returns the explicit endpoints declared in the config
func (c *Config) EndpointRegistry() (*routing.EndpointRegistry, error) {
	registry := routing.NewEndpointRegistry()

	for i, e := range c.Endpoints {
		if e.Name == "" {
			return nil, errors.Errorf("endpoint %d has no name", i)
		}

		if registry.Contains(e.Name) {
			return nil, errors.Errorf("endpoint %s is declared twice", e.Name)
		}

		registry.Register(routing.Endpoint{
			Name:                e.Name,
			TransportID:         e.TransportID,
			Destination:         routing.Destination{Publish: e.Publish, Subscribe: e.Subscribe},
			SerializationFormat: e.SerializationFormat,
			SharedDestination:   e.SharedDestination,
			Arguments:           e.Arguments,
		})
	}

	return registry, nil
}

// EndpointResolver returns the conventional AMQP resolver when the transport is configured, nil otherwise
func (c *Config) EndpointResolver() (routing.EndpointResolver, error) {
	if c.Transport.AMQP == "" {
		return nil, nil
	}

	var opts []amqpRouting.Option

	if c.Transport.QueueType != "" {
		queueType := amqpRouting.QueueType(c.Transport.QueueType)
		if queueType != amqpRouting.QueueTypeClassic && queueType != amqpRouting.QueueTypeQuorum {
			return nil, errors.Errorf("unknown queue type %q", c.Transport.QueueType)
		}
		opts = append(opts, amqpRouting.WithQueueType(queueType))
	}

	if c.Transport.SerializationFormat != "" {
		opts = append(opts, amqpRouting.WithSerializationFormat(c.Transport.SerializationFormat))
	}

	if c.Transport.Durable {
		opts = append(opts, amqpRouting.WithDurable())
	}

	resolver, err := amqpRouting.NewEndpointResolver(c.Transport.AMQP, opts...)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return resolver, nil
}

// Registrations validates the config and declares a registration per context. Values which would make
// a builder panic are reported as errors wrapping registration.ErrInvalidConfiguration.
func (c *Config) Registrations(knownTypes scheme.KnownTypesRegistry, catalog Catalog) ([]*registration.Registration, error) {
	b := &builder{knownTypes: knownTypes, catalog: catalog}
	res := make([]*registration.Registration, 0, len(c.Contexts))

	for i, ctxCfg := range c.Contexts {
		r, err := b.registration(ctxCfg)
		if err != nil {
			return nil, errors.Wrapf(err, "context %d %s", i, ctxCfg.Name)
		}

		res = append(res, r)
	}

	return res, nil
}

type builder struct {
	knownTypes scheme.KnownTypesRegistry
	catalog    Catalog
}

func invalid(format string, args ...interface{}) error {
	return errors.Wrapf(registration.ErrInvalidConfiguration, format, args...)
}

func (b *builder) registration(cfg ContextConfig) (*registration.Registration, error) {
	if cfg.Name == "" {
		return nil, invalid("name is empty")
	}

	if cfg.FailedCommandRetryDelay < 0 {
		return nil, invalid("failedCommandRetryDelay %s is negative", cfg.FailedCommandRetryDelay)
	}

	r := registration.Named(cfg.Name).FailedCommandRetryDelay(cfg.FailedCommandRetryDelay)

	if err := b.hosted(r, cfg); err != nil {
		return nil, err
	}

	for i, opt := range cfg.ProcessingOptions {
		if opt.Route == "" {
			return nil, invalid("processingOptions %d: route is empty", i)
		}

		options := r.ProcessingOptions(opt.Route)
		if opt.Threads > 0 {
			options.MultiThreaded(opt.Threads)
		}
	}

	for i, lc := range cfg.ListeningCommands {
		if err := b.listeningCommands(r, lc); err != nil {
			return nil, errors.Wrapf(err, "listeningCommands %d", i)
		}
	}

	for i, pc := range cfg.PublishingCommands {
		if err := b.publishingCommands(r, pc); err != nil {
			return nil, errors.Wrapf(err, "publishingCommands %d", i)
		}
	}

	for i, le := range cfg.ListeningEvents {
		if err := b.listeningEvents(r, le); err != nil {
			return nil, errors.Wrapf(err, "listeningEvents %d", i)
		}
	}

	for i, pe := range cfg.PublishingEvents {
		if err := b.publishingEvents(r, pe); err != nil {
			return nil, errors.Wrapf(err, "publishingEvents %d", i)
		}
	}

	return r, nil
}

func (b *builder) hosted(r *registration.Registration, cfg ContextConfig) error {
	for _, name := range cfg.CommandsHandlers {
		handler, ok := b.catalog.CommandsHandlers[name]
		if !ok || handler == nil {
			return invalid("commands handler %q is not in the catalog", name)
		}
		r.WithCommandsHandler(handler)
	}

	for _, p := range cfg.Projections {
		listener, ok := b.catalog.Projections[p.Listener]
		if !ok || listener == nil {
			return invalid("projection %q is not in the catalog", p.Listener)
		}

		if p.From == "" {
			return invalid("projection %q has no source context", p.Listener)
		}
		r.WithProjection(listener, p.From)
	}

	for _, name := range cfg.Processes {
		process, ok := b.catalog.Processes[name]
		if !ok || process == nil {
			return invalid("process %q is not in the catalog", name)
		}
		r.WithProcess(process)
	}

	if cfg.EventStore != nil {
		wireup, err := b.eventStoreWireup(*cfg.EventStore)
		if err != nil {
			return err
		}
		r.WithEventStoreWireup(wireup)
	}

	return nil
}

func (b *builder) eventStoreWireup(cfg EventStoreConfig) (eventstore.Wireup, error) {
	driver := eventstore.SQLDriver(cfg.Driver)
	if driver != eventstore.MYSQLDriver && driver != eventstore.PGDriver {
		return nil, invalid("event store driver %q is not supported", cfg.Driver)
	}

	if cfg.DSN == "" {
		return nil, invalid("event store dsn is empty")
	}

	marshaller := message.NewJsonMarshaller(b.knownTypes)

	return func(dispatcher eventstore.CommitDispatcher) (eventstore.Connection, error) {
		db, err := eventstore.Open(driver, cfg.DSN)
		if err != nil {
			return nil, err
		}

		return eventstore.NewSQLConnection(db, driver, marshaller, eventstore.WithCommitDispatcher(dispatcher))
	}, nil
}

func (b *builder) listeningCommands(r *registration.Registration, cfg ListeningCommandsConfig) error {
	objs, err := b.messages(cfg.Types)
	if err != nil {
		return err
	}

	if cfg.Infrastructure {
		objs = append(objs, &contracts.ReplayEventsCommand{})
	}

	if err := b.routed(len(objs), cfg.Route); err != nil {
		return err
	}

	if cfg.Priority > registration.MaxPriority {
		return invalid("priority %d is above %d", cfg.Priority, registration.MaxPriority)
	}

	d := r.ListeningCommands(objs...).On(cfg.Route).Prioritized(cfg.Priority)

	if err := b.endpoints(cfg.Endpoints, func(endpoint string, p routing.Predicate) { d.WithEndpoint(endpoint).For(p) }); err != nil {
		return err
	}

	if cfg.Loopback != nil {
		d.WithLoopback(*cfg.Loopback)
	}

	return nil
}

func (b *builder) publishingCommands(r *registration.Registration, cfg PublishingCommandsConfig) error {
	objs, err := b.messages(cfg.Types)
	if err != nil {
		return err
	}

	if cfg.Infrastructure {
		objs = append(objs, &contracts.ReplayEventsCommand{})
	}

	if err := b.routed(len(objs), cfg.Route); err != nil {
		return err
	}

	d := r.PublishingCommands(objs...).With(cfg.Route)
	if cfg.To != "" {
		d.To(cfg.To)
	}

	return b.endpoints(cfg.Endpoints, func(endpoint string, p routing.Predicate) { d.WithEndpoint(endpoint).For(p) })
}

func (b *builder) listeningEvents(r *registration.Registration, cfg ListeningEventsConfig) error {
	objs, err := b.messages(cfg.Types)
	if err != nil {
		return err
	}

	if err := b.routed(len(objs), cfg.Route); err != nil {
		return err
	}

	if cfg.From == "" {
		return invalid("source context is empty")
	}

	d := r.ListeningEvents(objs...).From(cfg.From).On(cfg.Route)

	return b.endpoints(cfg.Endpoints, func(endpoint string, p routing.Predicate) { d.WithEndpoint(endpoint).For(p) })
}

func (b *builder) publishingEvents(r *registration.Registration, cfg PublishingEventsConfig) error {
	objs, err := b.messages(cfg.Types)
	if err != nil {
		return err
	}

	if err := b.routed(len(objs), cfg.Route); err != nil {
		return err
	}

	d := r.PublishingEvents(objs...).With(cfg.Route)

	if err := b.endpoints(cfg.Endpoints, func(endpoint string, p routing.Predicate) { d.WithEndpoint(endpoint).For(p) }); err != nil {
		return err
	}

	if cfg.Loopback != nil {
		d.WithLoopback(*cfg.Loopback)
	}

	return nil
}

func (b *builder) routed(types int, route string) error {
	if types == 0 {
		return invalid("no message types")
	}

	if route == "" {
		return invalid("route is empty")
	}

	return nil
}

func (b *builder) messages(kinds []string) ([]message.Object, error) {
	objs := make([]message.Object, 0, len(kinds))

	for _, kind := range kinds {
		obj, err := b.message(kind)
		if err != nil {
			return nil, err
		}
		objs = append(objs, obj)
	}

	return objs, nil
}

func (b *builder) message(kind string) (message.Object, error) {
	gk, err := scheme.ParseGroupKind(kind)
	if err != nil {
		return nil, invalid("%s", err)
	}

	obj, err := b.knownTypes.NewObject(gk)
	if err != nil {
		return nil, invalid("%s", err)
	}

	return obj, nil
}

// endpoints builds explicit endpoint bindings in declaration order
func (b *builder) endpoints(cfgs []ExplicitEndpointConfig, bind func(endpoint string, p routing.Predicate)) error {
	for i, cfg := range cfgs {
		if cfg.Endpoint == "" {
			return invalid("endpoints %d: endpoint is empty", i)
		}

		predicate, err := b.predicate(cfg.Match)
		if err != nil {
			return errors.Wrapf(err, "endpoints %d", i)
		}

		bind(cfg.Endpoint, predicate)
	}

	return nil
}

func (b *builder) predicate(cfg MatchConfig) (routing.Predicate, error) {
	var predicates []routing.Predicate

	if len(cfg.Types) > 0 {
		objs, err := b.messages(cfg.Types)
		if err != nil {
			return nil, err
		}
		predicates = append(predicates, routing.MessageTypeIs(objs...))
	}

	if cfg.Priority != nil {
		predicates = append(predicates, routing.PriorityIs(*cfg.Priority))
	}

	if cfg.RemoteContext != "" {
		predicates = append(predicates, routing.RemoteContextIs(cfg.RemoteContext))
	}

	if cfg.Route != "" {
		predicates = append(predicates, routing.RouteIs(cfg.Route))
	}

	switch cfg.Communication {
	case "":
	case routing.Publish.String():
		predicates = append(predicates, routing.CommunicationIs(routing.Publish))
	case routing.Subscribe.String():
		predicates = append(predicates, routing.CommunicationIs(routing.Subscribe))
	default:
		return nil, invalid("unknown communication %q", cfg.Communication)
	}

	return routing.All(predicates...), nil
}
