package boundedcontext

import (
	"context"
	"time"

	"github.com/go-foreman/cqrs/eventstore"
	"github.com/go-foreman/cqrs/log"
	"github.com/go-foreman/cqrs/pubsub/dispatcher"
	"github.com/go-foreman/cqrs/pubsub/message"
	"github.com/go-foreman/cqrs/routing"
	"github.com/pkg/errors"
)

// BoundedContext is the compiled form of a registration: routes, hosted handlers, projections, processes and the event store
type BoundedContext struct {
	Name                    string
	FailedCommandRetryDelay time.Duration

	logger      log.Logger
	routes      *RouteMap
	dispatcher  dispatcher.Dispatcher
	handlers    []CommandsHandler
	projections []Projection
	processes   []Process
	eventStore  eventstore.Connection
	registry    *Registry
}

func New(name string, failedCommandRetryDelay time.Duration, logger log.Logger) *BoundedContext {
	bc := &BoundedContext{
		Name:                    name,
		FailedCommandRetryDelay: failedCommandRetryDelay,
		logger:                  logger.WithFields(log.Fields{"context": name}),
		dispatcher:              dispatcher.NewDispatcher(),
	}
	bc.routes = newRouteMap(bc)

	return bc
}

func (b *BoundedContext) Routes() *RouteMap {
	return b.routes
}

func (b *BoundedContext) Dispatcher() dispatcher.Dispatcher {
	return b.dispatcher
}

func (b *BoundedContext) Logger() log.Logger {
	return b.logger
}

// AddCommandsHandler subscribes the handler for every command it returns from Commands
func (b *BoundedContext) AddCommandsHandler(handler CommandsHandler) error {
	if handler == nil {
		return errors.Wrapf(ErrInvalidConfiguration, "bounded context %s: commands handler is nil", b.Name)
	}

	commands := handler.Commands()
	if len(commands) == 0 {
		return errors.Wrapf(ErrInvalidConfiguration, "bounded context %s: commands handler %T handles no commands", b.Name, handler)
	}

	executor := &commandsExecutor{handler: handler}
	for _, cmd := range commands {
		b.dispatcher.SubscribeForCmd(cmd, executor)
	}

	b.handlers = append(b.handlers, handler)
	b.logger.Logf(log.DebugLevel, "commands handler %T added", handler)

	return nil
}

// AddProjection subscribes the listener for its events, or for all events when it declares none
func (b *BoundedContext) AddProjection(listener EventsListener, from string) error {
	if listener == nil {
		return errors.Wrapf(ErrInvalidConfiguration, "bounded context %s: projection is nil", b.Name)
	}

	executor := &eventsExecutor{listener: listener}
	events := listener.Events()

	if len(events) == 0 {
		b.dispatcher.SubscribeForAllEvents(executor)
	}

	for _, ev := range events {
		b.dispatcher.SubscribeForEvent(ev, executor)
	}

	b.projections = append(b.projections, Projection{Listener: listener, From: from})
	b.logger.Logf(log.DebugLevel, "projection %T from %s added", listener, from)

	return nil
}

func (b *BoundedContext) AddProcess(process Process) error {
	if process == nil {
		return errors.Wrapf(ErrInvalidConfiguration, "bounded context %s: process is nil", b.Name)
	}

	b.processes = append(b.processes, process)
	b.logger.Logf(log.DebugLevel, "process %T added", process)

	return nil
}

func (b *BoundedContext) CommandsHandlers() []CommandsHandler {
	return append([]CommandsHandler(nil), b.handlers...)
}

func (b *BoundedContext) Projections() []Projection {
	return append([]Projection(nil), b.projections...)
}

func (b *BoundedContext) Processes() []Process {
	return append([]Process(nil), b.processes...)
}

// SetEventStore attaches the event store, a previously attached one is replaced
func (b *BoundedContext) SetEventStore(conn eventstore.Connection) {
	if b.eventStore != nil {
		b.logger.Log(log.WarnLevel, "event store is already attached, replacing it")
	}

	b.eventStore = conn
}

// EventStore returns nil when no event store is attached
func (b *BoundedContext) EventStore() eventstore.Connection {
	return b.eventStore
}

// DispatchEvent feeds the event to the listeners of the context
func (b *BoundedContext) DispatchEvent(ctx context.Context, ev message.Object) error {
	for _, executor := range b.dispatcher.Match(ev) {
		if err := executor.Execute(ctx, ev); err != nil {
			return errors.Wrapf(err, "bounded context %s: dispatching %T", b.Name, ev)
		}
	}

	return nil
}

// DispatchCommit feeds events committed to the event store to the listeners of the context
func (b *BoundedContext) DispatchCommit(ctx context.Context, records []eventstore.Record) error {
	for _, record := range records {
		if err := b.DispatchEvent(ctx, record.Payload); err != nil {
			return errors.Wrapf(err, "stream %s version %d", record.StreamID, record.Version)
		}
	}

	return nil
}

// ResolvedEntry is a route entry with its endpoint
type ResolvedEntry struct {
	RouteEntry
	ConcurrencyLevel uint
	Endpoint         routing.Endpoint
}

// RoutingTable resolves endpoints of every route entry, routes in creation order
func (b *BoundedContext) RoutingTable() ([]ResolvedEntry, error) {
	var table []ResolvedEntry

	for _, name := range b.routes.Names() {
		route := b.routes.Get(name)

		for _, entry := range route.Entries() {
			endpoint, err := entry.Resolver.Resolve(entry.Key)
			if err != nil {
				return nil, errors.Wrapf(err, "bounded context %s: resolving %s", b.Name, entry.Key)
			}

			table = append(table, ResolvedEntry{
				RouteEntry:       entry,
				ConcurrencyLevel: route.ConcurrencyLevel(),
				Endpoint:         endpoint,
			})
		}
	}

	return table, nil
}

func (b *BoundedContext) hosts(name string) bool {
	return b.registry != nil && b.registry.Contains(name)
}

type commandsExecutor struct {
	handler CommandsHandler
}

func (e *commandsExecutor) Execute(ctx context.Context, msg message.Object) error {
	return e.handler.Handle(ctx, msg)
}

type eventsExecutor struct {
	listener EventsListener
}

func (e *eventsExecutor) Execute(ctx context.Context, msg message.Object) error {
	return e.listener.Handle(ctx, msg)
}

var _ eventstore.CommitDispatcher = (*BoundedContext)(nil)
