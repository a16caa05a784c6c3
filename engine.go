package cqrs

import (
	"context"

	"github.com/go-foreman/cqrs/boundedcontext"
	"github.com/go-foreman/cqrs/log"
	"github.com/go-foreman/cqrs/registration"
	"github.com/go-foreman/cqrs/routing"
	"github.com/go-foreman/cqrs/runtime/scheme"
	"github.com/pkg/errors"
)

// Component allows to wrap and prepare booting of your component, it is initialized after bounded contexts are compiled
type Component interface {
	Init(e *Engine) error
}

// ConfigOption allows to configure Engine's container
type ConfigOption func(o *container)

type container struct {
	registrations      []*registration.Registration
	dependencyResolver boundedcontext.DependencyResolver
	endpointResolver   routing.EndpointResolver
	endpointProvider   routing.EndpointProvider
	scheme             scheme.KnownTypesRegistry
	components         []Component
}

// WithRegistrations adds bounded contexts compiled by the engine
func WithRegistrations(registrations ...*registration.Registration) ConfigOption {
	return func(c *container) {
		c.registrations = append(c.registrations, registrations...)
	}
}

// WithDependencyResolver allows to provide another boundedcontext.DependencyResolver implementation
func WithDependencyResolver(resolver boundedcontext.DependencyResolver) ConfigOption {
	return func(c *container) {
		c.dependencyResolver = resolver
	}
}

// WithEndpointResolver sets the default resolver used for routing keys no explicit endpoint matches
func WithEndpointResolver(resolver routing.EndpointResolver) ConfigOption {
	return func(c *container) {
		c.endpointResolver = resolver
	}
}

// WithEndpointProvider sets where explicit endpoints are looked up by name
func WithEndpointProvider(provider routing.EndpointProvider) ConfigOption {
	return func(c *container) {
		c.endpointProvider = provider
	}
}

// WithSchemeRegistry allows to specify scheme scheme.KnownTypesRegistry
func WithSchemeRegistry(scheme scheme.KnownTypesRegistry) ConfigOption {
	return func(c *container) {
		c.scheme = scheme
	}
}

// WithComponents specifies a list of additional components you want to be initialized by Engine
func WithComponents(components ...Component) ConfigOption {
	return func(c *container) {
		c.components = append(c.components, components...)
	}
}

// Engine hosts compiled bounded contexts and the collaborators they were compiled against
type Engine struct {
	logger             log.Logger
	dependencyResolver boundedcontext.DependencyResolver
	endpointResolver   routing.EndpointResolver
	endpointProvider   routing.EndpointProvider
	scheme             scheme.KnownTypesRegistry
	contexts           *boundedcontext.Registry
}

// NewEngine compiles registrations passed with WithRegistrations and initializes components
func NewEngine(logger log.Logger, configOpts ...ConfigOption) (*Engine, error) {
	opts := &container{}
	for _, config := range configOpts {
		config(opts)
	}

	if opts.scheme == nil {
		opts.scheme = scheme.KnownTypesRegistryInstance
	}

	if opts.dependencyResolver == nil {
		opts.dependencyResolver = boundedcontext.NewDefaultResolver()
	}

	if opts.endpointProvider == nil {
		opts.endpointProvider = routing.NewEndpointRegistry()
	}

	if opts.endpointResolver == nil {
		// only explicit endpoints can be resolved
		opts.endpointResolver = routing.NewExplicitEndpointResolver(nil, opts.endpointProvider, nil)
	}

	e := &Engine{
		logger:             logger,
		dependencyResolver: opts.dependencyResolver,
		endpointResolver:   opts.endpointResolver,
		endpointProvider:   opts.endpointProvider,
		scheme:             opts.scheme,
		contexts:           boundedcontext.NewRegistry(),
	}

	if err := registration.Compile(e, opts.registrations...); err != nil {
		return nil, errors.Wrap(err, "compiling bounded contexts")
	}

	for _, component := range opts.components {
		if err := component.Init(e); err != nil {
			return nil, err
		}
	}

	logger.Logf(log.InfoLevel, "engine is ready with %d bounded contexts", len(e.contexts.All()))

	return e, nil
}

// Logger returns an instance of logger
func (e *Engine) Logger() log.Logger {
	return e.logger
}

func (e *Engine) DependencyResolver() boundedcontext.DependencyResolver {
	return e.dependencyResolver
}

func (e *Engine) EndpointResolver() routing.EndpointResolver {
	return e.endpointResolver
}

func (e *Engine) EndpointProvider() routing.EndpointProvider {
	return e.endpointProvider
}

// SchemeRegistry returns the registry which should contain all the types of commands and events the engine works with
func (e *Engine) SchemeRegistry() scheme.KnownTypesRegistry {
	return e.scheme
}

func (e *Engine) BoundedContexts() *boundedcontext.Registry {
	return e.contexts
}

// Register compiles more registrations, they may refer to already hosted bounded contexts
func (e *Engine) Register(registrations ...*registration.Registration) error {
	return registration.Compile(e, registrations...)
}

// RoutingTable resolves endpoints of all route entries of all bounded contexts
func (e *Engine) RoutingTable() ([]boundedcontext.ResolvedEntry, error) {
	var table []boundedcontext.ResolvedEntry

	for _, bc := range e.contexts.All() {
		entries, err := bc.RoutingTable()
		if err != nil {
			return nil, err
		}

		table = append(table, entries...)
	}

	return table, nil
}

// Start starts processes of every bounded context. Already started processes are stopped if one fails.
func (e *Engine) Start(ctx context.Context) error {
	var started []boundedcontext.Process

	for _, bc := range e.contexts.All() {
		for _, p := range bc.Processes() {
			if err := p.Start(ctx); err != nil {
				e.stop(ctx, started)
				return errors.Wrapf(err, "starting process %T of %s", p, bc.Name)
			}

			started = append(started, p)
		}
	}

	return nil
}

// Stop stops processes in reverse start order
func (e *Engine) Stop(ctx context.Context) error {
	var all []boundedcontext.Process

	for _, bc := range e.contexts.All() {
		all = append(all, bc.Processes()...)
	}

	return e.stop(ctx, all)
}

func (e *Engine) stop(ctx context.Context, processes []boundedcontext.Process) error {
	var firstErr error

	for i := len(processes) - 1; i >= 0; i-- {
		if err := processes[i].Stop(ctx); err != nil {
			e.logger.Logf(log.ErrorLevel, "stopping process %T: %s", processes[i], err)

			if firstErr == nil {
				firstErr = errors.Wrapf(err, "stopping process %T", processes[i])
			}
		}
	}

	return firstErr
}

var _ registration.Engine = (*Engine)(nil)
