package registration

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-foreman/cqrs/boundedcontext"
	"github.com/go-foreman/cqrs/log"
	"github.com/pkg/errors"
)

// Compile turns registrations into bounded contexts of the engine. Create runs for all registrations
// before Process runs for any of them. The engine's registry is left untouched when compilation fails.
func Compile(engine Engine, registrations ...*Registration) error {
	logger := engine.Logger()

	if err := checkNames(engine.BoundedContexts(), registrations); err != nil {
		return err
	}

	dependencies := Dependencies(registrations...)
	if err := checkDependencies(engine.DependencyResolver(), dependencies); err != nil {
		return err
	}

	logger.Logf(log.DebugLevel, "compiling %d registrations with %d dependencies", len(registrations), len(dependencies))

	created := make([]*boundedcontext.BoundedContext, len(registrations))

	for i, r := range registrations {
		bc, err := r.create(engine)
		if err != nil {
			return err
		}

		created[i] = bc
	}

	// contexts become visible only once all of them are created, Process needs them to detect local routes
	registry := engine.BoundedContexts()
	names := make([]string, 0, len(created))

	for _, bc := range created {
		if err := registry.Add(bc); err != nil {
			registry.Remove(names...)
			return errors.WithStack(err)
		}

		names = append(names, bc.Name)
	}

	for i, r := range registrations {
		if err := r.process(created[i], engine); err != nil {
			registry.Remove(names...)
			return err
		}
	}

	logger.Logf(log.DebugLevel, "compiled %d bounded contexts", len(registrations))

	return nil
}

// Dependencies is the union of dependencies of the registrations in order of first declaration
func Dependencies(registrations ...*Registration) []reflect.Type {
	var res []reflect.Type

	for _, r := range registrations {
		res = appendUnique(res, r.dependencies...)
	}

	return res
}

func checkNames(registry *boundedcontext.Registry, registrations []*Registration) error {
	seen := make(map[string]struct{}, len(registrations))

	for _, r := range registrations {
		if r == nil {
			return errors.Wrap(ErrInvalidConfiguration, "registration is nil")
		}

		if _, exists := seen[r.name]; exists || registry.Contains(r.name) {
			return errors.Wrapf(ErrDuplicateRegistration, "bounded context %s", r.name)
		}

		seen[r.name] = struct{}{}
	}

	return nil
}

func checkDependencies(resolver boundedcontext.DependencyResolver, dependencies []reflect.Type) error {
	var unresolved []string

	for _, t := range dependencies {
		if resolver == nil || !resolver.HasService(t) {
			unresolved = append(unresolved, fmt.Sprint(t))
		}
	}

	if len(unresolved) > 0 {
		return errors.Wrapf(ErrUnresolvedDependencies, "%s", strings.Join(unresolved, ", "))
	}

	return nil
}
