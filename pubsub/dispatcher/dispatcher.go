package dispatcher

import (
	"context"
	"fmt"
	"reflect"

	"github.com/go-foreman/cqrs/pubsub/message"
	"github.com/go-foreman/cqrs/runtime/scheme"
)

// Executor handles a single command or event
type Executor interface {
	Execute(ctx context.Context, msg message.Object) error
}

// ExecutorFunc allows plain functions and method values to be used as executors
type ExecutorFunc func(ctx context.Context, msg message.Object) error

func (f ExecutorFunc) Execute(ctx context.Context, msg message.Object) error {
	return f(ctx, msg)
}

// Dispatcher is a per bounded context table of command handlers and event listeners
type Dispatcher interface {
	Match(obj message.Object) []Executor
	SubscribeForCmd(obj message.Object, executor Executor) Dispatcher
	SubscribeForEvent(obj message.Object, executor Executor) Dispatcher
	SubscribeForAllEvents(executor Executor) Dispatcher
	HandledCommands() []reflect.Type
}

func NewDispatcher() Dispatcher {
	return &dispatcher{
		handlers:  make(map[reflect.Type][]Executor),
		listeners: make(map[reflect.Type][]Executor),
	}
}

type dispatcher struct {
	handlers        map[reflect.Type][]Executor
	listeners       map[reflect.Type][]Executor
	allEvsListeners []Executor
	// subscription order of commands
	commandTypes []reflect.Type
}

// Match returns handlers of a command or, if obj is not a command, listeners of the event in subscription order
func (d dispatcher) Match(obj message.Object) []Executor {
	structType := scheme.GetStructType(obj)
	handlers, exists := d.handlers[structType]

	if exists && len(handlers) > 0 {
		return handlers
	}

	var matched []Executor

	for _, ev := range d.allEvsListeners {
		matched = appendUnique(matched, ev)
	}

	for _, ev := range d.listeners[structType] {
		matched = appendUnique(matched, ev)
	}

	return matched
}

func (d *dispatcher) SubscribeForCmd(obj message.Object, executor Executor) Dispatcher {
	structType := scheme.GetStructType(obj)

	if _, subscribedForAnEvent := d.listeners[structType]; subscribedForAnEvent {
		panic(fmt.Sprintf("obj %s already subscribed for an event listener", structType.String()))
	}

	if _, known := d.handlers[structType]; !known {
		d.commandTypes = append(d.commandTypes, structType)
	}

	d.handlers[structType] = appendUnique(d.handlers[structType], executor)
	return d
}

func (d *dispatcher) SubscribeForEvent(obj message.Object, executor Executor) Dispatcher {
	structType := scheme.GetStructType(obj)

	if _, subscribedForACmd := d.handlers[structType]; subscribedForACmd {
		panic(fmt.Sprintf("obj %s already subscribed for a cmd handler", structType.String()))
	}

	d.listeners[structType] = appendUnique(d.listeners[structType], executor)
	return d
}

func (d *dispatcher) SubscribeForAllEvents(executor Executor) Dispatcher {
	d.allEvsListeners = appendUnique(d.allEvsListeners, executor)
	return d
}

func (d dispatcher) HandledCommands() []reflect.Type {
	res := make([]reflect.Type, len(d.commandTypes))
	copy(res, d.commandTypes)
	return res
}

func appendUnique(executors []Executor, executor Executor) []Executor {
	for _, e := range executors {
		if sameExecutor(e, executor) {
			return executors
		}
	}

	return append(executors, executor)
}

// sameExecutor compares functions by code pointer and everything else by identity
func sameExecutor(a, b Executor) bool {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}

	if va.Kind() == reflect.Func {
		return va.Pointer() == vb.Pointer()
	}

	if va.Type().Comparable() {
		return a == b
	}

	return false
}
