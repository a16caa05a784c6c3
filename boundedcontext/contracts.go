package boundedcontext

import (
	"context"

	"github.com/go-foreman/cqrs/pubsub/message"
)

// CommandsHandler handles commands sent to a bounded context
type CommandsHandler interface {
	// Commands returns instances of the handled command types
	Commands() []message.Object
	Handle(ctx context.Context, cmd message.Object) error
}

// EventsListener is a projection fed with events of a bounded context
type EventsListener interface {
	// Events returns instances of the listened event types, nothing means all events
	Events() []message.Object
	Handle(ctx context.Context, ev message.Object) error
}

// Process is a long running component hosted by a bounded context, the engine starts and stops it
type Process interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// Projection is a listener together with the bounded context its events come from
type Projection struct {
	Listener EventsListener
	From     string
}
