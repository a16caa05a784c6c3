package contracts

import (
	"time"

	"github.com/go-foreman/cqrs/pubsub/message"
	"github.com/go-foreman/cqrs/runtime/scheme"
	"github.com/google/uuid"
)

const InfrastructureGroup scheme.Group = "cqrsInfrastructure"

func init() {
	scheme.KnownTypesRegistryInstance.AddKnownTypes(InfrastructureGroup,
		&ReplayEventsCommand{},
	)
}

// ReplayEventsCommand asks a bounded context to re-dispatch events from its event store to its listeners
type ReplayEventsCommand struct {
	message.ObjectMeta
	ID string `json:"id"`
	// Destination is the bounded context which replays the events
	Destination string    `json:"destination"`
	From        time.Time `json:"from"`
	// Kinds limits replay to events of the given group.Kind names, empty means all events
	Kinds []string `json:"kinds,omitempty"`
}

func NewReplayEventsCommand(destination string, from time.Time, kinds ...string) *ReplayEventsCommand {
	return &ReplayEventsCommand{
		ID:          uuid.New().String(),
		Destination: destination,
		From:        from,
		Kinds:       kinds,
	}
}
