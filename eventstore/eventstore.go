package eventstore

import (
	"context"
	"time"

	"github.com/go-foreman/cqrs/pubsub/message"
	"github.com/pkg/errors"
)

//go:generate mockgen --build_flags=--mod=mod -destination ../testing/mocks/eventstore/eventstore.go -package eventstore . Connection,CommitDispatcher

// ErrConcurrencyViolation is returned by Append when the stream moved past the expected version
var ErrConcurrencyViolation = errors.New("concurrency violation")

// Commit is a batch of events appended to one stream
type Commit struct {
	StreamID string
	// ExpectedVersion is the version of the last event the writer has seen, 0 for a new stream. AnyVersion skips the check
	ExpectedVersion int64
	Events          []message.Object
}

// Record is a persisted event
type Record struct {
	UID       string
	StreamID  string
	Version   int64
	Payload   message.Object
	CreatedAt time.Time
}

// Connection is the event sourcing store attached to a bounded context
type Connection interface {
	Append(ctx context.Context, commit Commit) ([]Record, error)
	ReadStream(ctx context.Context, streamID string) ([]Record, error)
	ReadSince(ctx context.Context, from time.Time) ([]Record, error)
}

// CommitDispatcher receives committed events, bounded contexts implement it to feed their listeners
type CommitDispatcher interface {
	DispatchCommit(ctx context.Context, records []Record) error
}

// Wireup builds a connection which publishes commits through the dispatcher of the bounded context it is attached to
type Wireup func(dispatcher CommitDispatcher) (Connection, error)
