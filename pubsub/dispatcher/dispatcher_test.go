package dispatcher

import (
	"context"
	"reflect"
	"testing"

	"github.com/go-foreman/cqrs/pubsub/message"
	"github.com/go-foreman/cqrs/runtime/scheme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registerAccountCmd struct {
	message.ObjectMeta
}

type sendConfirmationCmd struct {
	message.ObjectMeta
}

type accountRegisteredEvent struct {
	message.ObjectMeta
}

type confirmationSentEvent struct {
	message.ObjectMeta
}

type service struct {
	name string
}

func (h *service) Execute(ctx context.Context, msg message.Object) error {
	return nil
}

func handle(ctx context.Context, msg message.Object) error {
	return nil
}

func anotherHandle(ctx context.Context, msg message.Object) error {
	return nil
}

func TestDispatcher_SubscribeForCmd(t *testing.T) {
	t.Run("subscribe for cmd by passing pointer to a struct", func(t *testing.T) {
		dispatcher := NewDispatcher()
		dispatcher.SubscribeForCmd(&registerAccountCmd{}, ExecutorFunc(handle))
		handlers := dispatcher.Match(&registerAccountCmd{})
		require.Len(t, handlers, 1)
		assertThisValueExists(t, ExecutorFunc(handle), handlers)
	})

	t.Run("multiple handlers for cmd", func(t *testing.T) {
		dispatcher := NewDispatcher()
		dispatcher.SubscribeForCmd(&sendConfirmationCmd{}, ExecutorFunc(handle))
		dispatcher.SubscribeForCmd(&sendConfirmationCmd{}, ExecutorFunc(anotherHandle))
		handlers := dispatcher.Match(&sendConfirmationCmd{})
		require.Len(t, handlers, 2)
		assertThisValueExists(t, ExecutorFunc(handle), handlers)
		assertThisValueExists(t, ExecutorFunc(anotherHandle), handlers)
	})

	t.Run("duplicate cmd - handler is ignored", func(t *testing.T) {
		dispatcher := NewDispatcher()
		dispatcher.SubscribeForCmd(&registerAccountCmd{}, ExecutorFunc(handle))
		dispatcher.SubscribeForCmd(&registerAccountCmd{}, ExecutorFunc(handle))
		handlers := dispatcher.Match(&registerAccountCmd{})
		require.Len(t, handlers, 1)
	})

	t.Run("two instances of the same handler type are kept", func(t *testing.T) {
		dispatcher := NewDispatcher()
		first, second := &service{name: "first"}, &service{name: "second"}
		dispatcher.SubscribeForCmd(&registerAccountCmd{}, first)
		dispatcher.SubscribeForCmd(&registerAccountCmd{}, second)
		dispatcher.SubscribeForCmd(&registerAccountCmd{}, first)
		handlers := dispatcher.Match(&registerAccountCmd{})
		require.Len(t, handlers, 2)
		assert.Same(t, first, handlers[0])
		assert.Same(t, second, handlers[1])
	})

	t.Run("cmd is not struct type", func(t *testing.T) {
		dispatcher := NewDispatcher()
		wrongType := notStructType("aaa")
		assert.PanicsWithValue(t, "all types must be pointers to structs", func() {
			dispatcher.SubscribeForCmd(wrongType, ExecutorFunc(handle))
		})
	})

	t.Run("cross subscription for an event", func(t *testing.T) {
		dispatcher := NewDispatcher()
		dispatcher.SubscribeForCmd(&registerAccountCmd{}, ExecutorFunc(handle))
		assert.PanicsWithValue(t, "obj dispatcher.registerAccountCmd already subscribed for a cmd handler", func() {
			dispatcher.SubscribeForEvent(&registerAccountCmd{}, ExecutorFunc(handle))
		})
	})

	t.Run("handled commands keep subscription order", func(t *testing.T) {
		dispatcher := NewDispatcher()
		dispatcher.SubscribeForCmd(&sendConfirmationCmd{}, ExecutorFunc(handle))
		dispatcher.SubscribeForCmd(&registerAccountCmd{}, ExecutorFunc(handle))
		dispatcher.SubscribeForCmd(&sendConfirmationCmd{}, ExecutorFunc(anotherHandle))
		assert.Equal(t, []reflect.Type{
			reflect.TypeOf(sendConfirmationCmd{}),
			reflect.TypeOf(registerAccountCmd{}),
		}, dispatcher.HandledCommands())
	})
}

func TestDispatcher_SubscribeForEvent(t *testing.T) {
	t.Run("subscribe for an event by passing pointer to a struct", func(t *testing.T) {
		dispatcher := NewDispatcher()
		dispatcher.SubscribeForEvent(&accountRegisteredEvent{}, ExecutorFunc(handle))
		listeners := dispatcher.Match(&accountRegisteredEvent{})
		require.Len(t, listeners, 1)
		assertThisValueExists(t, ExecutorFunc(handle), listeners)
	})

	t.Run("multiple listeners for an event", func(t *testing.T) {
		dispatcher := NewDispatcher()
		dispatcher.SubscribeForEvent(&accountRegisteredEvent{}, ExecutorFunc(handle))
		dispatcher.SubscribeForEvent(&accountRegisteredEvent{}, ExecutorFunc(anotherHandle))
		listeners := dispatcher.Match(&accountRegisteredEvent{})
		require.Len(t, listeners, 2)
		assertThisValueExists(t, ExecutorFunc(handle), listeners)
		assertThisValueExists(t, ExecutorFunc(anotherHandle), listeners)
	})

	t.Run("duplicate event - listener is ignored", func(t *testing.T) {
		dispatcher := NewDispatcher()
		dispatcher.SubscribeForEvent(&accountRegisteredEvent{}, ExecutorFunc(handle))
		dispatcher.SubscribeForEvent(&accountRegisteredEvent{}, ExecutorFunc(handle))
		listeners := dispatcher.Match(&accountRegisteredEvent{})
		require.Len(t, listeners, 1)
	})

	t.Run("cross subscription for a cmd", func(t *testing.T) {
		dispatcher := NewDispatcher()
		dispatcher.SubscribeForEvent(&accountRegisteredEvent{}, ExecutorFunc(handle))
		assert.PanicsWithValue(t, "obj dispatcher.accountRegisteredEvent already subscribed for an event listener", func() {
			dispatcher.SubscribeForCmd(&accountRegisteredEvent{}, ExecutorFunc(handle))
		})
	})

	t.Run("nothing matched", func(t *testing.T) {
		dispatcher := NewDispatcher()
		assert.Empty(t, dispatcher.Match(&confirmationSentEvent{}))
	})
}

func TestDispatcher_SubscribeForAllEvents(t *testing.T) {
	t.Run("subscribe for all events, even those which weren't registered", func(t *testing.T) {
		dispatcher := NewDispatcher()
		dispatcher.SubscribeForAllEvents(ExecutorFunc(handle))
		listeners := dispatcher.Match(&accountRegisteredEvent{})
		require.Len(t, listeners, 1)
		assertThisValueExists(t, ExecutorFunc(handle), listeners)
	})

	t.Run("subscribe for an event by duplicating handler for all events", func(t *testing.T) {
		dispatcher := NewDispatcher()
		dispatcher.SubscribeForAllEvents(ExecutorFunc(handle))
		dispatcher.SubscribeForEvent(&accountRegisteredEvent{}, ExecutorFunc(handle))
		listeners := dispatcher.Match(&accountRegisteredEvent{})
		require.Len(t, listeners, 1)
	})

	t.Run("subscribe for an event + match all events listeners", func(t *testing.T) {
		dispatcher := NewDispatcher()
		dispatcher.SubscribeForAllEvents(ExecutorFunc(handle))
		dispatcher.SubscribeForEvent(&confirmationSentEvent{}, ExecutorFunc(anotherHandle))
		listeners := dispatcher.Match(&confirmationSentEvent{})
		require.Len(t, listeners, 2)
		assertThisValueExists(t, ExecutorFunc(handle), listeners)
		assertThisValueExists(t, ExecutorFunc(anotherHandle), listeners)
	})
}

type notStructType string

func (n notStructType) GroupKind() scheme.GroupKind {
	panic("implement me")
}

func (n notStructType) SetGroupKind(gk *scheme.GroupKind) {

}

func assertThisValueExists(t *testing.T, expected Executor, executors []Executor) {
	exists := false
	for _, e := range executors {
		if sameExecutor(expected, e) {
			exists = true
		}
	}
	assert.True(t, exists, "expected executor is not found among executors")
}
