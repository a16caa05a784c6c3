package boundedcontext

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/go-foreman/cqrs/eventstore"
	"github.com/go-foreman/cqrs/log"
	"github.com/go-foreman/cqrs/pubsub/message"
	"github.com/go-foreman/cqrs/routing"
	testLog "github.com/go-foreman/cqrs/testing/log"
	mockEventstore "github.com/go-foreman/cqrs/testing/mocks/eventstore"
	mockRouting "github.com/go-foreman/cqrs/testing/mocks/routing"
	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type openAccount struct {
	message.ObjectMeta
}

type closeAccount struct {
	message.ObjectMeta
}

type accountOpened struct {
	message.ObjectMeta
}

type accountsHandler struct {
	handled []message.Object
}

func (h *accountsHandler) Commands() []message.Object {
	return []message.Object{&openAccount{}, &closeAccount{}}
}

func (h *accountsHandler) Handle(_ context.Context, cmd message.Object) error {
	h.handled = append(h.handled, cmd)
	return nil
}

type accountsProjection struct {
	events []message.Object
	err    error
}

func (p *accountsProjection) Events() []message.Object {
	return []message.Object{&accountOpened{}}
}

func (p *accountsProjection) Handle(_ context.Context, ev message.Object) error {
	p.events = append(p.events, ev)
	return p.err
}

type auditProjection struct {
	events []message.Object
}

func (p *auditProjection) Events() []message.Object {
	return nil
}

func (p *auditProjection) Handle(_ context.Context, ev message.Object) error {
	p.events = append(p.events, ev)
	return nil
}

type noopProcess struct{}

func (p *noopProcess) Start(context.Context) error { return nil }
func (p *noopProcess) Stop(context.Context) error  { return nil }

func TestBoundedContext_Handlers(t *testing.T) {
	logger := testLog.NewNilLogger()

	t.Run("commands handler is subscribed for its commands", func(t *testing.T) {
		bc := New("accounts", time.Second, logger)
		handler := &accountsHandler{}

		require.NoError(t, bc.AddCommandsHandler(handler))
		assert.Equal(t, []reflect.Type{reflect.TypeOf(openAccount{}), reflect.TypeOf(closeAccount{})}, bc.Dispatcher().HandledCommands())
		assert.Len(t, bc.CommandsHandlers(), 1)

		executors := bc.Dispatcher().Match(&closeAccount{})
		require.Len(t, executors, 1)
		require.NoError(t, executors[0].Execute(context.Background(), &closeAccount{}))
		assert.Len(t, handler.handled, 1)
	})

	t.Run("nil handlers are rejected", func(t *testing.T) {
		bc := New("accounts", 0, logger)

		assert.True(t, errors.Is(bc.AddCommandsHandler(nil), ErrInvalidConfiguration))
		assert.True(t, errors.Is(bc.AddProjection(nil, "accounts"), ErrInvalidConfiguration))
		assert.True(t, errors.Is(bc.AddProcess(nil), ErrInvalidConfiguration))
	})

	t.Run("processes are kept in order", func(t *testing.T) {
		bc := New("accounts", 0, logger)
		first, second := &noopProcess{}, &noopProcess{}

		require.NoError(t, bc.AddProcess(first))
		require.NoError(t, bc.AddProcess(second))

		processes := bc.Processes()
		require.Len(t, processes, 2)
		assert.Same(t, first, processes[0])
		assert.Same(t, second, processes[1])
	})
}

func TestBoundedContext_DispatchCommit(t *testing.T) {
	logger := testLog.NewNilLogger()
	ctx := context.Background()

	t.Run("events reach projections", func(t *testing.T) {
		bc := New("accounts", 0, logger)
		projection := &accountsProjection{}
		audit := &auditProjection{}

		require.NoError(t, bc.AddProjection(projection, "accounts"))
		require.NoError(t, bc.AddProjection(audit, "billing"))

		assert.Equal(t, []Projection{{Listener: projection, From: "accounts"}, {Listener: audit, From: "billing"}}, bc.Projections())

		ev := &accountOpened{}
		require.NoError(t, bc.DispatchCommit(ctx, []eventstore.Record{{StreamID: "acc-1", Version: 1, Payload: ev}}))

		assert.Equal(t, []message.Object{ev}, projection.events)
		assert.Equal(t, []message.Object{ev}, audit.events)
	})

	t.Run("listener error names the record", func(t *testing.T) {
		bc := New("accounts", 0, logger)
		require.NoError(t, bc.AddProjection(&accountsProjection{err: errors.New("boom")}, "accounts"))

		err := bc.DispatchCommit(ctx, []eventstore.Record{{StreamID: "acc-1", Version: 3, Payload: &accountOpened{}}})
		assert.EqualError(t, err, "stream acc-1 version 3: bounded context accounts: dispatching *boundedcontext.accountOpened: boom")
	})
}

func TestBoundedContext_EventStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	logger := testLog.NewNilLogger()
	bc := New("accounts", 0, logger)
	assert.Nil(t, bc.EventStore())

	first := mockEventstore.NewMockConnection(ctrl)
	second := mockEventstore.NewMockConnection(ctrl)

	bc.SetEventStore(first)
	assert.Empty(t, logger.MessagesOf(log.WarnLevel))

	bc.SetEventStore(second)
	assert.Same(t, second, bc.EventStore())
	assert.Equal(t, []string{"event store is already attached, replacing it"}, logger.MessagesOf(log.WarnLevel))
	assert.Equal(t, log.Fields{"context": "accounts"}, logger.Entries()[len(logger.Entries())-1].Fields)
}

func TestBoundedContext_RoutingTable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	logger := testLog.NewNilLogger()
	resolver := mockRouting.NewMockEndpointResolver(ctrl)

	bc := New("accounts", 0, logger)
	route := bc.Routes().Get("commands")
	require.NoError(t, route.SetConcurrencyLevel(3))
	require.NoError(t, route.AddSubscribedCommand(reflect.TypeOf(openAccount{}), 0, resolver))
	require.NoError(t, bc.Routes().Get("events").AddPublishedEvent(reflect.TypeOf(accountOpened{}), 0, resolver))

	t.Run("every entry is resolved", func(t *testing.T) {
		resolver.EXPECT().Resolve(gomock.Any()).DoAndReturn(func(key routing.RoutingKey) (routing.Endpoint, error) {
			return routing.Endpoint{Name: key.Route}, nil
		}).Times(2)

		table, err := bc.RoutingTable()
		require.NoError(t, err)
		require.Len(t, table, 2)
		assert.Equal(t, "commands", table[0].Endpoint.Name)
		assert.Equal(t, uint(3), table[0].ConcurrencyLevel)
		assert.Equal(t, "events", table[1].Endpoint.Name)
		assert.Equal(t, uint(1), table[1].ConcurrencyLevel)
	})

	t.Run("resolver error", func(t *testing.T) {
		resolver.EXPECT().Resolve(gomock.Any()).Return(routing.Endpoint{}, errors.New("no route"))

		_, err := bc.RoutingTable()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bounded context accounts: resolving accounts/commands subscribe commands")
		assert.Contains(t, err.Error(), "no route")
	})
}
