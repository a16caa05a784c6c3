package contracts

import (
	"testing"
	"time"

	"github.com/go-foreman/cqrs/pubsub/message"
	"github.com/go-foreman/cqrs/runtime/scheme"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplayEventsCommand(t *testing.T) {
	t.Run("registered in the scheme", func(t *testing.T) {
		gk, err := scheme.KnownTypesRegistryInstance.ObjectKind(&ReplayEventsCommand{})
		require.NoError(t, err)
		assert.Equal(t, scheme.GroupKind{Group: InfrastructureGroup, Kind: "ReplayEventsCommand"}, *gk)
	})

	t.Run("new command gets an id", func(t *testing.T) {
		from := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
		cmd := NewReplayEventsCommand("accounts", from, "accounts.AccountOpened")

		_, err := uuid.Parse(cmd.ID)
		require.NoError(t, err)
		assert.Equal(t, "accounts", cmd.Destination)
		assert.Equal(t, from, cmd.From)
		assert.Equal(t, []string{"accounts.AccountOpened"}, cmd.Kinds)
		assert.NotEqual(t, cmd.ID, NewReplayEventsCommand("accounts", from).ID)
	})

	t.Run("travels through the json marshaller", func(t *testing.T) {
		marshaller := message.NewJsonMarshaller(scheme.KnownTypesRegistryInstance)
		cmd := NewReplayEventsCommand("accounts", time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC))

		data, err := marshaller.Marshal(cmd)
		require.NoError(t, err)

		decoded, err := marshaller.Unmarshal(data)
		require.NoError(t, err)
		require.IsType(t, &ReplayEventsCommand{}, decoded)
		assert.Equal(t, cmd.ID, decoded.(*ReplayEventsCommand).ID)
		assert.True(t, cmd.From.Equal(decoded.(*ReplayEventsCommand).From))
	})
}
