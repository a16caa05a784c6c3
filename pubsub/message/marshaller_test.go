package message

import (
	"testing"

	"github.com/go-foreman/cqrs/runtime/scheme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	group scheme.Group = "test"
)

type SomeTestType struct {
	ObjectMeta
	A int `json:"a"`
}

type unknownType struct {
	ObjectMeta
}

func TestJsonMarshaller(t *testing.T) {
	knownRegistry := scheme.NewKnownTypesRegistry()
	knownRegistry.AddKnownTypes(group, &SomeTestType{})
	marshaller := NewJsonMarshaller(knownRegistry)

	t.Run("round trip keeps kind", func(t *testing.T) {
		instance := &SomeTestType{A: 1}

		data, err := marshaller.Marshal(instance)
		require.NoError(t, err)
		assert.JSONEq(t, `{"kind":"SomeTestType","group":"test","a":1}`, string(data))

		decoded, err := marshaller.Unmarshal(data)
		require.NoError(t, err)
		assert.IsType(t, &SomeTestType{}, decoded)
		assert.EqualValues(t, instance, decoded)
	})

	t.Run("marshal unknown type", func(t *testing.T) {
		_, err := marshaller.Marshal(&unknownType{})
		assert.EqualError(t, err, "marshaling an object: no kind is registered in schema for the type unknownType")
	})

	t.Run("unmarshal payload with empty GK", func(t *testing.T) {
		_, err := marshaller.Unmarshal([]byte(`{"a":1}`))
		assert.EqualError(t, err, "payload has empty group and kind")
	})

	t.Run("unmarshal not registered kind", func(t *testing.T) {
		_, err := marshaller.Unmarshal([]byte(`{"kind":"Nope","group":"test"}`))
		assert.EqualError(t, err, "type test.Nope is not registered in KnownTypes")
	})

	t.Run("unmarshal invalid json", func(t *testing.T) {
		_, err := marshaller.Unmarshal([]byte(`{`))
		assert.Error(t, err)
	})
}
