package message

import (
	"encoding/json"

	"github.com/go-foreman/cqrs/runtime/scheme"
	"github.com/pkg/errors"
)

//go:generate mockgen --build_flags=--mod=mod -destination ../../testing/mocks/pubsub/message/marshaller.go -package message . Marshaller

// Marshaller converts messages to bytes and back, the group and kind travel inside the payload
type Marshaller interface {
	Marshal(obj Object) ([]byte, error)
	Unmarshal(data []byte) (Object, error)
}

func NewJsonMarshaller(knownTypes scheme.KnownTypesRegistry) Marshaller {
	return &jsonMarshaller{knownTypes: knownTypes}
}

type jsonMarshaller struct {
	knownTypes scheme.KnownTypesRegistry
}

func (j jsonMarshaller) Marshal(obj Object) ([]byte, error) {
	if obj.GroupKind().Empty() {
		gk, err := j.knownTypes.ObjectKind(obj)
		if err != nil {
			return nil, errors.Wrap(err, "marshaling an object")
		}
		obj.SetGroupKind(gk)
	}

	data, err := json.Marshal(obj)
	if err != nil {
		return nil, errors.Wrapf(err, "marshaling %s", obj.GroupKind())
	}

	return data, nil
}

func (j jsonMarshaller) Unmarshal(data []byte) (Object, error) {
	meta := &scheme.TypeMeta{}

	if err := json.Unmarshal(data, meta); err != nil {
		return nil, errors.Wrap(err, "decoding type meta")
	}

	if meta.GroupKind().Empty() {
		return nil, errors.New("payload has empty group and kind")
	}

	obj, err := j.knownTypes.NewObject(meta.GroupKind())
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if err := json.Unmarshal(data, obj); err != nil {
		return nil, errors.Wrapf(err, "decoding payload into %s", meta.GroupKind())
	}

	return obj, nil
}
