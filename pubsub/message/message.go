package message

import (
	"github.com/go-foreman/cqrs/runtime/scheme"
)

// Object is any command or event. Message types are pointers to structs which embed ObjectMeta
type Object = scheme.Object

// ObjectMeta carries the group and kind of a message on the wire
type ObjectMeta struct {
	scheme.TypeMeta
}
