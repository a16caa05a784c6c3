package routing

import (
	"reflect"

	"github.com/go-foreman/cqrs/pubsub/message"
	"github.com/go-foreman/cqrs/runtime/scheme"
)

// Predicate selects routing keys for an explicit endpoint
type Predicate func(key RoutingKey) bool

// All matches when every predicate matches. No predicates match everything.
func All(predicates ...Predicate) Predicate {
	return func(key RoutingKey) bool {
		for _, p := range predicates {
			if !p(key) {
				return false
			}
		}
		return true
	}
}

// Any matches when at least one predicate matches
func Any(predicates ...Predicate) Predicate {
	return func(key RoutingKey) bool {
		for _, p := range predicates {
			if p(key) {
				return true
			}
		}
		return false
	}
}

func Not(predicate Predicate) Predicate {
	return func(key RoutingKey) bool {
		return !predicate(key)
	}
}

// MessageTypeIs matches keys of any of the given message types
func MessageTypeIs(objs ...message.Object) Predicate {
	types := make(map[reflect.Type]struct{}, len(objs))
	for _, obj := range objs {
		types[scheme.GetStructType(obj)] = struct{}{}
	}

	return func(key RoutingKey) bool {
		_, ok := types[key.MessageType]
		return ok
	}
}

func PriorityIs(priority uint) Predicate {
	return func(key RoutingKey) bool {
		return key.Priority == priority
	}
}

func RemoteContextIs(name string) Predicate {
	return func(key RoutingKey) bool {
		return key.RemoteContext == name
	}
}

func RouteIs(name string) Predicate {
	return func(key RoutingKey) bool {
		return key.Route == name
	}
}

func CommunicationIs(c CommunicationType) Predicate {
	return func(key RoutingKey) bool {
		return key.Communication == c
	}
}
