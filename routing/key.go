package routing

import (
	"fmt"
	"reflect"
)

// RouteType tells whether a route carries commands or events. A route never carries both.
type RouteType int

const (
	Commands RouteType = iota + 1
	Events
)

func (t RouteType) String() string {
	switch t {
	case Commands:
		return "commands"
	case Events:
		return "events"
	}

	return "unknown"
}

// CommunicationType is the direction of a route entry as seen from the local bounded context
type CommunicationType int

const (
	Publish CommunicationType = iota + 1
	Subscribe
)

func (c CommunicationType) String() string {
	switch c {
	case Publish:
		return "publish"
	case Subscribe:
		return "subscribe"
	}

	return "unknown"
}

// RoutingKey is what endpoint resolvers and explicit endpoint predicates match on.
// One key is built per message type and priority tier of a route entry.
type RoutingKey struct {
	// LocalContext is the bounded context which declared the route
	LocalContext string
	// RemoteContext is the destination of published commands or the source of subscribed events, may be empty
	RemoteContext string
	Route         string
	MessageType   reflect.Type
	RouteType     RouteType
	Communication CommunicationType
	Priority      uint
}

func (k RoutingKey) String() string {
	typeName := "<nil>"
	if k.MessageType != nil {
		typeName = k.MessageType.String()
	}

	s := fmt.Sprintf("%s/%s %s %s %s p%d", k.LocalContext, k.Route, k.Communication, k.RouteType, typeName, k.Priority)

	if k.RemoteContext != "" {
		s += " remote=" + k.RemoteContext
	}

	return s
}
