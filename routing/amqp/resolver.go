package amqp

import (
	"fmt"

	"github.com/go-foreman/cqrs/routing"
	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
)

type QueueType string

const (
	QueueTypeClassic QueueType = "classic"
	QueueTypeQuorum  QueueType = "quorum"
)

const defaultSerializationFormat = "json"

// Option configures the convention resolver
type Option func(r *conventionResolver)

func WithQueueType(v QueueType) Option {
	return func(r *conventionResolver) {
		r.queueType = v
	}
}

func WithSerializationFormat(format string) Option {
	return func(r *conventionResolver) {
		r.serializationFormat = format
	}
}

// WithDurable marks generated queues durable, they are transient by default
func WithDurable() Option {
	return func(r *conventionResolver) {
		r.durable = true
	}
}

// NewEndpointResolver creates the default endpoint resolver for a RabbitMQ broker. Every route gets a topic exchange
// named after the bounded context owning the messages, subscribers get a queue per route and priority tier.
func NewEndpointResolver(uri string, opts ...Option) (routing.EndpointResolver, error) {
	parsed, err := amqp.ParseURI(uri)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing amqp uri")
	}

	r := &conventionResolver{
		transportID:         fmt.Sprintf("%s:%d%s", parsed.Host, parsed.Port, parsed.Vhost),
		queueType:           QueueTypeClassic,
		serializationFormat: defaultSerializationFormat,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

type conventionResolver struct {
	transportID         string
	queueType           QueueType
	serializationFormat string
	durable             bool
}

func (r conventionResolver) Resolve(key routing.RoutingKey) (routing.Endpoint, error) {
	owner := ownerOf(key)
	if owner == "" {
		return routing.Endpoint{}, errors.Errorf("can not resolve endpoint for %s: bounded context owning the messages is unknown", key)
	}

	if key.MessageType == nil {
		return routing.Endpoint{}, errors.Errorf("can not resolve endpoint for %s: message type is empty", key)
	}

	exchange := fmt.Sprintf("%s.%s", owner, key.RouteType)
	endpoint := routing.Endpoint{
		TransportID:         r.transportID,
		SerializationFormat: r.serializationFormat,
		SharedDestination:   true,
		Arguments: amqp.Table{
			"exchange-type": amqp.ExchangeTopic,
			"routing-key":   key.MessageType.Name(),
		},
	}

	if key.Communication == routing.Publish {
		endpoint.Name = exchange
		endpoint.Destination = routing.Destination{Publish: exchange, Subscribe: exchange}
		return endpoint, nil
	}

	queue := fmt.Sprintf("%s.%s.%s", key.LocalContext, key.Route, key.RouteType)
	if key.Priority > 0 {
		queue = fmt.Sprintf("%s.p%d", queue, key.Priority)
	}

	endpoint.Name = queue
	endpoint.Destination = routing.Destination{Publish: exchange, Subscribe: queue}
	endpoint.Arguments["x-queue-type"] = string(r.queueType)
	endpoint.Arguments["durable"] = r.durable || r.queueType == QueueTypeQuorum

	return endpoint, nil
}

// ownerOf returns the context whose exchange carries the key's messages: commands go to the handling context,
// events come from the publishing one.
func ownerOf(key routing.RoutingKey) string {
	switch {
	case key.RouteType == routing.Commands && key.Communication == routing.Subscribe:
		return key.LocalContext
	case key.RouteType == routing.Commands && key.Communication == routing.Publish:
		return key.RemoteContext
	case key.RouteType == routing.Events && key.Communication == routing.Publish:
		return key.LocalContext
	case key.RouteType == routing.Events && key.Communication == routing.Subscribe:
		return key.RemoteContext
	}

	return ""
}
