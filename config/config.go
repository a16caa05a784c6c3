package config

import (
	"os"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is a declarative description of bounded contexts hosted by one engine
type Config struct {
	// Transport configures the default endpoint resolver
	Transport TransportConfig  `mapstructure:"transport"`
	Endpoints []EndpointConfig `mapstructure:"endpoints"`
	Contexts  []ContextConfig  `mapstructure:"contexts"`
}

type TransportConfig struct {
	AMQP                string `mapstructure:"amqp"`
	QueueType           string `mapstructure:"queueType"`
	SerializationFormat string `mapstructure:"serializationFormat"`
	Durable             bool   `mapstructure:"durable"`
}

type EndpointConfig struct {
	Name                string                 `mapstructure:"name"`
	TransportID         string                 `mapstructure:"transportId"`
	Publish             string                 `mapstructure:"publish"`
	Subscribe           string                 `mapstructure:"subscribe"`
	SerializationFormat string                 `mapstructure:"serializationFormat"`
	SharedDestination   bool                   `mapstructure:"sharedDestination"`
	Arguments           map[string]interface{} `mapstructure:"arguments"`
}

type ContextConfig struct {
	Name                    string                     `mapstructure:"name"`
	FailedCommandRetryDelay time.Duration              `mapstructure:"failedCommandRetryDelay"`
	EventStore              *EventStoreConfig          `mapstructure:"eventStore"`
	CommandsHandlers        []string                   `mapstructure:"commandsHandlers"`
	Projections             []ProjectionConfig         `mapstructure:"projections"`
	Processes               []string                   `mapstructure:"processes"`
	ProcessingOptions       []ProcessingOptionsConfig  `mapstructure:"processingOptions"`
	ListeningCommands       []ListeningCommandsConfig  `mapstructure:"listeningCommands"`
	PublishingCommands      []PublishingCommandsConfig `mapstructure:"publishingCommands"`
	ListeningEvents         []ListeningEventsConfig    `mapstructure:"listeningEvents"`
	PublishingEvents        []PublishingEventsConfig   `mapstructure:"publishingEvents"`
}

type EventStoreConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

type ProjectionConfig struct {
	Listener string `mapstructure:"listener"`
	From     string `mapstructure:"from"`
}

type ProcessingOptionsConfig struct {
	Route   string `mapstructure:"route"`
	Threads uint   `mapstructure:"threads"`
}

// ExplicitEndpointConfig sends keys matching every set field of Match to Endpoint
type ExplicitEndpointConfig struct {
	Endpoint string      `mapstructure:"endpoint"`
	Match    MatchConfig `mapstructure:"match"`
}

type MatchConfig struct {
	Types         []string `mapstructure:"types"`
	Priority      *uint    `mapstructure:"priority"`
	RemoteContext string   `mapstructure:"remoteContext"`
	Route         string   `mapstructure:"route"`
	Communication string   `mapstructure:"communication"`
}

type ListeningCommandsConfig struct {
	Types     []string                 `mapstructure:"types"`
	Route     string                   `mapstructure:"route"`
	Priority  uint                     `mapstructure:"priority"`
	Endpoints []ExplicitEndpointConfig `mapstructure:"endpoints"`
	// Loopback publishes the commands to the context itself, an empty value reuses Route
	Loopback *string `mapstructure:"loopback"`
	// Infrastructure adds infrastructure commands to Types
	Infrastructure bool `mapstructure:"infrastructure"`
}

type PublishingCommandsConfig struct {
	Types          []string                 `mapstructure:"types"`
	To             string                   `mapstructure:"to"`
	Route          string                   `mapstructure:"route"`
	Endpoints      []ExplicitEndpointConfig `mapstructure:"endpoints"`
	Infrastructure bool                     `mapstructure:"infrastructure"`
}

type ListeningEventsConfig struct {
	Types     []string                 `mapstructure:"types"`
	From      string                   `mapstructure:"from"`
	Route     string                   `mapstructure:"route"`
	Endpoints []ExplicitEndpointConfig `mapstructure:"endpoints"`
}

type PublishingEventsConfig struct {
	Types     []string                 `mapstructure:"types"`
	Route     string                   `mapstructure:"route"`
	Endpoints []ExplicitEndpointConfig `mapstructure:"endpoints"`
	// Loopback makes the context listen to its own events, an empty value reuses Route
	Loopback *string `mapstructure:"loopback"`
}

// LoadFile reads a YAML description
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %s", path)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}

	return cfg, nil
}

func Parse(data []byte) (*Config, error) {
	raw := make(map[string]interface{})

	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "parsing yaml")
	}

	return Decode(raw)
}

// Decode fills the config from generic values. Durations are accepted as strings like "5s", unknown keys are rejected.
func Decode(raw map[string]interface{}) (*Config, error) {
	cfg := &Config{}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  mapstructure.StringToTimeDurationHookFunc(),
		ErrorUnused: true,
		Result:      cfg,
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if err := decoder.Decode(raw); err != nil {
		return nil, errors.Wrap(err, "decoding config")
	}

	return cfg, nil
}
