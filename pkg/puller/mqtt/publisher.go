package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/sguter90/ambientweather/pkg/ambient"
)

const publishTimeout = 5 * time.Second

// Options configures the MQTT connection
type Options struct {
	// Broker is a paho broker URL, e.g. tcp://localhost:1883
	Broker      string
	ClientID    string
	TopicPrefix string
}

// DeviceSnapshot is the payload published for each device
type DeviceSnapshot struct {
	MacAddress string                   `json:"macAddress"`
	Name       string                   `json:"name"`
	Location   string                   `json:"location"`
	LastData   ambient.DeviceDataRecord `json:"lastData"`
}

// Publisher publishes device snapshots to {prefix}/{mac}/lastdata
type Publisher struct {
	client      paho.Client
	topicPrefix string
	logger      *slog.Logger
}

// NewPublisher builds a publisher; call Connect before publishing.
func NewPublisher(opts Options, logger *slog.Logger) *Publisher {
	// a random suffix lets several instances share one broker
	clientID := opts.ClientID + "-" + uuid.NewString()[:8]

	o := paho.NewClientOptions()
	o.AddBroker(opts.Broker)
	o.SetClientID(clientID)
	o.SetCleanSession(true)
	o.SetAutoReconnect(true)
	o.SetConnectRetry(true)
	o.SetConnectRetryInterval(5 * time.Second)
	o.SetMaxReconnectInterval(60 * time.Second)
	o.SetKeepAlive(30 * time.Second)
	o.SetPingTimeout(10 * time.Second)

	o.SetOnConnectHandler(func(_ paho.Client) {
		logger.Info("mqtt connected", "broker", opts.Broker, "client_id", clientID)
	})
	o.SetConnectionLostHandler(func(_ paho.Client, err error) {
		logger.Warn("mqtt connection lost", "error", err)
	})

	return newPublisher(paho.NewClient(o), opts.TopicPrefix, logger)
}

func newPublisher(client paho.Client, topicPrefix string, logger *slog.Logger) *Publisher {
	return &Publisher{
		client:      client,
		topicPrefix: strings.Trim(topicPrefix, "/"),
		logger:      logger,
	}
}

// Connect waits for the initial connection, honoring ctx.
func (p *Publisher) Connect(ctx context.Context) error {
	if p.client.IsConnected() {
		return nil
	}

	token := p.client.Connect()

	const poll = 200 * time.Millisecond
	for {
		if token.WaitTimeout(poll) {
			if err := token.Error(); err != nil {
				return fmt.Errorf("mqtt connect: %w", err)
			}
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}
}

// Disconnect closes the broker connection
func (p *Publisher) Disconnect() {
	p.client.Disconnect(250)
	p.logger.Info("mqtt disconnected")
}

func (p *Publisher) Name() string {
	return "mqtt"
}

// Topic returns the topic a device's snapshot is published to
func (p *Publisher) Topic(macAddress string) string {
	if p.topicPrefix == "" {
		return macAddress + "/lastdata"
	}
	return p.topicPrefix + "/" + macAddress + "/lastdata"
}

// Publish sends the device snapshot with QoS 1, not retained
func (p *Publisher) Publish(ctx context.Context, device ambient.Device) error {
	if !p.client.IsConnected() {
		return fmt.Errorf("mqtt client not connected")
	}

	data, err := json.Marshal(DeviceSnapshot{
		MacAddress: device.MacAddress,
		Name:       device.Info.Name,
		Location:   device.Info.Location,
		LastData:   device.LastData,
	})
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	topic := p.Topic(device.MacAddress)
	token := p.client.Publish(topic, 1, false, data)

	timeout := publishTimeout
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < timeout {
		timeout = time.Until(deadline)
	}
	if !token.WaitTimeout(timeout) {
		return fmt.Errorf("publish timeout for topic %s", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish snapshot: %w", err)
	}

	p.logger.Debug("published snapshot", "topic", topic, "mac", device.MacAddress)
	return nil
}
