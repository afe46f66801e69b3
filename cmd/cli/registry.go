package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sguter90/ambientweather/pkg/config"
	"github.com/sguter90/ambientweather/pkg/puller"
	"github.com/sguter90/ambientweather/pkg/puller/mqtt"
)

type RegistryManager struct {
	PublisherRegistry *puller.PublisherRegistry
	PullerService     *puller.Service

	mqttPublisher *mqtt.Publisher
}

// InitRegistryManager registers the configured publishers and builds the
// pull service around them. The MQTT publisher is connected before returning.
func InitRegistryManager(ctx context.Context, source puller.DeviceLister, cfg config.Config, logger *slog.Logger) (*RegistryManager, error) {
	registry := puller.NewPublisherRegistry()
	registry.Register(puller.NewLogPublisher(logger))

	rm := &RegistryManager{PublisherRegistry: registry}

	if cfg.MQTTBroker != "" {
		publisher := mqtt.NewPublisher(mqtt.Options{
			Broker:      cfg.MQTTBroker,
			ClientID:    cfg.MQTTClientID,
			TopicPrefix: cfg.MQTTTopicPrefix,
		}, logger)

		if err := publisher.Connect(ctx); err != nil {
			return nil, fmt.Errorf("failed to connect to MQTT broker %s: %w", cfg.MQTTBroker, err)
		}

		registry.Register(publisher)
		rm.mqttPublisher = publisher
	}

	for _, p := range registry.All() {
		logger.Info("Registered publisher", "name", p.Name())
	}

	rm.PullerService = puller.NewService(source, registry, cfg.PollInterval, logger)
	return rm, nil
}

// Close stops the pull service and disconnects publishers
func (rm *RegistryManager) Close() {
	rm.PullerService.Stop()
	if rm.mqttPublisher != nil {
		rm.mqttPublisher.Disconnect()
	}
}
