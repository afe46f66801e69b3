package puller

import (
	"context"
	"log/slog"

	"github.com/sguter90/ambientweather/pkg/ambient"
)

// LogPublisher writes a one-line summary of each device snapshot
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Name() string {
	return "log"
}

func (p *LogPublisher) Publish(ctx context.Context, device ambient.Device) error {
	last := device.LastData
	p.logger.InfoContext(ctx, "device snapshot",
		"mac", device.MacAddress,
		"name", device.Info.Name,
		"dateutc", last.DateUTC.Time,
		"tempf", last.TempF,
		"humidity", last.Humidity,
		"windspeedmph", last.WindSpeedMPH,
		"dailyrainin", last.DailyRainIn,
	)
	return nil
}
