package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll devices and publish their latest readings",
	Long: `Poll the device list every POLL_INTERVAL and publish each device's latest
snapshot to the log, and to MQTT when MQTT_BROKER is set.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg := configFrom(cmd)
	logger := loggerFrom(cmd)

	client, err := newAmbientClient(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	registryManager, err := InitRegistryManager(ctx, client, cfg, logger)
	if err != nil {
		return err
	}

	registryManager.PullerService.Start()
	logger.Info("Watching devices", "interval", registryManager.PullerService.Interval())

	<-ctx.Done()
	logger.Info("Shutdown signal received")
	registryManager.Close()

	return nil
}
