package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sguter90/ambientweather/pkg/ambient"
)

var devicesJSON bool

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List the account's weather stations",
	Long:  `Display every device registered to the account together with its latest reading.`,
	Args:  cobra.NoArgs,
	RunE:  runDevices,
}

func init() {
	rootCmd.AddCommand(devicesCmd)
	devicesCmd.Flags().BoolVar(&devicesJSON, "json", false, "print the raw decoded devices as JSON")
}

func runDevices(cmd *cobra.Command, args []string) error {
	client, err := newAmbientClient(cmd)
	if err != nil {
		return err
	}

	devices, err := client.ListDevices(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list devices: %w", err)
	}

	out := cmd.OutOrStdout()
	if devicesJSON {
		return writeJSON(out, devices)
	}

	printDevices(out, devices)
	return nil
}

func printDevices(out io.Writer, devices []ambient.Device) {
	fmt.Fprintln(out, "\n"+strings.Repeat("=", 80))
	fmt.Fprintln(out, "Ambient Weather Devices")
	fmt.Fprintln(out, strings.Repeat("=", 80))

	for i, device := range devices {
		last := device.LastData
		fmt.Fprintf(out, "\n[%d] %s\n", i+1, device.Info.Name)
		fmt.Fprintf(out, "    MAC: %s\n", device.MacAddress)
		fmt.Fprintf(out, "    Location: %s\n", device.Info.Location)
		if !last.DateUTC.IsZero() {
			fmt.Fprintf(out, "    Last Reading: %s (%s)\n", last.DateUTC.Format("2006-01-02 15:04:05 MST"), last.TZ)
		}
		fmt.Fprintf(out, "    Temperature: %.1f°F outdoor, %.1f°F indoor\n", last.TempF, last.TempInF)
		fmt.Fprintf(out, "    Humidity: %d%% outdoor, %d%% indoor\n", last.Humidity, last.HumidityIn)
	}

	if len(devices) == 0 {
		fmt.Fprintln(out, "No devices registered yet.")
	}

	fmt.Fprintln(out, "\n"+strings.Repeat("=", 80)+"\n")
}

func writeJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
