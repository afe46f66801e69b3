package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sguter90/ambientweather/pkg/ambient"
)

var (
	dataLimit   int
	dataEndDate string
	dataJSON    bool
)

var dataCmd = &cobra.Command{
	Use:   "data <mac>",
	Short: "Print historical records of a device",
	Long: `Fetch up to --limit records (at most 288) for the device with the given
MAC address, ending at --end-date when given or at the latest record otherwise.`,
	Args: cobra.ExactArgs(1),
	RunE: runData,
}

func init() {
	rootCmd.AddCommand(dataCmd)
	dataCmd.Flags().IntVar(&dataLimit, "limit", ambient.MaxRecords, "maximum number of records to fetch")
	dataCmd.Flags().StringVar(&dataEndDate, "end-date", "", "return records up to this date (epoch ms or ISO-8601)")
	dataCmd.Flags().BoolVar(&dataJSON, "json", false, "print the records as JSON")
}

func runData(cmd *cobra.Command, args []string) error {
	client, err := newAmbientClient(cmd)
	if err != nil {
		return err
	}

	mac := args[0]
	records, err := client.QueryDeviceDataUntil(cmd.Context(), mac, dataLimit, dataEndDate)
	if err != nil {
		return fmt.Errorf("failed to query device data: %w", err)
	}

	out := cmd.OutOrStdout()
	if dataJSON {
		return writeJSON(out, records)
	}

	printRecords(out, mac, records)
	return nil
}

func printRecords(out io.Writer, mac string, records []ambient.DataRecord) {
	fmt.Fprintln(out, "\n"+strings.Repeat("=", 100))
	fmt.Fprintf(out, "Records for %s (%d)\n", mac, len(records))
	fmt.Fprintln(out, strings.Repeat("=", 100))
	fmt.Fprintf(out, "%-20s %8s %5s %8s %8s %8s %8s  %s\n",
		"Date (UTC)", "Temp °F", "Hum%", "Wind", "Gust", "Rain/d", "Baro", "ID")

	for _, r := range records {
		fmt.Fprintf(out, "%-20s %8.1f %5d %8.1f %8.1f %8.2f %8.2f  %s\n",
			r.DateUTC.UTC().Format("2006-01-02 15:04:05"),
			r.TempF,
			r.Humidity,
			r.WindSpeedMPH,
			r.WindGustMPH,
			r.DailyRainIn,
			r.BaromRelIn,
			r.ID[:12],
		)
	}

	if len(records) == 0 {
		fmt.Fprintln(out, "No records returned.")
	}

	fmt.Fprintln(out, strings.Repeat("=", 100)+"\n")
}
