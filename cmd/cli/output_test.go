package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sguter90/ambientweather/pkg/ambient"
	"github.com/sguter90/ambientweather/pkg/config"
)

func TestPrintDevices(t *testing.T) {
	var buf bytes.Buffer
	printDevices(&buf, []ambient.Device{{
		MacAddress: "AA:BB",
		Info:       ambient.DeviceInfo{Name: "Roof", Location: "Home"},
		LastData: ambient.DeviceDataRecord{
			BaseDataRecord: ambient.BaseDataRecord{
				DateUTC:  ambient.TimestampFromMillis(1700000000000),
				TempF:    50.5,
				Humidity: 60,
			},
			TZ: "Europe/Vienna",
		},
	}})

	out := buf.String()
	for _, want := range []string{"Roof", "MAC: AA:BB", "Location: Home", "50.5°F outdoor", "60% outdoor", "Europe/Vienna"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestPrintDevices_Empty(t *testing.T) {
	var buf bytes.Buffer
	printDevices(&buf, nil)

	if !strings.Contains(buf.String(), "No devices registered yet.") {
		t.Errorf("Expected empty notice, got:\n%s", buf.String())
	}
}

func TestPrintRecords(t *testing.T) {
	id := ambient.RecordID(1700000000000, "AA:BB")
	var buf bytes.Buffer
	printRecords(&buf, "AA:BB", []ambient.DataRecord{{
		BaseDataRecord: ambient.BaseDataRecord{
			DateUTC: ambient.TimestampFromMillis(1700000000000),
			TempF:   41.2,
		},
		DeviceMAC: "AA:BB",
		ID:        id,
	}})

	out := buf.String()
	for _, want := range []string{"Records for AA:BB (1)", "2023-11-14 22:13:20", "41.2", id[:12]} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, []ambient.Device{{MacAddress: "AA:BB"}}); err != nil {
		t.Fatalf("writeJSON failed: %v", err)
	}

	var devices []ambient.Device
	if err := json.Unmarshal(buf.Bytes(), &devices); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if devices[0].MacAddress != "AA:BB" {
		t.Errorf("Expected MAC 'AA:BB', got '%s'", devices[0].MacAddress)
	}
}

func TestResolveCredentials_FromConfig(t *testing.T) {
	cfg := config.Config{ApplicationKey: "app", APIKey: "key"}
	var buf bytes.Buffer

	if err := resolveCredentials(&cfg, &buf); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Expected no prompt, got %q", buf.String())
	}
}
