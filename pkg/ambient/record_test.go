package ambient

import (
	"encoding/json"
	"testing"
)

const sampleDeviceJSON = `{
	"macAddress": "AA:BB:CC:DD:EE:FF",
	"lastData": {
		"dateutc": 1588997100000,
		"tempinf": 71.6,
		"humidityin": 41,
		"baromrelin": 29.92,
		"baromabsin": 29.12,
		"tempf": 62.4,
		"battout": 1,
		"humidity": 77,
		"winddir": 215,
		"windspeedmph": 3.1,
		"windgustmph": 4.5,
		"maxdailygust": 12.3,
		"hourlyrainin": 0,
		"eventrainin": 0.12,
		"dailyrainin": 0.05,
		"weeklyrainin": 0.4,
		"monthlyrainin": 1.2,
		"totalrainin": 20.5,
		"solarradiation": 0,
		"uv": 0,
		"feelsLike": 62.4,
		"dewPoint": 55.1,
		"feelsLikein": 70.9,
		"dewPointin": 46.8,
		"lastRain": "2020-04-06T23:53:00.000Z",
		"tz": "America/Chicago",
		"date": "2020-05-09T04:05:00.000Z",
		"pm25": 12
	},
	"info": {
		"name": "Backyard",
		"location": "Home",
		"firmware": "4.2.8",
		"coords": {
			"coords": {"lat": 41.8781, "lon": -87.6298},
			"address": "Chicago, IL, USA",
			"location": "Chicago",
			"elevation": 181.5,
			"geo": {"type": "Point", "coordinates": [-87.6298, 41.8781]}
		}
	},
	"apiKey": "ignored"
}`

func TestDevice_Decode(t *testing.T) {
	var device Device
	if err := json.Unmarshal([]byte(sampleDeviceJSON), &device); err != nil {
		t.Fatalf("Failed to decode device: %v", err)
	}

	if device.MacAddress != "AA:BB:CC:DD:EE:FF" {
		t.Errorf("Expected MAC AA:BB:CC:DD:EE:FF, got %s", device.MacAddress)
	}
	if device.Info.Name != "Backyard" {
		t.Errorf("Expected name Backyard, got %s", device.Info.Name)
	}
	if device.Info.Location != "Home" {
		t.Errorf("Expected location Home, got %s", device.Info.Location)
	}
	if device.Info.Coords.Coords.Lat != 41.8781 || device.Info.Coords.Coords.Lon != -87.6298 {
		t.Errorf("Unexpected coords %+v", device.Info.Coords.Coords)
	}
	if device.Info.Coords.Elevation != 181.5 {
		t.Errorf("Expected elevation 181.5, got %f", device.Info.Coords.Elevation)
	}
	if device.Info.Coords.Geo.Type != "Point" || len(device.Info.Coords.Geo.Coordinates) != 2 {
		t.Errorf("Unexpected geo %+v", device.Info.Coords.Geo)
	}

	last := device.LastData
	if last.DateUTC.Millis() != 1588997100000 {
		t.Errorf("Expected dateutc 1588997100000, got %d", last.DateUTC.Millis())
	}
	if last.TZ != "America/Chicago" {
		t.Errorf("Expected tz America/Chicago, got %s", last.TZ)
	}
	if last.TempF != 62.4 {
		t.Errorf("Expected tempf 62.4, got %f", last.TempF)
	}
	if last.HumidityIn != 41 {
		t.Errorf("Expected humidityin 41, got %d", last.HumidityIn)
	}
	if last.WindDir != 215 {
		t.Errorf("Expected winddir 215, got %d", last.WindDir)
	}
	if last.TotalRainIn != 20.5 {
		t.Errorf("Expected totalrainin 20.5, got %f", last.TotalRainIn)
	}
	if last.DewPointIn != 46.8 {
		t.Errorf("Expected dewPointin 46.8, got %f", last.DewPointIn)
	}
	if last.LastRain != "2020-04-06T23:53:00.000Z" {
		t.Errorf("Expected lastRain, got %q", last.LastRain)
	}
}

func TestDeviceInfo_IgnoresUnknownFields(t *testing.T) {
	var info DeviceInfo
	err := json.Unmarshal([]byte(`{"name":"Roof","location":"Cabin","firmware":"1.0","extra":{"a":1}}`), &info)
	if err != nil {
		t.Fatalf("Expected unknown fields to be ignored, got %v", err)
	}

	if info.Name != "Roof" || info.Location != "Cabin" {
		t.Errorf("Unexpected info %+v", info)
	}
}

func TestDevice_MissingFieldsDefault(t *testing.T) {
	var device Device
	if err := json.Unmarshal([]byte(`{"macAddress":"00:11:22:33:44:55"}`), &device); err != nil {
		t.Fatalf("Failed to decode device: %v", err)
	}

	if device.Info.Name != "" {
		t.Errorf("Expected empty name, got %q", device.Info.Name)
	}
	if !device.LastData.DateUTC.IsZero() {
		t.Errorf("Expected zero dateutc, got %v", device.LastData.DateUTC.Time)
	}
	if device.LastData.TempF != 0 {
		t.Errorf("Expected zero tempf, got %f", device.LastData.TempF)
	}
}

func TestNewDataRecord(t *testing.T) {
	var payload dataRecordPayload
	err := json.Unmarshal([]byte(`{"dateutc":1588997100000,"tempf":60.1,"loc":"ambient-prod-2020-19","macAddress":"server-sent","id":"server-sent"}`), &payload)
	if err != nil {
		t.Fatalf("Failed to decode payload: %v", err)
	}

	record := newDataRecord(payload, "AA:BB:CC:DD:EE:FF")

	if record.DeviceMAC != "AA:BB:CC:DD:EE:FF" {
		t.Errorf("Expected MAC AA:BB:CC:DD:EE:FF, got %s", record.DeviceMAC)
	}
	if record.ID != RecordID(1588997100000, "AA:BB:CC:DD:EE:FF") {
		t.Errorf("Expected derived ID, got %s", record.ID)
	}
	if record.Loc != "ambient-prod-2020-19" {
		t.Errorf("Expected loc ambient-prod-2020-19, got %s", record.Loc)
	}
	if record.TempF != 60.1 {
		t.Errorf("Expected tempf 60.1, got %f", record.TempF)
	}
}

func TestDataRecord_EncodesWireTimestamp(t *testing.T) {
	record := newDataRecord(dataRecordPayload{
		BaseDataRecord: BaseDataRecord{DateUTC: TimestampFromMillis(1588997100000)},
	}, "AA:BB:CC:DD:EE:FF")

	data, err := json.Marshal(record)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if decoded["dateutc"] != float64(1588997100000) {
		t.Errorf("Expected dateutc 1588997100000, got %v", decoded["dateutc"])
	}
	if decoded["macAddress"] != "AA:BB:CC:DD:EE:FF" {
		t.Errorf("Expected macAddress, got %v", decoded["macAddress"])
	}
	if decoded["id"] != record.ID {
		t.Errorf("Expected id %s, got %v", record.ID, decoded["id"])
	}
}
