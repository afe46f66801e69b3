package ambient

// BaseDataRecord holds the readings shared by device snapshots and
// historical records. Units are the ones the API reports: Fahrenheit,
// inHg, mph, inches, W/m².
type BaseDataRecord struct {
	DateUTC Timestamp `json:"dateutc"`

	// Indoor
	TempInF     float64 `json:"tempinf"`
	HumidityIn  int     `json:"humidityin"`
	FeelsLikeIn float64 `json:"feelsLikein"`
	DewPointIn  float64 `json:"dewPointin"`

	// Barometric pressure
	BaromRelIn float64 `json:"baromrelin"`
	BaromAbsIn float64 `json:"baromabsin"`

	// Outdoor
	TempF     float64 `json:"tempf"`
	BattOut   int     `json:"battout"`
	Humidity  int     `json:"humidity"`
	FeelsLike float64 `json:"feelsLike"`
	DewPoint  float64 `json:"dewPoint"`

	// Wind
	WindDir      int     `json:"winddir"`
	WindSpeedMPH float64 `json:"windspeedmph"`
	WindGustMPH  float64 `json:"windgustmph"`
	MaxDailyGust float64 `json:"maxdailygust"`

	// Rain
	HourlyRainIn  float64 `json:"hourlyrainin"`
	EventRainIn   float64 `json:"eventrainin"`
	DailyRainIn   float64 `json:"dailyrainin"`
	WeeklyRainIn  float64 `json:"weeklyrainin"`
	MonthlyRainIn float64 `json:"monthlyrainin"`
	TotalRainIn   float64 `json:"totalrainin"`

	// Solar & UV
	SolarRadiation float64 `json:"solarradiation"`
	UV             int     `json:"uv"`

	// LastRain and Date are ISO-8601 strings, e.g. 2020-05-09T04:05:00.000Z
	LastRain string `json:"lastRain"`
	Date     string `json:"date"`
}

// DeviceDataRecord is the latest snapshot embedded in a Device
type DeviceDataRecord struct {
	BaseDataRecord
	TZ string `json:"tz"`
}

// DataRecord is one historical reading of a device. DeviceMAC and ID are
// assigned by the client, never by the server.
type DataRecord struct {
	BaseDataRecord
	Loc       string `json:"loc"`
	DeviceMAC string `json:"macAddress"`
	ID        string `json:"id"`
}

// dataRecordPayload is the wire shape of a device data entry
type dataRecordPayload struct {
	BaseDataRecord
	Loc string `json:"loc"`
}

// newDataRecord stamps a decoded payload with its device and derives the ID
// from the stamped MAC.
func newDataRecord(p dataRecordPayload, macAddress string) DataRecord {
	return DataRecord{
		BaseDataRecord: p.BaseDataRecord,
		Loc:            p.Loc,
		DeviceMAC:      macAddress,
		ID:             RecordID(p.DateUTC.Millis(), macAddress),
	}
}
