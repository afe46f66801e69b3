package ambient

// Device is a weather station registered to the account
type Device struct {
	MacAddress string           `json:"macAddress"`
	LastData   DeviceDataRecord `json:"lastData"`
	Info       DeviceInfo       `json:"info"`
}

// DeviceInfo holds the user-assigned name and location of a device
type DeviceInfo struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Coords   Coords `json:"coords"`
}

// Coords describes where a device is installed
type Coords struct {
	Coords    CoordsPair `json:"coords"`
	Address   string     `json:"address"`
	Location  string     `json:"location"`
	Elevation float64    `json:"elevation"`
	Geo       Geo        `json:"geo"`
}

type CoordsPair struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Geo is the GeoJSON point attached to a device location
type Geo struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}
