package weather

import "fmt"

// MaxHourlyPoints caps the hourly reduction of the provider's forecast list.
const MaxHourlyPoints = 12

// HourlyPoint is one display-ready forecast entry.
type HourlyPoint struct {
	Time        string `json:"time"` // local 24h HH:MM
	Temp        int    `json:"temp"`
	IconID      string `json:"iconId"`
	Description string `json:"description"`
}

// Snapshot is the normalized, display-ready weather view for one coordinate
// pair. All temperatures are whole degrees Celsius.
type Snapshot struct {
	Location    string        `json:"location"`
	CurrentTemp int           `json:"currentTemp"`
	TempMin     int           `json:"tempMin"`
	TempMax     int           `json:"tempMax"`
	Description string        `json:"description"`
	IconID      string        `json:"iconId"`
	Humidity    int           `json:"humidity"` // 0-100
	WindSpeed   int           `json:"windSpeed"`
	Hourly      []HourlyPoint `json:"hourly"`
}

// IconURL returns the provider's display icon for an icon code. Display-only;
// nothing in the core depends on it.
func IconURL(iconID string) string {
	return fmt.Sprintf("https://openweathermap.org/img/wn/%s@2x.png", iconID)
}
