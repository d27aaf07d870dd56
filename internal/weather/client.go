package weather

import "context"

// ConditionInfo is the provider's textual condition for a reading.
type ConditionInfo struct {
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// CurrentConditions is the subset of the provider's current-weather response
// the aggregator depends on.
type CurrentConditions struct {
	Name string `json:"name"`
	Main struct {
		Temp     float64 `json:"temp"`
		TempMin  float64 `json:"temp_min"`
		TempMax  float64 `json:"temp_max"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Weather []ConditionInfo `json:"weather"`
	Wind    struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

// ForecastEntry is one 3-hour step of the provider's forecast list.
type ForecastEntry struct {
	Dt   int64 `json:"dt"` // unix seconds
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Weather []ConditionInfo `json:"weather"`
}

// ForecastList is the provider's 5-day/3-hour forecast response.
type ForecastList struct {
	List []ForecastEntry `json:"list"`
}

// Client abstracts the weather provider's two read endpoints. Both are
// addressed by the same coordinate pair.
type Client interface {
	Current(ctx context.Context, lat, lon float64) (CurrentConditions, error)
	Forecast(ctx context.Context, lat, lon float64) (ForecastList, error)
}
