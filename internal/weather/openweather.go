package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-location-service/internal/transport"
)

// OpenWeatherClient implements Client against the OpenWeatherMap 2.5 API.
type OpenWeatherClient struct {
	apiKey  string
	lang    string
	baseURL string
	httpCfg transport.ClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewOpenWeatherClient creates a client. lang selects localized description
// strings (for example "kr"); empty means the provider default.
func NewOpenWeatherClient(client *http.Client, apiKey, lang string) *OpenWeatherClient {
	return &OpenWeatherClient{
		apiKey:  apiKey,
		lang:    lang,
		baseURL: "https://api.openweathermap.org/data/2.5",
		httpCfg: transport.ClientConfig{
			Client:  client,
			Backoff: transport.DefaultBackoff(),
		},
		circuit: transport.NewBreaker("openweather"),
	}
}

func (c *OpenWeatherClient) Current(ctx context.Context, lat, lon float64) (CurrentConditions, error) {
	var payload CurrentConditions
	if err := c.get(ctx, "/weather", lat, lon, &payload); err != nil {
		return CurrentConditions{}, err
	}
	return payload, nil
}

func (c *OpenWeatherClient) Forecast(ctx context.Context, lat, lon float64) (ForecastList, error) {
	var payload ForecastList
	if err := c.get(ctx, "/forecast", lat, lon, &payload); err != nil {
		return ForecastList{}, err
	}
	return payload, nil
}

func (c *OpenWeatherClient) get(ctx context.Context, endpoint string, lat, lon float64, out interface{}) error {
	if c.apiKey == "" {
		return fmt.Errorf("openweather api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("appid", c.apiKey)
		values.Set("units", "metric")
		values.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
		values.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
		if c.lang != "" {
			values.Set("lang", c.lang)
		}

		u := fmt.Sprintf("%s%s?%s", c.baseURL, endpoint, values.Encode())
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		return req, nil
	}

	resp, err := transport.Do(ctx, c.httpCfg, c.circuit, buildRequest)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return json.NewDecoder(resp.Body).Decode(out)
}
