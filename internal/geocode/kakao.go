package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-location-service/internal/transport"
)

// ErrNoMatch is returned when the provider found no candidate for the query.
// It is a normal outcome, not a transport failure.
var ErrNoMatch = errors.New("geocode: no match for query")

// Result is a successfully geocoded coordinate pair.
type Result struct {
	Lat float64
	Lon float64
}

// Geocoder turns a free-text address into coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (Result, error)
}

// KakaoGeocoder wraps the Kakao local address-search API. The API
// authenticates with a bearer-style `KakaoAK` header and returns candidate
// documents carrying longitude (`x`) and latitude (`y`) as strings.
type KakaoGeocoder struct {
	apiKey  string
	baseURL string
	httpCfg transport.ClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewKakaoGeocoder(client *http.Client, apiKey string) *KakaoGeocoder {
	return &KakaoGeocoder{
		apiKey:  apiKey,
		baseURL: "https://dapi.kakao.com/v2/local/search/address.json",
		httpCfg: transport.ClientConfig{
			Client:  client,
			Backoff: transport.DefaultBackoff(),
		},
		circuit: transport.NewBreaker("kakao-geocode"),
	}
}

// Geocode resolves query to coordinates. The first candidate document wins.
func (g *KakaoGeocoder) Geocode(ctx context.Context, query string) (Result, error) {
	if g.apiKey == "" {
		return Result{}, fmt.Errorf("kakao api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("query", query)
		values.Set("size", "1")

		u := fmt.Sprintf("%s?%s", g.baseURL, values.Encode())
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "KakaoAK "+g.apiKey)
		return req, nil
	}

	resp, err := transport.Do(ctx, g.httpCfg, g.circuit, buildRequest)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		Documents []struct {
			X string `json:"x"` // longitude
			Y string `json:"y"` // latitude
		} `json:"documents"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Result{}, err
	}

	if len(payload.Documents) == 0 {
		return Result{}, ErrNoMatch
	}

	doc := payload.Documents[0]
	lon, err := strconv.ParseFloat(doc.X, 64)
	if err != nil {
		return Result{}, fmt.Errorf("parse longitude %q: %w", doc.X, err)
	}
	lat, err := strconv.ParseFloat(doc.Y, 64)
	if err != nil {
		return Result{}, fmt.Errorf("parse latitude %q: %w", doc.Y, err)
	}

	return Result{Lat: lat, Lon: lon}, nil
}
