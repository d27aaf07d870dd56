package weather

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// RateLimitedClient wraps a Client with per-endpoint rate limiting so free-tier
// provider quotas are respected regardless of caller behaviour.
type RateLimitedClient struct {
	client          Client
	currentLimiter  *rate.Limiter
	forecastLimiter *rate.Limiter
}

// NewRateLimitedClient wraps client. rps may be fractional for less than one
// request per second; burst is the maximum burst size allowed.
func NewRateLimitedClient(client Client, rps float64, burst int) *RateLimitedClient {
	return &RateLimitedClient{
		client:          client,
		currentLimiter:  rate.NewLimiter(rate.Limit(rps), burst),
		forecastLimiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (r *RateLimitedClient) Current(ctx context.Context, lat, lon float64) (CurrentConditions, error) {
	if err := r.currentLimiter.Wait(ctx); err != nil {
		return CurrentConditions{}, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.client.Current(ctx, lat, lon)
}

func (r *RateLimitedClient) Forecast(ctx context.Context, lat, lon float64) (ForecastList, error) {
	if err := r.forecastLimiter.Wait(ctx); err != nil {
		return ForecastList{}, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.client.Forecast(ctx, lat, lon)
}

var _ Client = (*RateLimitedClient)(nil)
