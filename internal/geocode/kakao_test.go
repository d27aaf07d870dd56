package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/i474232898/weather-location-service/internal/transport"
)

func newTestGeocoder(srv *httptest.Server) *KakaoGeocoder {
	g := NewKakaoGeocoder(srv.Client(), "test-key")
	g.baseURL = srv.URL
	// Keep retries out of unit tests.
	g.httpCfg.Backoff = transport.BackoffConfig{
		MaxRetries:      0,
		InitialInterval: time.Millisecond,
	}
	return g
}

func TestGeocodeFirstDocumentWins(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "KakaoAK test-key" {
			t.Errorf("unexpected Authorization header %q", got)
		}
		if got := r.URL.Query().Get("query"); got != "Seoul Jongno Cheongun" {
			t.Errorf("unexpected query %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"documents":[{"x":"126.9692","y":"37.5845"},{"x":"1","y":"1"}]}`))
	}))
	defer srv.Close()

	res, err := newTestGeocoder(srv).Geocode(context.Background(), "Seoul Jongno Cheongun")
	if err != nil {
		t.Fatalf("Geocode failed: %v", err)
	}
	if res.Lat != 37.5845 || res.Lon != 126.9692 {
		t.Errorf("got %+v, want the first document's coordinates", res)
	}
}

func TestGeocodeNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"documents":[]}`))
	}))
	defer srv.Close()

	_, err := newTestGeocoder(srv).Geocode(context.Background(), "nowhere")
	if !errors.Is(err, ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch, got %v", err)
	}
}

func TestGeocodeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestGeocoder(srv).Geocode(context.Background(), "Seoul")
	if err == nil {
		t.Fatal("expected an error on a server failure")
	}
	if errors.Is(err, ErrNoMatch) {
		t.Error("a transport failure must not be reported as no-match")
	}
}

func TestGeocodeMalformedCoordinates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"documents":[{"x":"not-a-number","y":"37.5"}]}`))
	}))
	defer srv.Close()

	if _, err := newTestGeocoder(srv).Geocode(context.Background(), "Seoul"); err == nil {
		t.Fatal("expected an error for unparseable coordinates")
	}
}

func TestGeocodeRequiresAPIKey(t *testing.T) {
	g := NewKakaoGeocoder(http.DefaultClient, "")
	if _, err := g.Geocode(context.Background(), "Seoul"); err == nil {
		t.Fatal("expected an error without an API key")
	}
}
