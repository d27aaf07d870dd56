package location

import (
	"context"
	"errors"
	"testing"

	"github.com/i474232898/weather-location-service/internal/gazetteer"
	"github.com/i474232898/weather-location-service/internal/geocode"
)

const testPlaces = `{
  "cities": {
    "Seoul": {"en": "Seoul", "lat": 37.5665, "lon": 126.978},
    "Busan": {"en": "Busan", "lat": 35.1796, "lon": 129.0756}
  },
  "districts": [
    "Seoul-Jongno-Cheongun",
    "Seoul-Gangnam-Yeoksam",
    "Busan-Haeundae-U"
  ]
}`

func newTestGazetteer(t *testing.T) *gazetteer.Gazetteer {
	t.Helper()
	g, err := gazetteer.NewFromJSON([]byte(testPlaces))
	if err != nil {
		t.Fatalf("NewFromJSON failed: %v", err)
	}
	return g
}

// fakeGeocoder answers every query with a fixed result or error and records
// the queries it saw.
type fakeGeocoder struct {
	result  geocode.Result
	err     error
	queries []string
}

func (f *fakeGeocoder) Geocode(_ context.Context, query string) (geocode.Result, error) {
	f.queries = append(f.queries, query)
	if f.err != nil {
		return geocode.Result{}, f.err
	}
	return f.result, nil
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName("Seoul-Jongno-Cheongun"); got != "Seoul Jongno Cheongun" {
		t.Errorf("DisplayName = %q, want separators replaced by spaces", got)
	}
}

func TestResolveWithoutGeocoder(t *testing.T) {
	g := newTestGazetteer(t)

	res, err := Resolve(context.Background(), g, nil, "Seoul-Jongno-Cheongun")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if res.Lat != 37.5665 || res.Lon != 126.978 {
		t.Errorf("expected Seoul's registered city coordinates, got %+v", res)
	}
	if res.DisplayName != "Seoul Jongno Cheongun" {
		t.Errorf("unexpected display name %q", res.DisplayName)
	}
	if res.FullName != "Seoul-Jongno-Cheongun" {
		t.Errorf("unexpected full name %q", res.FullName)
	}
}

func TestResolvePrefersGeocoderMatch(t *testing.T) {
	g := newTestGazetteer(t)
	geo := &fakeGeocoder{result: geocode.Result{Lat: 37.5845, Lon: 126.9692}}

	res, err := Resolve(context.Background(), g, geo, "Seoul-Jongno-Cheongun")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if res.Lat != 37.5845 || res.Lon != 126.9692 {
		t.Errorf("expected geocoder coordinates, not the gazetteer fallback; got %+v", res)
	}
	if len(geo.queries) != 1 || geo.queries[0] != "Seoul Jongno Cheongun" {
		t.Errorf("geocoder should be queried with the address form, got %v", geo.queries)
	}
}

func TestResolveFallsBackOnNoMatch(t *testing.T) {
	g := newTestGazetteer(t)
	geo := &fakeGeocoder{err: geocode.ErrNoMatch}

	res, err := Resolve(context.Background(), g, geo, "Seoul-Jongno-Cheongun")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if res.Lat != 37.5665 || res.Lon != 126.978 {
		t.Errorf("expected gazetteer fallback coordinates, got %+v", res)
	}
}

func TestResolveFallsBackOnTransportFailure(t *testing.T) {
	g := newTestGazetteer(t)
	geo := &fakeGeocoder{err: errors.New("connection refused")}

	res, err := Resolve(context.Background(), g, geo, "Busan-Haeundae-U")
	if err != nil {
		t.Fatalf("geocoder failure must degrade gracefully, got: %v", err)
	}
	if res.Lat != 35.1796 || res.Lon != 129.0756 {
		t.Errorf("expected Busan's city coordinates, got %+v", res)
	}
}

func TestResolveUnresolved(t *testing.T) {
	g := newTestGazetteer(t)
	geo := &fakeGeocoder{err: errors.New("connection refused")}

	_, err := Resolve(context.Background(), g, geo, "Atlantis-Downtown")
	if !errors.Is(err, ErrUnresolved) {
		t.Fatalf("expected ErrUnresolved, got %v", err)
	}
}
