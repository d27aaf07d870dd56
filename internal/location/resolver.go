package location

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/i474232898/weather-location-service/internal/gazetteer"
	"github.com/i474232898/weather-location-service/internal/geocode"
)

// ErrUnresolved is returned when neither the geocoder nor the gazetteer could
// bind a place name to coordinates.
var ErrUnresolved = errors.New("location: could not resolve place to coordinates")

// Resolved is a place name bound to a concrete coordinate pair, ready for a
// weather lookup. Lat/Lon are non-zero for as long as the value exists; an
// unresolved selection is represented by absence, never by zero coordinates.
type Resolved struct {
	DisplayName string  `json:"displayName"`
	FullName    string  `json:"fullName"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

// DisplayName renders a hierarchical full name in human-readable address
// form: segment separators replaced by spaces.
func DisplayName(fullName string) string {
	return strings.ReplaceAll(fullName, gazetteer.Separator, " ")
}

// Resolve binds a full place name to coordinates. The geocoder is consulted
// first, with the human-readable address form, and must complete before the
// gazetteer fallback is attempted; there is no speculative parallel fallback.
// Geocoder transport failures are logged and swallowed, never surfaced.
func Resolve(ctx context.Context, gaz *gazetteer.Gazetteer, geo geocode.Geocoder, fullName string) (Resolved, error) {
	display := DisplayName(fullName)

	if geo != nil {
		res, err := geo.Geocode(ctx, display)
		if err == nil {
			return Resolved{
				DisplayName: display,
				FullName:    fullName,
				Lat:         res.Lat,
				Lon:         res.Lon,
			}, nil
		}
		if !errors.Is(err, geocode.ErrNoMatch) {
			log.Printf("geocode failed for %q, falling back to gazetteer: %v", display, err)
		}
	}

	if coords, ok := gaz.CityCoordinates(fullName); ok {
		return Resolved{
			DisplayName: display,
			FullName:    fullName,
			Lat:         coords.Lat,
			Lon:         coords.Lon,
		}, nil
	}

	return Resolved{}, fmt.Errorf("%w: %s", ErrUnresolved, fullName)
}
