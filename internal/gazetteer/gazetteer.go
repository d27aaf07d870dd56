package gazetteer

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/i474232898/weather-location-service/internal/common"
)

// Separator joins the hierarchical segments of a full place name,
// ordered coarse to fine (city, district, dong).
const Separator = "-"

//go:embed places.json
var embeddedPlaces []byte

// Coordinates is a latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// PlaceName is the structural breakdown of a full place name.
// District and Dong are empty when the name has fewer segments.
type PlaceName struct {
	City     string
	District string
	Dong     string
}

type cityData struct {
	En  string  `json:"en"`
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type placesFile struct {
	Cities    map[string]cityData `json:"cities"`
	Districts []string            `json:"districts"`
}

// Gazetteer is an immutable in-memory place dataset. It is loaded once and
// only read afterwards, so lookups need no locking.
type Gazetteer struct {
	cities    map[string]Coordinates
	districts []string
}

// NewFromJSON builds a Gazetteer from a places document of the form
// {"cities": {name: {lat, lon}}, "districts": [fullName, ...]}.
func NewFromJSON(data []byte) (*Gazetteer, error) {
	var file placesFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse places dataset: %w", err)
	}

	g := &Gazetteer{
		cities:    make(map[string]Coordinates, len(file.Cities)),
		districts: file.Districts,
	}
	for name, c := range file.Cities {
		g.cities[name] = Coordinates{Lat: c.Lat, Lon: c.Lon}
	}
	return g, nil
}

var (
	defaultOnce sync.Once
	defaultGaz  *Gazetteer
)

// Default returns the process-wide gazetteer backed by the embedded dataset.
func Default() *Gazetteer {
	defaultOnce.Do(func() {
		g, err := NewFromJSON(embeddedPlaces)
		if err != nil {
			// The dataset is compiled in; failing to parse it is a build
			// defect, not a runtime condition.
			panic(fmt.Sprintf("gazetteer: embedded dataset invalid: %v", err))
		}
		defaultGaz = g
	})
	return defaultGaz
}

// Search returns up to limit full place names that contain query in at least
// one hierarchical segment, ignoring case. A segment-level match is required:
// a query spanning the separator does not match. The empty or whitespace-only
// query returns nothing. Results keep the dataset's declaration order; there
// is no ranking beyond presence.
func (g *Gazetteer) Search(query string, limit int) []string {
	query = strings.TrimSpace(query)
	if query == "" || limit <= 0 {
		return nil
	}

	var results []string
	for _, d := range g.districts {
		if common.AnyContainsFold(strings.Split(d, Separator), query) {
			results = append(results, d)
			if len(results) >= limit {
				break
			}
		}
	}
	return results
}

// CityCoordinates resolves a full place name to the registered coordinates of
// its coarsest segment. This is deliberately coarse: every district shares its
// city's coordinates. The second return value is false when the city is not
// in the dataset.
func (g *Gazetteer) CityCoordinates(fullName string) (Coordinates, bool) {
	city, _, _ := strings.Cut(fullName, Separator)
	c, ok := g.cities[city]
	return c, ok
}

// Parse splits a full place name on the segment separator. It is purely
// structural and does not check that the parts exist in the dataset.
func (g *Gazetteer) Parse(fullName string) PlaceName {
	parts := strings.Split(fullName, Separator)
	name := PlaceName{City: parts[0]}
	if len(parts) > 1 {
		name.District = parts[1]
	}
	if len(parts) > 2 {
		name.Dong = parts[2]
	}
	return name
}

// FinestSegment returns the last segment of a full place name, the default
// alias for a newly pinned favorite.
func FinestSegment(fullName string) string {
	parts := strings.Split(fullName, Separator)
	return parts[len(parts)-1]
}
