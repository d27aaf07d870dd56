package weather

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"
)

// ErrNoLocation is returned when Fetch is called with the zero/zero sentinel
// coordinate pair, which means "no location selected". It must never reach
// the network.
var ErrNoLocation = errors.New("weather: no location to fetch for")

// Aggregator reduces the provider's current-conditions and forecast reads
// into one Snapshot. It is stateless and side-effect-free; memoization lives
// in SnapshotCache.
type Aggregator struct {
	client Client
	tz     *time.Location
	now    func() time.Time // override in tests
}

// NewAggregator creates an Aggregator. tz selects the local calendar used for
// the today's-range computation and hourly time formatting; nil means the
// process-local zone.
func NewAggregator(client Client, tz *time.Location) *Aggregator {
	if tz == nil {
		tz = time.Local
	}
	return &Aggregator{client: client, tz: tz, now: time.Now}
}

// Fetch produces the snapshot for a coordinate pair. Both provider reads run
// concurrently and both must succeed; a half-filled snapshot is never
// produced.
func (a *Aggregator) Fetch(ctx context.Context, lat, lon float64) (Snapshot, error) {
	if lat == 0 && lon == 0 {
		return Snapshot{}, ErrNoLocation
	}

	var (
		wg       sync.WaitGroup
		current  CurrentConditions
		forecast ForecastList
		curErr   error
		fcErr    error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		current, curErr = a.client.Current(ctx, lat, lon)
	}()
	go func() {
		defer wg.Done()
		forecast, fcErr = a.client.Forecast(ctx, lat, lon)
	}()
	wg.Wait()

	if curErr != nil {
		return Snapshot{}, fmt.Errorf("fetch current conditions: %w", curErr)
	}
	if fcErr != nil {
		return Snapshot{}, fmt.Errorf("fetch forecast: %w", fcErr)
	}

	entries := append([]ForecastEntry(nil), forecast.List...)
	sort.Slice(entries, func(i, j int) bool { return entries[i].Dt < entries[j].Dt })

	tempMin, tempMax := a.dailyRange(current, entries)

	// First N entries in chronological order, raw provider cadence, no
	// deduplication or resampling.
	hourly := make([]HourlyPoint, 0, MaxHourlyPoints)
	for _, e := range entries {
		if len(hourly) == MaxHourlyPoints {
			break
		}
		cond := firstCondition(e.Weather)
		hourly = append(hourly, HourlyPoint{
			Time:        time.Unix(e.Dt, 0).In(a.tz).Format("15:04"),
			Temp:        roundTemp(e.Main.Temp),
			IconID:      cond.Icon,
			Description: cond.Description,
		})
	}

	cond := firstCondition(current.Weather)
	return Snapshot{
		Location:    current.Name,
		CurrentTemp: roundTemp(current.Main.Temp),
		TempMin:     tempMin,
		TempMax:     tempMax,
		Description: cond.Description,
		IconID:      cond.Icon,
		Humidity:    int(math.Round(current.Main.Humidity)),
		WindSpeed:   int(math.Round(current.Wind.Speed)),
		Hourly:      hourly,
	}, nil
}

// dailyRange computes today's min/max. With no forecast entries on today's
// local calendar date, the current-conditions min/max fields are used
// directly. Otherwise the range is the floor-rounded extrema across today's
// forecast temps, the current temp, and the current-conditions min/max, so
// the provider's own daily bounds always widen the range, never narrow it.
func (a *Aggregator) dailyRange(current CurrentConditions, entries []ForecastEntry) (int, int) {
	y, m, d := a.now().In(a.tz).Date()

	temps := make([]float64, 0, len(entries))
	for _, e := range entries {
		ey, em, ed := time.Unix(e.Dt, 0).In(a.tz).Date()
		if ey == y && em == m && ed == d {
			temps = append(temps, e.Main.Temp)
		}
	}

	if len(temps) == 0 {
		return roundTemp(current.Main.TempMin), roundTemp(current.Main.TempMax)
	}

	temps = append(temps, current.Main.Temp, current.Main.TempMin, current.Main.TempMax)
	lo, hi := temps[0], temps[0]
	for _, t := range temps[1:] {
		if t < lo {
			lo = t
		}
		if t > hi {
			hi = t
		}
	}
	return int(math.Floor(lo)), int(math.Floor(hi))
}

// roundTemp implements the module-wide rounding policy: nearest whole degree.
func roundTemp(t float64) int {
	return int(math.Round(t))
}

func firstCondition(conditions []ConditionInfo) ConditionInfo {
	if len(conditions) == 0 {
		return ConditionInfo{}
	}
	return conditions[0]
}
