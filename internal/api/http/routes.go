package httpapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-location-service/internal/favorites"
	"github.com/i474232898/weather-location-service/internal/gazetteer"
	"github.com/i474232898/weather-location-service/internal/geocode"
	"github.com/i474232898/weather-location-service/internal/location"
	"github.com/i474232898/weather-location-service/internal/weather"
)

var validate = validator.New()

// Deps bundles the core components the handlers delegate to. The handlers
// are a thin UI boundary; every invariant lives in the components.
type Deps struct {
	Gazetteer *gazetteer.Gazetteer
	Geocoder  geocode.Geocoder
	Weather   *weather.Service
	Favorites *favorites.Store
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, deps Deps) {
	v1 := app.Group("/api/v1")

	v1.Get("/locations/search", func(c *fiber.Ctx) error {
		query := c.Query("q")
		limit := c.QueryInt("limit", 10)

		names := deps.Gazetteer.Search(query, limit)
		results := make([]suggestion, 0, len(names))
		for _, name := range names {
			results = append(results, suggestion{
				FullName:    name,
				DisplayName: location.DisplayName(name),
			})
		}

		return c.JSON(fiber.Map{
			"query":   query,
			"results": results,
		})
	})

	v1.Get("/locations/resolve", func(c *fiber.Ctx) error {
		name := c.Query("name")
		if name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name query parameter is required")
		}

		resolved, err := location.Resolve(c.Context(), deps.Gazetteer, deps.Geocoder, name)
		if err != nil {
			if errors.Is(err, location.ErrUnresolved) {
				return fiber.NewError(fiber.StatusNotFound, "place could not be resolved to coordinates")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to resolve place")
		}

		return c.JSON(resolved)
	})

	v1.Get("/weather", func(c *fiber.Ctx) error {
		var req weatherQuery
		req.Lat = c.QueryFloat("lat")
		req.Lon = c.QueryFloat("lon")

		if req.Lat == 0 && req.Lon == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "lat and lon query parameters are required")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		snapshot, err := deps.Weather.Fetch(c.Context(), req.Lat, req.Lon)
		if err != nil {
			if errors.Is(err, weather.ErrNoLocation) {
				return fiber.NewError(fiber.StatusBadRequest, "no location to fetch weather for")
			}
			return fiber.NewError(fiber.StatusBadGateway, "weather data temporarily unavailable, please retry")
		}

		return c.JSON(snapshotResponse{
			Snapshot: snapshot,
			IconURL:  weather.IconURL(snapshot.IconID),
		})
	})

	v1.Get("/favorites", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"favorites":  deps.Favorites.List(),
			"canAddMore": deps.Favorites.CanAddMore(),
		})
	})

	v1.Post("/favorites", func(c *fiber.Ctx) error {
		var req addFavoriteRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		// The store rejects silently; check the preconditions here so the
		// client gets a reason.
		if deps.Favorites.IsFavorite(req.FullName) {
			return fiber.NewError(fiber.StatusConflict, "place is already a favorite")
		}
		if !deps.Favorites.CanAddMore() {
			return fiber.NewError(fiber.StatusConflict, "favorites limit reached")
		}

		deps.Favorites.Add(favorites.Candidate{
			FullName: req.FullName,
			Alias:    req.Alias,
			Lat:      req.Lat,
			Lon:      req.Lon,
		})

		for _, e := range deps.Favorites.List() {
			if e.FullName == req.FullName {
				return c.Status(fiber.StatusCreated).JSON(e)
			}
		}
		return fiber.NewError(fiber.StatusInternalServerError, "favorite was not stored")
	})

	v1.Patch("/favorites/:id", func(c *fiber.Ctx) error {
		var req renameFavoriteRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		id := c.Params("id")
		deps.Favorites.Rename(id, req.Alias)

		for _, e := range deps.Favorites.List() {
			if e.ID == id {
				return c.JSON(e)
			}
		}
		return fiber.NewError(fiber.StatusNotFound, "no favorite with that id")
	})

	v1.Delete("/favorites/:id", func(c *fiber.Ctx) error {
		deps.Favorites.Remove(c.Params("id"))
		return c.SendStatus(fiber.StatusNoContent)
	})
}

type suggestion struct {
	FullName    string `json:"fullName"`
	DisplayName string `json:"displayName"`
}

type weatherQuery struct {
	Lat float64 `validate:"latitude"`
	Lon float64 `validate:"longitude"`
}

type snapshotResponse struct {
	weather.Snapshot
	IconURL string `json:"iconUrl"`
}

type addFavoriteRequest struct {
	FullName string  `json:"fullName" validate:"required"`
	Alias    string  `json:"alias" validate:"omitempty,max=20"`
	Lat      float64 `json:"lat" validate:"required,latitude"`
	Lon      float64 `json:"lon" validate:"required,longitude"`
}

type renameFavoriteRequest struct {
	Alias string `json:"alias" validate:"required,max=20"`
}
