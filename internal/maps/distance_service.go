package maps

import (
	"context"
	"errors"
	"fmt"
	"math"

	"googlemaps.github.io/maps"
)

const metersPerMile = 1609.344

var ErrNoRoute = errors.New("no route found")

// DistanceService measures driving distance from the kitchen to a venue.
type DistanceService struct {
	client *maps.Client
	origin string
}

// NewDistanceService creates a DistanceService for the given API key and base address.
func NewDistanceService(apiKey, origin string) (*DistanceService, error) {
	if origin == "" {
		return nil, fmt.Errorf("maps: base address is required")
	}
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &DistanceService{client: client, origin: origin}, nil
}

// DrivingMiles returns the one-way driving distance to destination in miles,
// rounded to a hundredth of a mile.
func (s *DistanceService) DrivingMiles(ctx context.Context, destination string) (float64, error) {
	r := &maps.DirectionsRequest{
		Origin:      s.origin,
		Destination: destination,
		Mode:        maps.TravelModeDriving,
		Units:       maps.UnitsImperial,
		Region:      "us",
	}

	routes, _, err := s.client.Directions(ctx, r)
	if err != nil {
		return 0, fmt.Errorf("maps api error: %w", err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return 0, ErrNoRoute
	}

	meters := 0
	for _, leg := range routes[0].Legs {
		meters += leg.Distance.Meters
	}
	return metersToMiles(meters), nil
}

func metersToMiles(meters int) float64 {
	return math.Round(float64(meters)/metersPerMile*100) / 100
}
