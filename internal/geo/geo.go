// Package geo computes great-circle distances and radius searches.
package geo

import (
	"context"
	"math"
)

// EarthRadiusMiles is the mean Earth radius used by DistanceMiles.
const EarthRadiusMiles = 3958.8

// Point is a latitude/longitude pair in degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// DistanceMiles returns the haversine distance between a and b.
func DistanceMiles(a, b Point) float64 {
	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)
	dLat := radians(b.Lat - a.Lat)
	dLon := radians(b.Lon - a.Lon)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon
	return 2 * EarthRadiusMiles * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Locator resolves a property id to coordinates.
type Locator interface {
	Locate(ctx context.Context, propertyID int64) (Point, error)
}

// PlaceholderLocator derives a deterministic coordinate near San Francisco from
// the property id. It stands in until listings carry geocoded coordinates.
type PlaceholderLocator struct{}

func (PlaceholderLocator) Locate(_ context.Context, propertyID int64) (Point, error) {
	id := float64(propertyID)
	return Point{
		Lat: 37.7749 + math.Mod(id*0.01, 0.2),
		Lon: -122.4194 + math.Mod(id*0.015, 0.3),
	}, nil
}
