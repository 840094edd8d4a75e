package geo

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"rentdir/internal/models"
)

// NearbyProperty is a property annotated with its distance from the search origin.
type NearbyProperty struct {
	models.Property
	Distance float64 `json:"distance"` // miles
}

// Within returns the properties at most radius miles from origin, nearest
// first. The boundary is inclusive; equal distances keep their input order.
func Within(ctx context.Context, loc Locator, props []models.Property, origin Point, radius float64) ([]NearbyProperty, error) {
	out := make([]NearbyProperty, 0, len(props))
	for _, p := range props {
		pt, err := loc.Locate(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to locate property %d: %w", p.ID, err)
		}
		d := DistanceMiles(origin, pt)
		if d <= radius {
			out = append(out, NearbyProperty{Property: p, Distance: d})
		}
	}
	slices.SortStableFunc(out, func(a, b NearbyProperty) int { return cmp.Compare(a.Distance, b.Distance) })
	return out, nil
}
