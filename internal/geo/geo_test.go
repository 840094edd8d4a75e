package geo_test

import (
	"context"
	"errors"
	"testing"

	"rentdir/internal/geo"
	"rentdir/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sanFrancisco = geo.Point{Lat: 37.7749, Lon: -122.4194}

func TestDistanceMiles(t *testing.T) {
	oakland := geo.Point{Lat: 37.8044, Lon: -122.2712}

	assert.Equal(t, 0.0, geo.DistanceMiles(sanFrancisco, sanFrancisco))
	assert.Equal(t, geo.DistanceMiles(sanFrancisco, oakland), geo.DistanceMiles(oakland, sanFrancisco))
	assert.InDelta(t, 8.35, geo.DistanceMiles(sanFrancisco, oakland), 0.1)
}

func TestPlaceholderLocator(t *testing.T) {
	pt, err := geo.PlaceholderLocator{}.Locate(context.Background(), 1)
	require.NoError(t, err)
	assert.InDelta(t, 37.7849, pt.Lat, 1e-9)
	assert.InDelta(t, -122.4044, pt.Lon, 1e-9)

	// the offsets wrap at 0.2 and 0.3 degrees
	pt, err = geo.PlaceholderLocator{}.Locate(context.Background(), 25)
	require.NoError(t, err)
	assert.InDelta(t, 37.7749+0.05, pt.Lat, 1e-9)
	assert.InDelta(t, -122.4194+0.075, pt.Lon, 1e-9)
}

func TestWithin(t *testing.T) {
	ctx := context.Background()
	loc := geo.PlaceholderLocator{}
	props := []models.Property{{ID: 3}, {ID: 1}, {ID: 2}, {ID: 4}}

	all, err := geo.Within(ctx, loc, props, sanFrancisco, 100)
	require.NoError(t, err)
	require.Len(t, all, 4)
	// the placeholder moves further out as ids grow
	for i, want := range []int64{1, 2, 3, 4} {
		assert.Equal(t, want, all[i].ID)
	}
	for i := 1; i < len(all); i++ {
		assert.LessOrEqual(t, all[i-1].Distance, all[i].Distance)
	}

	// a property exactly on the radius is included
	boundary := all[1].Distance
	got, err := geo.Within(ctx, loc, props, sanFrancisco, boundary)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[1].ID)

	got, err = geo.Within(ctx, loc, props, sanFrancisco, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

type failingLocator struct{}

func (failingLocator) Locate(context.Context, int64) (geo.Point, error) {
	return geo.Point{}, errors.New("geocoder unavailable")
}

func TestWithin_LocatorError(t *testing.T) {
	_, err := geo.Within(context.Background(), failingLocator{}, []models.Property{{ID: 1}}, sanFrancisco, 10)
	assert.ErrorContains(t, err, "geocoder unavailable")
}
