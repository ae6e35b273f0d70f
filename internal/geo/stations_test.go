package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var berlin = Coordinate{Lat: 52.5200, Lon: 13.4050}

func TestHaversineKnownDistances(t *testing.T) {
	hamburg := Coordinate{Lat: 53.5511, Lon: 9.9937}
	munich := Coordinate{Lat: 48.1351, Lon: 11.5820}

	// Reference great-circle distances, mean Earth radius.
	assert.InDelta(t, 255, HaversineKm(berlin, hamburg), 3)
	assert.InDelta(t, 504, HaversineKm(berlin, munich), 5)
	assert.Zero(t, HaversineKm(berlin, berlin))

	// Symmetry.
	assert.InDelta(t, HaversineKm(berlin, hamburg), HaversineKm(hamburg, berlin), 1e-9)
}

func TestNearestOrderingAndLimit(t *testing.T) {
	loc := NewLocator(DWDStations)

	nearest, err := loc.Nearest(berlin, 3)
	require.NoError(t, err)
	require.Len(t, nearest, 3)

	assert.Equal(t, "Berlin-Tempelhof", nearest[0].Station.Name)
	for i := 1; i < len(nearest); i++ {
		assert.GreaterOrEqual(t, nearest[i].DistanceKm, nearest[i-1].DistanceKm,
			"distances must be non-decreasing")
	}
}

func TestNearestLimitExceedsStationCount(t *testing.T) {
	loc := NewLocator(DWDStations)

	nearest, err := loc.Nearest(berlin, 1000)
	require.NoError(t, err)
	assert.Len(t, nearest, len(DWDStations), "over-large limit returns all stations without error")
}

func TestNearestInvalidLimit(t *testing.T) {
	loc := NewLocator(DWDStations)

	for _, limit := range []int{0, -1} {
		_, err := loc.Nearest(berlin, limit)
		require.Error(t, err)
		assert.Equal(t, InvalidParameter, KindOf(err))
	}
}

func TestNearestTieBreakByStationID(t *testing.T) {
	same := Coordinate{Lat: 50.0, Lon: 8.0}
	stations := []Station{
		{ID: "00200", Name: "Bravo", Coord: same},
		{ID: "00100", Name: "Alpha", Coord: same},
		{ID: "00300", Name: "Charlie", Coord: Coordinate{Lat: 51.0, Lon: 8.0}},
	}

	nearest, err := Nearest(stations, same, 3)
	require.NoError(t, err)
	require.Len(t, nearest, 3)

	// Equal distances: ascending station ID.
	assert.Equal(t, "00100", nearest[0].Station.ID)
	assert.Equal(t, "00200", nearest[1].Station.ID)
	assert.Equal(t, "00300", nearest[2].Station.ID)
}

func TestLocatorStationsReturnsCopy(t *testing.T) {
	loc := NewLocator(DWDStations)

	got := loc.Stations()
	require.Len(t, got, len(DWDStations))
	got[0].ID = "mutated"
	assert.NotEqual(t, "mutated", loc.Stations()[0].ID)
}
