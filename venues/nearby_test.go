package venues

import (
	"testing"

	"fitgrid/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterByDistance(t *testing.T) {
	amsterdam := models.Coordinates{Latitude: 52.3676, Longitude: 4.9041}

	venueAt := func(name string, lat, lng float64) models.Venue {
		return models.Venue{Name: name, VenueID: name, Location: models.Coordinates{Latitude: lat, Longitude: lng}}
	}

	all := []models.Venue{
		venueAt("central", 52.3700, 4.9000),  // <1 km
		venueAt("suburb", 52.3000, 4.9500),   // ~8 km
		venueAt("utrecht", 52.0907, 5.1214),  // ~35 km
		venueAt("paris", 48.8566, 2.3522), // ~430 km
		{Name: "nowhere", VenueID: "nowhere"}, // no coordinates
	}

	got := FilterByDistance(all, amsterdam, 10)

	require.Len(t, got, 2)
	assert.Equal(t, "central", got[0].Name)
	assert.Equal(t, "suburb", got[1].Name)
	assert.Less(t, got[0].Distance, got[1].Distance)

	// wide enough radius picks up utrecht but never the venue without coords
	got = FilterByDistance(all, amsterdam, 50)
	require.Len(t, got, 3)
	assert.Equal(t, "utrecht", got[2].Name)
}
