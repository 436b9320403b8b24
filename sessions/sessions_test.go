package sessions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestBuildFilter(t *testing.T) {
	filter, err := BuildFilter("", "", "", "")
	require.NoError(t, err)
	assert.Empty(t, filter)

	filter, err = BuildFilter("act1", "ven1", "scheduled", "")
	require.NoError(t, err)
	assert.Equal(t, bson.M{
		"activityid": "act1",
		"venueid":    "ven1",
		"status":     "scheduled",
	}, filter)

	filter, err = BuildFilter("", "", "", "2026-08-26")
	require.NoError(t, err)
	rangeFilter, ok := filter["start_time"].(bson.M)
	require.True(t, ok)
	day := time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, day, rangeFilter["$gte"])
	assert.Equal(t, day.AddDate(0, 0, 1), rangeFilter["$lt"])

	_, err = BuildFilter("", "", "", "26/08/2026")
	assert.Error(t, err)
}

func TestSpotsLeft(t *testing.T) {
	assert.Equal(t, 10, SpotsLeft(10, 0))
	assert.Equal(t, 1, SpotsLeft(10, 9))
	assert.Equal(t, 0, SpotsLeft(10, 10))
	// overbooked sessions still report zero, not negative
	assert.Equal(t, 0, SpotsLeft(10, 12))
}
