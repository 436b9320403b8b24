package activities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestBuildFilter(t *testing.T) {
	assert.Equal(t, bson.M{}, BuildFilter("", "", "", ""))

	got := BuildFilter("yoga", "champion", "inst42", "flow")
	assert.Equal(t, "yoga", got["categoryid"])
	assert.Equal(t, "champion", got["tier"])
	assert.Equal(t, "inst42", got["instructor"])
	assert.Equal(t, bson.M{"$regex": "flow", "$options": "i"}, got["name"])
}

func TestBuildFilterEscapesQuery(t *testing.T) {
	// a literal search term must not behave as a regex
	got := BuildFilter("", "", "", "hiit (45 min)")
	assert.Equal(t, bson.M{"$regex": `hiit \(45 min\)`, "$options": "i"}, got["name"])
}
