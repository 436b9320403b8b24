package venues

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestBuildFilter(t *testing.T) {
	assert.Equal(t, bson.M{}, BuildFilter("", ""))

	got := BuildFilter("Rotterdam", "sauna")
	assert.Equal(t, bson.M{"$regex": "^Rotterdam$", "$options": "i"}, got["city"])
	assert.Equal(t, "sauna", got["amenities"])
}

func TestBuildFilterEscapesCity(t *testing.T) {
	// regex metacharacters in user input must match literally
	got := BuildFilter(".*", "")
	assert.Equal(t, bson.M{"$regex": `^\.\*$`, "$options": "i"}, got["city"])

	got = BuildFilter("Den (Haag)", "")
	assert.Equal(t, bson.M{"$regex": `^Den \(Haag\)$`, "$options": "i"}, got["city"])
}
