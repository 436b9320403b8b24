package bookings

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckinPayloadRoundTrip(t *testing.T) {
	payload := GenerateCheckinPayload("sess1", "book1", "code123")

	require.Equal(t, 4, len(strings.Split(payload, "|")))
	assert.True(t, VerifyCheckinPayload(payload, "sess1", "book1", "code123"))
}

func TestVerifyCheckinPayloadRejects(t *testing.T) {
	payload := GenerateCheckinPayload("sess1", "book1", "code123")

	// wrong booking
	assert.False(t, VerifyCheckinPayload(payload, "sess1", "book2", "code123"))
	// wrong checkin code
	assert.False(t, VerifyCheckinPayload(payload, "sess1", "book1", "other"))
	// tampered signature
	tampered := payload[:len(payload)-2] + "xx"
	assert.False(t, VerifyCheckinPayload(tampered, "sess1", "book1", "code123"))
	// malformed payload
	assert.False(t, VerifyCheckinPayload("not|enough", "sess1", "book1", "code123"))
}
