package assistant

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"fitgrid/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	activities []models.Activity
	sessions   []models.SessionView
	venues     []models.Venue
	bookings   []models.BookingView

	capacity  int
	confirmed int
	status    string
	availErr  error
}

func (f *fakeStore) SearchActivities(_ context.Context, _ ActivityQuery, _ int64) ([]models.Activity, error) {
	return f.activities, nil
}

func (f *fakeStore) UpcomingSessions(_ context.Context, _ SessionQuery, _ int64) ([]models.SessionView, error) {
	return f.sessions, nil
}

func (f *fakeStore) FindVenues(_ context.Context, _, _ string, _ int64) ([]models.Venue, error) {
	return f.venues, nil
}

func (f *fakeStore) UserBookings(_ context.Context, _, _ string, _ int64) ([]models.BookingView, error) {
	return f.bookings, nil
}

func (f *fakeStore) SessionAvailability(_ context.Context, _ string) (int, int, string, error) {
	return f.capacity, f.confirmed, f.status, f.availErr
}

func invoke(t *testing.T, reg *Registry, name, userID, args string) map[string]any {
	t.Helper()
	tool, ok := reg.Get(name)
	require.True(t, ok, "tool %s not registered", name)

	result, err := tool.Execute(context.Background(), userID, json.RawMessage(args))
	require.NoError(t, err)

	payload, ok := result.(map[string]any)
	require.True(t, ok, "tool %s did not return an object", name)
	return payload
}

func TestSearchClassesCountMatchesList(t *testing.T) {
	store := &fakeStore{activities: []models.Activity{
		{ActivityID: "act1", Name: "Power Yoga", Instructor: "Mara", Tier: models.TierBasic},
		{ActivityID: "act2", Name: "HIIT Circuit", Instructor: "Jon", Tier: models.TierPerformance},
	}}
	reg := NewRegistry(store)

	payload := invoke(t, reg, "search_classes", "", `{"query":"yoga"}`)

	classes := payload["classes"].([]map[string]any)
	assert.Equal(t, payload["count"], len(classes))
	assert.Equal(t, 2, payload["count"])
	assert.Equal(t, "Power Yoga", classes[0]["name"])
}

func TestUpcomingSessionsCityFilter(t *testing.T) {
	store := &fakeStore{sessions: []models.SessionView{
		{SessionID: "s1", ActivityName: "Spin", City: "Rotterdam", SpotsLeft: 4},
		{SessionID: "s2", ActivityName: "Spin", City: "Utrecht", SpotsLeft: 2},
		{SessionID: "s3", ActivityName: "Pilates", City: "rotterdam", SpotsLeft: 1},
	}}
	reg := NewRegistry(store)

	payload := invoke(t, reg, "upcoming_sessions", "", `{"city":"Rotterdam"}`)

	items := payload["sessions"].([]map[string]any)
	require.Equal(t, payload["count"], len(items))
	require.Len(t, items, 2)
	assert.Equal(t, "s1", items[0]["id"])
	assert.Equal(t, "s3", items[1]["id"])
}

func TestFindVenuesNilAmenitiesBecomeEmpty(t *testing.T) {
	store := &fakeStore{venues: []models.Venue{
		{VenueID: "v1", Name: "Iron Works", City: "Leiden"},
	}}
	reg := NewRegistry(store)

	payload := invoke(t, reg, "find_venues", "", `{}`)

	items := payload["venues"].([]map[string]any)
	require.Equal(t, payload["count"], len(items))
	require.Len(t, items, 1)
	assert.Equal(t, []string{}, items[0]["amenities"])
}

func TestMyBookingsWithoutUser(t *testing.T) {
	store := &fakeStore{bookings: []models.BookingView{
		{BookingID: "b1", Status: "confirmed"},
	}}
	reg := NewRegistry(store)

	payload := invoke(t, reg, "my_bookings", "", `{}`)

	assert.Equal(t, "authentication required", payload["error"])
	assert.Equal(t, 0, payload["count"])
	assert.Empty(t, payload["bookings"])
}

func TestMyBookingsCountMatchesList(t *testing.T) {
	now := time.Now()
	store := &fakeStore{bookings: []models.BookingView{
		{BookingID: "b1", ActivityName: "Spin", Status: "confirmed", StartTime: now},
		{BookingID: "b2", ActivityName: "Yoga", Status: "attended", StartTime: now},
		{BookingID: "b3", ActivityName: "HIIT", Status: "cancelled", StartTime: now},
	}}
	reg := NewRegistry(store)

	payload := invoke(t, reg, "my_bookings", "user123", `{}`)

	items := payload["bookings"].([]map[string]any)
	assert.Equal(t, payload["count"], len(items))
	assert.Len(t, items, 3)
}

func TestClassAvailability(t *testing.T) {
	reg := NewRegistry(&fakeStore{capacity: 12, confirmed: 9, status: "scheduled"})

	payload := invoke(t, reg, "class_availability", "", `{"session_id":"s1"}`)

	assert.Equal(t, 12, payload["capacity"])
	assert.Equal(t, 9, payload["confirmed"])
	assert.Equal(t, 3, payload["spots_left"])
	assert.Equal(t, "scheduled", payload["status"])
}

func TestClassAvailabilityRequiresSessionID(t *testing.T) {
	reg := NewRegistry(&fakeStore{})

	tool, ok := reg.Get("class_availability")
	require.True(t, ok)

	_, err := tool.Execute(context.Background(), "", json.RawMessage(`{}`))
	assert.Error(t, err)
}

func TestClassAvailabilityNeverNegative(t *testing.T) {
	reg := NewRegistry(&fakeStore{capacity: 5, confirmed: 8, status: "scheduled"})

	payload := invoke(t, reg, "class_availability", "", `{"session_id":"s1"}`)

	assert.Equal(t, 0, payload["spots_left"])
}

func TestUnknownToolNotRegistered(t *testing.T) {
	reg := NewRegistry(&fakeStore{})

	_, ok := reg.Get("delete_everything")
	assert.False(t, ok)
}

func TestManifestListsEveryTool(t *testing.T) {
	reg := NewRegistry(&fakeStore{})

	manifest := reg.Manifest()
	require.Len(t, manifest, 5)

	names := make([]string, 0, len(manifest))
	for _, m := range manifest {
		names = append(names, m["name"].(string))
	}
	assert.Equal(t, []string{
		"search_classes",
		"upcoming_sessions",
		"find_venues",
		"my_bookings",
		"class_availability",
	}, names)
}
