package bookings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"fitgrid/globals"
	"fitgrid/models"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
)

func TestEvaluateBooking(t *testing.T) {
	scheduled := models.ClassSession{Status: models.SessionScheduled, MaxCapacity: 10}

	tests := []struct {
		name         string
		session      models.ClassSession
		activityTier string
		userTier     string
		existing     int64
		confirmed    int64
		want         string
	}{
		{
			name:         "bookable",
			session:      scheduled,
			activityTier: models.TierBasic,
			userTier:     models.TierBasic,
			want:         "",
		},
		{
			name:         "cancelled session",
			session:      models.ClassSession{Status: models.SessionCancelled, MaxCapacity: 10},
			activityTier: models.TierBasic,
			userTier:     models.TierChampion,
			want:         "session-not-bookable",
		},
		{
			name:         "completed session",
			session:      models.ClassSession{Status: models.SessionCompleted, MaxCapacity: 10},
			activityTier: models.TierBasic,
			userTier:     models.TierBasic,
			want:         "session-not-bookable",
		},
		{
			name:         "basic member on champion class",
			session:      scheduled,
			activityTier: models.TierChampion,
			userTier:     models.TierBasic,
			want:         "tier-too-low",
		},
		{
			name:         "higher tier covers lower class",
			session:      scheduled,
			activityTier: models.TierBasic,
			userTier:     models.TierPerformance,
			want:         "",
		},
		{
			name:         "duplicate booking",
			session:      scheduled,
			activityTier: models.TierBasic,
			userTier:     models.TierBasic,
			existing:     1,
			want:         "already-booked",
		},
		{
			name:         "session full",
			session:      scheduled,
			activityTier: models.TierBasic,
			userTier:     models.TierBasic,
			confirmed:    10,
			want:         "session-full",
		},
		{
			name:         "overbooked still rejects",
			session:      scheduled,
			activityTier: models.TierBasic,
			userTier:     models.TierBasic,
			confirmed:    12,
			want:         "session-full",
		},
		{
			name:         "tier check precedes duplicate check",
			session:      scheduled,
			activityTier: models.TierChampion,
			userTier:     models.TierBasic,
			existing:     1,
			want:         "tier-too-low",
		},
		{
			name:         "duplicate check precedes capacity check",
			session:      scheduled,
			activityTier: models.TierBasic,
			userTier:     models.TierBasic,
			existing:     1,
			confirmed:    10,
			want:         "already-booked",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateBooking(tt.session, tt.activityTier, tt.userTier, tt.existing, tt.confirmed)
			assert.Equal(t, tt.want, got)
		})
	}
}

func noShowRequest(userID string, roles []string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/bookings/b1/no-show", nil)
	ctx := r.Context()
	if userID != "" {
		ctx = context.WithValue(ctx, globals.UserIDKey, userID)
	}
	if roles != nil {
		ctx = context.WithValue(ctx, globals.RoleKey, roles)
	}
	return r.WithContext(ctx)
}

func TestMarkNoShowRequiresStaffRole(t *testing.T) {
	ps := httprouter.Params{{Key: "id", Value: "b1"}}

	w := httptest.NewRecorder()
	MarkNoShow(w, noShowRequest("", nil), ps)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// a plain member must not be able to flag someone else's booking
	w = httptest.NewRecorder()
	MarkNoShow(w, noShowRequest("user123", []string{"member"}), ps)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	MarkNoShow(w, noShowRequest("user123", nil), ps)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
