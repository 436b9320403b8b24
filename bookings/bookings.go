package bookings

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"fitgrid/db"
	"fitgrid/models"
	"fitgrid/mq"
	"fitgrid/sessions"
	"fitgrid/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EvaluateBooking applies the booking rules in order and returns the first
// rejection reason, or "" when the booking may proceed: the session must be
// scheduled, the member's tier must cover the class, no other non-cancelled
// booking may exist for the member, and a spot must be free.
func EvaluateBooking(session models.ClassSession, activityTier, userTier string, existing, confirmed int64) string {
	if session.Status != models.SessionScheduled {
		return "session-not-bookable"
	}
	if !models.TierCovers(userTier, activityTier) {
		return "tier-too-low"
	}
	if existing > 0 {
		return "already-booked"
	}
	if int(confirmed) >= session.MaxCapacity {
		return "session-full"
	}
	return ""
}

// CreateBooking books the caller onto a session. Checks, in order: the
// session exists and is scheduled, the user holds a tier covering the
// activity, no duplicate booking, and free capacity.
func CreateBooking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input struct {
		SessionID string `json:"sessionid"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.SessionID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "sessionid is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var session models.ClassSession
	if err := db.SessionsCollection.FindOne(ctx, bson.M{"sessionid": input.SessionID}).Decode(&session); err != nil {
		utils.RespondWithJSON(w, http.StatusOK, map[string]any{"ok": false, "reason": "session-missing"})
		return
	}

	var activity models.Activity
	if err := db.ActivitiesCollection.FindOne(ctx, bson.M{"activityid": session.ActivityID}).Decode(&activity); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load activity")
		return
	}
	var prefs models.UserProfile
	userTier := models.TierBasic
	if err := db.ProfilesCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&prefs); err == nil && prefs.Tier != "" {
		userTier = prefs.Tier
	}

	// one non-cancelled booking per user per session
	existing, err := db.BookingsCollection.CountDocuments(ctx, bson.M{
		"sessionid": input.SessionID,
		"userid":    userID,
		"status":    bson.M{"$ne": models.BookingCancelled},
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}

	confirmed, err := db.BookingsCollection.CountDocuments(ctx, bson.M{
		"sessionid": input.SessionID,
		"status":    models.BookingConfirmed,
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}

	if reason := EvaluateBooking(session, activity.Tier, userTier, existing, confirmed); reason != "" {
		utils.RespondWithJSON(w, http.StatusOK, map[string]any{"ok": false, "reason": reason})
		return
	}

	booking := models.Booking{
		BookingID:   utils.GenerateRandomDigitString(22),
		UserID:      userID,
		SessionID:   input.SessionID,
		Status:      models.BookingConfirmed,
		CheckinCode: utils.GenerateRandomString(12),
		CreatedAt:   time.Now(),
	}

	if _, err := db.BookingsCollection.InsertOne(ctx, booking); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}

	sessions.BroadcastSessionUpdate(input.SessionID, map[string]any{
		"sessionid":  input.SessionID,
		"spots_left": sessions.SpotsLeft(session.MaxCapacity, int(confirmed)+1),
	})

	mq.Emit(r.Context(), "booking-created", models.Index{
		EntityType: "booking", Method: "POST", EntityId: booking.BookingID,
		ItemId: input.SessionID, ItemType: "session",
	})

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"ok": true, "booking": booking})
}

// CancelBooking is an idempotent cancel; only the owner may cancel.
func CancelBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	bookingID := ps.ByName("id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res := db.BookingsCollection.FindOneAndUpdate(ctx,
		bson.M{"bookingid": bookingID, "userid": userID},
		bson.M{"$set": bson.M{"status": models.BookingCancelled}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var updated models.Booking
	if err := res.Decode(&updated); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Booking not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"ok": true, "booking": updated})
}

// CheckinBooking marks a booking attended after verifying its signed
// check-in payload (front desk scans the QR from the class pass).
func CheckinBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	bookingID := ps.ByName("id")

	var input struct {
		Payload string `json:"payload"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Payload == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "payload is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var booking models.Booking
	if err := db.BookingsCollection.FindOne(ctx, bson.M{"bookingid": bookingID}).Decode(&booking); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Booking not found")
		return
	}
	if booking.Status != models.BookingConfirmed {
		utils.RespondWithJSON(w, http.StatusOK, map[string]any{"ok": false, "reason": "not-confirmed"})
		return
	}

	if !VerifyCheckinPayload(input.Payload, booking.SessionID, booking.BookingID, booking.CheckinCode) {
		utils.RespondWithError(w, http.StatusBadRequest, "Check-in verification failed")
		return
	}

	now := time.Now()
	res := db.BookingsCollection.FindOneAndUpdate(ctx,
		bson.M{"bookingid": bookingID, "status": models.BookingConfirmed},
		bson.M{"$set": bson.M{"status": models.BookingAttended, "attended_at": now}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var updated models.Booking
	if err := res.Decode(&updated); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Booking not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"ok": true, "booking": updated})
}

// MarkNoShow flags a confirmed booking as a no-show once the session is
// over. Staff-only: members must not be able to flag each other.
func MarkNoShow(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if !utils.HasRole(r, "staff") {
		utils.RespondWithError(w, http.StatusForbidden, "Staff role required")
		return
	}

	bookingID := ps.ByName("id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res := db.BookingsCollection.FindOneAndUpdate(ctx,
		bson.M{"bookingid": bookingID, "status": models.BookingConfirmed},
		bson.M{"$set": bson.M{"status": models.BookingNoShow}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var updated models.Booking
	if err := res.Decode(&updated); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Booking not found or not confirmed")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"ok": true, "booking": updated})
}

// ListMyBookings returns the caller's bookings, optionally filtered by
// status, joined with session/activity details.
func ListMyBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	filter := bson.M{"userid": userID}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	list, err := utils.FindAndDecode[models.Booking](ctx, db.BookingsCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch bookings")
		return
	}

	views := make([]models.BookingView, 0, len(list))
	for _, b := range list {
		views = append(views, hydrateBooking(ctx, b))
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"bookings": views,
		"count":    len(views),
	})
}

// hydrateBooking joins a booking with its session, activity and venue names.
// Missing references degrade to empty fields rather than failing the list.
func hydrateBooking(ctx context.Context, b models.Booking) models.BookingView {
	view := models.BookingView{
		BookingID: b.BookingID,
		SessionID: b.SessionID,
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt,
	}

	var session models.ClassSession
	if err := db.SessionsCollection.FindOne(ctx, bson.M{"sessionid": b.SessionID}).Decode(&session); err != nil {
		return view
	}
	view.StartTime = session.StartTime

	var activity models.Activity
	if err := db.ActivitiesCollection.FindOne(ctx, bson.M{"activityid": session.ActivityID}).Decode(&activity); err == nil {
		view.ActivityName = activity.Name
	}
	var venue models.Venue
	if err := db.VenuesCollection.FindOne(ctx, bson.M{"venueid": session.VenueID}).Decode(&venue); err == nil {
		view.VenueName = venue.Name
	}
	return view
}
