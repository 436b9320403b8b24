package sessions

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"fitgrid/db"
	"fitgrid/models"
	"fitgrid/mq"
	"fitgrid/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BuildFilter composes the Mongo filter for session listings from optional
// parameters. The date parameter selects one calendar day (UTC).
func BuildFilter(activityID, venueID, status, date string) (bson.M, error) {
	filter := bson.M{}
	if activityID != "" {
		filter["activityid"] = activityID
	}
	if venueID != "" {
		filter["venueid"] = venueID
	}
	if status != "" {
		filter["status"] = status
	}
	if date != "" {
		day, err := time.Parse("2006-01-02", date)
		if err != nil {
			return nil, err
		}
		filter["start_time"] = bson.M{
			"$gte": day,
			"$lt":  day.AddDate(0, 0, 1),
		}
	}
	return filter, nil
}

func GetSessions(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	q := r.URL.Query()
	filter, err := BuildFilter(q.Get("activity"), q.Get("venue"), q.Get("status"), q.Get("date"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid date; expected YYYY-MM-DD")
		return
	}

	skip, limit := utils.ParsePagination(r, 10, 100)

	totalCount, err := db.SessionsCollection.CountDocuments(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch session count")
		return
	}

	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "start_time", Value: 1}})
	list, err := utils.FindAndDecode[models.ClassSession](ctx, db.SessionsCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch sessions")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"sessions": list,
		"count":    totalCount,
		"page":     skip/limit + 1,
		"limit":    limit,
	})
}

func GetSession(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var session models.ClassSession
	err := db.SessionsCollection.FindOne(r.Context(), bson.M{"sessionid": ps.ByName("id")}).Decode(&session)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Session not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch session")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, session)
}

func CreateSession(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var session models.ClassSession
	if err := json.NewDecoder(r.Body).Decode(&session); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if session.ActivityID == "" || session.VenueID == "" || session.StartTime.IsZero() || session.MaxCapacity <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Activity, venue, start time and capacity are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// the referenced activity and venue must exist
	if n, err := db.ActivitiesCollection.CountDocuments(ctx, bson.M{"activityid": session.ActivityID}); err != nil || n == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown activity")
		return
	}
	if n, err := db.VenuesCollection.CountDocuments(ctx, bson.M{"venueid": session.VenueID}); err != nil || n == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown venue")
		return
	}

	if session.EndTime.IsZero() {
		var activity models.Activity
		if err := db.ActivitiesCollection.FindOne(ctx, bson.M{"activityid": session.ActivityID}).Decode(&activity); err == nil && activity.Duration > 0 {
			session.EndTime = session.StartTime.Add(time.Duration(activity.Duration) * time.Minute)
		}
	}

	session.SessionID = utils.GetUUID()
	session.Status = models.SessionScheduled
	session.CreatedBy = userID
	session.CreatedAt = time.Now()

	if _, err := db.SessionsCollection.InsertOne(ctx, session); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	mq.Emit(r.Context(), "session-created", models.Index{
		EntityType: "session", Method: "POST", EntityId: session.SessionID,
	})

	utils.RespondWithJSON(w, http.StatusCreated, session)
}

// CancelSession marks a session cancelled, cancels its confirmed bookings,
// and tells live subscribers.
func CancelSession(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	sessionID := ps.ByName("id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res := db.SessionsCollection.FindOneAndUpdate(ctx,
		bson.M{"sessionid": sessionID},
		bson.M{"$set": bson.M{"status": models.SessionCancelled}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var updated models.ClassSession
	if err := res.Decode(&updated); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Session not found")
		return
	}

	_, _ = db.BookingsCollection.UpdateMany(ctx,
		bson.M{"sessionid": sessionID, "status": models.BookingConfirmed},
		bson.M{"$set": bson.M{"status": models.BookingCancelled}},
	)

	BroadcastSessionUpdate(sessionID, map[string]any{
		"sessionid": sessionID,
		"status":    string(models.SessionCancelled),
	})

	mq.Emit(r.Context(), "session-cancelled", models.Index{
		EntityType: "session", Method: "PUT", EntityId: sessionID,
	})

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"ok": true, "session": updated})
}

// GetAvailability reports remaining spots for a session.
func GetAvailability(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sessionID := ps.ByName("id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var session models.ClassSession
	if err := db.SessionsCollection.FindOne(ctx, bson.M{"sessionid": sessionID}).Decode(&session); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Session not found")
		return
	}

	confirmed, err := db.BookingsCollection.CountDocuments(ctx, bson.M{
		"sessionid": sessionID,
		"status":    models.BookingConfirmed,
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to count bookings")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"sessionid":  sessionID,
		"capacity":   session.MaxCapacity,
		"confirmed":  confirmed,
		"spots_left": SpotsLeft(session.MaxCapacity, int(confirmed)),
		"status":     session.Status,
	})
}

// SpotsLeft never reports below zero even if overbooking slipped through a
// race at the store.
func SpotsLeft(capacity, confirmed int) int {
	if confirmed >= capacity {
		return 0
	}
	return capacity - confirmed
}
