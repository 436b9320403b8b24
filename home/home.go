package home

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"fitgrid/db"
	"fitgrid/models"
	"fitgrid/utils"
	"fitgrid/venues"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const sectionLimit = 6

var sectionHandlers = map[string]func(ctx context.Context, userID string) (any, error){
	"classes":    recommendedClasses,
	"venues":     nearbyVenues,
	"bookings":   upcomingBookings,
	"categories": browseCategories,
}

// GetHomeSection serves one section of the home feed. Sections that need a
// signed-in user degrade to generic content when the request is anonymous.
func GetHomeSection(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	section := strings.ToLower(ps.ByName("section"))

	handler, ok := sectionHandlers[section]
	if !ok {
		utils.RespondWithError(w, http.StatusNotFound, "unknown home section")
		return
	}

	userID := utils.GetUserIDFromRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	data, err := handler(ctx, userID)
	if err != nil {
		log.Printf("home section %s: %v", section, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "could not load section")
		return
	}

	w.Header().Set("Cache-Control", "private, max-age=60")
	utils.RespondWithJSON(w, http.StatusOK, data)
}

// recommendedClasses returns classes the user's tier covers, newest first.
// Anonymous users get the basic-tier catalog.
func recommendedClasses(ctx context.Context, userID string) (any, error) {
	tier := models.TierBasic
	if userID != "" {
		var prefs models.UserProfile
		if err := db.ProfilesCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&prefs); err == nil && prefs.Tier != "" {
			tier = prefs.Tier
		}
	}

	covered := make([]string, 0, 3)
	for _, t := range []string{models.TierBasic, models.TierPerformance, models.TierChampion} {
		if models.TierCovers(tier, t) {
			covered = append(covered, t)
		}
	}

	opts := options.Find().SetLimit(sectionLimit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	list, err := utils.FindAndDecode[models.Activity](ctx, db.ActivitiesCollection, bson.M{"tier": bson.M{"$in": covered}}, opts)
	if err != nil {
		return nil, err
	}
	return utils.M{"count": len(list), "classes": list}, nil
}

// nearbyVenues applies the user's stored location preference; without one it
// falls back to the most viewed venues.
func nearbyVenues(ctx context.Context, userID string) (any, error) {
	if userID != "" {
		var prefs models.UserProfile
		err := db.ProfilesCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&prefs)
		if err == nil && prefs.RadiusKm > 0 {
			all, err := utils.FindAndDecode[models.Venue](ctx, db.VenuesCollection, bson.M{"location": bson.M{"$exists": true}})
			if err != nil {
				return nil, err
			}
			near := venues.FilterByDistance(all, prefs.Location, prefs.RadiusKm)
			if len(near) > sectionLimit {
				near = near[:sectionLimit]
			}
			return utils.M{"count": len(near), "venues": near}, nil
		}
	}

	opts := options.Find().SetLimit(sectionLimit).SetSort(bson.D{{Key: "views", Value: -1}})
	list, err := utils.FindAndDecode[models.Venue](ctx, db.VenuesCollection, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	return utils.M{"count": len(list), "venues": list}, nil
}

// upcomingBookings lists the user's confirmed bookings whose session has not
// started yet.
func upcomingBookings(ctx context.Context, userID string) (any, error) {
	if userID == "" {
		return utils.M{"count": 0, "bookings": []any{}}, nil
	}

	opts := options.Find().SetLimit(sectionLimit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	filter := bson.M{"userid": userID, "status": string(models.BookingConfirmed)}
	list, err := utils.FindAndDecode[models.Booking](ctx, db.BookingsCollection, filter, opts)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	views := make([]models.BookingView, 0, len(list))
	for _, b := range list {
		var s models.ClassSession
		if err := db.SessionsCollection.FindOne(ctx, bson.M{"sessionid": b.SessionID}).Decode(&s); err != nil {
			continue
		}
		if s.StartTime.Before(now) {
			continue
		}
		view := models.BookingView{
			BookingID: b.BookingID,
			SessionID: b.SessionID,
			Status:    string(b.Status),
			StartTime: s.StartTime,
			CreatedAt: b.CreatedAt,
		}
		var a models.Activity
		if err := db.ActivitiesCollection.FindOne(ctx, bson.M{"activityid": s.ActivityID}).Decode(&a); err == nil {
			view.ActivityName = a.Name
		}
		var v models.Venue
		if err := db.VenuesCollection.FindOne(ctx, bson.M{"venueid": s.VenueID}).Decode(&v); err == nil {
			view.VenueName = v.Name
		}
		views = append(views, view)
	}
	return utils.M{"count": len(views), "bookings": views}, nil
}

func browseCategories(ctx context.Context, _ string) (any, error) {
	list, err := utils.FindAndDecode[models.Category](ctx, db.CategoriesCollection, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	return utils.M{"count": len(list), "categories": list}, nil
}
