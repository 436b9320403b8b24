package venues

import (
	"context"
	"net/http"
	"sort"
	"time"

	"fitgrid/db"
	"fitgrid/models"
	"fitgrid/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// NearbyVenues returns venues within the caller's stored search radius,
// sorted by distance. Mongo holds plain lat/lng pairs, so the distance math
// happens here rather than in the query.
func NearbyVenues(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var prefs models.UserProfile
	err := db.ProfilesCollection.FindOne(r.Context(), bson.M{"userid": userID}).Decode(&prefs)
	if err != nil || prefs.RadiusKm <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "No location preference set; complete onboarding first")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	all, err := utils.FindAndDecode[models.Venue](ctx, db.VenuesCollection, bson.M{
		"location": bson.M{"$exists": true},
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch venues")
		return
	}

	nearby := FilterByDistance(all, prefs.Location, prefs.RadiusKm)

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"venues": nearby,
		"count":  len(nearby),
	})
}

// FilterByDistance keeps venues within radiusKm of origin, annotates each
// with its distance, and sorts nearest first.
func FilterByDistance(all []models.Venue, origin models.Coordinates, radiusKm float64) []models.Venue {
	nearby := make([]models.Venue, 0, len(all))
	for _, v := range all {
		if v.Location == (models.Coordinates{}) {
			continue
		}
		d := utils.HaversineKm(origin.Latitude, origin.Longitude, v.Location.Latitude, v.Location.Longitude)
		if d <= radiusKm {
			v.Distance = d
			nearby = append(nearby, v)
		}
	}
	sort.Slice(nearby, func(i, j int) bool { return nearby[i].Distance < nearby[j].Distance })
	return nearby
}
