package venues

import (
	"context"
	"encoding/json"
	"net/http"
	"regexp"
	"strings"
	"time"

	"fitgrid/db"
	"fitgrid/models"
	"fitgrid/mq"
	"fitgrid/rdx"
	"fitgrid/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BuildFilter composes the Mongo filter for venue listings from optional
// parameters.
func BuildFilter(city, amenity string) bson.M {
	filter := bson.M{}
	if city != "" {
		filter["city"] = bson.M{"$regex": "^" + regexp.QuoteMeta(city) + "$", "$options": "i"}
	}
	if amenity != "" {
		filter["amenities"] = amenity
	}
	return filter
}

func GetVenues(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	q := r.URL.Query()
	filter := BuildFilter(q.Get("city"), q.Get("amenity"))
	skip, limit := utils.ParsePagination(r, 10, 100)

	totalCount, err := db.VenuesCollection.CountDocuments(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch venue count")
		return
	}

	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "name", Value: 1}})
	list, err := utils.FindAndDecode[models.Venue](ctx, db.VenuesCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch venues")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"venues": list,
		"count":  totalCount,
		"page":   skip/limit + 1,
		"limit":  limit,
	})
}

func GetVenue(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var venue models.Venue
	err := db.VenuesCollection.FindOne(r.Context(), bson.M{"venueid": ps.ByName("id")}).Decode(&venue)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Venue not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch venue")
		return
	}

	rdx.IncrView("venue", venue.VenueID)
	utils.RespondWithJSON(w, http.StatusOK, venue)
}

func CreateVenue(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var venue models.Venue
	if err := json.NewDecoder(r.Body).Decode(&venue); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	venue.Name = strings.TrimSpace(venue.Name)
	if venue.Name == "" || venue.Address == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name and address are required")
		return
	}
	if venue.Location != (models.Coordinates{}) &&
		!utils.ValidCoordinates(venue.Location.Latitude, venue.Location.Longitude) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid coordinates")
		return
	}

	venue.VenueID = utils.GetUUID()
	venue.CreatedBy = userID
	venue.CreatedAt = time.Now()
	venue.UpdatedAt = venue.CreatedAt

	if _, err := db.VenuesCollection.InsertOne(r.Context(), venue); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create venue")
		return
	}

	mq.Emit(r.Context(), "venue-created", models.Index{
		EntityType: "venue", Method: "POST", EntityId: venue.VenueID,
	})

	utils.RespondWithJSON(w, http.StatusCreated, venue)
}

func UpdateVenue(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input map[string]any
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	update := bson.M{"updated_at": time.Now()}
	for _, field := range []string{"name", "address", "city"} {
		if v, ok := input[field].(string); ok && v != "" {
			update[field] = v
		}
	}
	if v, ok := input["amenities"].([]any); ok {
		amenities := make([]string, 0, len(v))
		for _, a := range v {
			if s, ok := a.(string); ok && s != "" {
				amenities = append(amenities, s)
			}
		}
		update["amenities"] = amenities
	}
	if loc, ok := input["location"].(map[string]any); ok {
		lat, _ := loc["latitude"].(float64)
		lng, _ := loc["longitude"].(float64)
		if !utils.ValidCoordinates(lat, lng) {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid coordinates")
			return
		}
		update["location"] = models.Coordinates{Latitude: lat, Longitude: lng}
	}

	res := db.VenuesCollection.FindOneAndUpdate(r.Context(),
		bson.M{"venueid": ps.ByName("id")},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var updated models.Venue
	if err := res.Decode(&updated); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Venue not found")
		return
	}

	mq.Emit(r.Context(), "venue-updated", models.Index{
		EntityType: "venue", Method: "PUT", EntityId: updated.VenueID,
	})

	utils.RespondWithJSON(w, http.StatusOK, updated)
}

func DeleteVenue(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	venueID := ps.ByName("id")
	res, err := db.VenuesCollection.DeleteOne(r.Context(), bson.M{"venueid": venueID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete venue")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Venue not found")
		return
	}

	mq.Emit(r.Context(), "venue-deleted", models.Index{
		EntityType: "venue", Method: "DELETE", EntityId: venueID,
	})

	w.WriteHeader(http.StatusNoContent)
}
