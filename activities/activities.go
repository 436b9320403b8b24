package activities

import (
	"context"
	"encoding/json"
	"log"
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

// BuildFilter composes the Mongo filter for activity listings from optional
// parameters. Empty values are left out of the filter.
func BuildFilter(category, tier, instructor, query string) bson.M {
	filter := bson.M{}
	if category != "" {
		filter["categoryid"] = category
	}
	if tier != "" {
		filter["tier"] = tier
	}
	if instructor != "" {
		filter["instructor"] = instructor
	}
	if query != "" {
		filter["name"] = bson.M{"$regex": regexp.QuoteMeta(query), "$options": "i"}
	}
	return filter
}

func GetActivities(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	q := r.URL.Query()
	filter := BuildFilter(q.Get("category"), q.Get("tier"), q.Get("instructor"), q.Get("q"))

	skip, limit := utils.ParsePagination(r, 10, 100)

	totalCount, err := db.ActivitiesCollection.CountDocuments(ctx, filter)
	if err != nil {
		log.Println("CountDocuments error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch activity count")
		return
	}

	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	list, err := utils.FindAndDecode[models.Activity](ctx, db.ActivitiesCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch activities")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"activities": list,
		"count":      totalCount,
		"page":       skip/limit + 1,
		"limit":      limit,
	})
}

func GetActivity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var activity models.Activity
	err := db.ActivitiesCollection.FindOne(r.Context(), bson.M{"activityid": ps.ByName("id")}).Decode(&activity)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Activity not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch activity")
		return
	}

	rdx.IncrView("activity", activity.ActivityID)
	utils.RespondWithJSON(w, http.StatusOK, activity)
}

func CreateActivity(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var activity models.Activity
	if err := json.NewDecoder(r.Body).Decode(&activity); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	activity.Name = strings.TrimSpace(activity.Name)
	if activity.Name == "" || activity.Instructor == "" || activity.Duration <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Name, instructor and duration are required")
		return
	}
	if !models.ValidTier(activity.Tier) {
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown tier level")
		return
	}
	if activity.CategoryID != "" {
		count, err := db.CategoriesCollection.CountDocuments(r.Context(), bson.M{"categoryid": activity.CategoryID})
		if err != nil || count == 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "Unknown category")
			return
		}
	}

	activity.ActivityID = utils.GetUUID()
	activity.CreatedBy = userID
	activity.CreatedAt = time.Now()
	activity.UpdatedAt = activity.CreatedAt

	if _, err := db.ActivitiesCollection.InsertOne(r.Context(), activity); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create activity")
		return
	}

	mq.Emit(r.Context(), "activity-created", models.Index{
		EntityType: "activity", Method: "POST", EntityId: activity.ActivityID,
	})

	utils.RespondWithJSON(w, http.StatusCreated, activity)
}

func UpdateActivity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
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
	for _, field := range []string{"name", "instructor", "description", "categoryid"} {
		if v, ok := input[field].(string); ok && v != "" {
			update[field] = v
		}
	}
	if v, ok := input["duration"].(float64); ok && v > 0 {
		update["duration"] = int(v)
	}
	if v, ok := input["tier"].(string); ok && v != "" {
		if !models.ValidTier(v) {
			utils.RespondWithError(w, http.StatusBadRequest, "Unknown tier level")
			return
		}
		update["tier"] = v
	}

	res := db.ActivitiesCollection.FindOneAndUpdate(r.Context(),
		bson.M{"activityid": ps.ByName("id")},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var updated models.Activity
	if err := res.Decode(&updated); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Activity not found")
		return
	}

	mq.Emit(r.Context(), "activity-updated", models.Index{
		EntityType: "activity", Method: "PUT", EntityId: updated.ActivityID,
	})

	utils.RespondWithJSON(w, http.StatusOK, updated)
}

func DeleteActivity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	activityID := ps.ByName("id")
	res, err := db.ActivitiesCollection.DeleteOne(r.Context(), bson.M{"activityid": activityID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete activity")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Activity not found")
		return
	}

	mq.Emit(r.Context(), "activity-deleted", models.Index{
		EntityType: "activity", Method: "DELETE", EntityId: activityID,
	})

	w.WriteHeader(http.StatusNoContent)
}
