package search

import (
	"context"
	"net/http"
	"time"

	"fitgrid/db"
	"fitgrid/models"
	"fitgrid/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const searchLimit = 20

// SearchHandler serves GET /api/search/:entityType?q=...
func SearchHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	entityType := ps.ByName("entityType")
	switch entityType {
	case "activity", "venue", "session":
	default:
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown entity type")
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing query")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	ids, err := GetIndexedResults(ctx, entityType, query, searchLimit)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Search failed")
		return
	}
	if len(ids) == 0 {
		utils.RespondWithJSON(w, http.StatusOK, map[string]any{"count": 0, "results": []any{}})
		return
	}

	var results any
	switch entityType {
	case "activity":
		results, err = fetchByIDs[models.Activity](ctx, db.ActivitiesCollection, "activityid", ids)
	case "venue":
		results, err = fetchByIDs[models.Venue](ctx, db.VenuesCollection, "venueid", ids)
	case "session":
		results, err = fetchByIDs[models.ClassSession](ctx, db.SessionsCollection, "sessionid", ids)
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Search failed")
		return
	}

	count := 0
	switch v := results.(type) {
	case []models.Activity:
		count = len(v)
	case []models.Venue:
		count = len(v)
	case []models.ClassSession:
		count = len(v)
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"count":   count,
		"results": results,
	})
}

func fetchByIDs[T any](ctx context.Context, coll *mongo.Collection, idField string, ids []string) ([]T, error) {
	docs, err := utils.FindAndDecode[T](ctx, coll, bson.M{idField: bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []T{}
	}
	return docs, nil
}
