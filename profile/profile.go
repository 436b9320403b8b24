package profile

import (
	"errors"
	"net/http"

	"fitgrid/db"
	"fitgrid/models"
	"fitgrid/rdx"
	"fitgrid/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetProfile returns the authenticated user's account plus preference record.
func GetProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var user models.User
	err := db.UserCollection.FindOne(r.Context(), bson.M{"userid": userID}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.RespondWithError(w, http.StatusNotFound, "User not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	prefs := loadPreferences(r, userID)

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"user":        user,
		"preferences": prefs,
	})
}

// GetUserProfile returns the public view for any username.
func GetUserProfile(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	username := ps.ByName("username")

	var user models.User
	err := db.UserCollection.FindOne(r.Context(), bson.M{"username": username}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.RespondWithError(w, http.StatusNotFound, "User not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	prefs := loadPreferences(r, user.UserID)

	utils.RespondWithJSON(w, http.StatusOK, models.PublicProfile{
		UserID:    user.UserID,
		Username:  user.Username,
		Name:      user.Name,
		Tier:      prefs.Tier,
		Onboarded: user.Onboarded,
		Online:    rdx.Exists("online:" + user.UserID),
		LastLogin: user.LastLogin,
	})
}

func loadPreferences(r *http.Request, userID string) models.UserProfile {
	var prefs models.UserProfile
	err := db.ProfilesCollection.FindOne(r.Context(), bson.M{"userid": userID}).Decode(&prefs)
	if err != nil {
		// missing preference record behaves like a fresh basic-plan profile
		prefs = models.UserProfile{UserID: userID, Tier: models.TierBasic}
	}
	return prefs
}
