package profile

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"fitgrid/db"
	"fitgrid/models"
	"fitgrid/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PreferencesInput is the onboarding payload: where the user is and how far
// they are willing to travel for a class.
type PreferencesInput struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Address   string   `json:"address"`
	RadiusKm  *float64 `json:"radius_km"`
	Tier      string   `json:"tier,omitempty"`
}

var (
	ErrMissingLocation = errors.New("location (latitude, longitude) is required")
	ErrInvalidLocation = errors.New("latitude/longitude out of range")
	ErrMissingRadius   = errors.New("search radius is required")
	ErrInvalidRadius   = errors.New("search radius must be between 1 and 100 km")
	ErrInvalidTier     = errors.New("unknown membership tier")
)

// ValidatePreferences checks an onboarding payload without touching the
// store. Updates must not write anything when this fails.
func ValidatePreferences(in PreferencesInput) error {
	if in.Latitude == nil || in.Longitude == nil {
		return ErrMissingLocation
	}
	if !utils.ValidCoordinates(*in.Latitude, *in.Longitude) {
		return ErrInvalidLocation
	}
	if in.RadiusKm == nil {
		return ErrMissingRadius
	}
	if *in.RadiusKm < 1 || *in.RadiusKm > 100 {
		return ErrInvalidRadius
	}
	if in.Tier != "" && !models.ValidTier(in.Tier) {
		return ErrInvalidTier
	}
	return nil
}

// UpdatePreferences stores the submitted location preference verbatim and
// flags the account as onboarded.
func UpdatePreferences(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input PreferencesInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	input.Address = strings.TrimSpace(input.Address)

	if err := ValidatePreferences(input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	update := bson.M{
		"location": models.Coordinates{
			Latitude:  *input.Latitude,
			Longitude: *input.Longitude,
		},
		"address":    input.Address,
		"radius_km":  *input.RadiusKm,
		"updated_at": time.Now(),
	}
	if input.Tier != "" {
		update["tier"] = input.Tier
	}

	_, err := db.ProfilesCollection.UpdateOne(r.Context(),
		bson.M{"userid": userID},
		bson.M{"$set": update, "$setOnInsert": bson.M{"userid": userID}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save preferences")
		return
	}

	// mark onboarding complete on the account document
	_, err = db.UserCollection.UpdateOne(r.Context(),
		bson.M{"userid": userID},
		bson.M{"$set": bson.M{"onboarded": true, "updated_at": time.Now()}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to flag onboarding")
		return
	}

	var saved models.UserProfile
	if err := db.ProfilesCollection.FindOne(r.Context(), bson.M{"userid": userID}).Decode(&saved); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load saved preferences")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"preferences": saved,
	})
}

// GetPreferences returns the stored preference record for the caller.
func GetPreferences(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, loadPreferences(r, userID))
}
