package venues

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"fitgrid/db"
	"fitgrid/utils"

	"github.com/disintegration/imaging"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// Directory to store uploaded venue photos
const venuePhotoDir = "./static/venuepic/"

const thumbWidth = 300

// UploadVenuePhoto accepts a multipart image, stores the original plus a
// thumbnail, and records the filename on the venue document.
func UploadVenuePhoto(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	venueID := ps.ByName("id")

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing photo file")
		return
	}
	defer file.Close()

	if !utils.ValidateImageFileType(w, header) {
		return
	}

	img, err := imaging.Decode(file)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to decode image")
		return
	}

	uniqueID := utils.GenerateRandomString(16)
	fileName := uniqueID + ".jpg"
	originalPath := filepath.Join(venuePhotoDir, fileName)
	thumbDir := filepath.Join(venuePhotoDir, "thumb")
	thumbnailPath := filepath.Join(thumbDir, fileName)

	if err := utils.EnsureDir(venuePhotoDir); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create upload directory")
		return
	}
	if err := utils.EnsureDir(thumbDir); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create thumbnail directory")
		return
	}

	if err := imaging.Save(img, originalPath); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save image")
		return
	}

	thumb := imaging.Resize(img, thumbWidth, 0, imaging.Lanczos)
	if err := imaging.Save(thumb, thumbnailPath); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save thumbnail")
		return
	}

	res, err := db.VenuesCollection.UpdateOne(r.Context(),
		bson.M{"venueid": venueID},
		bson.M{"$set": bson.M{"photo": fileName, "updated_at": time.Now()}},
	)
	if err != nil || res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Venue not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"ok":    true,
		"photo": fileName,
		"thumb": fmt.Sprintf("thumb/%s", fileName),
	})
}
