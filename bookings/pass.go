package bookings

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"fitgrid/db"
	"fitgrid/models"
	"fitgrid/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
)

var hmacSecret = []byte(passSecret())

func passSecret() string {
	if v := os.Getenv("PASS_SECRET"); v != "" {
		return v
	}
	return "dev_only_pass_secret"
}

// GenerateCheckinPayload returns the signed string embedded in the class
// pass QR: sessionID|bookingID|checkinCode|signature.
func GenerateCheckinPayload(sessionID, bookingID, checkinCode string) string {
	data := fmt.Sprintf("%s|%s|%s", sessionID, bookingID, checkinCode)

	h := hmac.New(sha256.New, hmacSecret)
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))

	return fmt.Sprintf("%s|%s", data, sig)
}

// VerifyCheckinPayload checks both the payload's own signature and that the
// payload matches the booking being checked in.
func VerifyCheckinPayload(payload, sessionID, bookingID, checkinCode string) bool {
	parts := strings.Split(payload, "|")
	if len(parts) != 4 {
		return false
	}
	if parts[0] != sessionID || parts[1] != bookingID || parts[2] != checkinCode {
		return false
	}

	data := strings.Join(parts[:3], "|")
	h := hmac.New(sha256.New, hmacSecret)
	h.Write([]byte(data))
	want := base64.StdEncoding.EncodeToString(h.Sum(nil))

	return hmac.Equal([]byte(parts[3]), []byte(want))
}

// PrintPass returns a PDF class pass with a signed QR code for the booking.
func PrintPass(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	bookingID := ps.ByName("id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := db.BookingsCollection.FindOne(ctx, bson.M{"bookingid": bookingID, "userid": userID}).Decode(&booking)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Booking not found")
		return
	}
	if booking.Status != models.BookingConfirmed {
		utils.RespondWithError(w, http.StatusBadRequest, "Pass only available for confirmed bookings")
		return
	}

	view := hydrateBooking(ctx, booking)
	qrPayload := GenerateCheckinPayload(booking.SessionID, booking.BookingID, booking.CheckinCode)

	qrPNG, err := qrcode.Encode(qrPayload, qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Class Pass")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Class: %s", view.ActivityName))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Venue: %s", view.VenueName))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Starts: %s", view.StartTime.Format("Mon, 02 Jan 2006 15:04")))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Booking: %s", booking.BookingID))
	pdf.Ln(12)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 40, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=pass-"+booking.BookingID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
