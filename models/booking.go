package models

import "time"

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingAttended  BookingStatus = "attended"
	BookingNoShow    BookingStatus = "no-show"
)

type Booking struct {
	BookingID   string        `json:"bookingid" bson:"bookingid"`
	UserID      string        `json:"userid" bson:"userid"`
	SessionID   string        `json:"sessionid" bson:"sessionid"`
	Status      BookingStatus `json:"status" bson:"status"`
	CheckinCode string        `json:"checkin_code,omitempty" bson:"checkin_code,omitempty"`
	CreatedAt   time.Time     `json:"created_at" bson:"created_at"`
	AttendedAt  *time.Time    `json:"attended_at,omitempty" bson:"attended_at,omitempty"`
}

// BookingView is a booking joined with session and activity details for
// listings and the assistant's my_bookings tool.
type BookingView struct {
	BookingID    string    `json:"bookingid" bson:"bookingid"`
	SessionID    string    `json:"sessionid" bson:"sessionid"`
	ActivityName string    `json:"activity_name"`
	VenueName    string    `json:"venue_name"`
	StartTime    time.Time `json:"start_time"`
	Status       string    `json:"status" bson:"status"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}
