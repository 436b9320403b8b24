package models

import "time"

type SessionStatus string

const (
	SessionScheduled SessionStatus = "scheduled"
	SessionCancelled SessionStatus = "cancelled"
	SessionCompleted SessionStatus = "completed"
)

type ClassSession struct {
	SessionID   string        `json:"sessionid" bson:"sessionid"`
	ActivityID  string        `json:"activityid" bson:"activityid"`
	VenueID     string        `json:"venueid" bson:"venueid"`
	StartTime   time.Time     `json:"start_time" bson:"start_time"`
	EndTime     time.Time     `json:"end_time,omitempty" bson:"end_time,omitempty"`
	MaxCapacity int           `json:"max_capacity" bson:"max_capacity"`
	Status      SessionStatus `json:"status" bson:"status"`
	CreatedBy   string        `json:"createdBy,omitempty" bson:"createdBy,omitempty"`
	CreatedAt   time.Time     `json:"created_at" bson:"created_at"`
}

// SessionView is a session joined with its activity and venue, the shape
// listings and assistant tools return.
type SessionView struct {
	SessionID    string    `json:"sessionid" bson:"sessionid"`
	ActivityID   string    `json:"activityid" bson:"activityid"`
	ActivityName string    `json:"activity_name"`
	Instructor   string    `json:"instructor"`
	Tier         string    `json:"tier"`
	VenueID      string    `json:"venueid" bson:"venueid"`
	VenueName    string    `json:"venue_name"`
	City         string    `json:"city,omitempty"`
	StartTime    time.Time `json:"start_time" bson:"start_time"`
	MaxCapacity  int       `json:"max_capacity" bson:"max_capacity"`
	Status       string    `json:"status" bson:"status"`
	SpotsLeft    int       `json:"spots_left"`
}
