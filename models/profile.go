package models

import "time"

// UserProfile stores a user's location preference and membership tier,
// keyed by the auth user id.
type UserProfile struct {
	UserID    string      `json:"userid" bson:"userid"`
	Location  Coordinates `json:"location" bson:"location"`
	Address   string      `json:"address" bson:"address"`
	RadiusKm  float64     `json:"radius_km" bson:"radius_km"`
	Tier      string      `json:"tier" bson:"tier"`
	UpdatedAt time.Time   `json:"updated_at" bson:"updated_at"`
}
