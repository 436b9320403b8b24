package models

import "time"

type Venue struct {
	VenueID   string      `json:"venueid" bson:"venueid"`
	Name      string      `json:"name" bson:"name"`
	Address   string      `json:"address" bson:"address"`
	City      string      `json:"city,omitempty" bson:"city,omitempty"`
	Location  Coordinates `json:"location" bson:"location,omitempty"`
	Amenities []string    `json:"amenities,omitempty" bson:"amenities,omitempty"`
	Photo     string      `json:"photo,omitempty" bson:"photo,omitempty"`
	Distance  float64     `json:"distance,omitempty" bson:"-"`
	Views     int         `json:"views,omitempty" bson:"views,omitempty"`
	CreatedBy string      `json:"createdBy,omitempty" bson:"createdBy,omitempty"`
	CreatedAt time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time   `json:"updated_at" bson:"updated_at"`
}

type Coordinates struct {
	Latitude  float64 `json:"latitude" bson:"latitude"`
	Longitude float64 `json:"longitude" bson:"longitude"`
}
