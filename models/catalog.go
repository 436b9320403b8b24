package models

import "time"

// Tier levels gate which classes a membership plan may book.
const (
	TierBasic       = "basic"
	TierPerformance = "performance"
	TierChampion    = "champion"
)

var tierRank = map[string]int{
	TierBasic:       0,
	TierPerformance: 1,
	TierChampion:    2,
}

// ValidTier reports whether s names a known tier level.
func ValidTier(s string) bool {
	_, ok := tierRank[s]
	return ok
}

// TierCovers reports whether a membership at tier "have" may book a class
// gated at tier "want". Unknown tiers never match.
func TierCovers(have, want string) bool {
	h, ok1 := tierRank[have]
	w, ok2 := tierRank[want]
	return ok1 && ok2 && h >= w
}

type Activity struct {
	ActivityID  string    `json:"activityid" bson:"activityid"`
	Name        string    `json:"name" bson:"name"`
	Instructor  string    `json:"instructor" bson:"instructor"`
	Duration    int       `json:"duration" bson:"duration"` // minutes
	Tier        string    `json:"tier" bson:"tier"`
	CategoryID  string    `json:"categoryid,omitempty" bson:"categoryid,omitempty"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Tags        []string  `json:"tags,omitempty" bson:"tags,omitempty"`
	Views       int       `json:"views,omitempty" bson:"views,omitempty"`
	CreatedBy   string    `json:"createdBy,omitempty" bson:"createdBy,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

type Category struct {
	CategoryID  string    `json:"categoryid" bson:"categoryid"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}
