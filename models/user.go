package models

import "time"

type User struct {
	UserID        string    `json:"userid" bson:"userid"`
	Username      string    `json:"username" bson:"username"`
	Email         string    `json:"email" bson:"email"`
	PasswordHash  string    `json:"-" bson:"password_hash"`
	Role          []string  `json:"role" bson:"role"`
	Name          string    `json:"name,omitempty" bson:"name,omitempty"`
	Onboarded     bool      `json:"onboarded" bson:"onboarded"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
	LastLogin     time.Time `json:"last_login" bson:"last_login"`
	RefreshToken  string    `json:"-" bson:"refreshtoken,omitempty"`
	RefreshExpiry time.Time `json:"-" bson:"refreshexp,omitempty"`
}

// PublicProfile is the trimmed-down view returned for profile lookups so we
// never expose credential fields.
type PublicProfile struct {
	UserID    string    `json:"userid" bson:"userid"`
	Username  string    `json:"username" bson:"username"`
	Name      string    `json:"name,omitempty" bson:"name,omitempty"`
	Tier      string    `json:"tier"`
	Onboarded bool      `json:"onboarded"`
	Online    bool      `json:"online,omitempty"`
	LastLogin time.Time `json:"last_login"`
}
