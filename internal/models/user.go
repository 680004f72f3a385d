package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"` // Don't return password in JSON
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// UserSummary is the admin listing projection of a user.
type UserSummary struct {
	Email     string    `bson:"email" json:"email"`
	CreatedAt time.Time `bson:"created_at,omitempty" json:"created_at,omitempty"`
}
