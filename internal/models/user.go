package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an operator account. The platform has no end-user accounts;
// quiz taking is anonymous.
type User struct {
	ID        primitive.ObjectID `json:"id" bson:"_id"`
	Email     string             `json:"email" bson:"email"`
	Name      string             `json:"name" bson:"name"`
	Password  string             `json:"-" bson:"password"`
	CreatedAt time.Time          `json:"created_at" bson:"createdAt"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// ErrorResponse is the single error envelope used by every endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}
