package model

import "github.com/google/uuid"

// User is an account that can sign in to the dashboard. Password holds the
// bcrypt hash and is never serialised.
type User struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Password string    `json:"-"`
}
