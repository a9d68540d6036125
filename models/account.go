package models

import "time"

// Account is a profile record keyed by the auth provider's user ID. The
// transcript and summary paths never touch it; it only backs the sign-in
// surface.
type Account struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	PhotoURL    string    `json:"photoURL"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
