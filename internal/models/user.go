// Package models defines the records exchanged with the LocalSpot API.
package models

// User is the account record returned by the API. A guest actor is
// represented by the IsGuest marker and carries no other fields.
type User struct {
	ID                int64  `json:"id"`
	Username          string `json:"username"`
	Email             string `json:"email"`
	ProfilePictureURL string `json:"profile_picture_url"`
	IsGuest           bool   `json:"is_guest,omitempty"`
}

// Guest returns the sentinel user meaning "using the app without an account".
func Guest() *User {
	return &User{IsGuest: true}
}

// Clone returns a copy of u, or nil for a nil receiver. Session snapshots
// hand out clones so callers cannot mutate shared state.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
