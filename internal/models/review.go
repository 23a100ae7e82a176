package models

// Review is a user's rating and comment for a place.
type Review struct {
	ID        int64  `json:"id"`
	PlaceID   int64  `json:"place_id"`
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	PlaceName string `json:"place_name,omitempty"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	CreatedAt string `json:"created_at"`
}
