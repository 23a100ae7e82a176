package models

// Category groups places, e.g. restaurants or attractions.
type Category struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	IconURL string `json:"icon_url"`
}

// Place is a local spot as served by the API. Distance and AverageRating are
// pointers because the server omits them when no location or reviews exist.
type Place struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Address       string   `json:"address"`
	CategoryID    int64    `json:"category_id"`
	ImageURL      string   `json:"image_url"`
	Latitude      float64  `json:"latitude"`
	Longitude     float64  `json:"longitude"`
	AverageRating *float64 `json:"average_rating"`
	DistanceKm    *float64 `json:"distance"`
	IsFavorited   bool     `json:"is_favorited"`
}
