package api

import (
	"context"
	"io"

	"github.com/hafidzirham/localspot-cli/internal/models"
)

// LoginResult is the payload of a successful authentication.
type LoginResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// ProfileUpdate carries the updatable profile fields. Empty strings mean
// "leave unchanged" and are not sent.
type ProfileUpdate struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}

// Photo is an image payload for the profile photo endpoint.
type Photo struct {
	FileName    string
	ContentType string
	Body        io.Reader
}

// RegisterRequest is the payload for account creation.
type RegisterRequest struct {
	Username             string `json:"username"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// PasswordReset is the payload for completing a password reset with an OTP.
type PasswordReset struct {
	Email                   string `json:"email"`
	OTP                     string `json:"otp"`
	NewPassword             string `json:"new_password"`
	NewPasswordConfirmation string `json:"new_password_confirmation"`
}

// PlaceQuery filters a place listing. Zero values are omitted from the
// request.
type PlaceQuery struct {
	Search     string
	CategoryID int64
	Latitude   float64
	Longitude  float64
}

// PlaceInput carries the fields for creating or editing a place.
type PlaceInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Address     string  `json:"address"`
	CategoryID  int64   `json:"category_id"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// ReviewInput carries a rating and comment for a place.
type ReviewInput struct {
	PlaceID int64  `json:"place_id"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// Client is the LocalSpot REST API as consumed by this application.
//
// Methods that take a token authorize the call with it; an empty token sends
// no Authorization header. Server rejections come back as *Error (or
// ErrUnauthorized for credential problems); requests that never complete
// come back wrapping ErrUnavailable. Match with errors.Is / errors.As.
type Client interface {
	// Auth and session.
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, token string) error
	Register(ctx context.Context, req *RegisterRequest) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req *PasswordReset) error

	// Profile.
	Profile(ctx context.Context, token string) (*models.User, error)
	UpdateProfile(ctx context.Context, token string, upd *ProfileUpdate) (*models.User, error)
	UploadProfilePhoto(ctx context.Context, token string, photo *Photo) (string, error)

	// Catalog.
	Places(ctx context.Context, token string, q *PlaceQuery) ([]models.Place, error)
	Place(ctx context.Context, token string, id int64) (*models.Place, error)
	Categories(ctx context.Context) ([]models.Category, error)
	MyPlaces(ctx context.Context, token string) ([]models.Place, error)
	CreatePlace(ctx context.Context, token string, in *PlaceInput) (*models.Place, error)
	UpdatePlace(ctx context.Context, token string, id int64, in *PlaceInput) (*models.Place, error)
	DeletePlace(ctx context.Context, token string, id int64) error

	// Favorites.
	Favorites(ctx context.Context, token string) ([]models.Place, error)
	ToggleFavorite(ctx context.Context, token string, placeID int64) error

	// Reviews.
	PlaceReviews(ctx context.Context, placeID int64) ([]models.Review, error)
	MyReviews(ctx context.Context, token string) ([]models.Review, error)
	SubmitReview(ctx context.Context, token string, in *ReviewInput) (*models.Review, error)
	UpdateReview(ctx context.Context, token string, id int64, in *ReviewInput) (*models.Review, error)
	DeleteReview(ctx context.Context, token string, id int64) error

	// Ping checks server reachability.
	Ping(ctx context.Context) error
}
