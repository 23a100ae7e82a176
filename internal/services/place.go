package services

import (
	"context"
	"errors"

	"github.com/hafidzirham/localspot-cli/internal/api"
	"github.com/hafidzirham/localspot-cli/internal/models"
	"github.com/hafidzirham/localspot-cli/internal/session"
)

// ErrAccountRequired is returned when an operation needs a signed-in
// account and the current actor is a guest or unauthenticated.
var ErrAccountRequired = errors.New("account required")

// Session is the read side of the session manager the services need.
type Session interface {
	Snapshot() session.Snapshot
}

// PlaceService exposes the place catalog: browsing, place detail,
// categories, and management of the user's own places.
type PlaceService struct {
	client api.Client
	sess   Session
}

func NewPlaceService(client api.Client, sess Session) *PlaceService {
	return &PlaceService{client: client, sess: sess}
}

// token returns the current credential, or "" for guests and
// unauthenticated actors. Listing endpoints accept both; the credential
// only enriches responses (e.g. is_favorited flags).
func (s *PlaceService) token() string {
	return s.sess.Snapshot().Credential
}

// Search lists places matching the query. All filters are optional.
func (s *PlaceService) Search(ctx context.Context, q *api.PlaceQuery) ([]models.Place, error) {
	return s.client.Places(ctx, s.token(), q)
}

// Detail fetches a single place.
func (s *PlaceService) Detail(ctx context.Context, id int64) (*models.Place, error) {
	return s.client.Place(ctx, s.token(), id)
}

// Categories lists the place categories. Public, no credential needed.
func (s *PlaceService) Categories(ctx context.Context) ([]models.Category, error) {
	return s.client.Categories(ctx)
}

// Mine lists the places added by the current user.
func (s *PlaceService) Mine(ctx context.Context) ([]models.Place, error) {
	token := s.token()
	if token == "" {
		return nil, ErrAccountRequired
	}
	return s.client.MyPlaces(ctx, token)
}

// Create adds a new place owned by the current user.
func (s *PlaceService) Create(ctx context.Context, in *api.PlaceInput) (*models.Place, error) {
	token := s.token()
	if token == "" {
		return nil, ErrAccountRequired
	}
	return s.client.CreatePlace(ctx, token, in)
}

// Update edits one of the current user's places.
func (s *PlaceService) Update(ctx context.Context, id int64, in *api.PlaceInput) (*models.Place, error) {
	token := s.token()
	if token == "" {
		return nil, ErrAccountRequired
	}
	return s.client.UpdatePlace(ctx, token, id, in)
}

// Delete removes one of the current user's places.
func (s *PlaceService) Delete(ctx context.Context, id int64) error {
	token := s.token()
	if token == "" {
		return ErrAccountRequired
	}
	return s.client.DeletePlace(ctx, token, id)
}
