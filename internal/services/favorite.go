package services

import (
	"context"
	"sync"

	"github.com/hafidzirham/localspot-cli/internal/api"
	"github.com/hafidzirham/localspot-cli/internal/logging"
	"github.com/hafidzirham/localspot-cli/internal/models"
)

// favoriteState maps place IDs to their known favorited flag. It is treated
// as immutable: updates go through pure functions returning a fresh map, so
// a snapshot taken before a tentative update stays valid for rollback.
type favoriteState map[int64]bool

// toggled returns a copy of s with the flag for placeID flipped. Unknown
// places flip to true.
func toggled(s favoriteState, placeID int64) favoriteState {
	next := make(favoriteState, len(s)+1)
	for k, v := range s {
		next[k] = v
	}
	next[placeID] = !s[placeID]
	return next
}

// fromPlaces builds the state from a listing; every listed place counts as
// favorited when the listing is the favorites endpoint.
func fromPlaces(places []models.Place, allFavorited bool) favoriteState {
	s := make(favoriteState, len(places))
	for _, p := range places {
		if allFavorited {
			s[p.ID] = true
		} else {
			s[p.ID] = p.IsFavorited
		}
	}
	return s
}

// FavoriteService maintains the user's favorites with optimistic toggling:
// the local flag flips immediately, the request goes out, and on failure the
// state reverts to the snapshot captured before the tentative update.
type FavoriteService struct {
	client api.Client
	sess   Session
	log    logging.Logger

	mu    sync.Mutex
	state favoriteState
}

func NewFavoriteService(client api.Client, sess Session, log logging.Logger) *FavoriteService {
	return &FavoriteService{
		client: client,
		sess:   sess,
		log:    log,
		state:  favoriteState{},
	}
}

// List fetches the favorites and refreshes the local state from them.
func (s *FavoriteService) List(ctx context.Context) ([]models.Place, error) {
	snap := s.sess.Snapshot()
	if snap.Credential == "" {
		return nil, ErrAccountRequired
	}

	places, err := s.client.Favorites(ctx, snap.Credential)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.state = fromPlaces(places, true)
	s.mu.Unlock()
	return places, nil
}

// IsFavorited reports the locally known flag for a place.
func (s *FavoriteService) IsFavorited(placeID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state[placeID]
}

// Observe records the favorited flag carried by a fetched place detail.
func (s *FavoriteService) Observe(place *models.Place) {
	if place == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make(favoriteState, len(s.state)+1)
	for k, v := range s.state {
		next[k] = v
	}
	next[place.ID] = place.IsFavorited
	s.state = next
}

// Toggle flips the favorite flag for a place. The flip is applied locally
// first; if the server rejects it or the request fails, the prior state is
// restored and the error returned. The new flag is reported on success.
// Guests and unauthenticated actors are rejected before any network call.
func (s *FavoriteService) Toggle(ctx context.Context, placeID int64) (bool, error) {
	snap := s.sess.Snapshot()
	if snap.Credential == "" {
		return false, ErrAccountRequired
	}

	s.mu.Lock()
	prev := s.state
	next := toggled(prev, placeID)
	s.state = next
	s.mu.Unlock()

	if err := s.client.ToggleFavorite(ctx, snap.Credential, placeID); err != nil {
		s.mu.Lock()
		s.state = prev
		s.mu.Unlock()
		s.log.Warn(ctx, "favorite toggle reverted", "place_id", placeID, "error", err)
		return prev[placeID], err
	}
	return next[placeID], nil
}
