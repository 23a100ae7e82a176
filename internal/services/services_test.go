package services

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hafidzirham/localspot-cli/internal/api"
	"github.com/hafidzirham/localspot-cli/internal/logging"
	"github.com/hafidzirham/localspot-cli/internal/models"
	"github.com/hafidzirham/localspot-cli/internal/session"
)

// stubSession serves a fixed snapshot.
type stubSession struct {
	snap session.Snapshot
}

func (s *stubSession) Snapshot() session.Snapshot { return s.snap }

func authedSession(token string) *stubSession {
	return &stubSession{snap: session.Snapshot{
		User:       &models.User{ID: 1, Username: "budi"},
		Credential: token,
	}}
}

func guestSession() *stubSession {
	return &stubSession{snap: session.Snapshot{User: models.Guest()}}
}

// stubClient embeds api.Client so only the methods a test exercises need
// stubbing; anything else panics, which is exactly what we want.
type stubClient struct {
	api.Client

	mu    sync.Mutex
	calls int

	PlacesRet    []models.Place
	PlaceRet     *models.Place
	FavoritesRet []models.Place
	ToggleErr    error
	MyPlacesRet  []models.Place
	ReviewsRet   []models.Review
	ReviewRet    *models.Review

	LastToken    string
	LastPlaceID  int64
	LastQuery    *api.PlaceQuery
	ToggledIDs   []int64
	LastReviewIn *api.ReviewInput
}

func (c *stubClient) called(token string) {
	c.mu.Lock()
	c.calls++
	c.LastToken = token
	c.mu.Unlock()
}

func (c *stubClient) Places(ctx context.Context, token string, q *api.PlaceQuery) ([]models.Place, error) {
	c.called(token)
	c.LastQuery = q
	return c.PlacesRet, nil
}

func (c *stubClient) Place(ctx context.Context, token string, id int64) (*models.Place, error) {
	c.called(token)
	c.LastPlaceID = id
	return c.PlaceRet, nil
}

func (c *stubClient) Categories(ctx context.Context) ([]models.Category, error) {
	c.called("")
	return []models.Category{{ID: 1, Name: "Kuliner"}}, nil
}

func (c *stubClient) MyPlaces(ctx context.Context, token string) ([]models.Place, error) {
	c.called(token)
	return c.MyPlacesRet, nil
}

func (c *stubClient) Favorites(ctx context.Context, token string) ([]models.Place, error) {
	c.called(token)
	return c.FavoritesRet, nil
}

func (c *stubClient) ToggleFavorite(ctx context.Context, token string, placeID int64) error {
	c.called(token)
	c.mu.Lock()
	c.ToggledIDs = append(c.ToggledIDs, placeID)
	c.mu.Unlock()
	return c.ToggleErr
}

func (c *stubClient) PlaceReviews(ctx context.Context, placeID int64) ([]models.Review, error) {
	c.called("")
	c.LastPlaceID = placeID
	return c.ReviewsRet, nil
}

func (c *stubClient) MyReviews(ctx context.Context, token string) ([]models.Review, error) {
	c.called(token)
	return c.ReviewsRet, nil
}

func (c *stubClient) SubmitReview(ctx context.Context, token string, in *api.ReviewInput) (*models.Review, error) {
	c.called(token)
	c.LastReviewIn = in
	return c.ReviewRet, nil
}

func (c *stubClient) DeleteReview(ctx context.Context, token string, id int64) error {
	c.called(token)
	return nil
}

func testLogger() logging.Logger {
	return logging.NewTextLogger(io.Discard, "error")
}

// ---- PlaceService ----

func TestPlaceService_SearchPassesCredentialWhenPresent(t *testing.T) {
	fc := &stubClient{PlacesRet: []models.Place{{ID: 1, Name: "Kopi Tuku"}}}
	svc := NewPlaceService(fc, authedSession("tok"))

	q := &api.PlaceQuery{Search: "kopi"}
	places, err := svc.Search(context.Background(), q)
	require.NoError(t, err)
	assert.Len(t, places, 1)
	assert.Equal(t, "tok", fc.LastToken)
	assert.Same(t, q, fc.LastQuery)
}

func TestPlaceService_GuestsCanBrowse(t *testing.T) {
	fc := &stubClient{PlaceRet: &models.Place{ID: 5, Name: "Taman"}}
	svc := NewPlaceService(fc, guestSession())

	_, err := svc.Search(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, fc.LastToken)

	p, err := svc.Detail(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), p.ID)

	cats, err := svc.Categories(context.Background())
	require.NoError(t, err)
	assert.Len(t, cats, 1)
}

func TestPlaceService_MineRequiresAccount(t *testing.T) {
	fc := &stubClient{}
	svc := NewPlaceService(fc, guestSession())

	_, err := svc.Mine(context.Background())
	require.ErrorIs(t, err, ErrAccountRequired)
	assert.Zero(t, fc.calls, "must be rejected before any network call")
}

func TestPlaceService_MineUsesCredential(t *testing.T) {
	fc := &stubClient{MyPlacesRet: []models.Place{{ID: 9}}}
	svc := NewPlaceService(fc, authedSession("tok-9"))

	places, err := svc.Mine(context.Background())
	require.NoError(t, err)
	assert.Len(t, places, 1)
	assert.Equal(t, "tok-9", fc.LastToken)
}

// ---- FavoriteService ----

func TestFavoriteService_ToggleRequiresAccount(t *testing.T) {
	fc := &stubClient{}
	svc := NewFavoriteService(fc, guestSession(), testLogger())

	_, err := svc.Toggle(context.Background(), 7)
	require.ErrorIs(t, err, ErrAccountRequired)
	assert.Zero(t, fc.calls)
	assert.False(t, svc.IsFavorited(7), "no tentative flip for rejected actors")
}

func TestFavoriteService_ToggleOptimistic(t *testing.T) {
	fc := &stubClient{}
	svc := NewFavoriteService(fc, authedSession("tok"), testLogger())

	on, err := svc.Toggle(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, on)
	assert.True(t, svc.IsFavorited(7))
	assert.Equal(t, []int64{7}, fc.ToggledIDs)

	off, err := svc.Toggle(context.Background(), 7)
	require.NoError(t, err)
	assert.False(t, off)
	assert.False(t, svc.IsFavorited(7))
}

func TestFavoriteService_ToggleRevertsOnFailure(t *testing.T) {
	fc := &stubClient{ToggleErr: api.ErrUnavailable}
	svc := NewFavoriteService(fc, authedSession("tok"), testLogger())
	svc.Observe(&models.Place{ID: 7, IsFavorited: true})

	got, err := svc.Toggle(context.Background(), 7)
	require.ErrorIs(t, err, api.ErrUnavailable)
	assert.True(t, got, "reported flag must match the reverted state")
	assert.True(t, svc.IsFavorited(7), "local flag must revert to the snapshot")
}

func TestFavoriteService_ListRefreshesState(t *testing.T) {
	fc := &stubClient{FavoritesRet: []models.Place{{ID: 3}, {ID: 8}}}
	svc := NewFavoriteService(fc, authedSession("tok"), testLogger())

	places, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, places, 2)
	assert.True(t, svc.IsFavorited(3))
	assert.True(t, svc.IsFavorited(8))
	assert.False(t, svc.IsFavorited(99))
}

func TestFavoriteService_ListRequiresAccount(t *testing.T) {
	fc := &stubClient{}
	svc := NewFavoriteService(fc, guestSession(), testLogger())

	_, err := svc.List(context.Background())
	require.ErrorIs(t, err, ErrAccountRequired)
	assert.Zero(t, fc.calls)
}

func TestFavoriteService_ObserveRecordsDetailFlag(t *testing.T) {
	svc := NewFavoriteService(&stubClient{}, guestSession(), testLogger())

	svc.Observe(&models.Place{ID: 4, IsFavorited: true})
	assert.True(t, svc.IsFavorited(4))

	svc.Observe(&models.Place{ID: 4, IsFavorited: false})
	assert.False(t, svc.IsFavorited(4))

	svc.Observe(nil) // no-op
}

// ---- ReviewService ----

func TestReviewService_ForPlaceIsPublic(t *testing.T) {
	fc := &stubClient{ReviewsRet: []models.Review{{ID: 1, Rating: 5}}}
	svc := NewReviewService(fc, guestSession())

	reviews, err := svc.ForPlace(context.Background(), 7)
	require.NoError(t, err)
	assert.Len(t, reviews, 1)
	assert.Equal(t, int64(7), fc.LastPlaceID)
}

func TestReviewService_WritesRequireAccount(t *testing.T) {
	fc := &stubClient{}
	svc := NewReviewService(fc, guestSession())

	_, err := svc.Submit(context.Background(), &api.ReviewInput{PlaceID: 1, Rating: 4})
	require.ErrorIs(t, err, ErrAccountRequired)

	_, err = svc.Mine(context.Background())
	require.ErrorIs(t, err, ErrAccountRequired)

	err = svc.Delete(context.Background(), 1)
	require.ErrorIs(t, err, ErrAccountRequired)

	assert.Zero(t, fc.calls)
}

func TestReviewService_SubmitPassesInput(t *testing.T) {
	fc := &stubClient{ReviewRet: &models.Review{ID: 10, Rating: 4}}
	svc := NewReviewService(fc, authedSession("tok"))

	in := &api.ReviewInput{PlaceID: 7, Rating: 4, Comment: "Enak."}
	rev, err := svc.Submit(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, int64(10), rev.ID)
	assert.Same(t, in, fc.LastReviewIn)
	assert.Equal(t, "tok", fc.LastToken)
}

// pure helpers

func TestToggled_DoesNotMutateInput(t *testing.T) {
	before := favoriteState{1: true, 2: false}
	after := toggled(before, 2)

	assert.True(t, after[2])
	assert.False(t, before[2], "input state must stay untouched")
	assert.True(t, after[1])
}

func TestFromPlaces(t *testing.T) {
	places := []models.Place{{ID: 1, IsFavorited: true}, {ID: 2, IsFavorited: false}}

	mixed := fromPlaces(places, false)
	assert.True(t, mixed[1])
	assert.False(t, mixed[2])

	all := fromPlaces(places, true)
	assert.True(t, all[1])
	assert.True(t, all[2])
}
