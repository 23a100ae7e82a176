package services

import (
	"context"

	"github.com/hafidzirham/localspot-cli/internal/api"
	"github.com/hafidzirham/localspot-cli/internal/models"
)

// ReviewService covers reading and writing place reviews.
type ReviewService struct {
	client api.Client
	sess   Session
}

func NewReviewService(client api.Client, sess Session) *ReviewService {
	return &ReviewService{client: client, sess: sess}
}

func (s *ReviewService) token() (string, error) {
	token := s.sess.Snapshot().Credential
	if token == "" {
		return "", ErrAccountRequired
	}
	return token, nil
}

// ForPlace lists the reviews of a place. Public.
func (s *ReviewService) ForPlace(ctx context.Context, placeID int64) ([]models.Review, error) {
	return s.client.PlaceReviews(ctx, placeID)
}

// Mine lists the current user's reviews.
func (s *ReviewService) Mine(ctx context.Context) ([]models.Review, error) {
	token, err := s.token()
	if err != nil {
		return nil, err
	}
	return s.client.MyReviews(ctx, token)
}

// Submit posts a new review.
func (s *ReviewService) Submit(ctx context.Context, in *api.ReviewInput) (*models.Review, error) {
	token, err := s.token()
	if err != nil {
		return nil, err
	}
	return s.client.SubmitReview(ctx, token, in)
}

// Update edits one of the current user's reviews.
func (s *ReviewService) Update(ctx context.Context, id int64, in *api.ReviewInput) (*models.Review, error) {
	token, err := s.token()
	if err != nil {
		return nil, err
	}
	return s.client.UpdateReview(ctx, token, id, in)
}

// Delete removes one of the current user's reviews.
func (s *ReviewService) Delete(ctx context.Context, id int64) error {
	token, err := s.token()
	if err != nil {
		return err
	}
	return s.client.DeleteReview(ctx, token, id)
}
