package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/hafidzirham/localspot-cli/internal/api"
)

// ReviewsCmd lists the reviews of a place.
func (a *App) ReviewsCmd(ctx context.Context, args []string) error {
	id, err := parseID(args, "usage: reviews <place-id>")
	if err != nil {
		return err
	}

	reviews, err := a.reviews.ForPlace(ctx, id)
	if err != nil {
		return err
	}
	if len(reviews) == 0 {
		fmt.Fprintln(a.out, "No reviews yet.")
		return nil
	}
	for _, r := range reviews {
		fmt.Fprintf(a.out, "#%d [%d/5] %s: %s\n", r.ID, r.Rating, r.Username, r.Comment)
	}
	return nil
}

// MyReviewsCmd lists the current user's reviews.
func (a *App) MyReviewsCmd(ctx context.Context) error {
	reviews, err := a.reviews.Mine(ctx)
	if err != nil {
		return err
	}
	if len(reviews) == 0 {
		fmt.Fprintln(a.out, "You have not written any reviews.")
		return nil
	}
	for _, r := range reviews {
		fmt.Fprintf(a.out, "#%d [%d/5] %s: %s\n", r.ID, r.Rating, r.PlaceName, r.Comment)
	}
	return nil
}

func (a *App) promptReview(placeID int64) (*api.ReviewInput, error) {
	rating, err := GetInt(a.reader, "Rating (1-5)", a.out)
	if err != nil {
		return nil, err
	}
	if rating < 1 || rating > 5 {
		return nil, errors.New("rating must be between 1 and 5")
	}

	comment, err := GetMultiline(a.reader, "Comment", a.out)
	if err != nil {
		return nil, err
	}

	return &api.ReviewInput{PlaceID: placeID, Rating: int(rating), Comment: comment}, nil
}

// AddReviewCmd interactively posts a review for a place.
func (a *App) AddReviewCmd(ctx context.Context) error {
	placeID, err := GetInt(a.reader, "Place id", a.out)
	if err != nil {
		return err
	}

	in, err := a.promptReview(placeID)
	if err != nil {
		return err
	}

	r, err := a.reviews.Submit(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Review #%d posted.\n", r.ID)
	return nil
}

// EditReviewCmd edits one of the current user's reviews.
func (a *App) EditReviewCmd(ctx context.Context, args []string) error {
	id, err := parseID(args, "usage: editreview <id>")
	if err != nil {
		return err
	}

	placeID, err := GetInt(a.reader, "Place id", a.out)
	if err != nil {
		return err
	}

	in, err := a.promptReview(placeID)
	if err != nil {
		return err
	}

	r, err := a.reviews.Update(ctx, id, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Review #%d updated.\n", r.ID)
	return nil
}

// DeleteReviewCmd removes one of the current user's reviews.
func (a *App) DeleteReviewCmd(ctx context.Context, args []string) error {
	id, err := parseID(args, "usage: delreview <id>")
	if err != nil {
		return err
	}
	if err := a.reviews.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Review #%d deleted.\n", id)
	return nil
}
